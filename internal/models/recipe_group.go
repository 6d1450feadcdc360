package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeGroup is a user-owned named collection of that same user's recipes.
type RecipeGroup struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Public      bool      `gorm:"not null;default:false;column:publico" json:"publico"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
}

func (g *RecipeGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// RecipeGroupMember links a group to one of its owner's recipes.
// The unique index gives membership set semantics.
type RecipeGroupMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_group_recipe" json:"group_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_group_recipe" json:"recipe_id"`
}

func (RecipeGroupMember) TableName() string {
	return "recipe_group_members"
}

func (m *RecipeGroupMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
