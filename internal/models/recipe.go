package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe keeps the client's wire vocabulary: ingredientes and cantidades are
// two independent sequences paired by position when rendered. The store does
// not require them to be the same length.
type Recipe struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Ingredients StringArray `gorm:"type:jsonb;not null;default:'[]';column:ingredientes" json:"ingredientes"`
	Quantities  StringArray `gorm:"type:jsonb;not null;default:'[]';column:cantidades" json:"cantidades"`
	Steps       StringArray `gorm:"type:jsonb;not null;default:'[]';column:pasos" json:"pasos"`
	Comments    string      `gorm:"type:text;column:comentarios" json:"comentarios"`
	Public      bool        `gorm:"not null;default:false;column:publico" json:"publico"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
