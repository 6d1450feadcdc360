package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ejsll03/recetas-backend/internal/models"
)

// GroupService owns recipe groups and mediates their membership: only
// recipes owned by the group's owner can be organized into it.
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// RecipeRef is the member annotation on group listings.
type RecipeRef struct {
	ID    uuid.UUID `json:"_id"`
	Title string    `json:"title"`
}

// GroupWithRecipes is a group plus its member recipes.
type GroupWithRecipes struct {
	models.RecipeGroup
	Recipes []RecipeRef `json:"recipes"`
}

func (s *GroupService) CreateGroup(ctx context.Context, ownerID uuid.UUID, name, description string, public bool) (*models.RecipeGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("group name is required")
	}
	group := models.RecipeGroup{
		Name:        name,
		Description: description,
		Public:      public,
		UserID:      ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// ListGroups returns all groups owned by ownerID with their member recipes.
func (s *GroupService) ListGroups(ctx context.Context, ownerID uuid.UUID) ([]GroupWithRecipes, error) {
	var groups []models.RecipeGroup
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&groups).Error; err != nil {
		return nil, err
	}

	type memberRow struct {
		GroupID  uuid.UUID
		RecipeID uuid.UUID
		Title    string
	}
	var rows []memberRow
	err := s.db.WithContext(ctx).
		Table("recipe_group_members").
		Select("recipe_group_members.group_id, recipes.id AS recipe_id, recipes.title").
		Joins("JOIN recipes ON recipes.id = recipe_group_members.recipe_id").
		Joins("JOIN recipe_groups ON recipe_groups.id = recipe_group_members.group_id").
		Where("recipe_groups.user_id = ?", ownerID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	membersByGroup := make(map[uuid.UUID][]RecipeRef)
	for _, row := range rows {
		membersByGroup[row.GroupID] = append(membersByGroup[row.GroupID], RecipeRef{ID: row.RecipeID, Title: row.Title})
	}

	result := make([]GroupWithRecipes, len(groups))
	for i, g := range groups {
		members := membersByGroup[g.ID]
		if members == nil {
			members = []RecipeRef{}
		}
		result[i] = GroupWithRecipes{RecipeGroup: g, Recipes: members}
	}
	return result, nil
}

// GetGroup is an ownership-scoped fetch with member recipe detail.
func (s *GroupService) GetGroup(ctx context.Context, ownerID, groupID uuid.UUID) (*GroupWithRecipes, error) {
	group, err := s.findOwned(ctx, ownerID, groupID)
	if err != nil {
		return nil, err
	}

	members := []RecipeRef{}
	err = s.db.WithContext(ctx).
		Table("recipe_group_members").
		Select("recipes.id AS id, recipes.title").
		Joins("JOIN recipes ON recipes.id = recipe_group_members.recipe_id").
		Where("recipe_group_members.group_id = ?", groupID).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}

	return &GroupWithRecipes{RecipeGroup: *group, Recipes: members}, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, ownerID, groupID uuid.UUID, name, description string, public bool) (*models.RecipeGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("group name is required")
	}
	group, err := s.findOwned(ctx, ownerID, groupID)
	if err != nil {
		return nil, err
	}
	group.Name = name
	group.Description = description
	group.Public = public
	if err := s.db.WithContext(ctx).Save(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes the group and its membership references. Member
// recipes are left intact.
func (s *GroupService) DeleteGroup(ctx context.Context, ownerID, groupID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.RecipeGroup
		err := tx.Where("id = ? AND user_id = ?", groupID, ownerID).First(&group).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.RecipeGroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RecipeGroup{}, "id = ?", groupID).Error
	})
}

// AddRecipe puts a recipe into a group. Both must belong to ownerID; the
// ownership check runs here even though the client only offers the owner's
// own recipes as candidates. Adding an already-present recipe is a no-op.
func (s *GroupService) AddRecipe(ctx context.Context, ownerID, groupID, recipeID uuid.UUID) error {
	if _, err := s.findOwned(ctx, ownerID, groupID); err != nil {
		return err
	}

	var recipe models.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.UserID != ownerID {
		return ErrForbidden
	}

	member := models.RecipeGroupMember{GroupID: groupID, RecipeID: recipeID}
	return s.db.WithContext(ctx).
		Where("group_id = ? AND recipe_id = ?", groupID, recipeID).
		FirstOrCreate(&member).Error
}

// RemoveRecipe drops a membership reference. Removing an absent membership
// succeeds quietly.
func (s *GroupService) RemoveRecipe(ctx context.Context, ownerID, groupID, recipeID uuid.UUID) error {
	if _, err := s.findOwned(ctx, ownerID, groupID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("group_id = ? AND recipe_id = ?", groupID, recipeID).
		Delete(&models.RecipeGroupMember{}).Error
}

// AvailableRecipes is the derived picker view: the owner's recipes minus the
// group's current members. Computed at query time, never stored.
func (s *GroupService) AvailableRecipes(ctx context.Context, ownerID, groupID uuid.UUID) ([]models.Recipe, error) {
	if _, err := s.findOwned(ctx, ownerID, groupID); err != nil {
		return nil, err
	}

	members := s.db.Model(&models.RecipeGroupMember{}).
		Select("recipe_id").
		Where("group_id = ?", groupID)

	recipes := []models.Recipe{}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id NOT IN (?)", ownerID, members).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *GroupService) findOwned(ctx context.Context, ownerID, groupID uuid.UUID) (*models.RecipeGroup, error) {
	var group models.RecipeGroup
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", groupID, ownerID).
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}
