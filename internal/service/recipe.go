package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ejsll03/recetas-backend/internal/models"
)

// RecipeService owns recipe records and the favorite relation.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// GroupRef is the group annotation on an owner's recipe listing.
type GroupRef struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// RecipeWithGroups is a recipe plus the groups it belongs to.
type RecipeWithGroups struct {
	models.Recipe
	Groups []GroupRef `json:"groups"`
}

// RecipeWithOwner is a recipe plus a lightweight owner summary, used on the
// public and favorites listings.
type RecipeWithOwner struct {
	models.Recipe
	User models.UserSummary `json:"user"`
}

// RecipeUpdate carries a partial update. Nil fields are left untouched, so a
// publico=false in the body still lands (a zero-value struct update would
// silently drop it).
type RecipeUpdate struct {
	Title       *string
	Description *string
	Ingredients *models.StringArray
	Quantities  *models.StringArray
	Steps       *models.StringArray
	Comments    *string
	Public      *bool
}

func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	if strings.TrimSpace(recipe.Title) == "" {
		return nil, NewValidationError("title is required")
	}
	recipe.ID = uuid.Nil
	recipe.UserID = ownerID
	if recipe.Ingredients == nil {
		recipe.Ingredients = models.StringArray{}
	}
	if recipe.Quantities == nil {
		recipe.Quantities = models.StringArray{}
	}
	if recipe.Steps == nil {
		recipe.Steps = models.StringArray{}
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// ListRecipes returns all recipes owned by ownerID, each annotated with the
// groups it belongs to. Ordering is left to the client.
func (s *RecipeService) ListRecipes(ctx context.Context, ownerID uuid.UUID) ([]RecipeWithGroups, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&recipes).Error; err != nil {
		return nil, err
	}

	type membershipRow struct {
		RecipeID uuid.UUID
		GroupID  uuid.UUID
		Name     string
	}
	var rows []membershipRow
	err := s.db.WithContext(ctx).
		Table("recipe_group_members").
		Select("recipe_group_members.recipe_id, recipe_groups.id AS group_id, recipe_groups.name").
		Joins("JOIN recipe_groups ON recipe_groups.id = recipe_group_members.group_id").
		Where("recipe_groups.user_id = ?", ownerID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	groupsByRecipe := make(map[uuid.UUID][]GroupRef)
	for _, row := range rows {
		groupsByRecipe[row.RecipeID] = append(groupsByRecipe[row.RecipeID], GroupRef{ID: row.GroupID, Name: row.Name})
	}

	result := make([]RecipeWithGroups, len(recipes))
	for i, r := range recipes {
		groups := groupsByRecipe[r.ID]
		if groups == nil {
			groups = []GroupRef{}
		}
		result[i] = RecipeWithGroups{Recipe: r, Groups: groups}
	}
	return result, nil
}

// ListPublicRecipes returns every recipe flagged public, the caller's own
// included, annotated with the owner's username.
func (s *RecipeService) ListPublicRecipes(ctx context.Context) ([]RecipeWithOwner, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("publico = ?", true).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return s.annotateOwners(ctx, recipes)
}

// ListFavorites returns the recipes userID has favorited. Visibility is not
// re-checked: a recipe favorited while public stays listed after its owner
// makes it private.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]RecipeWithOwner, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return s.annotateOwners(ctx, recipes)
}

func (s *RecipeService) annotateOwners(ctx context.Context, recipes []models.Recipe) ([]RecipeWithOwner, error) {
	ownerIDs := make([]uuid.UUID, 0, len(recipes))
	seen := make(map[uuid.UUID]bool)
	for _, r := range recipes {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ownerIDs = append(ownerIDs, r.UserID)
		}
	}

	usernames := make(map[uuid.UUID]string, len(ownerIDs))
	if len(ownerIDs) > 0 {
		var owners []models.User
		if err := s.db.WithContext(ctx).Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
			return nil, err
		}
		for _, u := range owners {
			usernames[u.ID] = u.Username
		}
	}

	result := make([]RecipeWithOwner, len(recipes))
	for i, r := range recipes {
		result[i] = RecipeWithOwner{
			Recipe: r,
			User:   models.UserSummary{Username: usernames[r.UserID]},
		}
	}
	return result, nil
}

// UpdateRecipe applies a partial update to a recipe owned by ownerID.
func (s *RecipeService) UpdateRecipe(ctx context.Context, ownerID, recipeID uuid.UUID, update RecipeUpdate) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, ownerID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := make(map[string]interface{})
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, NewValidationError("title is required")
		}
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Ingredients != nil {
		fields["ingredientes"] = *update.Ingredients
	}
	if update.Quantities != nil {
		fields["cantidades"] = *update.Quantities
	}
	if update.Steps != nil {
		fields["pasos"] = *update.Steps
	}
	if update.Comments != nil {
		fields["comentarios"] = *update.Comments
	}
	if update.Public != nil {
		fields["publico"] = *update.Public
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&recipe).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe owned by ownerID together with its group
// memberships and every favorite pointing at it, in one transaction.
func (s *RecipeService) DeleteRecipe(ctx context.Context, ownerID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		err := tx.Where("id = ? AND user_id = ?", recipeID, ownerID).First(&recipe).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeGroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeFavorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipeID).Error
	})
}

// ToggleFavorite flips the favorite state of a recipe the user can see (their
// own, or any public one) and reports the new state.
func (s *RecipeService) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND (user_id = ? OR publico = ?)", recipeID, userID, true).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var fav models.RecipeFavorite
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&fav).Error
	switch {
	case err == nil:
		if err := s.db.WithContext(ctx).Delete(&fav).Error; err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		fav = models.RecipeFavorite{UserID: userID, RecipeID: recipeID}
		if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}
