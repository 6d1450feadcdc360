package api

import "github.com/Ejsll03/recetas-backend/internal/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RecipeRequest is the create body. The field names are the client's wire
// vocabulary and stay in Spanish.
type RecipeRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredientes"`
	Quantities  []string `json:"cantidades"`
	Steps       []string `json:"pasos"`
	Comments    string   `json:"comentarios"`
	Public      bool     `json:"publico"`
}

func (r *RecipeRequest) toModel() *models.Recipe {
	return &models.Recipe{
		Title:       r.Title,
		Description: r.Description,
		Ingredients: models.StringArray(r.Ingredients),
		Quantities:  models.StringArray(r.Quantities),
		Steps:       models.StringArray(r.Steps),
		Comments:    r.Comments,
		Public:      r.Public,
	}
}

// RecipeUpdateRequest uses pointers so absent fields are distinguishable
// from zero values; only present fields are applied.
type RecipeUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Ingredients *[]string `json:"ingredientes"`
	Quantities  *[]string `json:"cantidades"`
	Steps       *[]string `json:"pasos"`
	Comments    *string   `json:"comentarios"`
	Public      *bool     `json:"publico"`
}

type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"publico"`
}

type AddGroupRecipeRequest struct {
	RecipeID string `json:"recipeId"`
}
