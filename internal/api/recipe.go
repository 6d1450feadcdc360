package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ejsll03/recetas-backend/internal/middleware"
	"github.com/Ejsll03/recetas-backend/internal/models"
	"github.com/Ejsll03/recetas-backend/internal/service"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	authService   *service.AuthService
}

func NewRecipeHandler(recipeService *service.RecipeService, authService *service.AuthService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.Engine) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/public", h.ListPublicRecipes)
		recipes.GET("/favorites", h.ListFavorites)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/favorite", h.ToggleFavorite)
	}
}

// ListRecipes returns the caller's recipes as a bare array; the client sorts
// by title itself.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": errorMessage(err, "failed to fetch recipes")})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) ListPublicRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListPublicRecipes(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": errorMessage(err, "failed to fetch public recipes")})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	recipes, err := h.recipeService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": errorMessage(err, "failed to fetch favorites")})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, req.toModel())
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": errorMessage(err, "failed to create recipe")})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req RecipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := service.RecipeUpdate{
		Title:       req.Title,
		Description: req.Description,
		Comments:    req.Comments,
		Public:      req.Public,
	}
	if req.Ingredients != nil {
		arr := models.StringArray(*req.Ingredients)
		update.Ingredients = &arr
	}
	if req.Quantities != nil {
		arr := models.StringArray(*req.Quantities)
		update.Quantities = &arr
	}
	if req.Steps != nil {
		arr := models.StringArray(*req.Steps)
		update.Steps = &arr
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, recipeID, update)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": errorMessage(err, "failed to update recipe")})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, recipeID); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": errorMessage(err, "failed to delete recipe")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

// ToggleFavorite flips the caller's favorite mark and returns the new state.
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	isFavorite, err := h.recipeService.ToggleFavorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": errorMessage(err, "failed to toggle favorite")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFavorite": isFavorite})
}
