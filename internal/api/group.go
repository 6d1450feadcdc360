package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ejsll03/recetas-backend/internal/middleware"
	"github.com/Ejsll03/recetas-backend/internal/service"
)

// GroupHandler serves /api/recipe-groups. Errors on these routes use a
// "message" field; that is what the client reads here.
type GroupHandler struct {
	groupService *service.GroupService
	authService  *service.AuthService
}

func NewGroupHandler(groupService *service.GroupService, authService *service.AuthService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		authService:  authService,
	}
}

func (h *GroupHandler) RegisterRoutes(router *gin.Engine) {
	groups := router.Group("/api/recipe-groups")
	groups.Use(middleware.AuthMiddleware(h.authService))
	{
		groups.GET("", h.ListGroups)
		groups.POST("", h.CreateGroup)
		groups.GET("/:id", h.GetGroup)
		groups.PUT("/:id", h.UpdateGroup)
		groups.DELETE("/:id", h.DeleteGroup)
		groups.GET("/:id/available-recipes", h.AvailableRecipes)
		groups.POST("/:id/recipes", h.AddRecipe)
		groups.DELETE("/:id/recipes/:recipeId", h.RemoveRecipe)
	}
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	groups, err := h.groupService.ListGroups(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"message": errorMessage(err, "failed to fetch recipe groups")})
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), userID, req.Name, req.Description, req.Public)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"message": errorMessage(err, "failed to create recipe group")})
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid group id"})
		return
	}

	group, err := h.groupService.GetGroup(c.Request.Context(), userID, groupID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"message": errorMessage(err, "failed to fetch recipe group")})
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid group id"})
		return
	}

	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), userID, groupID, req.Name, req.Description, req.Public)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"message": errorMessage(err, "failed to update recipe group")})
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteGroup removes the group and its memberships; the member recipes
// themselves stay.
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid group id"})
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), userID, groupID); err != nil {
		c.JSON(statusFromError(err), gin.H{"message": errorMessage(err, "failed to delete recipe group")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe group deleted"})
}

// AvailableRecipes serves the "add to group" picker: the caller's recipes
// that are not yet members of the group.
func (h *GroupHandler) AvailableRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid group id"})
		return
	}

	recipes, err := h.groupService.AvailableRecipes(c.Request.Context(), userID, groupID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"message": errorMessage(err, "failed to fetch available recipes")})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *GroupHandler) AddRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid group id"})
		return
	}

	var req AddGroupRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid recipe id"})
		return
	}

	if err := h.groupService.AddRecipe(c.Request.Context(), userID, groupID, recipeID); err != nil {
		c.JSON(statusFromError(err), gin.H{"message": errorMessage(err, "failed to add recipe to group")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe added to group"})
}

func (h *GroupHandler) RemoveRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid group id"})
		return
	}
	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid recipe id"})
		return
	}

	if err := h.groupService.RemoveRecipe(c.Request.Context(), userID, groupID, recipeID); err != nil {
		c.JSON(statusFromError(err), gin.H{"message": errorMessage(err, "failed to remove recipe from group")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe removed from group"})
}
