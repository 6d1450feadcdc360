package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ejsll03/recetas-backend/internal/middleware"
	"github.com/Ejsll03/recetas-backend/internal/service"
	"github.com/Ejsll03/recetas-backend/internal/session"
)

// RegisterRoutes wires services and handlers onto the router. Paths sit at
// the root (no version prefix) to match the mobile client. A nil limiter
// disables rate limiting on the credential endpoints.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, sessions session.Store, jwtSecret string, limiter *middleware.RateLimiter) {
	authService := service.NewAuthService(db, sessions, jwtSecret)
	recipeService := service.NewRecipeService(db)
	groupService := service.NewGroupService(db)

	authHandler := NewAuthHandler(authService, limiter)
	recipeHandler := NewRecipeHandler(recipeService, authService)
	groupHandler := NewGroupHandler(groupService, authService)

	authHandler.RegisterRoutes(router)
	recipeHandler.RegisterRoutes(router)
	groupHandler.RegisterRoutes(router)
}

// statusFromError maps domain errors to HTTP status codes.
func statusFromError(err error) int {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internals behind a fallback for unexpected errors and
// surfaces domain errors verbatim; the client shows the text in a dialog.
func errorMessage(err error, fallback string) string {
	if statusFromError(err) == http.StatusInternalServerError {
		return fallback
	}
	return err.Error()
}
