package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ejsll03/recetas-backend/internal/database"
	"github.com/Ejsll03/recetas-backend/internal/models"
)

// setupTestDB opens an isolated in-memory sqlite database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hashed),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRecipe(t *testing.T, db *gorm.DB, owner *models.User, title string, public bool) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:       title,
		Description: "test description",
		Ingredients: models.StringArray{"harina", "azúcar"},
		Quantities:  models.StringArray{"200g"},
		Steps:       models.StringArray{"mezclar", "hornear"},
		Public:      public,
		UserID:      owner.ID,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
