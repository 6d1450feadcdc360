package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ejsll03/recetas-backend/internal/database"
	"github.com/Ejsll03/recetas-backend/internal/middleware"
	"github.com/Ejsll03/recetas-backend/internal/session"
)

// setupTestRouter builds a router over an isolated in-memory database with an
// in-memory session store, exactly as RegisterRoutes wires production.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	router := gin.New()
	RegisterRoutes(router, db, session.NewMemoryStore(), "test-secret", nil)
	return router
}

// performRequest sends a JSON request, attaching the session cookie when one
// is given, and returns the recorder.
func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account and returns the session cookie the
// login response set.
func registerAndLogin(t *testing.T, router *gin.Engine, username string) *http.Cookie {
	t.Helper()

	w := performRequest(t, router, http.MethodPost, "/auth/register", RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "testpassword123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, router, http.MethodPost, "/auth/login", LoginRequest{
		Username: username,
		Password: "testpassword123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
