package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ejsll03/recetas-backend/internal/api"
	"github.com/Ejsll03/recetas-backend/internal/session"
	"github.com/Ejsll03/recetas-backend/internal/testdb"
)

// These tests run the full stack against a real postgres container. They are
// skipped unless RECETAS_INTEGRATION=1 so the unit suite stays docker-free.
func setupIntegrationRouter(t *testing.T) *gin.Engine {
	t.Helper()
	if os.Getenv("RECETAS_INTEGRATION") != "1" {
		t.Skip("set RECETAS_INTEGRATION=1 to run postgres integration tests")
	}

	gin.SetMode(gin.TestMode)
	td := testdb.Setup(t)

	router := gin.New()
	api.RegisterRoutes(router, td.DB, session.NewMemoryStore(), "integration-secret", nil)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
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

func login(t *testing.T, router *gin.Engine, username string) *http.Cookie {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "testpassword123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": "testpassword123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestFullRecipeLifecycle(t *testing.T) {
	router := setupIntegrationRouter(t)
	ana := login(t, router, "ana")
	bob := login(t, router, "bob")

	// Create a recipe; the jsonb columns must round-trip through postgres.
	w := doJSON(t, router, http.MethodPost, "/recipes", map[string]interface{}{
		"title":        "Tortilla",
		"description":  "clásica",
		"ingredientes": []string{"huevos", "patatas", "cebolla"},
		"cantidades":   []string{"6", "4", "1"},
		"pasos":        []string{"pelar", "freír", "cuajar"},
		"publico":      true,
	}, ana)
	require.Equal(t, http.StatusCreated, w.Code)

	var recipe struct {
		ID          string   `json:"_id"`
		Ingredients []string `json:"ingredientes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.Equal(t, []string{"huevos", "patatas", "cebolla"}, recipe.Ingredients)

	// Bob sees it on the public feed and favorites it.
	w = doJSON(t, router, http.MethodGet, "/recipes/public", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	var public []struct {
		Title string `json:"title"`
		User  struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &public))
	require.Len(t, public, 1)
	assert.Equal(t, "ana", public[0].User.Username)

	w = doJSON(t, router, http.MethodPost, "/recipes/"+recipe.ID+"/favorite", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)

	// Ana organizes it into a group; unique membership holds on postgres.
	w = doJSON(t, router, http.MethodPost, "/api/recipe-groups", map[string]interface{}{
		"name": "Clásicos",
	}, ana)
	require.Equal(t, http.StatusCreated, w.Code)
	var group struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &group))

	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodPost, "/api/recipe-groups/"+group.ID+"/recipes",
			map[string]string{"recipeId": recipe.ID}, ana)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/recipe-groups/"+group.ID, nil, ana)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Recipes []struct {
			Title string `json:"title"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Recipes, 1)

	// Deleting the recipe clears membership and Bob's favorite with it.
	w = doJSON(t, router, http.MethodDelete, "/recipes/"+recipe.ID, nil, ana)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/recipes/favorites", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestAccountDeletionIntegration(t *testing.T) {
	router := setupIntegrationRouter(t)
	ana := login(t, router, "ana")
	bob := login(t, router, "bob")

	w := doJSON(t, router, http.MethodPost, "/recipes", map[string]interface{}{
		"title":   "Tarta",
		"publico": true,
	}, ana)
	require.Equal(t, http.StatusCreated, w.Code)
	var recipe struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))

	w = doJSON(t, router, http.MethodPost, "/recipes/"+recipe.ID+"/favorite", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/auth/profile", nil, ana)
	require.Equal(t, http.StatusOK, w.Code)

	// Ana's session and data are gone; Bob's favorites no longer name her.
	w = doJSON(t, router, http.MethodGet, "/auth/profile", nil, ana)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/recipes/public", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/recipes/favorites", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
