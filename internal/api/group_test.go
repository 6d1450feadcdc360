package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type groupResponse struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"publico"`
	Recipes     []struct {
		ID    string `json:"_id"`
		Title string `json:"title"`
	} `json:"recipes"`
}

func createGroupHTTP(t *testing.T, router *gin.Engine, cookie *http.Cookie, name string) groupResponse {
	t.Helper()

	w := performRequest(t, router, http.MethodPost, "/api/recipe-groups", GroupRequest{
		Name:        name,
		Description: "test group",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var created groupResponse
	decodeBody(t, w, &created)
	require.NotEmpty(t, created.ID)
	return created
}

func TestGroupsRequireAuth(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(t, router, http.MethodGet, "/api/recipe-groups", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGroupErrorsUseMessageField(t *testing.T) {
	router := setupTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	// Group routes report errors under "message", not "error".
	w := performRequest(t, router, http.MethodPost, "/api/recipe-groups",
		GroupRequest{Name: ""}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.NotEmpty(t, body["message"])
	assert.Empty(t, body["error"])
}

func TestGroupListShape(t *testing.T) {
	router := setupTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	w := performRequest(t, router, http.MethodGet, "/api/recipe-groups", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	createGroupHTTP(t, router, cookie, "Postres")

	w = performRequest(t, router, http.MethodGet, "/api/recipe-groups", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var list []groupResponse
	decodeBody(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Postres", list[0].Name)
	assert.NotNil(t, list[0].Recipes)
}

func TestGroupMembershipFlow(t *testing.T) {
	router := setupTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	recipe := createRecipeHTTP(t, router, cookie, "Tarta", false)
	other := createRecipeHTTP(t, router, cookie, "Flan", false)
	group := createGroupHTTP(t, router, cookie, "Postres")

	// Before any membership, both recipes are available candidates.
	w := performRequest(t, router, http.MethodGet,
		"/api/recipe-groups/"+group.ID+"/available-recipes", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var available []recipeResponse
	decodeBody(t, w, &available)
	assert.Len(t, available, 2)

	w = performRequest(t, router, http.MethodPost,
		"/api/recipe-groups/"+group.ID+"/recipes",
		AddGroupRecipeRequest{RecipeID: recipe.ID}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Adding again is a quiet no-op.
	w = performRequest(t, router, http.MethodPost,
		"/api/recipe-groups/"+group.ID+"/recipes",
		AddGroupRecipeRequest{RecipeID: recipe.ID}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodGet, "/api/recipe-groups/"+group.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var detail groupResponse
	decodeBody(t, w, &detail)
	require.Len(t, detail.Recipes, 1)
	assert.Equal(t, "Tarta", detail.Recipes[0].Title)

	// Only the recipe still outside the group remains available.
	w = performRequest(t, router, http.MethodGet,
		"/api/recipe-groups/"+group.ID+"/available-recipes", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &available)
	require.Len(t, available, 1)
	assert.Equal(t, other.ID, available[0].ID)

	// Membership shows up on the recipe listing too.
	w = performRequest(t, router, http.MethodGet, "/recipes", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var recipes []recipeResponse
	decodeBody(t, w, &recipes)
	for _, r := range recipes {
		if r.ID == recipe.ID {
			require.Len(t, r.Groups, 1)
			assert.Equal(t, "Postres", r.Groups[0].Name)
		}
	}

	w = performRequest(t, router, http.MethodDelete,
		"/api/recipe-groups/"+group.ID+"/recipes/"+recipe.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodGet, "/api/recipe-groups/"+group.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &detail)
	assert.Empty(t, detail.Recipes)
}

func TestAddForeignRecipeToGroup(t *testing.T) {
	router := setupTestRouter(t)
	ana := registerAndLogin(t, router, "ana")
	bob := registerAndLogin(t, router, "bob")

	bobRecipe := createRecipeHTTP(t, router, bob, "Flan", true)
	group := createGroupHTTP(t, router, ana, "Postres")

	w := performRequest(t, router, http.MethodPost,
		"/api/recipe-groups/"+group.ID+"/recipes",
		AddGroupRecipeRequest{RecipeID: bobRecipe.ID}, ana)
	require.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.NotEmpty(t, body["message"])
}

func TestUpdateGroupEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	group := createGroupHTTP(t, router, cookie, "Postres")

	w := performRequest(t, router, http.MethodPut, "/api/recipe-groups/"+group.ID,
		GroupRequest{Name: "Dulces", Description: "azúcar", Public: true}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var updated groupResponse
	decodeBody(t, w, &updated)
	assert.Equal(t, "Dulces", updated.Name)
	assert.True(t, updated.Public)
}

func TestDeleteGroupEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	recipe := createRecipeHTTP(t, router, cookie, "Tarta", false)
	group := createGroupHTTP(t, router, cookie, "Postres")

	w := performRequest(t, router, http.MethodPost,
		"/api/recipe-groups/"+group.ID+"/recipes",
		AddGroupRecipeRequest{RecipeID: recipe.ID}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodDelete, "/api/recipe-groups/"+group.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodGet, "/api/recipe-groups/"+group.ID, nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The member recipe survives the group.
	w = performRequest(t, router, http.MethodGet, "/recipes", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var recipes []recipeResponse
	decodeBody(t, w, &recipes)
	assert.Len(t, recipes, 1)
}

func TestForeignGroupInvisible(t *testing.T) {
	router := setupTestRouter(t)
	ana := registerAndLogin(t, router, "ana")
	bob := registerAndLogin(t, router, "bob")

	group := createGroupHTTP(t, router, ana, "Postres")

	w := performRequest(t, router, http.MethodGet, "/api/recipe-groups/"+group.ID, nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(t, router, http.MethodGet, "/api/recipe-groups", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
