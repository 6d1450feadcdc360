package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ejsll03/recetas-backend/internal/middleware"
)

func TestAuthCheck(t *testing.T) {
	router := setupTestRouter(t)

	// No cookie at all: still 200, flag down.
	w := performRequest(t, router, http.MethodGet, "/auth/check", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]bool
	decodeBody(t, w, &body)
	assert.False(t, body["isAuthenticated"])

	cookie := registerAndLogin(t, router, "ana")
	w = performRequest(t, router, http.MethodGet, "/auth/check", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.True(t, body["isAuthenticated"])
}

func TestRegisterResponse(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(t, router, http.MethodPost, "/auth/register", RegisterRequest{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "testpassword123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		User struct {
			ID       string `json:"_id"`
			Username string `json:"username"`
			Password string `json:"password_hash"`
		} `json:"user"`
	}
	decodeBody(t, w, &body)
	assert.NotEmpty(t, body.User.ID)
	assert.Equal(t, "ana", body.User.Username)
	assert.Empty(t, body.User.Password)

	// Duplicate username: "error" field carries the reason.
	w = performRequest(t, router, http.MethodPost, "/auth/register", RegisterRequest{
		Username: "ana",
		Email:    "other@example.com",
		Password: "testpassword123",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errBody map[string]string
	decodeBody(t, w, &errBody)
	assert.NotEmpty(t, errBody["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupTestRouter(t)
	registerAndLogin(t, router, "ana")

	w := performRequest(t, router, http.MethodPost, "/auth/login", LoginRequest{
		Username: "ana",
		Password: "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.NotEmpty(t, body["error"])
}

func TestLogoutClearsSession(t *testing.T) {
	router := setupTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	w := performRequest(t, router, http.MethodPost, "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// The response expires the cookie.
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)

	// The old token no longer authenticates.
	w = performRequest(t, router, http.MethodGet, "/auth/profile", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRequiresAuth(t *testing.T) {
	router := setupTestRouter(t)

	w := performRequest(t, router, http.MethodGet, "/auth/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	router := setupTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	w := performRequest(t, router, http.MethodGet, "/auth/profile", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, "ana", body.User.Username)

	w = performRequest(t, router, http.MethodPut, "/auth/profile", UpdateProfileRequest{
		Username: "ana2",
		Email:    "ana2@example.com",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	assert.Equal(t, "ana2", body.User.Username)
	assert.Equal(t, "ana2@example.com", body.User.Email)
}

func TestDeleteAccount(t *testing.T) {
	router := setupTestRouter(t)
	cookie := registerAndLogin(t, router, "ana")

	w := performRequest(t, router, http.MethodDelete, "/auth/profile", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// The session died with the account.
	w = performRequest(t, router, http.MethodGet, "/auth/profile", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The username is free again.
	w = performRequest(t, router, http.MethodPost, "/auth/register", RegisterRequest{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "testpassword123",
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}
