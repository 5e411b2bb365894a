package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/auth"
	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/repositories/inmemory"
	"taskboard/internal/services"
)

func newGuardedRouter(t *testing.T) (*gin.Engine, *auth.TokenManager, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := inmemory.NewUserStorage()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	userService := services.NewUserService(users, tokens, time.Hour)

	user := &models.User{Name: "Alice", Email: "a@b.c", Role: "user", CreatedAt: time.Now()}
	require.NoError(t, users.Create(context.Background(), user))

	r := gin.New()
	r.GET("/whoami", middleware.Auth(tokens, userService), func(c *gin.Context) {
		identity, ok := middleware.Identity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, identity)
	})
	return r, tokens, user
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	r, tokens, user := newGuardedRouter(t)

	token, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	w := request(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@b.c"`)
}

func TestAuth_RejectsUniformly(t *testing.T) {
	r, tokens, _ := newGuardedRouter(t)

	unknownUserToken, err := tokens.Generate(9999)
	require.NoError(t, err)

	expired, err := auth.NewTokenManager("test-secret", -time.Minute).Generate(1)
	require.NoError(t, err)

	forged, err := auth.NewTokenManager("other-secret", time.Hour).Generate(1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"bearer without token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"forged signature", "Bearer " + forged},
		{"expired token", "Bearer " + expired},
		{"unknown identity", "Bearer " + unknownUserToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			// one generic body for every cause
			assert.JSONEq(t, `{"message":"Not authorized"}`, w.Body.String())
		})
	}
}
