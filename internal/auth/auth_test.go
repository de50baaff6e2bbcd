package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/shared/config"
	"eventhub/internal/shared/constants"
	"eventhub/internal/shared/middleware"
	"eventhub/internal/shared/token"
	"eventhub/internal/storage"
	"eventhub/internal/users"
	"eventhub/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: "test-secret", JWTExpiresIn: time.Hour, Issuer: "eventhub-test"}}
}

func newAuth(t *testing.T) (Service, users.Repository) {
	t.Helper()
	repo := users.NewRepository(storage.NewMemoryStore(), logger.Nop())
	require.NoError(t, repo.Save(context.Background(), &users.User{
		ID: 1, Name: "John Doe", Email: "john@example.com", Password: "password123", Role: constants.RoleUser,
	}))
	return NewService(repo, testConfig().JWT, logger.Nop()), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newAuth(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{Name: " Maria Clara ", Email: "Maria@Example.com", Password: "secret1", Phone: "09170000000"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.User.ID)
	assert.Equal(t, "maria@example.com", resp.User.Email)
	assert.Equal(t, "Maria Clara", resp.User.Name)
	assert.Equal(t, constants.RoleUser, resp.User.Role)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := token.Parse(testConfig().JWT, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims.UserID)

	stored, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "secret1", stored.Password)

	_, err = svc.Register(ctx, &RegisterRequest{Name: "John Again", Email: "JOHN@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &LoginRequest{Email: "john@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", resp.User.Name)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(ctx, &LoginRequest{Email: "john@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, &LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, _ := newAuth(t)

	p, err := svc.Me(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", p.Email)

	_, err = svc.Me(context.Background(), 5)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func post(r http.Handler, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	method := http.MethodPost
	if body == nil {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newAuth(t)
	r := gin.New()
	NewRouter(NewController(svc, logger.Nop()), middleware.JWTAuthWithConfig(testConfig())).SetupRoutes(r.Group("/api/v1"))

	w := post(r, "/api/v1/auth/register", gin.H{"name": "Jo", "email": "not-an-email", "password": "secret1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/api/v1/auth/register", gin.H{"name": "Joe", "email": "john@example.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(r, "/api/v1/auth/login", gin.H{"email": "john@example.com", "password": "bad"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(r, "/api/v1/auth/login", gin.H{"email": "john@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	w = post(r, "/api/v1/auth/me", nil, env.Data.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "John Doe")
	assert.NotContains(t, w.Body.String(), "password123")

	w = post(r, "/api/v1/auth/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
