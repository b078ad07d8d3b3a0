package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"wanderquest-backend/auth-service/handlers"
	"wanderquest-backend/auth-service/middleware"
	_ "wanderquest-backend/docs"
	"wanderquest-backend/shared/database/models"
	"wanderquest-backend/shared/mocks"
	"wanderquest-backend/shared/repository"
	utils "wanderquest-backend/shared/utils/auth"
	"wanderquest-backend/shared/utils/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	users  *mocks.MockUserRepository
	mr     *miniredis.Miniredis
}

func newTestServer(t *testing.T, maxLoginAttempts int) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)

	pool := cache.NewClientPool(mr.Addr(), "")
	t.Cleanup(func() { _ = pool.Close() })

	blacklist := cache.NewRedisTokenBlacklist(pool.Client(1))
	limiter := cache.NewLoginRateLimiter(pool.Client(2), maxLoginAttempts, time.Minute)

	users := mocks.NewMockUserRepository(ctrl)
	tokens := utils.NewTokenIssuer("routes-secret", time.Hour)

	router := NewRouter(Handlers{
		Auth:   handlers.NewAuthHandler(utils.NewCredentialVerifier(users), tokens, blacklist),
		Users:  handlers.NewUserHandler(users),
		Health: handlers.NewHealthHandler(handlers.HealthCheck{Name: "redis", Check: pool.Ping}),
		Gate:   middleware.NewAuthGate(blacklist, tokens, users),

		LoginLimit:  limiter,
		APIPrefix:   "/api/v1",
		CORSOrigins: []string{"*"},
	})

	return &testServer{router: router, users: users, mr: mr}
}

func (s *testServer) request(method, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestLoginUseLogoutFlow(t *testing.T) {
	s := newTestServer(t, 5)

	hash, err := utils.HashPassword("changethis")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "user@example.com", HashedPassword: hash, FirstName: "Ada"}

	s.users.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	s.users.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil).Times(2)

	w := s.request(http.MethodPost, "/api/v1/login/access-token", "", url.Values{
		"username": {"user@example.com"},
		"password": {"changethis"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["access_token"].(string)

	w = s.request(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Ada", decode(t, w)["first_name"])

	w = s.request(http.MethodPost, "/api/v1/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Successfully logged out", decode(t, w)["message"])

	w = s.request(http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "revoked_token", decode(t, w)["code"])

	assert.True(t, s.mr.DB(1).Exists(token))
	assert.Greater(t, s.mr.DB(1).TTL(token), 59*time.Minute)
}

func TestLoginRateLimit(t *testing.T) {
	s := newTestServer(t, 2)

	s.users.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(nil, repository.ErrNotFound).Times(2)

	form := url.Values{"username": {"user@example.com"}, "password": {"wrong-password"}}
	for i := 0; i < 2; i++ {
		w := s.request(http.MethodPost, "/api/v1/login/access-token", "", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := s.request(http.MethodPost, "/api/v1/login/access-token", "", form)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t, 5)

	w := s.request(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	s.mr.Close()
	w = s.request(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLogoutRequiresToken(t *testing.T) {
	s := newTestServer(t, 5)

	w := s.request(http.MethodPost, "/api/v1/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_token", decode(t, w)["code"])
}

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	s := newTestServer(t, 5)

	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var spec struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))
	assert.Equal(t, "/", spec.BasePath)

	for _, route := range s.router.Routes() {
		if strings.HasPrefix(route.Path, "/swagger") {
			continue
		}
		ops, ok := spec.Paths[route.Path]
		if assert.True(t, ok, "undocumented path %s", route.Path) {
			assert.Contains(t, ops, strings.ToLower(route.Method), "undocumented %s %s", route.Method, route.Path)
		}
	}
	assert.Len(t, spec.Paths, 5)
}
