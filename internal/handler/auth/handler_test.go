package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hms-api/internal/email"
	"github.com/medicore/hms-api/internal/middleware"
	"github.com/medicore/hms-api/internal/model"
	authsvc "github.com/medicore/hms-api/internal/service/auth"
	pkgauth "github.com/medicore/hms-api/pkg/auth"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/security"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return apperrors.Conflict("username already taken", nil)
		}
	}
	user.ID = uuid.New()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh",
		Expiry:        time.Hour,
	})
	svc := authsvc.NewService(repo, jwtSvc, security.NewBcryptHasher(4), email.NoopService{}, nil, time.Hour)

	r := gin.New()
	v1 := r.Group("/api/v1")
	NewHandler(svc, middleware.NewAuthMiddleware(svc)).RegisterRoutes(v1)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerBody() map[string]string {
	return map[string]string{
		"username":         "amy",
		"password":         "password123",
		"confirm_password": "password123",
		"name":             "Amy Pond",
		"contact_info":     "amy@example.com",
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", registerBody(), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "amy", "password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.AccessToken)

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", nil, resp.Data.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		Data struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "amy", me.Data.Username)
	assert.Equal(t, model.RolePatient, me.Data.Role)
}

func TestRegisterValidationFailures(t *testing.T) {
	r := newTestRouter(t)

	body := registerBody()
	body["password"] = "short"
	body["confirm_password"] = "short"
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = registerBody()
	delete(body, "name")
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", registerBody(), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", registerBody(), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", registerBody(), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "amy", "password": "wrongpassword",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
