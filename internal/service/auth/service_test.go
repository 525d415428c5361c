package auth

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hms-api/internal/model"
	pkgauth "github.com/medicore/hms-api/pkg/auth"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/security"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
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
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func (c *fakeCache) Close() error { return nil }

type welcomeRecorder struct {
	welcomes int
}

func (r *welcomeRecorder) SendBookingConfirmation(ctx context.Context, to, doctorName, date, timeSlot string) error {
	return nil
}

func (r *welcomeRecorder) SendCancellation(ctx context.Context, to, doctorName, date, timeSlot string) error {
	return nil
}

func (r *welcomeRecorder) SendWelcome(ctx context.Context, to, name string) error {
	r.welcomes++
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *welcomeRecorder) {
	t.Helper()
	repo := newFakeUserRepo()
	mail := &welcomeRecorder{}
	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
	svc := NewService(repo, jwtSvc, security.NewBcryptHasher(4), mail, newFakeCache(), time.Hour)
	return svc, repo, mail
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Username:        "amy",
		Password:        "password123",
		ConfirmPassword: "password123",
		Name:            "Amy Pond",
		ContactInfo:     "amy@example.com",
	}
}

func TestRegisterCreatesActivePatient(t *testing.T) {
	svc, _, mail := newTestService(t)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, model.RolePatient, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.Equal(t, 1, mail.welcomes)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := registerRequest()
	req.ConfirmPassword = "different123"
	_, err := svc.Register(context.Background(), req)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestRegisterShortPassword(t *testing.T) {
	svc, repo, _ := newTestService(t)

	req := registerRequest()
	req.Password = "short"
	req.ConfirmPassword = "short"
	_, err := svc.Register(context.Background(), req)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	assert.ErrorIs(t, err, security.ErrPasswordTooShort)
	assert.Empty(t, repo.users)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestLoginIssuesTokens(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), &model.LoginRequest{Username: "amy", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := svc.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RolePatient, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "amy", Password: "wrongpassword"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "nobody", Password: "password123"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo, _ := newTestService(t)
	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	repo.users[user.ID].IsActive = false

	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "amy", Password: "password123"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), &model.LoginRequest{Username: "amy", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.AccessToken))

	_, err = svc.ValidateToken(context.Background(), tokens.AccessToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), &model.LoginRequest{Username: "amy", Password: "password123"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestEnsureAdminIdempotent(t *testing.T) {
	svc, repo, _ := newTestService(t)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "supersecret"))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "supersecret"))

	admin, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Len(t, repo.users, 1)
}
