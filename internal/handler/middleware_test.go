package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogstack/backend/internal/config"
	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeUserStore struct {
	users map[int64]*model.User
}

func (s *fakeUserStore) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	if user, ok := s.users[userID]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) CreateUser(_ context.Context, username, email, passwordHash, role string) (*model.User, error) {
	user := &model.User{
		ID:           int64(len(s.users) + 1),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	s.users[user.ID] = user
	return user, nil
}

func newTestRig(t *testing.T) (*gin.Engine, *service.AuthService, *fakeUserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{users: make(map[int64]*model.User)}
	authService, err := service.NewAuthService(store, config.AuthConfig{JWTSecret: testSecret, TokenTTL: "24h"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(authService))

	r.GET("/open", func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": principal.Username})
	})

	protected := r.Group("", RequireAuth())
	protected.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": GetPrincipal(c).Username})
	})

	admin := r.Group("/admin", RequireAuthority(model.AuthorityAdmin))
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r, authService, store
}

func doRequest(r *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddlewarePassesThroughWithoutToken(t *testing.T) {
	r, _, _ := newTestRig(t)

	w := doRequest(r, http.MethodGet, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	r, _, _ := newTestRig(t)

	w := doRequest(r, http.MethodGet, "/open", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeError(t, w)
	assert.Equal(t, http.StatusUnauthorized, body.Status)
	assert.Equal(t, "Unauthorized", body.Error)
	assert.Equal(t, "Invalid token or user no longer exists", body.Message)
	assert.NotEmpty(t, body.Timestamp)
}

func TestAuthMiddlewareAttachesPrincipal(t *testing.T) {
	r, authService, store := newTestRig(t)
	store.users[1] = &model.User{ID: 1, Username: "alice", Role: model.RoleUser}

	tokenStr, err := authService.Codec().Issue(1, "alice", model.RoleUser)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/protected", tokenStr)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	r, authService, _ := newTestRig(t)

	tokenStr, err := authService.Codec().Issue(99, "ghost", model.RoleUser)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/open", tokenStr)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token or user no longer exists", decodeError(t, w).Message)
}

func TestAuthMiddlewareRejectsBannedUser(t *testing.T) {
	r, authService, store := newTestRig(t)
	store.users[1] = &model.User{ID: 1, Username: "alice", Role: model.RoleUser}

	tokenStr, err := authService.Codec().Issue(1, "alice", model.RoleUser)
	require.NoError(t, err)

	// Works while the account is in good standing.
	w := doRequest(r, http.MethodGet, "/protected", tokenStr)
	require.Equal(t, http.StatusOK, w.Code)

	// The same still-unexpired token stops working the moment the ban lands.
	store.users[1].Banned = true
	w = doRequest(r, http.MethodGet, "/protected", tokenStr)
	assert.Equal(t, http.StatusForbidden, w.Code)

	body := decodeError(t, w)
	assert.Equal(t, http.StatusForbidden, body.Status)
	assert.Equal(t, "Forbidden", body.Error)
	assert.Equal(t, "Your account is banned", body.Message)
}

func TestAuthMiddlewareRejectsRenamedUser(t *testing.T) {
	r, authService, store := newTestRig(t)
	store.users[1] = &model.User{ID: 1, Username: "alice", Role: model.RoleUser}

	tokenStr, err := authService.Codec().Issue(1, "alice", model.RoleUser)
	require.NoError(t, err)

	store.users[1].Username = "alice-renamed"

	w := doRequest(r, http.MethodGet, "/open", tokenStr)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{users: map[int64]*model.User{
		1: {ID: 1, Username: "alice", Role: model.RoleUser},
	}}
	// Negative TTL mints tokens that are already expired.
	authService, err := service.NewAuthService(store, config.AuthConfig{JWTSecret: testSecret, TokenTTL: "-1h"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(authService))
	r.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })

	tokenStr, err := authService.Codec().Issue(1, "alice", model.RoleUser)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/open", tokenStr)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token or user no longer exists", decodeError(t, w).Message)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	r, _, _ := newTestRig(t)

	w := doRequest(r, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthority(t *testing.T) {
	r, authService, store := newTestRig(t)
	store.users[1] = &model.User{ID: 1, Username: "alice", Role: model.RoleUser}
	store.users[2] = &model.User{ID: 2, Username: "root", Role: model.RoleAdmin}

	userToken, err := authService.Codec().Issue(1, "alice", model.RoleUser)
	require.NoError(t, err)
	adminToken, err := authService.Codec().Issue(2, "root", model.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/admin/ping", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/admin/ping", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied", decodeError(t, w).Message)

	w = doRequest(r, http.MethodGet, "/admin/ping", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLiveRoleChangeReflectsInAuthority(t *testing.T) {
	r, authService, store := newTestRig(t)
	store.users[1] = &model.User{ID: 1, Username: "alice", Role: model.RoleUser}

	tokenStr, err := authService.Codec().Issue(1, "alice", model.RoleUser)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/admin/ping", tokenStr)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Promotion is picked up by the next request without reissuing the token.
	store.users[1].Role = model.RoleAdmin
	w = doRequest(r, http.MethodGet, "/admin/ping", tokenStr)
	assert.Equal(t, http.StatusOK, w.Code)
}
