package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogstack/backend/internal/config"
	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeUserStore is an in-memory UserStore for tests.
type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (s *fakeUserStore) add(user model.User) *model.User {
	if user.ID == 0 {
		user.ID = s.nextID
	}
	if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}
	s.users[user.ID] = &user
	return s.users[user.ID]
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
	return s.add(model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}), nil
}

func newTestAuthService(t *testing.T, store *fakeUserStore) *AuthService {
	t.Helper()
	svc, err := NewAuthService(store, config.AuthConfig{JWTSecret: testSecret, TokenTTL: "24h"})
	require.NoError(t, err)
	return svc
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestNewAuthServiceRejectsBadConfig(t *testing.T) {
	_, err := NewAuthService(newFakeUserStore(), config.AuthConfig{JWTSecret: testSecret, TokenTTL: "not-a-duration"})
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = NewAuthService(newFakeUserStore(), config.AuthConfig{JWTSecret: "short", TokenTTL: "24h"})
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	user, err := svc.Register(ctx, model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)

	resp, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, svc.Codec().IsValid(resp.Token))

	// Email works as the login principal too.
	resp, err = svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	store.add(model.User{Username: "alice", Email: "alice@example.com"})

	_, err := svc.Register(ctx, model.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = svc.Register(ctx, model.RegisterRequest{
		Username: "bob", Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestLoginFailures(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	store.add(model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "secret123"),
	})

	_, err := svc.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginRejectsBannedUser(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)

	store.add(model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "secret123"),
		Banned:       true,
	})

	_, err := svc.Login(context.Background(), "alice", "secret123")
	assert.ErrorIs(t, err, ErrPrincipalBanned)
}

func TestResolvePrincipal(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	user := store.add(model.User{Username: "alice", Role: model.RoleUser})

	claims := func(sub, username string) *token.Claims {
		return &token.Claims{
			Username:         username,
			RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
		}
	}

	t.Run("resolves live user", func(t *testing.T) {
		principal, err := svc.ResolvePrincipal(ctx, claims("1", "alice"))
		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.UserID)
		assert.Equal(t, "alice", principal.Username)
		assert.Equal(t, "ROLE_USER", principal.Authority)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.ResolvePrincipal(ctx, claims("999", "ghost"))
		assert.ErrorIs(t, err, ErrPrincipalNotFound)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		_, err := svc.ResolvePrincipal(ctx, claims("alice", "alice"))
		assert.ErrorIs(t, err, ErrPrincipalNotFound)
	})

	t.Run("username claim mismatch", func(t *testing.T) {
		_, err := svc.ResolvePrincipal(ctx, claims("1", "renamed"))
		assert.ErrorIs(t, err, ErrPrincipalClaimMismatch)
	})

	t.Run("blank username claim accepted", func(t *testing.T) {
		principal, err := svc.ResolvePrincipal(ctx, claims("1", ""))
		require.NoError(t, err)
		assert.Equal(t, "alice", principal.Username)
	})

	t.Run("ban takes effect immediately", func(t *testing.T) {
		banned := store.add(model.User{ID: 2, Username: "mallory", Banned: true})
		_, err := svc.ResolvePrincipal(ctx, &token.Claims{
			Username:         banned.Username,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "2"},
		})
		assert.ErrorIs(t, err, ErrPrincipalBanned)
	})
}

func TestAuthorityFor(t *testing.T) {
	assert.Equal(t, "ROLE_USER", AuthorityFor("USER"))
	assert.Equal(t, "ROLE_ADMIN", AuthorityFor("ADMIN"))
	assert.Equal(t, "ROLE_ADMIN", AuthorityFor("ROLE_ADMIN")) // already prefixed
	assert.Equal(t, "ROLE_USER", AuthorityFor(""))
	assert.Equal(t, "ROLE_USER", AuthorityFor("  USER  "))
}

func TestEnsureAdmin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)
	ctx := context.Background()

	cfg := config.AdminConfig{Username: "admin", Email: "admin@example.com", Password: "admin-secret"}
	require.NoError(t, svc.EnsureAdmin(ctx, cfg))

	admin, err := store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	// Idempotent on the second run.
	require.NoError(t, svc.EnsureAdmin(ctx, cfg))
	assert.Len(t, store.users, 1)

	// Blank config is a no-op.
	require.NoError(t, svc.EnsureAdmin(ctx, config.AdminConfig{}))
	assert.Len(t, store.users, 1)
}

func TestIssuedTokenExpiry(t *testing.T) {
	store := newFakeUserStore()
	svc, err := NewAuthService(store, config.AuthConfig{JWTSecret: testSecret, TokenTTL: "1h"})
	require.NoError(t, err)

	store.add(model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "secret123"),
	})

	resp, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	claims, err := svc.Codec().Parse(resp.Token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}
