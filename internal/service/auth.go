package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogstack/backend/internal/config"
	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/token"
)

var (
	// ErrPrincipalNotFound covers accounts deleted after token issuance.
	ErrPrincipalNotFound = errors.New("user no longer exists")
	// ErrPrincipalBanned is surfaced as 403, distinct from unauthenticated.
	ErrPrincipalBanned = errors.New("account is banned")
	// ErrPrincipalClaimMismatch rejects tokens whose username claim no longer
	// matches the live record (user renamed after issuance).
	ErrPrincipalClaimMismatch = errors.New("token username mismatch")
)

// UserStore is the read/write surface AuthService needs from storage.
type UserStore interface {
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, username, email, passwordHash, role string) (*model.User, error)
}

type AuthService struct {
	users UserStore
	codec *token.Codec
}

func NewAuthService(users UserStore, cfg config.AuthConfig) (*AuthService, error) {
	ttl, err := time.ParseDuration(cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid TOKEN_TTL", ErrMisconfigured)
	}

	codec, err := token.NewCodec(cfg.JWTSecret, ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: SECRET_KEY must be at least 32 bytes", ErrMisconfigured)
	}

	return &AuthService{users: users, codec: codec}, nil
}

func (s *AuthService) Codec() *token.Codec {
	return s.codec
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username already exists", ErrAlreadyExists)
	} else if !db.IsNoRows(err) {
		return nil, err
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", ErrAlreadyExists)
	} else if !db.IsNoRows(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, username, email, string(hash), model.RoleUser)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates by username or email and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*model.LoginResponse, error) {
	principal := strings.TrimSpace(usernameOrEmail)

	user, err := s.users.GetUserByUsername(ctx, principal)
	if err != nil {
		if !db.IsNoRows(err) {
			return nil, err
		}
		user, err = s.users.GetUserByEmail(ctx, principal)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, ErrUnauthorized
			}
			return nil, err
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}

	if user.Banned {
		return nil, ErrPrincipalBanned
	}

	signed, err := s.codec.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:    signed,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

// ResolvePrincipal turns a validated claim set into an authorized principal.
// The live user record is re-fetched on every call so ban and role changes
// take effect immediately; exactly one storage read, no caching.
func (s *AuthService) ResolvePrincipal(ctx context.Context, claims *token.Claims) (*model.Principal, error) {
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrPrincipalNotFound
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}

	if user.Banned {
		return nil, ErrPrincipalBanned
	}

	if claims.Username != "" && claims.Username != user.Username {
		return nil, ErrPrincipalClaimMismatch
	}

	return &model.Principal{
		UserID:       user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Authority:    AuthorityFor(user.Role),
	}, nil
}

// AuthorityFor maps a stored role string to its single canonical authority.
// A blank role falls back to USER; prefixing is idempotent.
func AuthorityFor(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		role = model.RoleUser
	}
	if strings.HasPrefix(role, model.AuthorityPrefix) {
		return role
	}
	return model.AuthorityPrefix + role
}

// EnsureAdmin seeds the admin account from env config when it does not exist.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	username := strings.TrimSpace(cfg.Username)
	email := strings.TrimSpace(cfg.Email)
	if username == "" || email == "" || strings.TrimSpace(cfg.Password) == "" {
		return nil
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil
	} else if !db.IsNoRows(err) {
		return err
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !db.IsNoRows(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.users.CreateUser(ctx, username, email, string(hash), model.RoleAdmin)
	return err
}
