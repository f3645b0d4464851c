package token

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// HS256 needs at least a 256-bit key.
const minSecretBytes = 32

const defaultTTL = 24 * time.Hour

var (
	ErrSecretTooShort   = errors.New("token: secret must be at least 32 bytes")
	ErrMalformed        = errors.New("token: malformed")
	ErrSignatureInvalid = errors.New("token: signature invalid")
)

// Claims is the full claim set carried by an access token. Claims are only
// readable after signature verification succeeds.
type Claims struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject of an already-parsed claim set.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrMalformed
	}
	return id, nil
}

// Codec issues and parses HS256 access tokens against a fixed secret.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if len(secret) < minSecretBytes {
		return nil, ErrSecretTooShort
	}
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a fresh token: sub = userID, jti = random UUID, username and
// role as auxiliary claims, exp = iat + TTL.
func (c *Codec) Issue(userID int64, username, role string) (string, error) {
	now := c.now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse verifies the signature and returns the decoded claim set. Expiry is
// deliberately not checked here; IsValid and IsExpired own that decision.
func (c *Codec) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrSignatureInvalid
	default:
		return nil, ErrMalformed
	}
}

// IsValid reports whether the token parses, carries a non-blank subject and
// token id, and has not expired. Parse failures never propagate; they become
// false.
func (c *Codec) IsValid(tokenStr string) bool {
	claims, err := c.Parse(tokenStr)
	if err != nil {
		return false
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return false
	}
	if strings.TrimSpace(claims.ID) == "" {
		return false
	}
	return !expired(claims, c.now())
}

func (c *Codec) Subject(tokenStr string) (string, error) {
	claims, err := c.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// UserID returns the numeric subject of the token.
func (c *Codec) UserID(tokenStr string) (int64, error) {
	claims, err := c.Parse(tokenStr)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}

func (c *Codec) Username(tokenStr string) (string, error) {
	claims, err := c.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

func (c *Codec) Role(tokenStr string) (string, error) {
	claims, err := c.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

func (c *Codec) TokenID(tokenStr string) (string, error) {
	claims, err := c.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}

func (c *Codec) IsExpired(tokenStr string) (bool, error) {
	claims, err := c.Parse(tokenStr)
	if err != nil {
		return false, err
	}
	return expired(claims, c.now()), nil
}

// A token with exp exactly equal to now is still accepted; rejection requires
// exp strictly before now.
func expired(claims *Claims, now time.Time) bool {
	return claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now)
}
