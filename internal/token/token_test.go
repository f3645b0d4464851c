package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	codec, err := NewCodec(testSecret, ttl)
	require.NoError(t, err)
	return codec
}

func TestNewCodecRejectsShortSecret(t *testing.T) {
	_, err := NewCodec("too-short", time.Hour)
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	signed, err := codec.Issue(42, "alice", "USER")
	require.NoError(t, err)

	claims, err := codec.Parse(signed)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "USER", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestProjectionsMatchIssuedClaims(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	signed, err := codec.Issue(7, "bob", "ADMIN")
	require.NoError(t, err)

	sub, err := codec.Subject(signed)
	require.NoError(t, err)
	assert.Equal(t, "7", sub)

	id, err := codec.UserID(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	username, err := codec.Username(signed)
	require.NoError(t, err)
	assert.Equal(t, "bob", username)

	role, err := codec.Role(signed)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", role)

	jti, err := codec.TokenID(signed)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	signed, err := codec.Issue(1, "alice", "USER")
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Parse(tampered)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
	assert.False(t, codec.IsValid(tampered))
}

func TestParseRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Parse(input)
		assert.ErrorIs(t, err, ErrMalformed, input)
		assert.False(t, codec.IsValid(input))
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	other, err := NewCodec("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)

	signed, err := other.Issue(1, "alice", "USER")
	require.NoError(t, err)

	_, err = codec.Parse(signed)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestExpiryBoundary(t *testing.T) {
	codec := newTestCodec(t, 24*time.Hour)

	issuedAt := time.Now()
	codec.now = func() time.Time { return issuedAt }

	signed, err := codec.Issue(1, "alice", "USER")
	require.NoError(t, err)

	cases := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"one second before expiry", issuedAt.Add(24*time.Hour - time.Second), true},
		{"exactly at expiry", issuedAt.Add(24 * time.Hour), true},
		{"one second after expiry", issuedAt.Add(24*time.Hour + time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec.now = func() time.Time { return tc.at }
			assert.Equal(t, tc.valid, codec.IsValid(signed))

			exp, err := codec.IsExpired(signed)
			require.NoError(t, err)
			assert.Equal(t, !tc.valid, exp)
		})
	}
}

func TestIsValidRejectsBlankSubjectOrTokenID(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	sign := func(claims Claims) string {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return signed
	}

	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	noSubject := sign(Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		ExpiresAt: exp,
	}})
	assert.False(t, codec.IsValid(noSubject))

	noTokenID := sign(Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: exp,
	}})
	assert.False(t, codec.IsValid(noTokenID))

	noExpiry := sign(Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:      uuid.NewString(),
		Subject: "1",
	}})
	assert.False(t, codec.IsValid(noExpiry))
}

func TestUserIDRejectsNonNumericSubject(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
	_, err := claims.UserID()
	assert.ErrorIs(t, err, ErrMalformed)
}
