package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m, err := NewJWTManager("secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue("user-1", domain.RoleStudent)
	require.NoError(t, err)

	p, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{UserID: "user-1", Role: domain.RoleStudent}, p)
}

func TestJWTManager_EmbedsClaims(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m, err := NewJWTManager("secret", 0, WithClock(fixedClock(issuedAt)))
	require.NoError(t, err)

	token, err := m.Issue("user-1", domain.RoleEmployer)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["id"])
	assert.Equal(t, "employer", claims["role"])
	assert.EqualValues(t, issuedAt.Unix(), claims["iat"])
	assert.EqualValues(t, issuedAt.Add(DefaultTokenTTL).Unix(), claims["exp"])
}

func TestJWTManager_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewJWTManager("secret", time.Hour, WithClock(fixedClock(issuedAt)))
	require.NoError(t, err)
	token, err := issuer.Issue("user-1", domain.RoleStudent)
	require.NoError(t, err)

	early, _ := NewJWTManager("secret", time.Hour, WithClock(fixedClock(issuedAt.Add(59*time.Minute))))
	_, err = early.Verify(token)
	assert.NoError(t, err)

	late, _ := NewJWTManager("secret", time.Hour, WithClock(fixedClock(issuedAt.Add(61*time.Minute))))
	_, err = late.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	a, _ := NewJWTManager("secret-a", time.Hour)
	b, _ := NewJWTManager("secret-b", time.Hour)

	token, err := a.Issue("user-1", domain.RoleStudent)
	require.NoError(t, err)

	_, err = b.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_RejectsMalformedAndUnsigned(t *testing.T) {
	m, _ := NewJWTManager("secret", time.Hour)

	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":   "user-1",
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(unsigned)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_RejectsUnknownRoleAndMissingExpiry(t *testing.T) {
	m, _ := NewJWTManager("secret", time.Hour)

	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "user-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	_, err := m.Verify(badRole)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "user-1",
		"role": "student",
	}).SignedString([]byte("secret"))
	_, err = m.Verify(noExp)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	assert.Error(t, err)
}
