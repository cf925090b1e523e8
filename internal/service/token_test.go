package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret", time.Hour, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.IssueAccessToken(42, "jean@example.com")
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jean@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestExpiredTokenFailsVerification(t *testing.T) {
	// A token with exp in the past must fail even though the signature is valid.
	svc := newTestTokenService()

	claims := &AccessClaims{
		UserID: 7,
		Email:  "old@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(signed)
	assert.Error(t, err)
}

func TestTamperedPayloadFailsVerification(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip characters in the payload, keeping header and signature intact.
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = svc.VerifyRefreshToken(tampered)
	assert.Error(t, err)
}

func TestWrongSecretFailsVerification(t *testing.T) {
	svc := newTestTokenService()
	other := NewTokenService("another-secret", time.Hour, 7*24*time.Hour)

	token, err := other.IssueAccessToken(1, "a@b.fr")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenRejectedByRefreshVerification(t *testing.T) {
	// An access token lacks the refresh type tag and must not pass as one.
	svc := newTestTokenService()

	token, err := svc.IssueAccessToken(42, "jean@example.com")
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenRejectedByAccessVerification(t *testing.T) {
	// A stolen refresh token must not work as a bearer access token.
	svc := newTestTokenService()

	token, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenCarriesTypeTag(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)

	claims, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestNonHMACAlgorithmRejected(t *testing.T) {
	svc := newTestTokenService()

	// alg=none style forgery: unsigned token must never verify.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &AccessClaims{UserID: 1})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(signed)
	assert.Error(t, err)
}
