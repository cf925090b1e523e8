package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/hexanode/accounts/internal/errors"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// AccessClaims is the claim set carried by access tokens.
type AccessClaims struct {
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// RefreshClaims is the claim set carried by refresh tokens. TokenType
// prevents an access token from being replayed against the refresh endpoint.
type RefreshClaims struct {
	UserID    uint   `json:"userId"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies signed tokens. It holds no state beyond
// the signing secret; revocation lives in the denylist, not here.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccessToken mints a short-lived access token for the account.
func (s *TokenService) IssueAccessToken(userID uint, email string) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		UserID:    userID,
		Email:     email,
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IssueRefreshToken mints a longer-lived refresh token.
func (s *TokenService) IssueRefreshToken(userID uint) (string, error) {
	now := time.Now()
	claims := &RefreshClaims{
		UserID:    userID,
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secret, nil
}

// VerifyAccessToken checks signature and expiry and returns the claims.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, s.keyFunc)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.TokenType != accessTokenType {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// VerifyRefreshToken checks signature, expiry and the refresh type tag.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, s.keyFunc)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.TokenType != refreshTokenType {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
