package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hexanode/accounts/internal/constants"
	"github.com/hexanode/accounts/internal/service"
	ctxutil "github.com/hexanode/accounts/pkg/context"
	"github.com/hexanode/accounts/pkg/logger"
	"github.com/hexanode/accounts/pkg/tokencache"
	"go.uber.org/zap"
)

type JWTMiddleware struct {
	tokens   *service.TokenService
	denylist *tokencache.Denylist
}

func NewJWTMiddleware(tokens *service.TokenService, denylist *tokencache.Denylist) *JWTMiddleware {
	return &JWTMiddleware{
		tokens:   tokens,
		denylist: denylist,
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func (m *JWTMiddleware) reject(c *gin.Context, reason string) {
	logger.GetLogger().Warn(reason,
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
	c.Abort()
}

// RequireAuth validates the bearer access token, rejects revoked sessions
// and stores the user identity in the request context.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			m.reject(c, "Missing or malformed Authorization header")
			return
		}

		claims, err := m.tokens.VerifyAccessToken(tokenString)
		if err != nil {
			m.reject(c, "Invalid or expired access token")
			return
		}

		if claims.IssuedAt != nil {
			revoked, err := m.denylist.IsRevoked(c.Request.Context(), claims.UserID, claims.IssuedAt.Time)
			if err != nil {
				// Denylist unavailability must not lock everyone out.
				logger.GetLogger().Warn("Denylist check failed, accepting token",
					zap.Uint("user_id", claims.UserID),
					zap.Error(err))
			} else if revoked {
				m.reject(c, "Access token has been revoked")
				return
			}
		}

		c.Set(string(constants.CtxKeyUserID), claims.UserID)
		c.Set("email", claims.Email)
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

// OptionalAuth annotates the context when a valid token is present but never
// rejects the request.
func (m *JWTMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.tokens.VerifyAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(string(constants.CtxKeyUserID), claims.UserID)
		c.Set("email", claims.Email)
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}
