package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hexanode/accounts/internal/constants"
)

// RequestID assigns every request an id, honoring one supplied by the
// caller, and echoes it in the response for correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(constants.HeaderXRequestID, id)
		}
		c.Writer.Header().Set(constants.HeaderXRequestID, id)
		c.Next()
	}
}
