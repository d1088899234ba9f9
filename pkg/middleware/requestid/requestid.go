package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the request ID end to end. Clients may supply their
// own ID; it is echoed back either way so support tickets can quote it.
const Header = "X-Request-ID"

const contextKey = "requestID"

// Middleware tags every request with an ID for log correlation.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(Header, id)

		c.Next()
	}
}

// Value returns the request ID for the current request, if any.
func Value(c *gin.Context) string {
	return c.GetString(contextKey)
}
