package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jooddae/bojbot/internal/requestid"
)

const requestIDHeader = "X-Request-ID"

// RequestID makes every request traceable: an incoming X-Request-ID is
// trusted and propagated, otherwise a fresh one is minted. The ID ends up in
// the request context (so logs pick it up) and in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)

		ctx := c.Request.Context()
		if id == "" {
			ctx = requestid.NewContext(ctx)
			id = requestid.FromContext(ctx)
		} else {
			ctx = requestid.WithRequestID(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
