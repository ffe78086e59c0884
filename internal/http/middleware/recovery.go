package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery converts panics into the generic 500 body. The request id is the
// only detail exposed to the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			reqID := GetRequestID(c)
			log.Error().
				Str("request_id", reqID).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int64("elapsed_ms", Elapsed(c).Milliseconds()).
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Msg("unhandled error")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"detail":     "Internal server error",
				"request_id": reqID,
			})
		}()
		c.Next()
	}
}
