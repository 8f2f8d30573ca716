package middlewares

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/resp"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers panics and renders errors handlers attached with c.Error
// but did not write themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic on %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, r, debug.Stack())
				resp.Fail(c, http.StatusInternalServerError, "internal server error", nil)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			resp.Error(c, c.Errors.Last().Err)
		}
	}
}

// NotFound is the fallback for unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp.NotFound(c, "route not found")
	}
}
