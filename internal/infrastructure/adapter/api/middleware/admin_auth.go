package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	domainerr "github.com/Alex-KostPy/roofnn/internal/domain/error"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdminAuth guards privileged routes: the caller (the companion bot) must
// present the bot token as a bearer credential. Compared in constant time.
func AdminAuth(botToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if botToken == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.ErrorResponse{
				Code:    domainerr.CodeUnavailable,
				Message: "Server is not configured",
			})
			return
		}

		authorization := c.GetHeader("Authorization")
		if !strings.HasPrefix(authorization, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.CodeAuthenticationFailed,
				Message: "Bot authorization required",
			})
			return
		}

		token := strings.TrimSpace(authorization[len("Bearer "):])
		if subtle.ConstantTimeCompare([]byte(token), []byte(botToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.CodeAuthenticationFailed,
				Message: "Invalid token",
			})
			return
		}

		c.Next()
	}
}
