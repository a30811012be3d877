package middlewares

import (
	"strings"

	"sabores/access"
	"sabores/pkg/resp"
	"sabores/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware ตรวจ Bearer token แล้วใส่ userId, role และ policy ลง context
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(utils.UserIDKey, claims.UserID)
		c.Set(utils.RoleKey, claims.Role)
		c.Set(utils.PolicyKey, access.For(claims.Role))

		c.Next()
	}
}

// Require aborts with 403 unless the caller's policy grants the capability.
func Require(allowed func(access.Policy) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowed(utils.CurrentPolicy(c)) {
			resp.Forbidden(c, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}
