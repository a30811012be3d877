package utils

import (
	"sabores/access"

	"github.com/gin-gonic/gin"
)

// keys ที่ AuthMiddleware ใส่ไว้
const (
	UserIDKey = "userId"
	RoleKey   = "role"
	PolicyKey = "policy"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(UserIDKey)
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get(RoleKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CurrentPolicy falls back to the customer policy when the middleware did not run.
func CurrentPolicy(c *gin.Context) access.Policy {
	if v, ok := c.Get(PolicyKey); ok {
		if p, ok := v.(access.Policy); ok {
			return p
		}
	}
	return access.Customer{}
}
