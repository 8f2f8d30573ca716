package middlewares

import (
	"strings"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/resp"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken reads "Authorization: Bearer ..." or the x-access-token header.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(c.GetHeader("x-access-token"))
}

// AuthMiddleware checks the JWT and, when roles are given, enforces one of them.
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			resp.Unauthorized(c, "no token provided")
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)

		if !hasRole(claims.Role, requiredRoles) {
			resp.Forbidden(c, "access denied for role "+claims.Role)
			return
		}
		c.Next()
	}
}

func hasRole(role string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// RequireRoles gates a route placed behind AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := utils.CurrentRole(c)
		if !hasRole(role, roles) {
			resp.Forbidden(c, "access denied for role "+role)
			return
		}
		c.Next()
	}
}

func IsBuyer() gin.HandlerFunc { return RequireRoles(entity.RoleBuyer) }
func IsOwner() gin.HandlerFunc { return RequireRoles(entity.RoleOwner) }
