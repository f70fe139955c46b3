package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/pkg/resp"
	"github.com/kellyworkos00-droid/fairm/utils"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// AuthMiddleware checks the bearer token and, when roles are given, that the
// caller holds one of them: 401 for no session, 403 for the wrong role.
func AuthMiddleware(secret string, requiredRoles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			resp.Unauthorized(c, "Unauthorized")
			return
		}
		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "Unauthorized")
			return
		}

		c.Set(utils.CtxUserID, claims.UserID)
		c.Set(utils.CtxRole, claims.Role)

		if len(requiredRoles) > 0 && !hasRole(entity.Role(claims.Role), requiredRoles) {
			resp.Forbidden(c, "Forbidden")
			return
		}
		c.Next()
	}
}

func hasRole(role entity.Role, allowed []entity.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
