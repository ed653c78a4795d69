package middleware

import (
	"net/http"

	"hrm_records_go/internal/model"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 只放行 ADMIN 角色，VIEWER 访问写接口返回 403。
// 必须挂在 AuthMiddleware 之后。
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			abort(c, http.StatusUnauthorized, "User not found in context")
			return
		}
		user, ok := userVal.(*model.User)
		if !ok {
			abort(c, http.StatusInternalServerError, "Failed to get user profile")
			return
		}
		if !user.IsAdmin() {
			abort(c, http.StatusForbidden, "Forbidden: read-only operator")
			return
		}
		c.Next()
	}
}
