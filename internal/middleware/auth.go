package middleware

import (
	"errors"
	"net/http"
	"strings"

	"hrm_records_go/internal/service"
	"hrm_records_go/pkg/log"
	"hrm_records_go/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 是 JWT 认证中间件。
// 流程：提取 Bearer Token → 校验签名/有效期/类型 → 查黑名单 → 确认操作员仍存在，
// 然后把 claims 和 *model.User 注入上下文。
func AuthMiddleware(jwtManager *token.JWTManager, userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtManager == nil || userService == nil {
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		tokenString, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		// refresh token 不能用来访问接口
		claims, err := jwtManager.VerifyAccessToken(tokenString)
		if err != nil || claims == nil {
			abort(c, http.StatusUnauthorized, "Invalid or expired access token")
			return
		}

		revoked, err := userService.IsRevoked(claims)
		if err != nil {
			log.Errorf("AuthMiddleware: blacklist lookup failed: %v", err)
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if revoked {
			abort(c, http.StatusUnauthorized, "Invalid or expired access token")
			return
		}

		user, err := userService.GetProfile(claims.Username)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				abort(c, http.StatusUnauthorized, "User not found")
				return
			}
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil {
			abort(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set("claims", claims)
		c.Set("user", user)
		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

// extractBearerToken 解析 "Bearer <token>"，前缀大小写不敏感。
func extractBearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
