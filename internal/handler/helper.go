package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/service"
	"hrm_records_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// mapServiceError 把 Service 层哨兵错误转换为 HTTP 状态码和对外消息。
func mapServiceError(err error) (httpStatus int, message string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request parameters"
	case errors.Is(err, service.ErrAttachmentMissing):
		return http.StatusBadRequest, "Attachment source file not found"
	case errors.Is(err, service.ErrImportSourceMissing):
		return http.StatusBadRequest, "Import source missing or unreadable"
	case errors.Is(err, service.ErrUnsupportedDriver):
		return http.StatusBadRequest, "Operation requires the sqlite driver"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrDepartmentNotFound):
		return http.StatusNotFound, "Department not found"
	case errors.Is(err, service.ErrDepartmentAlreadyExists):
		return http.StatusConflict, "Department already exists"
	case errors.Is(err, service.ErrMemberNotFound):
		return http.StatusNotFound, "Member not found"
	case errors.Is(err, service.ErrMemberAlreadyExists):
		return http.StatusConflict, "Member already exists"
	case errors.Is(err, service.ErrDocumentNotFound):
		return http.StatusNotFound, "Document not found"
	case errors.Is(err, service.ErrDocumentAlreadyExists):
		return http.StatusConflict, "Document already exists"
	case errors.Is(err, service.ErrWorkHistoryNotFound):
		return http.StatusNotFound, "Work history not found"
	case errors.Is(err, service.ErrAwardNotFound):
		return http.StatusNotFound, "Award record not found"
	case errors.Is(err, service.ErrAwardAlreadyExists):
		return http.StatusConflict, "Award record already exists"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeServiceError 记录并输出 Service 错误。
func writeServiceError(c *gin.Context, op string, err error) {
	status, msg := mapServiceError(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %v", op, err)
	} else {
		log.Warnf("%s: %v", op, err)
	}
	c.JSON(status, gin.H{
		"code":    status,
		"message": msg,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    http.StatusBadRequest,
		"message": message,
	})
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": message,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"code":    http.StatusCreated,
		"message": message,
		"data":    data,
	})
}

// idParam 解析路径参数中的正整数 ID，失败时直接写 400。
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// uintQuery 解析可选的正整数查询参数，缺省返回 0。
func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		badRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(v), true
}

// boolQuery 解析可选布尔查询参数，缺省返回 def。
func boolQuery(c *gin.Context, name string, def bool) (bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, "Invalid "+name+" parameter")
		return false, false
	}
	return v, true
}

// extractBearerToken 从 Authorization 请求头提取 Bearer Token。
func extractBearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	if strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("empty token")
	}
	return parts[1], nil
}

// getUserFromContext 从 Gin 上下文中读取 AuthMiddleware 注入的用户对象。
// 如果上下文异常，该函数会直接写错误响应并返回 false。
func getUserFromContext(c *gin.Context) (*model.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    http.StatusUnauthorized,
			"error":   "Unauthorized",
			"message": "User not found in context",
		})
		return nil, false
	}

	user, ok := userVal.(*model.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"error":   "Internal server error",
			"message": "Failed to get user profile",
		})
		return nil, false
	}
	return user, true
}
