package handler

import (
	"net/http"
	"time"

	"hrm_records_go/internal/service"
	"hrm_records_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// UserHandler 负责登录、注销与操作员管理。
// 是否允许访问由路由组挂载的中间件决定，而不是靠 Handler 类型区分。
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建 UserHandler。
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// LoginRequest 是登录接口请求体。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateOperatorRequest 是管理员新建操作员的请求体，Role 为 ADMIN 或 VIEWER（默认）。
type CreateOperatorRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// ProfileResponse 是个人信息接口响应结构。
type ProfileResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CanWrite  bool      `json:"canWrite"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Login 处理登录请求并返回 access/refresh token。
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: failed to bind request: %v", err)
		badRequest(c, "Invalid request body")
		return
	}

	accessToken, refreshToken, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		writeServiceError(c, "Login", err)
		return
	}

	respondOK(c, "Login successful", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// Logout 从 Authorization 头提取 token，交由 service 加入黑名单。
func (h *UserHandler) Logout(c *gin.Context) {
	token, err := extractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		log.Warnf("Logout: invalid authorization header: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    http.StatusUnauthorized,
			"error":   "Unauthorized",
			"message": "Invalid authorization header",
		})
		return
	}

	if err := h.userService.Logout(token); err != nil {
		writeServiceError(c, "Logout", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Logout successful",
	})
}

// GetProfile 返回当前登录用户信息，用户对象由 AuthMiddleware 注入。
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		return
	}

	respondOK(c, "Profile retrieved successfully", ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CanWrite:  user.IsAdmin(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

// CreateOperator 管理员新建操作员账号。
func (h *UserHandler) CreateOperator(c *gin.Context) {
	var req CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	user, err := h.userService.CreateOperator(req.Username, req.Password, req.Role)
	if err != nil {
		writeServiceError(c, "CreateOperator", err)
		return
	}
	respondCreated(c, "Operator created successfully", user)
}

// ListOperators 管理员查看全部操作员。
func (h *UserHandler) ListOperators(c *gin.Context) {
	users, err := h.userService.ListOperators()
	if err != nil {
		writeServiceError(c, "ListOperators", err)
		return
	}
	respondOK(c, "Operators retrieved successfully", users)
}
