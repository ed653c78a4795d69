package handler

import (
	"net/http"

	"hrm_records_go/internal/middleware"
	"hrm_records_go/internal/service"
	"hrm_records_go/pkg/token"

	"github.com/gin-gonic/gin"
)

// Handlers 汇总全部 HTTP 处理器，由 main 组装后交给 RegisterRoutes。
type Handlers struct {
	User        *UserHandler
	Department  *DepartmentHandler
	Member      *MemberHandler
	Document    *DocumentHandler
	WorkHistory *WorkHistoryHandler
	Award       *AwardHandler
	Stats       *StatsHandler
	Transfer    *TransferHandler
}

// RegisterRoutes 挂载 /api/v1 下的全部路由。
// 读接口只需登录；写接口额外要求 ADMIN 角色。
func RegisterRoutes(r *gin.Engine, h Handlers, jwtManager *token.JWTManager, userService service.UserService) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	api := r.Group("/api/v1")
	api.POST("/auth/login", h.User.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtManager, userService))
	admin := authed.Group("")
	admin.Use(middleware.AdminAuthMiddleware())

	authed.POST("/auth/logout", h.User.Logout)
	authed.GET("/users/me", h.User.GetProfile)
	admin.GET("/users", h.User.ListOperators)
	admin.POST("/users", h.User.CreateOperator)

	authed.GET("/departments", h.Department.List)
	authed.GET("/departments/:id", h.Department.Get)
	authed.GET("/departments/:id/members", h.Department.Members)
	admin.POST("/departments", h.Department.Create)
	admin.PUT("/departments/:id", h.Department.Update)
	admin.DELETE("/departments/:id", h.Department.Delete)
	admin.POST("/departments/:id/resequence", h.Department.Resequence)

	authed.GET("/members", h.Member.Search)
	authed.GET("/members/:id", h.Member.Get)
	authed.GET("/members/:id/documents", h.Member.Documents)
	authed.GET("/members/:id/work-histories", h.Member.WorkHistories)
	authed.GET("/members/:id/awards", h.Member.Awards)
	admin.POST("/members", h.Member.Create)
	admin.PUT("/members/:id", h.Member.Update)
	admin.DELETE("/members/:id", h.Member.Delete)
	admin.POST("/members/:id/reassign", h.Member.Reassign)

	authed.GET("/documents", h.Document.List)
	authed.GET("/documents/:id", h.Document.Get)
	authed.GET("/documents/:id/file", h.Document.Download)
	admin.POST("/documents", h.Document.Create)
	admin.PUT("/documents/:id", h.Document.Update)
	admin.DELETE("/documents/:id", h.Document.Delete)

	authed.GET("/work-histories", h.WorkHistory.List)
	authed.GET("/work-histories/:id", h.WorkHistory.Get)
	admin.POST("/work-histories", h.WorkHistory.Create)
	admin.PUT("/work-histories/:id", h.WorkHistory.Update)
	admin.DELETE("/work-histories/:id", h.WorkHistory.Delete)

	awards := authed.Group("/awards")
	adminAwards := admin.Group("/awards")
	awards.GET("/years", h.Award.ListYears)
	adminAwards.POST("/years", h.Award.CreateYear)
	adminAwards.DELETE("/years/:id", h.Award.DeleteYear)
	awards.GET("/titles", h.Award.ListTitles)
	adminAwards.POST("/titles", h.Award.CreateTitle)
	adminAwards.PUT("/titles/:id", h.Award.UpdateTitle)
	adminAwards.DELETE("/titles/:id", h.Award.DeleteTitle)
	awards.GET("/authorities", h.Award.ListAuthorities)
	adminAwards.POST("/authorities", h.Award.CreateAuthority)
	adminAwards.DELETE("/authorities/:id", h.Award.DeleteAuthority)
	awards.GET("/batches", h.Award.ListBatches)
	adminAwards.POST("/batches", h.Award.CreateBatch)
	adminAwards.DELETE("/batches/:id", h.Award.DeleteBatch)
	awards.GET("/staff", h.Award.ListStaff)
	adminAwards.POST("/staff", h.Award.GrantStaff)
	adminAwards.DELETE("/staff/:id", h.Award.RevokeStaff)
	awards.GET("/departments", h.Award.ListDepartments)
	adminAwards.POST("/departments", h.Award.GrantDepartment)
	adminAwards.DELETE("/departments/:id", h.Award.RevokeDepartment)

	authed.GET("/stats", h.Stats.Dashboard)

	authed.GET("/transfer/export", h.Transfer.Export)
	admin.POST("/transfer/import", h.Transfer.Import)
	admin.POST("/transfer/reset", h.Transfer.Reset)
	admin.GET("/transfer/backup", h.Transfer.Backup)
}
