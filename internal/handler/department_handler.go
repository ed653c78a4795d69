package handler

import (
	"hrm_records_go/internal/repository"
	"hrm_records_go/internal/service"

	"github.com/gin-gonic/gin"
)

// DepartmentHandler 负责部门相关接口。
type DepartmentHandler struct {
	deptService   service.DepartmentService
	memberService service.MemberService
}

func NewDepartmentHandler(deptService service.DepartmentService, memberService service.MemberService) *DepartmentHandler {
	return &DepartmentHandler{deptService: deptService, memberService: memberService}
}

// DepartmentRequest 是创建/更新部门的请求体。ID 仅在创建时生效，留空由数据库分配。
type DepartmentRequest struct {
	ID          *uint  `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// List 返回全部部门，新建的在前。
func (h *DepartmentHandler) List(c *gin.Context) {
	depts, err := h.deptService.List()
	if err != nil {
		writeServiceError(c, "DepartmentHandler.List", err)
		return
	}
	respondOK(c, "Departments retrieved successfully", depts)
}

func (h *DepartmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	dept, err := h.deptService.Get(id)
	if err != nil {
		writeServiceError(c, "DepartmentHandler.Get", err)
		return
	}
	respondOK(c, "Department retrieved successfully", dept)
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	dept, err := h.deptService.Create(req.ID, req.Name, req.Description)
	if err != nil {
		writeServiceError(c, "DepartmentHandler.Create", err)
		return
	}
	respondCreated(c, "Department created successfully", dept)
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	dept, err := h.deptService.Update(id, req.Name, req.Description)
	if err != nil {
		writeServiceError(c, "DepartmentHandler.Update", err)
		return
	}
	respondOK(c, "Department updated successfully", dept)
}

// Delete 级联删除部门。?remove_files=true 时同时删除人员附件。
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	removeFiles, ok := boolQuery(c, "remove_files", false)
	if !ok {
		return
	}
	report, err := h.deptService.Delete(id, removeFiles)
	if err != nil {
		writeServiceError(c, "DepartmentHandler.Delete", err)
		return
	}
	respondOK(c, "Department deleted successfully", report)
}

// Members 列出部门内的人员，?sort= 取值见 repository.ParseMemberSort。
func (h *DepartmentHandler) Members(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	sort, err := repository.ParseMemberSort(c.Query("sort"))
	if err != nil {
		badRequest(c, "Invalid sort parameter")
		return
	}
	rows, err := h.memberService.ListByDepartment(id, sort)
	if err != nil {
		writeServiceError(c, "DepartmentHandler.Members", err)
		return
	}
	respondOK(c, "Members retrieved successfully", rows)
}

// Resequence 把部门内 STT 重排为 1..N。
func (h *DepartmentHandler) Resequence(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.memberService.Resequence(id); err != nil {
		writeServiceError(c, "DepartmentHandler.Resequence", err)
		return
	}
	respondOK(c, "Members resequenced successfully", nil)
}
