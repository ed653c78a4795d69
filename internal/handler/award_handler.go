package handler

import (
	"hrm_records_go/internal/service"

	"github.com/gin-gonic/gin"
)

// AwardHandler 负责表彰字典（年度、称号、机关）、批次与授予记录。
type AwardHandler struct {
	awardService service.AwardService
}

func NewAwardHandler(awardService service.AwardService) *AwardHandler {
	return &AwardHandler{awardService: awardService}
}

type YearRequest struct {
	Year int `json:"year" binding:"required"`
}

type TitleRequest struct {
	Name  string `json:"name" binding:"required"`
	Scope string `json:"scope"`
	Level string `json:"level"`
}

type AuthorityRequest struct {
	Name  string `json:"name" binding:"required"`
	Level string `json:"level"`
}

type BatchRequest struct {
	AwardYearID      uint   `json:"awardYearId" binding:"required"`
	AwardTitleID     uint   `json:"awardTitleId" binding:"required"`
	AwardAuthorityID *uint  `json:"awardAuthorityId"`
	DecisionNo       string `json:"decisionNo"`
	DecisionDate     string `json:"decisionDate"`
	Note             string `json:"note"`
}

// GrantRequest 授予个人（memberId）或集体（departmentId）。
type GrantRequest struct {
	MemberID     uint   `json:"memberId"`
	DepartmentID uint   `json:"departmentId"`
	AwardBatchID uint   `json:"awardBatchId" binding:"required"`
	Note         string `json:"note"`
}

func (h *AwardHandler) ListYears(c *gin.Context) {
	years, err := h.awardService.ListYears()
	if err != nil {
		writeServiceError(c, "AwardHandler.ListYears", err)
		return
	}
	respondOK(c, "Award years retrieved successfully", years)
}

func (h *AwardHandler) CreateYear(c *gin.Context) {
	var req YearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	y, err := h.awardService.CreateYear(req.Year)
	if err != nil {
		writeServiceError(c, "AwardHandler.CreateYear", err)
		return
	}
	respondCreated(c, "Award year created successfully", y)
}

func (h *AwardHandler) DeleteYear(c *gin.Context) {
	h.deleteByID(c, "AwardHandler.DeleteYear", h.awardService.DeleteYear)
}

func (h *AwardHandler) ListTitles(c *gin.Context) {
	titles, err := h.awardService.ListTitles()
	if err != nil {
		writeServiceError(c, "AwardHandler.ListTitles", err)
		return
	}
	respondOK(c, "Award titles retrieved successfully", titles)
}

func (h *AwardHandler) CreateTitle(c *gin.Context) {
	var req TitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	t, err := h.awardService.CreateTitle(req.Name, req.Scope, req.Level)
	if err != nil {
		writeServiceError(c, "AwardHandler.CreateTitle", err)
		return
	}
	respondCreated(c, "Award title created successfully", t)
}

func (h *AwardHandler) UpdateTitle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req TitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	t, err := h.awardService.UpdateTitle(id, req.Name, req.Scope, req.Level)
	if err != nil {
		writeServiceError(c, "AwardHandler.UpdateTitle", err)
		return
	}
	respondOK(c, "Award title updated successfully", t)
}

func (h *AwardHandler) DeleteTitle(c *gin.Context) {
	h.deleteByID(c, "AwardHandler.DeleteTitle", h.awardService.DeleteTitle)
}

func (h *AwardHandler) ListAuthorities(c *gin.Context) {
	authorities, err := h.awardService.ListAuthorities()
	if err != nil {
		writeServiceError(c, "AwardHandler.ListAuthorities", err)
		return
	}
	respondOK(c, "Award authorities retrieved successfully", authorities)
}

func (h *AwardHandler) CreateAuthority(c *gin.Context) {
	var req AuthorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	a, err := h.awardService.CreateAuthority(req.Name, req.Level)
	if err != nil {
		writeServiceError(c, "AwardHandler.CreateAuthority", err)
		return
	}
	respondCreated(c, "Award authority created successfully", a)
}

func (h *AwardHandler) DeleteAuthority(c *gin.Context) {
	h.deleteByID(c, "AwardHandler.DeleteAuthority", h.awardService.DeleteAuthority)
}

func (h *AwardHandler) ListBatches(c *gin.Context) {
	rows, err := h.awardService.ListBatches()
	if err != nil {
		writeServiceError(c, "AwardHandler.ListBatches", err)
		return
	}
	respondOK(c, "Award batches retrieved successfully", rows)
}

func (h *AwardHandler) CreateBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	b, err := h.awardService.CreateBatch(service.BatchInput{
		AwardYearID:      req.AwardYearID,
		AwardTitleID:     req.AwardTitleID,
		AwardAuthorityID: req.AwardAuthorityID,
		DecisionNo:       req.DecisionNo,
		DecisionDate:     req.DecisionDate,
		Note:             req.Note,
	})
	if err != nil {
		writeServiceError(c, "AwardHandler.CreateBatch", err)
		return
	}
	respondCreated(c, "Award batch created successfully", b)
}

func (h *AwardHandler) DeleteBatch(c *gin.Context) {
	h.deleteByID(c, "AwardHandler.DeleteBatch", h.awardService.DeleteBatch)
}

// ListStaff 列出个人表彰，?member_id= 可选。
func (h *AwardHandler) ListStaff(c *gin.Context) {
	memberID, ok := uintQuery(c, "member_id")
	if !ok {
		return
	}
	awards, err := h.awardService.ListStaffAwards(memberID)
	if err != nil {
		writeServiceError(c, "AwardHandler.ListStaff", err)
		return
	}
	respondOK(c, "Staff awards retrieved successfully", awards)
}

func (h *AwardHandler) GrantStaff(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MemberID == 0 {
		badRequest(c, "Invalid request body")
		return
	}
	a, err := h.awardService.GrantStaff(req.MemberID, req.AwardBatchID, req.Note)
	if err != nil {
		writeServiceError(c, "AwardHandler.GrantStaff", err)
		return
	}
	respondCreated(c, "Staff award granted successfully", a)
}

func (h *AwardHandler) RevokeStaff(c *gin.Context) {
	h.deleteByID(c, "AwardHandler.RevokeStaff", h.awardService.RevokeStaff)
}

// ListDepartments 列出集体表彰，?department_id= 可选。
func (h *AwardHandler) ListDepartments(c *gin.Context) {
	deptID, ok := uintQuery(c, "department_id")
	if !ok {
		return
	}
	awards, err := h.awardService.ListDepartmentAwards(deptID)
	if err != nil {
		writeServiceError(c, "AwardHandler.ListDepartments", err)
		return
	}
	respondOK(c, "Department awards retrieved successfully", awards)
}

func (h *AwardHandler) GrantDepartment(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DepartmentID == 0 {
		badRequest(c, "Invalid request body")
		return
	}
	a, err := h.awardService.GrantDepartment(req.DepartmentID, req.AwardBatchID, req.Note)
	if err != nil {
		writeServiceError(c, "AwardHandler.GrantDepartment", err)
		return
	}
	respondCreated(c, "Department award granted successfully", a)
}

func (h *AwardHandler) RevokeDepartment(c *gin.Context) {
	h.deleteByID(c, "AwardHandler.RevokeDepartment", h.awardService.RevokeDepartment)
}

func (h *AwardHandler) deleteByID(c *gin.Context, op string, del func(uint) error) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := del(id); err != nil {
		writeServiceError(c, op, err)
		return
	}
	respondOK(c, "Deleted successfully", nil)
}
