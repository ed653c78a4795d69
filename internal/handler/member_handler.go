package handler

import (
	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/internal/service"

	"github.com/gin-gonic/gin"
)

// MemberHandler 负责人员检索、增删改、改号，以及人员名下的文档/任职/表彰列表。
type MemberHandler struct {
	memberService  service.MemberService
	docService     service.DocumentService
	historyService service.WorkHistoryService
	awardService   service.AwardService
}

func NewMemberHandler(memberService service.MemberService, docService service.DocumentService,
	historyService service.WorkHistoryService, awardService service.AwardService) *MemberHandler {
	return &MemberHandler{
		memberService:  memberService,
		docService:     docService,
		historyService: historyService,
		awardService:   awardService,
	}
}

// MemberRequest 是创建/更新人员的请求体。STT 留空表示由系统分配（创建时追加到末尾，更新时保持或追加）。
type MemberRequest struct {
	ID           *uint  `json:"id"`
	DepartmentID uint   `json:"departmentId" binding:"required"`
	STT          *int   `json:"stt"`
	FullName     string `json:"fullName" binding:"required"`
	DOB          string `json:"dob"`
	Position     string `json:"position"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
}

func (r MemberRequest) input() service.MemberInput {
	return service.MemberInput{
		DepartmentID: r.DepartmentID,
		STT:          r.STT,
		FullName:     r.FullName,
		DOB:          r.DOB,
		Position:     r.Position,
		Email:        r.Email,
		Phone:        r.Phone,
		Notes:        r.Notes,
	}
}

// ReassignRequest 是人员改号请求体。
type ReassignRequest struct {
	NewID uint `json:"newId" binding:"required"`
}

// Search 支持 name、position、department_id、has_docs（true/false，缺省不限）和 sort。
func (h *MemberHandler) Search(c *gin.Context) {
	deptID, ok := uintQuery(c, "department_id")
	if !ok {
		return
	}
	filter := model.MemberFilter{
		NameContains:     c.Query("name"),
		PositionContains: c.Query("position"),
		DepartmentID:     deptID,
	}
	if c.Query("has_docs") != "" {
		hasDocs, ok := boolQuery(c, "has_docs", false)
		if !ok {
			return
		}
		filter.HasDocuments = &hasDocs
	}
	sort, err := repository.ParseMemberSort(c.Query("sort"))
	if err != nil {
		badRequest(c, "Invalid sort parameter")
		return
	}

	rows, err := h.memberService.Search(filter, sort)
	if err != nil {
		writeServiceError(c, "MemberHandler.Search", err)
		return
	}
	respondOK(c, "Members retrieved successfully", rows)
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	row, err := h.memberService.Get(id)
	if err != nil {
		writeServiceError(c, "MemberHandler.Get", err)
		return
	}
	respondOK(c, "Member retrieved successfully", row)
}

func (h *MemberHandler) Create(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	m, err := h.memberService.Create(req.ID, req.input())
	if err != nil {
		writeServiceError(c, "MemberHandler.Create", err)
		return
	}
	respondCreated(c, "Member created successfully", m)
}

func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	m, err := h.memberService.Update(id, req.input())
	if err != nil {
		writeServiceError(c, "MemberHandler.Update", err)
		return
	}
	respondOK(c, "Member updated successfully", m)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	report, err := h.memberService.Delete(id)
	if err != nil {
		writeServiceError(c, "MemberHandler.Delete", err)
		return
	}
	respondOK(c, "Member deleted successfully", report)
}

// Reassign 把人员改为新的 ID，关联记录随之迁移。
func (h *MemberHandler) Reassign(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := h.memberService.ReassignID(id, req.NewID); err != nil {
		writeServiceError(c, "MemberHandler.Reassign", err)
		return
	}
	respondOK(c, "Member id reassigned successfully", gin.H{"id": req.NewID})
}

// Documents 列出人员的文档，?sort=tt_asc|created_desc|id_asc。
func (h *MemberHandler) Documents(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	sort, err := repository.ParseDocumentSort(c.Query("sort"))
	if err != nil {
		badRequest(c, "Invalid sort parameter")
		return
	}
	docs, err := h.docService.ListByMember(id, sort)
	if err != nil {
		writeServiceError(c, "MemberHandler.Documents", err)
		return
	}
	respondOK(c, "Documents retrieved successfully", docs)
}

func (h *MemberHandler) WorkHistories(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	histories, err := h.historyService.ListByMember(id)
	if err != nil {
		writeServiceError(c, "MemberHandler.WorkHistories", err)
		return
	}
	respondOK(c, "Work histories retrieved successfully", histories)
}

func (h *MemberHandler) Awards(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	awards, err := h.awardService.ListStaffAwards(id)
	if err != nil {
		writeServiceError(c, "MemberHandler.Awards", err)
		return
	}
	respondOK(c, "Awards retrieved successfully", awards)
}
