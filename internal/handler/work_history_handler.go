package handler

import (
	"hrm_records_go/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkHistoryHandler struct {
	historyService service.WorkHistoryService
}

func NewWorkHistoryHandler(historyService service.WorkHistoryService) *WorkHistoryHandler {
	return &WorkHistoryHandler{historyService: historyService}
}

// WorkHistoryRequest 是任职记录请求体。MemberID 仅在创建时使用。
type WorkHistoryRequest struct {
	MemberID          uint   `json:"memberId"`
	DecisionNo        string `json:"decisionNo"`
	DecisionDate      string `json:"decisionDate"`
	Positions         string `json:"positions"`
	PositionHeldSince string `json:"positionHeldSince"`
	JoinedAgencyOn    string `json:"joinedAgencyOn"`
	Note              string `json:"note"`
}

func (r WorkHistoryRequest) input() service.WorkHistoryInput {
	return service.WorkHistoryInput{
		DecisionNo:        r.DecisionNo,
		DecisionDate:      r.DecisionDate,
		Positions:         r.Positions,
		PositionHeldSince: r.PositionHeldSince,
		JoinedAgencyOn:    r.JoinedAgencyOn,
		Note:              r.Note,
	}
}

func (h *WorkHistoryHandler) List(c *gin.Context) {
	rows, err := h.historyService.ListAll()
	if err != nil {
		writeServiceError(c, "WorkHistoryHandler.List", err)
		return
	}
	respondOK(c, "Work histories retrieved successfully", rows)
}

func (h *WorkHistoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	wh, err := h.historyService.Get(id)
	if err != nil {
		writeServiceError(c, "WorkHistoryHandler.Get", err)
		return
	}
	respondOK(c, "Work history retrieved successfully", wh)
}

func (h *WorkHistoryHandler) Create(c *gin.Context) {
	var req WorkHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	wh, err := h.historyService.Create(req.MemberID, req.input())
	if err != nil {
		writeServiceError(c, "WorkHistoryHandler.Create", err)
		return
	}
	respondCreated(c, "Work history created successfully", wh)
}

func (h *WorkHistoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req WorkHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	wh, err := h.historyService.Update(id, req.input())
	if err != nil {
		writeServiceError(c, "WorkHistoryHandler.Update", err)
		return
	}
	respondOK(c, "Work history updated successfully", wh)
}

func (h *WorkHistoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.historyService.Delete(id); err != nil {
		writeServiceError(c, "WorkHistoryHandler.Delete", err)
		return
	}
	respondOK(c, "Work history deleted successfully", nil)
}
