package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"hrm_records_go/internal/service"
	"hrm_records_go/pkg/log"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransferHandler 负责 Excel 导入导出、清库以及 zip 备份下载。
type TransferHandler struct {
	transferService service.TransferService
	backupService   service.BackupService
	// backupDir 存放清库前自动导出的工作簿。
	backupDir string
	now       func() time.Time
}

func NewTransferHandler(transferService service.TransferService, backupService service.BackupService, backupDir string) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		backupService:   backupService,
		backupDir:       backupDir,
		now:             time.Now,
	}
}

// ResetRequest 是清库请求体。Backup 为 true 时先导出工作簿到 backupDir。
type ResetRequest struct {
	Backup      bool `json:"backup"`
	RemoveFiles bool `json:"removeFiles"`
}

func (h *TransferHandler) stamp() string {
	return h.now().Format("20060102_150405")
}

// Export 下载整库工作簿。先写入内存，失败时仍能返回 JSON 错误。
func (h *TransferHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.transferService.Export(&buf); err != nil {
		writeServiceError(c, "TransferHandler.Export", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="hrm_export_%s.xlsx"`, h.stamp()))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Import 接收 multipart 的 file 字段，?clear_first=true 时先清空业务数据。
func (h *TransferHandler) Import(c *gin.Context) {
	clearFirst, ok := boolQuery(c, "clear_first", false)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "Missing workbook file")
		return
	}

	tmp, err := os.CreateTemp("", "hrm-import-*.xlsx")
	if err != nil {
		writeServiceError(c, "TransferHandler.Import", err)
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(fh, tmpPath); err != nil {
		writeServiceError(c, "TransferHandler.Import", err)
		return
	}

	result, err := h.transferService.Import(tmpPath, clearFirst)
	if err != nil {
		writeServiceError(c, "TransferHandler.Import", err)
		return
	}
	respondOK(c, "Workbook imported successfully", result)
}

func (h *TransferHandler) Reset(c *gin.Context) {
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	backupPath := ""
	if req.Backup {
		if err := os.MkdirAll(h.backupDir, 0o755); err != nil {
			writeServiceError(c, "TransferHandler.Reset", err)
			return
		}
		backupPath = filepath.Join(h.backupDir, fmt.Sprintf("reset_backup_%s.xlsx", h.stamp()))
	}

	report, err := h.transferService.Reset(backupPath, req.RemoveFiles)
	if err != nil {
		writeServiceError(c, "TransferHandler.Reset", err)
		return
	}
	respondOK(c, "Database reset successfully", gin.H{
		"backupPath": backupPath,
		"cleanup":    report,
	})
}

// Backup 生成 zip 备份包（数据库快照 + uploads）并下载。
func (h *TransferHandler) Backup(c *gin.Context) {
	dir, err := os.MkdirTemp("", "hrm-bundle-")
	if err != nil {
		writeServiceError(c, "TransferHandler.Backup", err)
		return
	}
	defer os.RemoveAll(dir)

	name := fmt.Sprintf("hrm_backup_%s.zip", h.stamp())
	dest := filepath.Join(dir, name)
	if err := h.backupService.Backup(dest); err != nil {
		writeServiceError(c, "TransferHandler.Backup", err)
		return
	}
	log.Infow("backup bundle served", "name", name)
	c.FileAttachment(dest, name)
}
