package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"hrm_records_go/internal/service"
	"hrm_records_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// DocumentHandler 负责文档元数据与附件上传/下载。
type DocumentHandler struct {
	docService service.DocumentService
}

func NewDocumentHandler(docService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// DocumentForm 同时支持 multipart 表单和 JSON。
// 附件二选一：multipart 的 file 字段，或服务器本地路径 sourcePath。
type DocumentForm struct {
	ID          *uint  `form:"id" json:"id"`
	MemberID    uint   `form:"memberId" json:"memberId"`
	TT          *int   `form:"tt" json:"tt"`
	DocType     string `form:"docType" json:"docType"`
	ReferenceNo string `form:"referenceNo" json:"referenceNo"`
	IssuedOn    string `form:"issuedOn" json:"issuedOn"`
	Subject     string `form:"subject" json:"subject"`
	Author      string `form:"author" json:"author"`
	PageCount   string `form:"pageCount" json:"pageCount"`
	Remarks     string `form:"remarks" json:"remarks"`
	SourcePath  string `form:"sourcePath" json:"sourcePath"`
}

func (f DocumentForm) input() service.DocumentInput {
	return service.DocumentInput{
		TT:          f.TT,
		DocType:     f.DocType,
		ReferenceNo: f.ReferenceNo,
		IssuedOn:    f.IssuedOn,
		Subject:     f.Subject,
		Author:      f.Author,
		PageCount:   f.PageCount,
		Remarks:     f.Remarks,
	}
}

// attachment 读取请求中的附件。返回的 closer 必须在 Service 调用结束后关闭。
func attachment(c *gin.Context, form DocumentForm) (*service.Attachment, func(), error) {
	fh, err := c.FormFile("file")
	if err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, func() {}, err
		}
		return &service.Attachment{Filename: fh.Filename, Reader: f}, func() { _ = f.Close() }, nil
	}
	if form.SourcePath != "" {
		return &service.Attachment{Path: form.SourcePath}, func() {}, nil
	}
	return nil, func() {}, nil
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docService.ListAll()
	if err != nil {
		writeServiceError(c, "DocumentHandler.List", err)
		return
	}
	respondOK(c, "Documents retrieved successfully", docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.docService.Get(id)
	if err != nil {
		writeServiceError(c, "DocumentHandler.Get", err)
		return
	}
	respondOK(c, "Document retrieved successfully", doc)
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var form DocumentForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	file, closeFile, err := attachment(c, form)
	if err != nil {
		badRequest(c, "Invalid attachment")
		return
	}
	defer closeFile()

	doc, err := h.docService.Create(form.ID, form.MemberID, form.input(), file)
	if err != nil {
		writeServiceError(c, "DocumentHandler.Create", err)
		return
	}
	respondCreated(c, "Document created successfully", doc)
}

// Update 重写元数据；带附件时替换原附件。
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var form DocumentForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	file, closeFile, err := attachment(c, form)
	if err != nil {
		badRequest(c, "Invalid attachment")
		return
	}
	defer closeFile()

	doc, err := h.docService.Update(id, form.input(), file)
	if err != nil {
		writeServiceError(c, "DocumentHandler.Update", err)
		return
	}
	respondOK(c, "Document updated successfully", doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	report, err := h.docService.Delete(id)
	if err != nil {
		writeServiceError(c, "DocumentHandler.Delete", err)
		return
	}
	respondOK(c, "Document deleted successfully", report)
}

// Download 下载文档附件。
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.docService.Get(id)
	if err != nil {
		writeServiceError(c, "DocumentHandler.Download", err)
		return
	}
	if doc.FilePath == nil || *doc.FilePath == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": "Document has no attachment",
		})
		return
	}
	if _, err := os.Stat(*doc.FilePath); err != nil {
		log.Warnw("attachment missing on disk", "document", id, "path", *doc.FilePath)
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": "Attachment file not found",
		})
		return
	}
	c.FileAttachment(*doc.FilePath, filepath.Base(*doc.FilePath))
}
