package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/service"

	"github.com/gin-gonic/gin"
)

type fakeTransferService struct {
	exportFn func(w io.Writer) error
	importFn func(src string, clearFirst bool) (*model.ImportResult, error)
	resetFn  func(backupPath string, removeFiles bool) (*model.CleanupReport, error)
}

func (f *fakeTransferService) Export(w io.Writer) error {
	if f.exportFn != nil {
		return f.exportFn(w)
	}
	return nil
}

func (f *fakeTransferService) ExportFile(dest string) error {
	return nil
}

func (f *fakeTransferService) Import(src string, clearFirst bool) (*model.ImportResult, error) {
	if f.importFn != nil {
		return f.importFn(src, clearFirst)
	}
	return &model.ImportResult{}, nil
}

func (f *fakeTransferService) Reset(backupPath string, removeFiles bool) (*model.CleanupReport, error) {
	if f.resetFn != nil {
		return f.resetFn(backupPath, removeFiles)
	}
	return &model.CleanupReport{}, nil
}

type fakeBackupService struct {
	backupFn func(dest string) error
}

func (f *fakeBackupService) Backup(dest string) error {
	if f.backupFn != nil {
		return f.backupFn(dest)
	}
	return os.WriteFile(dest, []byte("PK"), 0o644)
}

func (f *fakeBackupService) Restore(src string) (int, error) {
	return 0, nil
}

func newTransferRouter(h *TransferHandler) *gin.Engine {
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	h.now = func() time.Time { return fixed }
	r := gin.New()
	r.GET("/export", h.Export)
	r.POST("/import", h.Import)
	r.POST("/reset", h.Reset)
	r.GET("/backup", h.Backup)
	return r
}

func TestTransferExport(t *testing.T) {
	transfer := &fakeTransferService{
		exportFn: func(w io.Writer) error {
			_, err := w.Write([]byte("xlsx-bytes"))
			return err
		},
	}
	r := newTransferRouter(NewTransferHandler(transfer, &fakeBackupService{}, t.TempDir()))

	w := doReq(r, http.MethodGet, "/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "hrm_export_20240301_093000.xlsx") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestTransferExport_Error(t *testing.T) {
	transfer := &fakeTransferService{
		exportFn: func(w io.Writer) error { return service.ErrInternal },
	}
	r := newTransferRouter(NewTransferHandler(transfer, &fakeBackupService{}, t.TempDir()))

	w := doReq(r, http.MethodGet, "/export", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expect 500, got %d", w.Code)
	}
	if w.Header().Get("Content-Disposition") != "" {
		t.Fatal("failed export must not look like a download")
	}
}

func multipartBody(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestTransferImport(t *testing.T) {
	var gotSrc string
	var gotClear bool
	var gotContent []byte
	transfer := &fakeTransferService{
		importFn: func(src string, clearFirst bool) (*model.ImportResult, error) {
			gotSrc, gotClear = src, clearFirst
			gotContent, _ = os.ReadFile(src)
			return &model.ImportResult{Departments: 2, Warnings: []string{"Members row 3: skipped, missing full_name"}}, nil
		},
	}
	r := newTransferRouter(NewTransferHandler(transfer, &fakeBackupService{}, t.TempDir()))

	body, ct := multipartBody(t, "file", "data.xlsx", []byte("workbook"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import?clear_first=true", body)
	req.Header.Set("Content-Type", ct)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if !gotClear || string(gotContent) != "workbook" {
		t.Fatalf("unexpected import call: clear=%v content=%q", gotClear, gotContent)
	}
	if _, err := os.Stat(gotSrc); !os.IsNotExist(err) {
		t.Fatalf("temp upload should be removed, stat err=%v", err)
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["departments"].(float64) != 2 || len(data["warnings"].([]interface{})) != 1 {
		t.Fatalf("unexpected result: %v", data)
	}
}

func TestTransferImport_MissingFileAndBadSource(t *testing.T) {
	transfer := &fakeTransferService{
		importFn: func(src string, clearFirst bool) (*model.ImportResult, error) {
			return nil, service.ErrImportSourceMissing
		},
	}
	r := newTransferRouter(NewTransferHandler(transfer, &fakeBackupService{}, t.TempDir()))

	if w := doReq(r, http.MethodPost, "/import", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expect 400 without file, got %d", w.Code)
	}

	body, ct := multipartBody(t, "file", "data.xlsx", []byte("garbage"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", ct)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expect 400 for unreadable workbook, got %d", w.Code)
	}
}

func TestTransferReset(t *testing.T) {
	dir := t.TempDir()
	var gotBackup string
	var gotRemove bool
	transfer := &fakeTransferService{
		resetFn: func(backupPath string, removeFiles bool) (*model.CleanupReport, error) {
			gotBackup, gotRemove = backupPath, removeFiles
			return &model.CleanupReport{RemovedFiles: 1}, nil
		},
	}
	r := newTransferRouter(NewTransferHandler(transfer, &fakeBackupService{}, filepath.Join(dir, "backups")))

	w := doReq(r, http.MethodPost, "/reset", `{"backup":true,"removeFiles":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d, body=%s", w.Code, w.Body.String())
	}
	want := filepath.Join(dir, "backups", "reset_backup_20240301_093000.xlsx")
	if gotBackup != want || !gotRemove {
		t.Fatalf("unexpected reset call: backup=%q remove=%v", gotBackup, gotRemove)
	}

	doReq(r, http.MethodPost, "/reset", `{}`)
	if gotBackup != "" || gotRemove {
		t.Fatalf("expect no backup and keep files, got backup=%q remove=%v", gotBackup, gotRemove)
	}
}

func TestTransferBackup(t *testing.T) {
	r := newTransferRouter(NewTransferHandler(&fakeTransferService{}, &fakeBackupService{}, t.TempDir()))

	w := doReq(r, http.MethodGet, "/backup", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "hrm_backup_20240301_093000.zip") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if w.Body.String() != "PK" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestTransferBackup_UnsupportedDriver(t *testing.T) {
	backup := &fakeBackupService{
		backupFn: func(dest string) error { return service.ErrUnsupportedDriver },
	}
	r := newTransferRouter(NewTransferHandler(&fakeTransferService{}, backup, t.TempDir()))

	if w := doReq(r, http.MethodGet, "/backup", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expect 400, got %d", w.Code)
	}
}
