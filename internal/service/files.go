package service

import (
	"errors"
	"fmt"
	"io"

	"hrm_records_go/internal/model"
	"hrm_records_go/pkg/log"
	"hrm_records_go/pkg/storage"
)

// FileStore 是 uploads 目录的抽象，由 *storage.Store 实现。
type FileStore interface {
	Copy(src string) (string, error)
	Save(filename string, r io.Reader) (string, error)
	Resolve(ref string) (string, bool)
	Remove(path string) error
	RemoveAll(paths []string) (removed int, warnings []string)
	Clear() (removed int, warnings []string)
	Dir() string
}

// Attachment 是新增/替换文档附件时的文件来源：
// Reader 非空时保存上传流（Filename 用于命名），否则复制本地路径 Path。
type Attachment struct {
	Path     string
	Filename string
	Reader   io.Reader
}

func (a *Attachment) empty() bool {
	return a == nil || (a.Reader == nil && a.Path == "")
}

func storeAttachment(store FileStore, a *Attachment) (string, error) {
	if store == nil {
		return "", ErrInternal
	}
	if a.Reader != nil {
		if a.Filename == "" {
			return "", ErrInvalidInput
		}
		return store.Save(a.Filename, a.Reader)
	}
	p, err := store.Copy(a.Path)
	if errors.Is(err, storage.ErrSourceMissing) {
		return "", fmt.Errorf("%w: %s", ErrAttachmentMissing, a.Path)
	}
	return p, err
}

// cleanupFiles 在数据行删除成功后尽力删除附件，失败只记入报告，不返回错误。
func cleanupFiles(store FileStore, paths []string, op string) *model.CleanupReport {
	report := &model.CleanupReport{Warnings: []string{}}
	if store == nil || len(paths) == 0 {
		return report
	}
	report.RemovedFiles, report.Warnings = store.RemoveAll(paths)
	if report.Warnings == nil {
		report.Warnings = []string{}
	}
	for _, w := range report.Warnings {
		log.Warnw("file cleanup failed", "op", op, "detail", w)
	}
	return report
}
