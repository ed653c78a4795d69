package service

import (
	"strings"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/pkg/log"
)

// DocumentInput 是文档的可变元数据字段。
type DocumentInput struct {
	TT          *int
	DocType     string
	ReferenceNo string
	IssuedOn    string
	Subject     string
	Author      string
	PageCount   string
	Remarks     string
}

// DocumentService 管理人员档案中的文档及其附件副本。
type DocumentService interface {
	Create(id *uint, memberID uint, in DocumentInput, file *Attachment) (*model.Document, error)
	// Update 重写元数据；file 非空时替换附件，旧附件在新副本写入且更新成功后才删除。
	Update(id uint, in DocumentInput, file *Attachment) (*model.Document, error)
	Get(id uint) (*model.Document, error)
	ListByMember(memberID uint, sort repository.DocumentSort) ([]model.Document, error)
	ListAll() ([]model.DocumentRow, error)
	// Delete 删除文档并尽力删除附件；附件已不存在不算错误。
	Delete(id uint) (*model.CleanupReport, error)
}

type documentService struct {
	docRepo    repository.DocumentRepository
	memberRepo repository.MemberRepository
	files      FileStore
}

func NewDocumentService(docRepo repository.DocumentRepository, memberRepo repository.MemberRepository, files FileStore) DocumentService {
	return &documentService{docRepo: docRepo, memberRepo: memberRepo, files: files}
}

func (s *documentService) Create(id *uint, memberID uint, in DocumentInput, file *Attachment) (*model.Document, error) {
	if s.docRepo == nil || s.memberRepo == nil {
		return nil, ErrInternal
	}
	if memberID == 0 || (id != nil && *id == 0) {
		return nil, ErrInvalidInput
	}
	if err := s.ensureMember(memberID); err != nil {
		return nil, err
	}
	if id != nil {
		if _, err := s.docRepo.FindByID(*id); err == nil {
			return nil, ErrDocumentAlreadyExists
		} else if !isNotFound(err) {
			return nil, err
		}
	}

	doc := in.toModel()
	doc.MemberID = memberID
	if id != nil {
		doc.ID = *id
	}

	if !file.empty() {
		p, err := storeAttachment(s.files, file)
		if err != nil {
			return nil, err
		}
		doc.FilePath = &p
	}

	if err := s.docRepo.Create(doc); err != nil {
		// 行没写进去，刚复制的附件就成了孤儿文件
		if doc.FilePath != nil {
			_ = s.files.Remove(*doc.FilePath)
		}
		return nil, translate(err, nil, ErrDocumentAlreadyExists)
	}
	return doc, nil
}

func (s *documentService) Update(id uint, in DocumentInput, file *Attachment) (*model.Document, error) {
	if s.docRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	doc := in.toModel()
	doc.ID = id
	doc.MemberID = current.MemberID
	doc.CreatedAt = current.CreatedAt
	doc.FilePath = current.FilePath

	var newPath string
	if !file.empty() {
		if newPath, err = storeAttachment(s.files, file); err != nil {
			return nil, err
		}
		doc.FilePath = &newPath
	}

	if err := s.docRepo.Update(doc); err != nil {
		if newPath != "" {
			_ = s.files.Remove(newPath)
		}
		return nil, translate(err, ErrDocumentNotFound, nil)
	}

	if newPath != "" && current.FilePath != nil && *current.FilePath != "" {
		if err := s.files.Remove(*current.FilePath); err != nil {
			log.Warnw("remove replaced attachment failed", "document", id, "path", *current.FilePath, "error", err)
		}
	}
	return doc, nil
}

func (s *documentService) Get(id uint) (*model.Document, error) {
	if s.docRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}
	doc, err := s.docRepo.FindByID(id)
	if err != nil {
		return nil, translate(err, ErrDocumentNotFound, nil)
	}
	return doc, nil
}

func (s *documentService) ListByMember(memberID uint, sort repository.DocumentSort) ([]model.Document, error) {
	if s.docRepo == nil || s.memberRepo == nil {
		return nil, ErrInternal
	}
	if err := s.ensureMember(memberID); err != nil {
		return nil, err
	}
	return s.docRepo.FindByMember(memberID, sort)
}

func (s *documentService) ListAll() ([]model.DocumentRow, error) {
	if s.docRepo == nil {
		return nil, ErrInternal
	}
	return s.docRepo.FindAllRows()
}

func (s *documentService) Delete(id uint) (*model.CleanupReport, error) {
	if s.docRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}
	path, err := s.docRepo.Delete(id)
	if err != nil {
		return nil, translate(err, ErrDocumentNotFound, nil)
	}
	if path == "" {
		return &model.CleanupReport{Warnings: []string{}}, nil
	}
	return cleanupFiles(s.files, []string{path}, "delete document"), nil
}

func (s *documentService) ensureMember(id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	exists, err := s.memberRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrMemberNotFound
	}
	return nil
}

func (in DocumentInput) toModel() *model.Document {
	return &model.Document{
		TT:          in.TT,
		DocType:     strings.TrimSpace(in.DocType),
		ReferenceNo: strings.TrimSpace(in.ReferenceNo),
		IssuedOn:    strings.TrimSpace(in.IssuedOn),
		Subject:     strings.TrimSpace(in.Subject),
		Author:      strings.TrimSpace(in.Author),
		PageCount:   strings.TrimSpace(in.PageCount),
		Remarks:     in.Remarks,
	}
}
