package repository

import (
	"fmt"

	"hrm_records_go/internal/model"

	"gorm.io/gorm"
)

// DocumentRepository 定义人员档案文档的持久化操作。
type DocumentRepository interface {
	Create(doc *model.Document) error
	FindByID(id uint) (*model.Document, error)
	FindByMember(memberID uint, sort DocumentSort) ([]model.Document, error)
	// FindAllRows 返回全部文档及其所属人员姓名，按人员、序号排列。
	FindAllRows() ([]model.DocumentRow, error)
	// Update 重写除 member_id 之外的全部可变字段（包括 file_path）。
	Update(doc *model.Document) error
	// Delete 删除文档并返回其附件路径（可能为空）。
	Delete(id uint) (filePath string, err error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	return r.db.Create(doc).Error
}

func (r *documentRepository) FindByID(id uint) (*model.Document, error) {
	var doc model.Document
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByMember(memberID uint, sort DocumentSort) ([]model.Document, error) {
	docs := make([]model.Document, 0)
	if err := r.db.Where("member_id = ?", memberID).Order(sort.clause()).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) FindAllRows() ([]model.DocumentRow, error) {
	rows := make([]model.DocumentRow, 0)
	err := r.db.Model(&model.Document{}).
		Select("documents.*, members.full_name AS member_name").
		Joins("JOIN members ON members.id = documents.member_id").
		Order("documents.member_id ASC, " + DocumentSortTTAsc.clause()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *documentRepository) Update(doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if doc.ID == 0 {
		return fmt.Errorf("document id is required")
	}

	tx := r.db.Model(&model.Document{}).
		Where("id = ?", doc.ID).
		Select("tt", "doc_type", "reference_no", "issued_on", "subject", "author", "page_count", "remarks", "file_path").
		Updates(doc)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *documentRepository) Delete(id uint) (string, error) {
	var path string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var doc model.Document
		if err := tx.Where("id = ?", id).First(&doc).Error; err != nil {
			return err
		}
		if doc.FilePath != nil {
			path = *doc.FilePath
		}

		res := tx.Where("id = ?", id).Delete(&model.Document{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
