package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/pkg/log"
	"hrm_records_go/pkg/workbook"
)

// 工作表名称，导入导出共用。
const (
	SheetDepartments      = "Departments"
	SheetMembers          = "Members"
	SheetDocuments        = "Documents"
	SheetWorkHistories    = "WorkHistories"
	SheetAwardYears       = "AwardYears"
	SheetAwardTitles      = "AwardTitles"
	SheetAwardAuthorities = "AwardAuthorities"
	SheetAwardBatches     = "AwardBatches"
	SheetStaffAwards      = "StaffAwards"
	SheetDepartmentAwards = "DepartmentAwards"
)

var (
	departmentHeaders  = []string{"id", "name", "description", "created_at"}
	memberHeaders      = []string{"id", "department_id", "department_name", "stt", "full_name", "dob", "position", "email", "phone", "notes", "created_at"}
	documentHeaders    = []string{"id", "member_id", "member_name", "tt", "doc_type", "reference_no", "issued_on", "subject", "author", "page_count", "remarks", "file_path", "created_at"}
	workHistoryHeaders = []string{"id", "member_id", "member_name", "decision_no", "decision_date", "positions", "position_held_since", "joined_agency_on", "note", "created_at"}
	awardYearHeaders   = []string{"id", "year"}
	awardTitleHeaders  = []string{"id", "name", "scope", "level"}
	authorityHeaders   = []string{"id", "name", "level"}
	batchHeaders       = []string{"id", "award_year_id", "year", "award_title_id", "title_name", "award_authority_id", "authority_name", "decision_no", "decision_date", "note"}
	staffAwardHeaders  = []string{"id", "member_id", "award_batch_id", "note"}
	deptAwardHeaders   = []string{"id", "department_id", "award_batch_id", "note"}

	// memberDocHeaders 是人员明细表中文档区块的表头。
	memberDocHeaders = []string{"tt", "doc_type", "reference_no", "issued_on", "subject", "author", "page_count", "remarks", "file_path"}
)

// TransferService 负责整库与 Excel 工作簿之间的导出、导入和重置。
type TransferService interface {
	// Export 把全部数据写成工作簿输出到 w。
	Export(w io.Writer) error
	ExportFile(dest string) error
	// Import 读取工作簿并按依赖顺序写库。源文件缺失或无法解析时在写库前返回
	// ErrImportSourceMissing；单行失败只记为警告。
	Import(src string, clearFirst bool) (*model.ImportResult, error)
	// Reset 可选先导出备份，再清空全部业务数据；removeFiles 为 true 时清空 uploads。
	Reset(backupPath string, removeFiles bool) (*model.CleanupReport, error)
}

// TransferRepos 汇总导入导出需要的仓储。
type TransferRepos struct {
	Departments   repository.DepartmentRepository
	Members       repository.MemberRepository
	Documents     repository.DocumentRepository
	WorkHistories repository.WorkHistoryRepository
	Awards        repository.AwardRepository
	Maintenance   repository.MaintenanceRepository
}

func (r TransferRepos) complete() bool {
	return r.Departments != nil && r.Members != nil && r.Documents != nil &&
		r.WorkHistories != nil && r.Awards != nil && r.Maintenance != nil
}

type transferService struct {
	repos TransferRepos
	files FileStore
}

func NewTransferService(repos TransferRepos, files FileStore) TransferService {
	return &transferService{repos: repos, files: files}
}

func (s *transferService) Export(w io.Writer) error {
	wb, err := s.build()
	if err != nil {
		return err
	}
	_, err = wb.WriteTo(w)
	return err
}

func (s *transferService) ExportFile(dest string) error {
	if dest == "" {
		return ErrInvalidInput
	}
	wb, err := s.build()
	if err != nil {
		return err
	}
	if err := wb.SaveAs(dest); err != nil {
		return fmt.Errorf("save workbook %s: %w", dest, err)
	}
	log.Infow("workbook exported", "dest", dest)
	return nil
}

func (s *transferService) build() (*workbook.Writer, error) {
	if !s.repos.complete() {
		return nil, ErrInternal
	}
	wb, err := workbook.NewWriter()
	if err != nil {
		return nil, err
	}
	if err := s.writeSheets(wb); err != nil {
		_ = wb.Close()
		return nil, err
	}
	return wb, nil
}

func (s *transferService) writeSheets(wb *workbook.Writer) error {
	depts, err := s.repos.Departments.FindAll()
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(depts))
	for _, d := range depts {
		rows = append(rows, []interface{}{d.ID, d.Name, d.Description, d.CreatedAt})
	}
	if err := wb.AddTable(SheetDepartments, departmentHeaders, rows); err != nil {
		return err
	}

	members, err := s.repos.Members.Search(model.MemberFilter{}, repository.MemberSortIDAsc)
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(members))
	for _, m := range members {
		rows = append(rows, []interface{}{m.ID, m.DepartmentID, m.DepartmentName, m.STT, m.FullName, m.DOB,
			m.Position, m.Email, m.Phone, m.Notes, m.CreatedAt})
	}
	if err := wb.AddTable(SheetMembers, memberHeaders, rows); err != nil {
		return err
	}

	docs, err := s.repos.Documents.FindAllRows()
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []interface{}{d.ID, d.MemberID, d.MemberName, d.TT, d.DocType, d.ReferenceNo, d.IssuedOn,
			d.Subject, d.Author, d.PageCount, d.Remarks, d.FilePath, d.CreatedAt})
	}
	if err := wb.AddTable(SheetDocuments, documentHeaders, rows); err != nil {
		return err
	}

	histories, err := s.repos.WorkHistories.FindAllRows()
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(histories))
	for _, h := range histories {
		rows = append(rows, []interface{}{h.ID, h.MemberID, h.MemberName, h.DecisionNo, h.DecisionDate, h.Positions,
			h.PositionHeldSince, h.JoinedAgencyOn, h.Note, h.CreatedAt})
	}
	if err := wb.AddTable(SheetWorkHistories, workHistoryHeaders, rows); err != nil {
		return err
	}

	if err := s.writeAwardSheets(wb); err != nil {
		return err
	}

	for _, m := range members {
		if err := s.writeMemberSheet(wb, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *transferService) writeAwardSheets(wb *workbook.Writer) error {
	years, err := s.repos.Awards.FindYears()
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(years))
	for _, y := range years {
		rows = append(rows, []interface{}{y.ID, y.Year})
	}
	if err := wb.AddTable(SheetAwardYears, awardYearHeaders, rows); err != nil {
		return err
	}

	titles, err := s.repos.Awards.FindTitles()
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(titles))
	for _, t := range titles {
		rows = append(rows, []interface{}{t.ID, t.Name, t.Scope, t.Level})
	}
	if err := wb.AddTable(SheetAwardTitles, awardTitleHeaders, rows); err != nil {
		return err
	}

	authorities, err := s.repos.Awards.FindAuthorities()
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(authorities))
	for _, a := range authorities {
		rows = append(rows, []interface{}{a.ID, a.Name, a.Level})
	}
	if err := wb.AddTable(SheetAwardAuthorities, authorityHeaders, rows); err != nil {
		return err
	}

	batches, err := s.repos.Awards.FindBatchRows()
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(batches))
	for _, b := range batches {
		rows = append(rows, []interface{}{b.ID, b.AwardYearID, b.Year, b.AwardTitleID, b.TitleName,
			b.AwardAuthorityID, b.AuthorityName, b.DecisionNo, b.DecisionDate, b.Note})
	}
	if err := wb.AddTable(SheetAwardBatches, batchHeaders, rows); err != nil {
		return err
	}

	staff, err := s.repos.Awards.FindStaffAwards(0)
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(staff))
	for _, a := range staff {
		rows = append(rows, []interface{}{a.ID, a.MemberID, a.AwardBatchID, a.Note})
	}
	if err := wb.AddTable(SheetStaffAwards, staffAwardHeaders, rows); err != nil {
		return err
	}

	deptAwards, err := s.repos.Awards.FindDepartmentAwards(0)
	if err != nil {
		return err
	}
	rows = make([][]interface{}, 0, len(deptAwards))
	for _, a := range deptAwards {
		rows = append(rows, []interface{}{a.ID, a.DepartmentID, a.AwardBatchID, a.Note})
	}
	return wb.AddTable(SheetDepartmentAwards, deptAwardHeaders, rows)
}

// writeMemberSheet 写一张人员明细表：Field/Value 区块、空行、该人员的文档表（附件为绝对路径）。
func (s *transferService) writeMemberSheet(wb *workbook.Writer, m model.MemberRow) error {
	sheet, err := wb.NewSheet(workbook.MemberSheetTitle(wb, m.ID, m.FullName))
	if err != nil {
		return err
	}
	if err := sheet.Header("Field", "Value"); err != nil {
		return err
	}
	fields := [][2]interface{}{
		{"id", m.ID},
		{"stt", m.STT},
		{"full_name", m.FullName},
		{"dob", m.DOB},
		{"position", m.Position},
		{"email", m.Email},
		{"phone", m.Phone},
		{"department", m.DepartmentName},
		{"notes", m.Notes},
		{"created_at", m.CreatedAt},
	}
	for _, f := range fields {
		if err := sheet.Append(f[0], f[1]); err != nil {
			return err
		}
	}
	if err := sheet.Append(); err != nil {
		return err
	}

	docs, err := s.repos.Documents.FindByMember(m.ID, repository.DocumentSortTTAsc)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	if err := sheet.Header(memberDocHeaders...); err != nil {
		return err
	}
	for _, d := range docs {
		if err := sheet.Append(d.TT, d.DocType, d.ReferenceNo, d.IssuedOn, d.Subject, d.Author,
			d.PageCount, d.Remarks, absPath(d.FilePath)); err != nil {
			return err
		}
	}
	return nil
}

func absPath(p *string) string {
	if p == nil || *p == "" {
		return ""
	}
	abs, err := filepath.Abs(*p)
	if err != nil {
		return *p
	}
	return abs
}

func (s *transferService) Import(src string, clearFirst bool) (*model.ImportResult, error) {
	if !s.repos.complete() {
		return nil, ErrInternal
	}
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrImportSourceMissing, src)
		}
		return nil, fmt.Errorf("%w: %v", ErrImportSourceMissing, err)
	}
	book, err := workbook.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportSourceMissing, err)
	}
	defer book.Close()

	// 先把所有表读进内存，读取失败时不触碰数据库
	sheets := make(map[string][]workbook.Record)
	for _, name := range importOrder {
		recs, err := book.Records(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImportSourceMissing, err)
		}
		sheets[name] = recs
	}

	if clearFirst {
		if _, err := s.repos.Maintenance.ClearAll(); err != nil {
			return nil, err
		}
	}

	imp := &importer{repos: s.repos, files: s.files, result: &model.ImportResult{Warnings: []string{}}}
	imp.departments(sheets[SheetDepartments])
	imp.members(sheets[SheetMembers])
	imp.documents(sheets[SheetDocuments])
	imp.workHistories(sheets[SheetWorkHistories])
	imp.awardYears(sheets[SheetAwardYears])
	imp.awardTitles(sheets[SheetAwardTitles])
	imp.awardAuthorities(sheets[SheetAwardAuthorities])
	imp.awardBatches(sheets[SheetAwardBatches])
	imp.staffAwards(sheets[SheetStaffAwards])
	imp.departmentAwards(sheets[SheetDepartmentAwards])

	r := imp.result
	log.Infow("workbook imported", "src", src, "clearFirst", clearFirst,
		"departments", r.Departments, "members", r.Members, "documents", r.Documents, "warnings", len(r.Warnings))
	return r, nil
}

// importOrder 是导入的依赖顺序。
var importOrder = []string{
	SheetDepartments,
	SheetMembers,
	SheetDocuments,
	SheetWorkHistories,
	SheetAwardYears,
	SheetAwardTitles,
	SheetAwardAuthorities,
	SheetAwardBatches,
	SheetStaffAwards,
	SheetDepartmentAwards,
}

func (s *transferService) Reset(backupPath string, removeFiles bool) (*model.CleanupReport, error) {
	if !s.repos.complete() {
		return nil, ErrInternal
	}
	if backupPath != "" {
		// 备份失败则不清库
		if err := s.ExportFile(backupPath); err != nil {
			return nil, err
		}
	}
	if _, err := s.repos.Maintenance.ClearAll(); err != nil {
		return nil, err
	}
	log.Infow("database reset", "backup", backupPath, "removeFiles", removeFiles)

	report := &model.CleanupReport{Warnings: []string{}}
	if removeFiles && s.files != nil {
		removed, warnings := s.files.Clear()
		report.RemovedFiles = removed
		if warnings != nil {
			report.Warnings = warnings
		}
	}
	return report, nil
}
