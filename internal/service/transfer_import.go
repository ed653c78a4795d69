package service

import (
	"fmt"

	"hrm_records_go/internal/model"
	"hrm_records_go/pkg/workbook"
)

// importer 逐表导入工作簿记录。任何单行问题都只追加警告，继续处理后续行。
type importer struct {
	repos  TransferRepos
	files  FileStore
	result *model.ImportResult
}

func (im *importer) warnf(sheet string, rec workbook.Record, format string, args ...interface{}) {
	msg := fmt.Sprintf("%s row %d: %s", sheet, rec.Row, fmt.Sprintf(format, args...))
	im.result.Warnings = append(im.result.Warnings, msg)
}

// optionalID 解析可选的 id 列；无法解析时记警告并按未提供处理。
func (im *importer) optionalID(sheet string, rec workbook.Record, key string) uint {
	id, ok, err := rec.Uint(key)
	if err != nil {
		im.warnf(sheet, rec, "ignore %v", err)
		return 0
	}
	if !ok {
		return 0
	}
	return id
}

// requiredRef 解析必填的外键列，缺失或非法时返回 false。
func (im *importer) requiredRef(sheet string, rec workbook.Record, key string) (uint, bool) {
	id, ok, err := rec.Uint(key)
	if err != nil {
		im.warnf(sheet, rec, "skipped, %v", err)
		return 0, false
	}
	if !ok {
		im.warnf(sheet, rec, "skipped, missing %s", key)
		return 0, false
	}
	return id, true
}

func (im *importer) departments(recs []workbook.Record) {
	for _, rec := range recs {
		name := rec.Get("name")
		if name == "" {
			im.warnf(SheetDepartments, rec, "skipped, missing name")
			continue
		}
		d := &model.Department{
			ID:          im.optionalID(SheetDepartments, rec, "id"),
			Name:        name,
			Description: rec.Get("description"),
			CreatedAt:   rec.Time("created_at"),
		}
		if err := im.repos.Departments.Create(d); err != nil {
			im.warnf(SheetDepartments, rec, "insert %q failed: %v", name, err)
			continue
		}
		im.result.Departments++
	}
}

func (im *importer) members(recs []workbook.Record) {
	for _, rec := range recs {
		name := rec.Get("full_name")
		if name == "" {
			im.warnf(SheetMembers, rec, "skipped, missing full_name")
			continue
		}
		deptID, ok := im.requiredRef(SheetMembers, rec, "department_id")
		if !ok {
			continue
		}
		m := &model.Member{
			ID:           im.optionalID(SheetMembers, rec, "id"),
			DepartmentID: deptID,
			STT:          rec.IntPtr("stt"),
			FullName:     name,
			DOB:          rec.Get("dob"),
			Position:     rec.Get("position"),
			Email:        rec.Get("email"),
			Phone:        rec.Get("phone"),
			Notes:        rec.Get("notes"),
			CreatedAt:    rec.Time("created_at"),
		}
		if m.STT != nil && *m.STT <= 0 {
			m.STT = nil
		}
		if err := im.repos.Members.Create(m); err != nil {
			im.warnf(SheetMembers, rec, "insert %q failed: %v", name, err)
			continue
		}
		im.result.Members++
	}
}

func (im *importer) documents(recs []workbook.Record) {
	for _, rec := range recs {
		memberID, ok := im.requiredRef(SheetDocuments, rec, "member_id")
		if !ok {
			continue
		}
		d := &model.Document{
			ID:          im.optionalID(SheetDocuments, rec, "id"),
			MemberID:    memberID,
			TT:          rec.IntPtr("tt"),
			DocType:     rec.Get("doc_type"),
			ReferenceNo: rec.Get("reference_no"),
			IssuedOn:    rec.Get("issued_on"),
			Subject:     rec.Get("subject"),
			Author:      rec.Get("author"),
			PageCount:   rec.Get("page_count"),
			Remarks:     rec.Get("remarks"),
			CreatedAt:   rec.Time("created_at"),
		}

		if ref := rec.Get("file_path"); ref != "" && im.files != nil {
			if found, ok := im.files.Resolve(ref); ok {
				copied, err := im.files.Copy(found)
				if err != nil {
					im.warnf(SheetDocuments, rec, "copy %s failed: %v", found, err)
				} else {
					d.FilePath = &copied
				}
			} else {
				// 找不到附件时仍然创建文档，只是不带文件
				im.warnf(SheetDocuments, rec, "file not found: %s", ref)
			}
		}

		if err := im.repos.Documents.Create(d); err != nil {
			if d.FilePath != nil {
				_ = im.files.Remove(*d.FilePath)
			}
			im.warnf(SheetDocuments, rec, "insert failed (member %d): %v", memberID, err)
			continue
		}
		im.result.Documents++
	}
}

func (im *importer) workHistories(recs []workbook.Record) {
	for _, rec := range recs {
		memberID, ok := im.requiredRef(SheetWorkHistories, rec, "member_id")
		if !ok {
			continue
		}
		wh := &model.WorkHistory{
			ID:                im.optionalID(SheetWorkHistories, rec, "id"),
			MemberID:          memberID,
			DecisionNo:        rec.Get("decision_no"),
			DecisionDate:      rec.Get("decision_date"),
			Positions:         rec.Get("positions"),
			PositionHeldSince: rec.Get("position_held_since"),
			JoinedAgencyOn:    rec.Get("joined_agency_on"),
			Note:              rec.Get("note"),
			CreatedAt:         rec.Time("created_at"),
		}
		if err := im.repos.WorkHistories.Create(wh); err != nil {
			im.warnf(SheetWorkHistories, rec, "insert failed (member %d): %v", memberID, err)
			continue
		}
		im.result.WorkHistories++
	}
}

func (im *importer) awardYears(recs []workbook.Record) {
	for _, rec := range recs {
		year, ok, err := rec.Int("year")
		if err != nil || !ok || year < 1000 || year > 9999 {
			im.warnf(SheetAwardYears, rec, "skipped, invalid year %q", rec.Get("year"))
			continue
		}
		y := &model.AwardYear{ID: im.optionalID(SheetAwardYears, rec, "id"), Year: year}
		if err := im.repos.Awards.CreateYear(y); err != nil {
			im.warnf(SheetAwardYears, rec, "insert %d failed: %v", year, err)
			continue
		}
		im.result.AwardYears++
	}
}

func (im *importer) awardTitles(recs []workbook.Record) {
	for _, rec := range recs {
		name := rec.Get("name")
		if name == "" {
			im.warnf(SheetAwardTitles, rec, "skipped, missing name")
			continue
		}
		t := &model.AwardTitle{
			ID:    im.optionalID(SheetAwardTitles, rec, "id"),
			Name:  name,
			Scope: rec.Get("scope"),
			Level: rec.Get("level"),
		}
		if err := im.repos.Awards.CreateTitle(t); err != nil {
			im.warnf(SheetAwardTitles, rec, "insert %q failed: %v", name, err)
			continue
		}
		im.result.AwardTitles++
	}
}

func (im *importer) awardAuthorities(recs []workbook.Record) {
	for _, rec := range recs {
		name := rec.Get("name")
		if name == "" {
			im.warnf(SheetAwardAuthorities, rec, "skipped, missing name")
			continue
		}
		a := &model.AwardAuthority{
			ID:    im.optionalID(SheetAwardAuthorities, rec, "id"),
			Name:  name,
			Level: rec.Get("level"),
		}
		if err := im.repos.Awards.CreateAuthority(a); err != nil {
			im.warnf(SheetAwardAuthorities, rec, "insert %q failed: %v", name, err)
			continue
		}
		im.result.AwardAuthorities++
	}
}

func (im *importer) awardBatches(recs []workbook.Record) {
	for _, rec := range recs {
		yearID, ok := im.requiredRef(SheetAwardBatches, rec, "award_year_id")
		if !ok {
			continue
		}
		titleID, ok := im.requiredRef(SheetAwardBatches, rec, "award_title_id")
		if !ok {
			continue
		}
		b := &model.AwardBatch{
			ID:           im.optionalID(SheetAwardBatches, rec, "id"),
			AwardYearID:  yearID,
			AwardTitleID: titleID,
			DecisionNo:   rec.Get("decision_no"),
			DecisionDate: rec.Get("decision_date"),
			Note:         rec.Get("note"),
		}
		if authID := im.optionalID(SheetAwardBatches, rec, "award_authority_id"); authID != 0 {
			b.AwardAuthorityID = &authID
		}
		if err := im.repos.Awards.CreateBatch(b); err != nil {
			im.warnf(SheetAwardBatches, rec, "insert failed: %v", err)
			continue
		}
		im.result.AwardBatches++
	}
}

func (im *importer) staffAwards(recs []workbook.Record) {
	for _, rec := range recs {
		memberID, ok := im.requiredRef(SheetStaffAwards, rec, "member_id")
		if !ok {
			continue
		}
		batchID, ok := im.requiredRef(SheetStaffAwards, rec, "award_batch_id")
		if !ok {
			continue
		}
		a := &model.StaffAward{
			ID:           im.optionalID(SheetStaffAwards, rec, "id"),
			MemberID:     memberID,
			AwardBatchID: batchID,
			Note:         rec.Get("note"),
		}
		if err := im.repos.Awards.CreateStaffAward(a); err != nil {
			im.warnf(SheetStaffAwards, rec, "insert failed: %v", err)
			continue
		}
		im.result.StaffAwards++
	}
}

func (im *importer) departmentAwards(recs []workbook.Record) {
	for _, rec := range recs {
		deptID, ok := im.requiredRef(SheetDepartmentAwards, rec, "department_id")
		if !ok {
			continue
		}
		batchID, ok := im.requiredRef(SheetDepartmentAwards, rec, "award_batch_id")
		if !ok {
			continue
		}
		a := &model.DepartmentAward{
			ID:           im.optionalID(SheetDepartmentAwards, rec, "id"),
			DepartmentID: deptID,
			AwardBatchID: batchID,
			Note:         rec.Get("note"),
		}
		if err := im.repos.Awards.CreateDepartmentAward(a); err != nil {
			im.warnf(SheetDepartmentAwards, rec, "insert failed: %v", err)
			continue
		}
		im.result.DepartmentAwards++
	}
}
