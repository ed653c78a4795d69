package repository

import (
	"errors"
	"testing"

	"hrm_records_go/internal/model"
	"hrm_records_go/pkg/database"

	"gorm.io/gorm"
)

type awardFixture struct {
	year      *model.AwardYear
	title     *model.AwardTitle
	authority *model.AwardAuthority
	batch     *model.AwardBatch
	member    *model.Member
	dept      *model.Department
}

func seedAwards(t *testing.T, db *gorm.DB, repo AwardRepository) awardFixture {
	t.Helper()
	f := awardFixture{
		year:      &model.AwardYear{Year: 2024},
		title:     &model.AwardTitle{Name: "Labour Medal", Level: "National"},
		authority: &model.AwardAuthority{Name: "Ministry", Level: "Central"},
	}
	if err := repo.CreateYear(f.year); err != nil {
		t.Fatalf("CreateYear() error: %v", err)
	}
	if err := repo.CreateTitle(f.title); err != nil {
		t.Fatalf("CreateTitle() error: %v", err)
	}
	if err := repo.CreateAuthority(f.authority); err != nil {
		t.Fatalf("CreateAuthority() error: %v", err)
	}
	f.batch = &model.AwardBatch{
		AwardYearID:      f.year.ID,
		AwardTitleID:     f.title.ID,
		AwardAuthorityID: &f.authority.ID,
		DecisionNo:       "123/QD",
	}
	if err := repo.CreateBatch(f.batch); err != nil {
		t.Fatalf("CreateBatch() error: %v", err)
	}

	f.dept = seedDepartment(t, db, "IT")
	f.member = &model.Member{DepartmentID: f.dept.ID, FullName: "A"}
	mustCreate(t, db, f.member)

	if err := repo.CreateStaffAward(&model.StaffAward{MemberID: f.member.ID, AwardBatchID: f.batch.ID}); err != nil {
		t.Fatalf("CreateStaffAward() error: %v", err)
	}
	if err := repo.CreateDepartmentAward(&model.DepartmentAward{DepartmentID: f.dept.ID, AwardBatchID: f.batch.ID}); err != nil {
		t.Fatalf("CreateDepartmentAward() error: %v", err)
	}
	return f
}

func TestAwardRepository_BatchRowsResolveNames(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAwardRepository(db)
	f := seedAwards(t, db, repo)

	// 没有机关的批次也要出现在列表中
	noAuth := &model.AwardBatch{AwardYearID: f.year.ID, AwardTitleID: f.title.ID}
	if err := repo.CreateBatch(noAuth); err != nil {
		t.Fatalf("CreateBatch() error: %v", err)
	}

	rows, err := repo.FindBatchRows()
	if err != nil {
		t.Fatalf("FindBatchRows() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expect 2 rows, got %d", len(rows))
	}
	if rows[0].Year != 2024 || rows[0].TitleName != "Labour Medal" || rows[0].AuthorityName != "Ministry" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if rows[1].AuthorityName != "" {
		t.Fatalf("expect empty authority, got %+v", rows[1])
	}
}

func TestAwardRepository_DuplicateYear(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAwardRepository(db)

	if err := repo.CreateYear(&model.AwardYear{Year: 2020}); err != nil {
		t.Fatalf("CreateYear() error: %v", err)
	}
	if err := repo.CreateYear(&model.AwardYear{Year: 2020}); !database.IsDuplicateKey(err) {
		t.Fatalf("expect duplicate key, got %v", err)
	}
	y, err := repo.FindYearByValue(2020)
	if err != nil || y.Year != 2020 {
		t.Fatalf("FindYearByValue() = %+v, %v", y, err)
	}
}

func TestAwardRepository_DeleteYearCascades(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAwardRepository(db)
	f := seedAwards(t, db, repo)

	if err := repo.DeleteYear(f.year.ID); err != nil {
		t.Fatalf("DeleteYear() error: %v", err)
	}
	staff, _ := repo.FindStaffAwards(0)
	depts, _ := repo.FindDepartmentAwards(0)
	rows, _ := repo.FindBatchRows()
	if len(staff) != 0 || len(depts) != 0 || len(rows) != 0 {
		t.Fatalf("cascade incomplete: staff=%d dept=%d batches=%d", len(staff), len(depts), len(rows))
	}
	if err := repo.DeleteYear(f.year.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expect ErrRecordNotFound, got %v", err)
	}
}

func TestAwardRepository_DeleteAuthorityKeepsBatch(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAwardRepository(db)
	f := seedAwards(t, db, repo)

	if err := repo.DeleteAuthority(f.authority.ID); err != nil {
		t.Fatalf("DeleteAuthority() error: %v", err)
	}
	b, err := repo.FindBatchByID(f.batch.ID)
	if err != nil {
		t.Fatalf("FindBatchByID() error: %v", err)
	}
	if b.AwardAuthorityID != nil {
		t.Fatalf("authority reference not cleared: %v", *b.AwardAuthorityID)
	}
	staff, _ := repo.FindStaffAwards(f.member.ID)
	if len(staff) != 1 {
		t.Fatalf("staff award should survive, got %d", len(staff))
	}
}

func TestAwardRepository_DeleteGrants(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewAwardRepository(db)
	f := seedAwards(t, db, repo)

	staff, _ := repo.FindStaffAwards(f.member.ID)
	if err := repo.DeleteStaffAward(staff[0].ID); err != nil {
		t.Fatalf("DeleteStaffAward() error: %v", err)
	}
	if err := repo.DeleteStaffAward(staff[0].ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expect ErrRecordNotFound, got %v", err)
	}

	if err := repo.DeleteBatch(f.batch.ID); err != nil {
		t.Fatalf("DeleteBatch() error: %v", err)
	}
	depts, _ := repo.FindDepartmentAwards(f.dept.ID)
	if len(depts) != 0 {
		t.Fatalf("department awards not removed with batch")
	}
}
