package repository

import (
	"errors"
	"testing"
	"time"

	"hrm_records_go/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func TestDepartmentRepository_CRUD(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewDepartmentRepository(db)

	d := &model.Department{Name: "IT", Description: "tech"}
	if err := repo.Create(d); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	seedDepartment(t, db, "HR")

	got, err := repo.FindByName("IT")
	if err != nil || got.ID != d.ID {
		t.Fatalf("FindByName() = %+v, %v", got, err)
	}

	d.Description = "engineering"
	if err := repo.Update(d); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	got, _ = repo.FindByID(d.ID)
	if got.Description != "engineering" {
		t.Fatalf("description not updated: %+v", got)
	}

	all, err := repo.FindAll()
	if err != nil || len(all) != 2 {
		t.Fatalf("FindAll() = %v, %v", all, err)
	}
	if all[0].Name != "HR" {
		t.Fatalf("expect newest first, got %s", all[0].Name)
	}

	if err := repo.Update(&model.Department{ID: 404, Name: "x"}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expect ErrRecordNotFound, got %v", err)
	}
}

func TestDepartmentRepository_DeleteCascade(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewDepartmentRepository(db)
	members := NewMemberRepository(db)

	it := seedDepartment(t, db, "IT")
	hr := seedDepartment(t, db, "HR")
	a := createMembers(t, members, it.ID, "A", "B")
	keep := createMembers(t, members, hr.ID, "C")[0]

	year := &model.AwardYear{Year: 2023}
	title := &model.AwardTitle{Name: "Flag"}
	mustCreate(t, db, year)
	mustCreate(t, db, title)
	batch := &model.AwardBatch{AwardYearID: year.ID, AwardTitleID: title.ID}
	mustCreate(t, db, batch)

	mustCreate(t, db, &model.Document{MemberID: a[0].ID, FilePath: strPtr("/u/a.pdf")})
	mustCreate(t, db, &model.Document{MemberID: a[1].ID, FilePath: strPtr("/u/b.pdf")})
	mustCreate(t, db, &model.Document{MemberID: keep.ID, FilePath: strPtr("/u/c.pdf")})
	mustCreate(t, db, &model.WorkHistory{MemberID: a[0].ID})
	mustCreate(t, db, &model.StaffAward{MemberID: a[1].ID, AwardBatchID: batch.ID})
	mustCreate(t, db, &model.DepartmentAward{DepartmentID: it.ID, AwardBatchID: batch.ID})

	paths, err := repo.DeleteCascade(it.ID)
	if err != nil {
		t.Fatalf("DeleteCascade() error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expect 2 file paths, got %v", paths)
	}

	counts := map[string]interface{}{
		"members":           &model.Member{},
		"documents":         &model.Document{},
		"work_histories":    &model.WorkHistory{},
		"staff_awards":      &model.StaffAward{},
		"department_awards": &model.DepartmentAward{},
	}
	want := map[string]int64{"members": 1, "documents": 1}
	for name, m := range counts {
		var n int64
		if err := db.Model(m).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != want[name] {
			t.Fatalf("%s count = %d, want %d", name, n, want[name])
		}
	}

	if _, err := repo.FindByID(hr.ID); err != nil {
		t.Fatalf("other department removed: %v", err)
	}
	if _, err := repo.DeleteCascade(it.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expect ErrRecordNotFound, got %v", err)
	}
}

func TestDepartmentRepository_DeleteCascade_RollbackOnFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewDepartmentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `departments` WHERE id = \\? ORDER BY .* LIMIT \\?").
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).AddRow(1, "IT", "", time.Now()))
	mock.ExpectQuery("SELECT `id` FROM `members` WHERE department_id = \\?").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("DELETE FROM `department_awards` WHERE department_id = \\?").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `members` WHERE department_id = \\?").
		WithArgs(1).
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	if _, err := repo.DeleteCascade(1); err == nil {
		t.Fatalf("expect error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
