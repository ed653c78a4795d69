package service

import (
	"errors"
	"testing"

	"hrm_records_go/internal/model"

	"gorm.io/gorm"
)

type fakeDepartmentRepo struct {
	createFn        func(dept *model.Department) error
	findAllFn       func() ([]model.Department, error)
	findByIDFn      func(id uint) (*model.Department, error)
	findByNameFn    func(name string) (*model.Department, error)
	updateFn        func(dept *model.Department) error
	deleteCascadeFn func(id uint) ([]string, error)
}

func (f *fakeDepartmentRepo) Create(dept *model.Department) error {
	if f.createFn != nil {
		return f.createFn(dept)
	}
	return nil
}
func (f *fakeDepartmentRepo) FindAll() ([]model.Department, error) {
	if f.findAllFn != nil {
		return f.findAllFn()
	}
	return []model.Department{}, nil
}
func (f *fakeDepartmentRepo) FindByID(id uint) (*model.Department, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDepartmentRepo) FindByName(name string) (*model.Department, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(name)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDepartmentRepo) Update(dept *model.Department) error {
	if f.updateFn != nil {
		return f.updateFn(dept)
	}
	return nil
}
func (f *fakeDepartmentRepo) DeleteCascade(id uint) ([]string, error) {
	if f.deleteCascadeFn != nil {
		return f.deleteCascadeFn(id)
	}
	return nil, nil
}

func TestDepartmentService_Create_TrimsAndValidates(t *testing.T) {
	var created *model.Department
	repo := &fakeDepartmentRepo{
		createFn: func(dept *model.Department) error {
			dept.ID = 7
			created = dept
			return nil
		},
	}
	svc := NewDepartmentService(repo, nil)

	if _, err := svc.Create(nil, "   ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expect ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.Create(uintPtr(0), "HR", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expect ErrInvalidInput for zero id, got %v", err)
	}

	d, err := svc.Create(nil, "  Finance ", " money ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if d.ID != 7 || created.Name != "Finance" || created.Description != "money" {
		t.Fatalf("unexpected department: %+v", created)
	}
}

func TestDepartmentService_Create_NameTaken(t *testing.T) {
	repo := &fakeDepartmentRepo{
		findByNameFn: func(name string) (*model.Department, error) {
			return &model.Department{ID: 1, Name: name}, nil
		},
		createFn: func(dept *model.Department) error {
			t.Fatalf("Create must not be called on conflict")
			return nil
		},
	}
	svc := NewDepartmentService(repo, nil)

	if _, err := svc.Create(nil, "HR", ""); !errors.Is(err, ErrDepartmentAlreadyExists) {
		t.Fatalf("expect ErrDepartmentAlreadyExists, got %v", err)
	}
}

func TestDepartmentService_Create_IDTaken(t *testing.T) {
	repo := &fakeDepartmentRepo{
		findByIDFn: func(id uint) (*model.Department, error) {
			return &model.Department{ID: id, Name: "Other"}, nil
		},
	}
	svc := NewDepartmentService(repo, nil)

	if _, err := svc.Create(uintPtr(3), "HR", ""); !errors.Is(err, ErrDepartmentAlreadyExists) {
		t.Fatalf("expect ErrDepartmentAlreadyExists, got %v", err)
	}
}

func TestDepartmentService_Update_RenameToOwnNameAllowed(t *testing.T) {
	repo := &fakeDepartmentRepo{
		findByIDFn: func(id uint) (*model.Department, error) {
			return &model.Department{ID: id, Name: "HR"}, nil
		},
		findByNameFn: func(name string) (*model.Department, error) {
			return &model.Department{ID: 5, Name: name}, nil
		},
	}
	svc := NewDepartmentService(repo, nil)

	d, err := svc.Update(5, "HR", "people")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if d.Description != "people" {
		t.Fatalf("description not updated: %+v", d)
	}

	if _, err := svc.Update(6, "HR", ""); !errors.Is(err, ErrDepartmentAlreadyExists) {
		t.Fatalf("expect ErrDepartmentAlreadyExists renaming onto another department, got %v", err)
	}
}

func TestDepartmentService_Delete_NotFound(t *testing.T) {
	repo := &fakeDepartmentRepo{
		deleteCascadeFn: func(id uint) ([]string, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewDepartmentService(repo, nil)

	if _, err := svc.Delete(9, true); !errors.Is(err, ErrDepartmentNotFound) {
		t.Fatalf("expect ErrDepartmentNotFound, got %v", err)
	}
}

func TestDepartmentService_NilRepo(t *testing.T) {
	svc := NewDepartmentService(nil, nil)
	if _, err := svc.List(); !errors.Is(err, ErrInternal) {
		t.Fatalf("expect ErrInternal, got %v", err)
	}
}

func TestDepartmentService_DeleteCascadeRemovesFiles(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustDepartment(t, "Archive")
	m := env.mustMember(t, dept.ID, "Nguyen Van A")
	doc, err := env.documents.Create(nil, m.ID, DocumentInput{DocType: "CV"}, &Attachment{Path: env.writeSource(t, "cv.pdf", "cv")})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	if _, err := env.histories.Create(m.ID, WorkHistoryInput{DecisionNo: "QD-1"}); err != nil {
		t.Fatalf("create work history: %v", err)
	}

	report, err := env.depts.Delete(dept.ID, true)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if report.RemovedFiles != 1 || len(report.Warnings) != 0 {
		t.Fatalf("unexpected cleanup report: %+v", report)
	}
	if fileExists(*doc.FilePath) {
		t.Fatalf("attachment should be removed")
	}
	if _, err := env.members.Get(m.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("member should be cascaded, got %v", err)
	}
	if _, err := env.documents.Get(doc.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("document should be cascaded, got %v", err)
	}
	histories, err := env.histories.ListAll()
	if err != nil || len(histories) != 0 {
		t.Fatalf("work histories should be cascaded, got %d err=%v", len(histories), err)
	}
}

func TestDepartmentService_DeleteKeepsFilesWhenAsked(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustDepartment(t, "Archive")
	m := env.mustMember(t, dept.ID, "Tran B")
	doc, err := env.documents.Create(nil, m.ID, DocumentInput{}, &Attachment{Path: env.writeSource(t, "a.txt", "a")})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}

	report, err := env.depts.Delete(dept.ID, false)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if report.RemovedFiles != 0 || !fileExists(*doc.FilePath) {
		t.Fatalf("files must be kept when removeFiles=false, report=%+v", report)
	}
}
