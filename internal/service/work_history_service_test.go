package service

import (
	"errors"
	"testing"
)

func TestWorkHistoryService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustDepartment(t, "Admin")
	m := env.mustMember(t, dept.ID, "Nguyen Van An")

	wh, err := env.histories.Create(m.ID, WorkHistoryInput{DecisionNo: " 15/QD ", Positions: "Officer"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if wh.DecisionNo != "15/QD" || wh.MemberID != m.ID {
		t.Fatalf("unexpected record: %+v", wh)
	}

	updated, err := env.histories.Update(wh.ID, WorkHistoryInput{DecisionNo: "15/QD", Positions: "Senior officer"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.MemberID != m.ID || updated.Positions != "Senior officer" {
		t.Fatalf("update lost member link: %+v", updated)
	}

	list, err := env.histories.ListByMember(m.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByMember() = %v, %v", list, err)
	}
	rows, err := env.histories.ListAll()
	if err != nil || len(rows) != 1 || rows[0].MemberName != "Nguyen Van An" {
		t.Fatalf("ListAll() = %+v, %v", rows, err)
	}

	if err := env.histories.Delete(wh.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := env.histories.Get(wh.ID); !errors.Is(err, ErrWorkHistoryNotFound) {
		t.Fatalf("expect ErrWorkHistoryNotFound, got %v", err)
	}
}

func TestWorkHistoryService_Errors(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.histories.Create(42, WorkHistoryInput{}); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expect ErrMemberNotFound, got %v", err)
	}
	if _, err := env.histories.Create(0, WorkHistoryInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expect ErrInvalidInput, got %v", err)
	}
	if _, err := env.histories.ListByMember(42); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expect ErrMemberNotFound, got %v", err)
	}
	if _, err := env.histories.Update(7, WorkHistoryInput{}); !errors.Is(err, ErrWorkHistoryNotFound) {
		t.Fatalf("expect ErrWorkHistoryNotFound, got %v", err)
	}
	if err := env.histories.Delete(7); !errors.Is(err, ErrWorkHistoryNotFound) {
		t.Fatalf("expect ErrWorkHistoryNotFound, got %v", err)
	}

	var nilSvc workHistoryService
	if _, err := nilSvc.ListAll(); !errors.Is(err, ErrInternal) {
		t.Fatalf("expect ErrInternal without repo, got %v", err)
	}
}
