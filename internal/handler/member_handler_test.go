package handler

import (
	"net/http"
	"testing"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/internal/service"

	"github.com/gin-gonic/gin"
)

func newMemberRouter(h *MemberHandler) *gin.Engine {
	r := gin.New()
	r.GET("/members", h.Search)
	r.POST("/members", h.Create)
	r.POST("/members/:id/reassign", h.Reassign)
	return r
}

func TestMemberSearch_Filters(t *testing.T) {
	var gotFilter model.MemberFilter
	var gotSort repository.MemberSort
	members := &fakeMemberService{
		searchFn: func(filter model.MemberFilter, sort repository.MemberSort) ([]model.MemberRow, error) {
			gotFilter, gotSort = filter, sort
			return []model.MemberRow{}, nil
		},
	}
	r := newMemberRouter(NewMemberHandler(members, nil, nil, nil))

	w := doReq(r, http.MethodGet, "/members?name=an&position=lead&department_id=3&has_docs=false&sort=stt_asc", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if gotFilter.NameContains != "an" || gotFilter.PositionContains != "lead" || gotFilter.DepartmentID != 3 {
		t.Fatalf("unexpected filter: %+v", gotFilter)
	}
	if gotFilter.HasDocuments == nil || *gotFilter.HasDocuments {
		t.Fatalf("expect has_docs=false, got %v", gotFilter.HasDocuments)
	}
	if gotSort != repository.MemberSortSTTAsc {
		t.Fatalf("expect stt_asc, got %v", gotSort)
	}

	// 不带 has_docs 表示不限
	doReq(r, http.MethodGet, "/members", "")
	if gotFilter.HasDocuments != nil {
		t.Fatalf("expect no has_docs filter, got %v", *gotFilter.HasDocuments)
	}
}

func TestMemberSearch_BadParams(t *testing.T) {
	r := newMemberRouter(NewMemberHandler(&fakeMemberService{}, nil, nil, nil))

	for _, path := range []string{
		"/members?department_id=x",
		"/members?has_docs=sometimes",
		"/members?sort=height",
	} {
		if w := doReq(r, http.MethodGet, path, ""); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expect 400, got %d", path, w.Code)
		}
	}
}

func TestMemberCreate(t *testing.T) {
	var got service.MemberInput
	members := &fakeMemberService{
		createFn: func(id *uint, in service.MemberInput) (*model.Member, error) {
			got = in
			return &model.Member{ID: 1, DepartmentID: in.DepartmentID, FullName: in.FullName, STT: in.STT}, nil
		},
	}
	r := newMemberRouter(NewMemberHandler(members, nil, nil, nil))

	w := doReq(r, http.MethodPost, "/members", `{"departmentId":2,"fullName":"Tran Thi B","stt":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expect 201, got %d, body=%s", w.Code, w.Body.String())
	}
	if got.DepartmentID != 2 || got.FullName != "Tran Thi B" || got.STT == nil || *got.STT != 3 {
		t.Fatalf("unexpected input: %+v", got)
	}

	if w := doReq(r, http.MethodPost, "/members", `{"fullName":"x"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expect 400 for missing department, got %d", w.Code)
	}
}

func TestMemberCreate_DepartmentMissing(t *testing.T) {
	members := &fakeMemberService{
		createFn: func(id *uint, in service.MemberInput) (*model.Member, error) {
			return nil, service.ErrDepartmentNotFound
		},
	}
	r := newMemberRouter(NewMemberHandler(members, nil, nil, nil))

	if w := doReq(r, http.MethodPost, "/members", `{"departmentId":9,"fullName":"x"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expect 404, got %d", w.Code)
	}
}

func TestMemberReassign(t *testing.T) {
	var oldID, newID uint
	members := &fakeMemberService{
		reassignFn: func(o, n uint) error {
			oldID, newID = o, n
			if n == 99 {
				return service.ErrMemberAlreadyExists
			}
			return nil
		},
	}
	r := newMemberRouter(NewMemberHandler(members, nil, nil, nil))

	if w := doReq(r, http.MethodPost, "/members/5/reassign", `{"newId":50}`); w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d", w.Code)
	}
	if oldID != 5 || newID != 50 {
		t.Fatalf("unexpected ids %d -> %d", oldID, newID)
	}
	if w := doReq(r, http.MethodPost, "/members/5/reassign", `{"newId":99}`); w.Code != http.StatusConflict {
		t.Fatalf("expect 409, got %d", w.Code)
	}
}
