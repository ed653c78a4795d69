package repository

import (
	"fmt"
	"strings"
)

// MemberSort 是人员列表允许的排序方式。
// 调用方只能传入枚举值，具体的 ORDER BY 子句在这里集中映射，杜绝字段注入。
type MemberSort int

const (
	MemberSortCreatedDesc MemberSort = iota
	MemberSortIDAsc
	MemberSortNameAsc
	MemberSortSTTAsc
)

var memberSortClauses = map[MemberSort]string{
	MemberSortCreatedDesc: "members.created_at DESC, members.id DESC",
	MemberSortIDAsc:       "members.id ASC",
	MemberSortNameAsc:     "LOWER(members.full_name) ASC, members.id ASC",
	MemberSortSTTAsc:      "members.stt IS NULL, members.stt ASC, members.id ASC",
}

var memberSortNames = map[string]MemberSort{
	"":             MemberSortCreatedDesc,
	"created_desc": MemberSortCreatedDesc,
	"id_asc":       MemberSortIDAsc,
	"name_asc":     MemberSortNameAsc,
	"stt_asc":      MemberSortSTTAsc,
}

// ParseMemberSort 把外部传入的文本转换为排序枚举，未知取值返回错误。
func ParseMemberSort(raw string) (MemberSort, error) {
	s, ok := memberSortNames[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return 0, fmt.Errorf("unknown member sort %q", raw)
	}
	return s, nil
}

func (s MemberSort) clause() string {
	if c, ok := memberSortClauses[s]; ok {
		return c
	}
	return memberSortClauses[MemberSortCreatedDesc]
}

// DocumentSort 是文档列表允许的排序方式。
type DocumentSort int

const (
	// DocumentSortTTAsc 按档案内序号升序，序号相同则新建在前。
	DocumentSortTTAsc DocumentSort = iota
	DocumentSortCreatedDesc
	DocumentSortIDAsc
)

var documentSortClauses = map[DocumentSort]string{
	DocumentSortTTAsc:       "documents.tt IS NULL, documents.tt ASC, documents.created_at DESC, documents.id ASC",
	DocumentSortCreatedDesc: "documents.created_at DESC, documents.id DESC",
	DocumentSortIDAsc:       "documents.id ASC",
}

var documentSortNames = map[string]DocumentSort{
	"":             DocumentSortTTAsc,
	"tt_asc":       DocumentSortTTAsc,
	"created_desc": DocumentSortCreatedDesc,
	"id_asc":       DocumentSortIDAsc,
}

// ParseDocumentSort 把外部传入的文本转换为排序枚举，未知取值返回错误。
func ParseDocumentSort(raw string) (DocumentSort, error) {
	s, ok := documentSortNames[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return 0, fmt.Errorf("unknown document sort %q", raw)
	}
	return s, nil
}

func (s DocumentSort) clause() string {
	if c, ok := documentSortClauses[s]; ok {
		return c
	}
	return documentSortClauses[DocumentSortTTAsc]
}
