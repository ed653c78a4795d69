package workbook

import (
	"fmt"
	"strings"
)

const (
	// maxTitleLen 是生成的表名主体长度上限，给去重后缀留出空间（Excel 上限 31）。
	maxTitleLen   = 28
	excelTitleMax = 31
)

const invalidTitleChars = ":\\/ ?*[]"

// SafeSheetTitle 去掉 Excel 表名不允许的字符（以及空格），截断到 28 个字符；
// 结果为空时使用 fallback。
func SafeSheetTitle(name, fallback string) string {
	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidTitleChars, r) {
			return -1
		}
		return r
	}, name)
	s = strings.Trim(strings.TrimSpace(s), "'")
	s = truncateRunes(s, maxTitleLen)
	if s == "" {
		return truncateRunes(fallback, maxTitleLen)
	}
	return s
}

// MemberSheetTitle 生成人员明细表名 "<id>_<姓名前 20 字>"，与已有表重名时追加 "_<id>"。
func MemberSheetTitle(w *Writer, id uint, fullName string) string {
	short := truncateRunes(fullName, 20)
	title := SafeSheetTitle(fmt.Sprintf("%d_%s", id, short), fmt.Sprintf("Member_%d", id))
	if !w.HasSheet(title) {
		return title
	}

	suffix := fmt.Sprintf("_%d", id)
	title = truncateRunes(title, excelTitleMax-len(suffix)) + suffix
	for n := 2; w.HasSheet(title); n++ {
		extra := fmt.Sprintf("_%d_%d", id, n)
		title = truncateRunes(title, excelTitleMax-len(extra)) + extra
	}
	return title
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
