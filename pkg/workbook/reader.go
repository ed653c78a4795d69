package workbook

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Book 是一个只读打开的工作簿。
type Book struct {
	f *excelize.File
}

// Record 是一行数据：表头 → 单元格文本（已去除首尾空白）。
// Row 是该行在工作表中的行号（从 1 开始，表头为第 1 行）。
type Record struct {
	Row    int
	values map[string]string
}

func newRecord(row int, values map[string]string) Record {
	return Record{Row: row, values: values}
}

func Open(path string) (*Book, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Book{f: f}, nil
}

func (b *Book) Close() error {
	return b.f.Close()
}

func (b *Book) HasSheet(name string) bool {
	idx, err := b.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Records 读取一张“首行为表头”的表。所有单元格都为空的行会被跳过。
// 表不存在时返回 nil, nil。
func (b *Book) Records(sheet string) ([]Record, error) {
	if !b.HasSheet(sheet) {
		return nil, nil
	}
	rows, err := b.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	out := make([]Record, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" || i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v != "" {
				empty = false
			}
			values[h] = v
		}
		if empty {
			continue
		}
		out = append(out, newRecord(idx+2, values))
	}
	return out, nil
}

func (r Record) Get(key string) string {
	return r.values[key]
}

// Uint 解析正整数列。空值返回 (0, false, nil)；无法解析返回错误。
// 兼容 Excel 把整数存成 "12.0" 的情况。
func (r Record) Uint(key string) (uint, bool, error) {
	n, ok, err := r.Int(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	if n <= 0 {
		return 0, false, fmt.Errorf("%s: %d is not a positive id", key, n)
	}
	return uint(n), true, nil
}

// Int 解析整数列，规则同 Uint。
func (r Record) Int(key string) (int, bool, error) {
	v := r.values[key]
	if v == "" {
		return 0, false, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, true, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return int(f), true, nil
}

// IntPtr 返回可空整数列，解析失败时视为空。
func (r Record) IntPtr(key string) *int {
	n, ok, err := r.Int(key)
	if err != nil || !ok {
		return nil
	}
	return &n
}

// Time 按 TimeLayout 解析时间列，失败或为空时返回零值。
func (r Record) Time(key string) time.Time {
	v := r.values[key]
	if v == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(TimeLayout, v, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
