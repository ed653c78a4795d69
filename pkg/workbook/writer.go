// Package workbook 基于 excelize 读写导入导出用的 .xlsx 工作簿。
package workbook

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	// TimeLayout 是导出时时间列的文本格式，导入时按同一格式解析。
	TimeLayout = "2006-01-02 15:04:05"

	minColWidth = 10
	maxColWidth = 50

	defaultSheet = "Sheet1"
)

// Writer 按顺序创建工作表并逐行追加数据。
type Writer struct {
	f           *excelize.File
	headerStyle int
	sheets      []*Sheet
}

// Sheet 是 Writer 中的一张表，记录当前行号和每列最长文本。
type Sheet struct {
	w      *Writer
	name   string
	row    int
	widths []int
}

func NewWriter() (*Writer, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	return &Writer{f: f, headerStyle: style}, nil
}

// HasSheet 判断名称是否已被占用（Excel 的表名不区分大小写）。
func (w *Writer) HasSheet(name string) bool {
	for _, s := range w.sheets {
		if strings.EqualFold(s.name, name) {
			return true
		}
	}
	return false
}

// NewSheet 创建工作表；第一张表复用默认的 Sheet1。
func (w *Writer) NewSheet(name string) (*Sheet, error) {
	if w.HasSheet(name) {
		return nil, fmt.Errorf("sheet %q already exists", name)
	}
	if len(w.sheets) == 0 {
		if err := w.f.SetSheetName(defaultSheet, name); err != nil {
			return nil, fmt.Errorf("rename default sheet: %w", err)
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	s := &Sheet{w: w, name: name}
	w.sheets = append(w.sheets, s)
	return s, nil
}

// AddTable 创建一张“表头 + 数据行”的表并按内容调整列宽。
func (w *Writer) AddTable(name string, headers []string, rows [][]interface{}) error {
	s, err := w.NewSheet(name)
	if err != nil {
		return err
	}
	if err := s.Header(headers...); err != nil {
		return err
	}
	for _, r := range rows {
		if err := s.Append(r...); err != nil {
			return err
		}
	}
	return s.Autosize()
}

// Append 追加一行；不带参数时追加空行。
func (s *Sheet) Append(values ...interface{}) error {
	s.row++
	if len(values) == 0 {
		return nil
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = cellValue(v)
		if n := utf8.RuneCountInString(fmt.Sprint(cells[i])); i >= len(s.widths) {
			s.widths = append(s.widths, n)
		} else if n > s.widths[i] {
			s.widths[i] = n
		}
	}
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err := s.w.f.SetSheetRow(s.name, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", s.name, s.row, err)
	}
	return nil
}

// Header 追加一行加粗的表头。
func (s *Sheet) Header(headers ...string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := s.Append(values...); err != nil {
		return err
	}
	if len(headers) == 0 {
		return nil
	}
	first, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), s.row)
	if err != nil {
		return err
	}
	return s.w.f.SetCellStyle(s.name, first, last, s.w.headerStyle)
}

// Autosize 把列宽设置为 最长文本 + 2，并限制在 [10, 50] 之间。
func (s *Sheet) Autosize() error {
	for i, n := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := s.w.f.SetColWidth(s.name, col, col, ColumnWidth(n)); err != nil {
			return fmt.Errorf("set width %s!%s: %w", s.name, col, err)
		}
	}
	return nil
}

// ColumnWidth 根据列内最长文本长度计算列宽。
func ColumnWidth(maxLen int) float64 {
	w := maxLen + 2
	if w < minColWidth {
		w = minColWidth
	}
	if w > maxColWidth {
		w = maxColWidth
	}
	return float64(w)
}

// SaveAs 把工作簿写入文件并关闭。
func (w *Writer) SaveAs(path string) error {
	defer w.f.Close()
	if len(w.sheets) > 0 {
		w.f.SetActiveSheet(0)
	}
	return w.f.SaveAs(path)
}

// WriteTo 把工作簿写入 dst 并关闭。
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	defer w.f.Close()
	return w.f.WriteTo(dst)
}

func (w *Writer) Close() error {
	return w.f.Close()
}

// SheetNames 按创建顺序返回所有表名。
func (w *Writer) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.name
	}
	return names
}

func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return ""
	case *int:
		if t == nil {
			return ""
		}
		return *t
	case *uint:
		if t == nil {
			return ""
		}
		return *t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case time.Time:
		if t.IsZero() {
			return ""
		}
		// 读取端按本地时区解析
		return t.Local().Format(TimeLayout)
	default:
		return v
	}
}
