// Package export renders a report's answers into an .xlsx artifact.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"report-automation-be/internal/entity"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName       = "Отчет"
	timestampLayout = "20060102_150405"
	paperSizeA4     = 9
)

type ExcelExporter struct {
	dir string
	now func() time.Time
}

func NewExcelExporter(dir string) *ExcelExporter {
	return &ExcelExporter{dir: dir, now: time.Now}
}

// WithClock replaces the time source used for file names and the date line.
func (e *ExcelExporter) WithClock(now func() time.Time) *ExcelExporter {
	e.now = now
	return e
}

// Export writes one workbook and returns its path. Files are named
// "<report name>_<YYYYMMDD_HHMMSS>.xlsx"; a numeric suffix is added when
// that name is already taken.
func (e *ExcelExporter) Export(ctx context.Context, reportName string, meta entity.ReportMetadata, answers []entity.Answer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	now := e.now()
	f, err := e.render(reportName, answers, now)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path, err := e.freePath(reportName, now)
	if err != nil {
		return "", err
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

// Discard removes an artifact that will not be referenced by any report.
func (e *ExcelExporter) Discard(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (e *ExcelExporter) freePath(reportName string, now time.Time) (string, error) {
	base := fmt.Sprintf("%s_%s", sanitizeFileName(reportName), now.Format(timestampLayout))
	path := filepath.Join(e.dir, base+".xlsx")
	for i := 2; ; i++ {
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		path = filepath.Join(e.dir, fmt.Sprintf("%s_%d.xlsx", base, i))
	}
}

type styles struct {
	title, question, decision, comment, plain int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Family: "Arial", Size: 14, Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		{
			Font:      &excelize.Font{Family: "Arial", Size: 11, Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
			Border:    border,
		},
		{
			Font:      &excelize.Font{Family: "Arial", Size: 12, Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		},
		{
			Font:      &excelize.Font{Family: "Arial", Size: 10, Italic: true},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
			Border:    border,
		},
		{
			Font:      &excelize.Font{Family: "Arial", Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		},
	}

	ids := make([]int, len(defs))
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return styles{}, fmt.Errorf("create style: %w", err)
		}
		ids[i] = id
	}
	return styles{title: ids[0], question: ids[1], decision: ids[2], comment: ids[3], plain: ids[4]}, nil
}

func (e *ExcelExporter) render(reportName string, answers []entity.Answer, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			f.Close()
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheetName, "A", "A", 65); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "B", "B", 10); err != nil {
		return nil, err
	}

	if err := mergedLine(f, 1, reportName, st.title); err != nil {
		return nil, err
	}

	row := 3
	for _, a := range answers {
		q := fmt.Sprintf("A%d", row)
		d := fmt.Sprintf("B%d", row)
		if err := f.SetCellValue(sheetName, q, a.QuestionText); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, q, q, st.question); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, d, a.Decision.Label()); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, d, d, st.decision); err != nil {
			return nil, err
		}
		row++

		if a.Comment != "" {
			if err := mergedLine(f, row, a.Comment, st.comment); err != nil {
				return nil, err
			}
			row++
		}
	}

	row++
	if err := mergedLine(f, row, "Дата создания отчета: "+now.Format("02.01.2006"), st.plain); err != nil {
		return nil, err
	}
	row += 2
	if err := mergedLine(f, row, "Подпись: _________________________", st.plain); err != nil {
		return nil, err
	}

	if err := pageSetup(f); err != nil {
		return nil, err
	}

	ok = true
	return f, nil
}

func mergedLine(f *excelize.File, row int, value string, style int) error {
	a := fmt.Sprintf("A%d", row)
	b := fmt.Sprintf("B%d", row)
	if err := f.MergeCell(sheetName, a, b); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, a, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, a, b, style)
}

func pageSetup(f *excelize.File) error {
	size := paperSizeA4
	if err := f.SetPageLayout(sheetName, &excelize.PageLayoutOptions{Size: &size}); err != nil {
		return err
	}
	left, right, top, bottom := 0.2, 0.2, 0.75, 0.75
	centered := true
	return f.SetPageMargins(sheetName, &excelize.PageLayoutMarginsOptions{
		Left:         &left,
		Right:        &right,
		Top:          &top,
		Bottom:       &bottom,
		Horizontally: &centered,
	})
}

// sanitizeFileName drops characters that are not allowed in file names on
// common file systems.
func sanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return -1
		}
		if r < 32 {
			return -1
		}
		return r
	}, name)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return "report"
	}
	return cleaned
}
