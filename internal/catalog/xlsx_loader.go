// Package catalog reads questionnaire templates from the forms folder.
//
// A template is an .xlsx workbook whose active sheet has a header row followed
// by one question per row: A question text, B standard reference, C quality
// reference, D documents reference. Rows with an empty question are skipped.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"report-automation-be/internal/entity"

	"github.com/xuri/excelize/v2"
)

const templateExt = ".xlsx"

var (
	ErrFormNotFound = errors.New("catalog: form not found")
	ErrNoQuestions  = errors.New("catalog: template has no questions")
)

type Loader struct {
	formsDir string
}

func NewLoader(formsDir string) *Loader {
	return &Loader{formsDir: formsDir}
}

// ListForms returns the base names of every template in the forms folder, sorted.
// A missing folder yields an empty list.
func (l *Loader) ListForms() ([]string, error) {
	entries, err := os.ReadDir(l.formsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read forms dir: %w", err)
	}

	forms := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		// Excel lock files look like "~$form.xlsx".
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), templateExt) {
			forms = append(forms, strings.TrimSuffix(name, filepath.Ext(name)))
		}
	}
	sort.Strings(forms)
	return forms, nil
}

func (l *Loader) Path(formName string) string {
	return filepath.Join(l.formsDir, formName+templateExt)
}

// Load reads the questions of one form.
func (l *Loader) Load(formName string) ([]entity.Question, error) {
	if formName == "" || strings.ContainsAny(formName, `/\`) {
		return nil, ErrFormNotFound
	}
	path := l.Path(formName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) ([]entity.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	questions := make([]entity.Question, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		text := cell(row, 0)
		if text == "" {
			continue
		}
		questions = append(questions, entity.Question{
			Text:               text,
			StandardReference:  cell(row, 1),
			QualityReference:   cell(row, 2),
			DocumentsReference: cell(row, 3),
		})
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
