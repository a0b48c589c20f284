package entity

import (
	"fmt"
	"strings"
)

// Decision is the operator's verdict on a single question.
type Decision int

const (
	DecisionUnset Decision = iota
	DecisionYes
	DecisionNo
)

// Stored labels of a decision. Reports keep the label, not the ordinal.
const (
	DecisionLabelYes = "Да"
	DecisionLabelNo  = "Нет"
)

func (d Decision) Label() string {
	switch d {
	case DecisionYes:
		return DecisionLabelYes
	case DecisionNo:
		return DecisionLabelNo
	default:
		return ""
	}
}

func (d Decision) String() string {
	switch d {
	case DecisionYes:
		return "yes"
	case DecisionNo:
		return "no"
	default:
		return "unset"
	}
}

func (d Decision) IsSet() bool {
	return d == DecisionYes || d == DecisionNo
}

// ParseDecision accepts both API spelling ("yes"/"no") and stored labels ("Да"/"Нет").
// Anything else maps to DecisionUnset.
func ParseDecision(s string) Decision {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", strings.ToLower(DecisionLabelYes):
		return DecisionYes
	case "no", strings.ToLower(DecisionLabelNo):
		return DecisionNo
	default:
		return DecisionUnset
	}
}

// Question is one row of a form template. Identity is its position in the catalog.
type Question struct {
	Text               string
	StandardReference  string
	QualityReference   string
	DocumentsReference string
}

// Answer holds the operator's decision together with a copy of the question
// fields taken when the session started.
type Answer struct {
	QuestionText       string
	StandardReference  string
	QualityReference   string
	DocumentsReference string
	Decision           Decision
	Comment            string
}

type ReportMetadata struct {
	FormName   string
	Month      string
	Year       int
	ReportDate string
}

// ReportName is the human title used for export artifacts.
func (m ReportMetadata) ReportName() string {
	return fmt.Sprintf("Отчет: %s %s %d", m.FormName, m.Month, m.Year)
}
