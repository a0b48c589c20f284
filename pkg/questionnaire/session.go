// Package questionnaire implements the block-by-block traversal of a form.
//
// A Session is owned by exactly one operator workflow and is not safe for
// concurrent use.
package questionnaire

import (
	"strings"

	"report-automation-be/internal/entity"
)

// PageSize is the number of questions shown together in one block.
const PageSize = 5

type entry struct {
	question entity.Question
	answer   entity.Answer
}

type Session struct {
	metadata entity.ReportMetadata
	entries  []entry
	cursor   int
}

// NewSession snapshots the catalog. Later changes to the catalog slice do
// not reach the session.
func NewSession(meta entity.ReportMetadata, catalog []entity.Question) (*Session, error) {
	if strings.TrimSpace(meta.FormName) == "" ||
		strings.TrimSpace(meta.Month) == "" ||
		meta.Year <= 0 ||
		strings.TrimSpace(meta.ReportDate) == "" {
		return nil, ErrIncompleteMetadata
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	entries := make([]entry, len(catalog))
	for i, q := range catalog {
		entries[i] = entry{
			question: q,
			answer: entity.Answer{
				QuestionText:       q.Text,
				StandardReference:  q.StandardReference,
				QualityReference:   q.QualityReference,
				DocumentsReference: q.DocumentsReference,
				Decision:           entity.DecisionUnset,
			},
		}
	}

	return &Session{
		metadata: meta,
		entries:  entries,
	}, nil
}

func (s *Session) Metadata() entity.ReportMetadata {
	return s.metadata
}

func (s *Session) Len() int {
	return len(s.entries)
}

func (s *Session) Cursor() int {
	return s.cursor
}

// CurrentBlock returns the half-open range [start, end) of the active block.
func (s *Session) CurrentBlock() (int, int) {
	end := s.cursor + PageSize
	if end > len(s.entries) {
		end = len(s.entries)
	}
	return s.cursor, end
}

func (s *Session) IsFirstBlock() bool {
	return s.cursor == 0
}

func (s *Session) IsLastBlock() bool {
	return s.cursor+PageSize >= len(s.entries)
}

// Question returns the catalog entry at index.
func (s *Session) Question(index int) (entity.Question, bool) {
	if index < 0 || index >= len(s.entries) {
		return entity.Question{}, false
	}
	return s.entries[index].question, true
}

// Answer returns the current answer at index.
func (s *Session) Answer(index int) (entity.Answer, bool) {
	if index < 0 || index >= len(s.entries) {
		return entity.Answer{}, false
	}
	return s.entries[index].answer, true
}

// SetAnswer records a Yes/No decision. It reports false and changes nothing
// for an index outside the catalog or an unset decision.
func (s *Session) SetAnswer(index int, decision entity.Decision, comment string) bool {
	if index < 0 || index >= len(s.entries) {
		return false
	}
	if !decision.IsSet() {
		return false
	}
	s.entries[index].answer.Decision = decision
	s.entries[index].answer.Comment = comment
	return true
}

// Advance moves to the next block. On the last block it returns false and
// leaves the cursor in place; the caller should finalize instead.
func (s *Session) Advance() bool {
	next := s.cursor + PageSize
	if next >= len(s.entries) {
		return false
	}
	s.cursor = next
	return true
}

func (s *Session) Retreat() {
	prev := s.cursor - PageSize
	if prev < 0 {
		prev = 0
	}
	s.cursor = prev
}

// CheckComplete returns *IncompleteError for the first unanswered question.
func (s *Session) CheckComplete() error {
	for i, e := range s.entries {
		if !e.answer.Decision.IsSet() {
			return &IncompleteError{Ordinal: i + 1}
		}
	}
	return nil
}

// Answers returns a copy of every answer in catalog order.
func (s *Session) Answers() []entity.Answer {
	out := make([]entity.Answer, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.answer
	}
	return out
}
