package questionnaire

import (
	"errors"
	"fmt"
	"testing"

	"report-automation-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMetadata() entity.ReportMetadata {
	return entity.ReportMetadata{
		FormName:   "Входной контроль",
		Month:      "Март",
		Year:       2025,
		ReportDate: "01.03.2025",
	}
}

func testCatalog(n int) []entity.Question {
	out := make([]entity.Question, n)
	for i := range out {
		out[i] = entity.Question{
			Text:               fmt.Sprintf("Вопрос %d", i+1),
			StandardReference:  fmt.Sprintf("ГОСТ %d", i+1),
			QualityReference:   fmt.Sprintf("СМК %d", i+1),
			DocumentsReference: fmt.Sprintf("Документ %d", i+1),
		}
	}
	return out
}

func TestNewSession(t *testing.T) {
	for _, n := range []int{1, 4, 5, 7, 23} {
		t.Run(fmt.Sprintf("catalog of %d", n), func(t *testing.T) {
			catalog := testCatalog(n)
			s, err := NewSession(testMetadata(), catalog)
			require.NoError(t, err)

			answers := s.Answers()
			require.Len(t, answers, n)
			assert.Equal(t, 0, s.Cursor())
			for i, a := range answers {
				assert.Equal(t, entity.DecisionUnset, a.Decision)
				assert.Empty(t, a.Comment)
				assert.Equal(t, catalog[i].Text, a.QuestionText)
				assert.Equal(t, catalog[i].StandardReference, a.StandardReference)
				assert.Equal(t, catalog[i].QualityReference, a.QualityReference)
				assert.Equal(t, catalog[i].DocumentsReference, a.DocumentsReference)
			}
		})
	}
}

func TestNewSessionRejectsInput(t *testing.T) {
	_, err := NewSession(testMetadata(), nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	meta := testMetadata()
	meta.Month = " "
	_, err = NewSession(meta, testCatalog(3))
	assert.ErrorIs(t, err, ErrIncompleteMetadata)

	meta = testMetadata()
	meta.Year = 0
	_, err = NewSession(meta, testCatalog(3))
	assert.ErrorIs(t, err, ErrIncompleteMetadata)
}

func TestSessionSnapshotsCatalog(t *testing.T) {
	catalog := testCatalog(3)
	s, err := NewSession(testMetadata(), catalog)
	require.NoError(t, err)

	catalog[1].Text = "изменено"
	catalog[1].StandardReference = "изменено"

	a, ok := s.Answer(1)
	require.True(t, ok)
	assert.Equal(t, "Вопрос 2", a.QuestionText)
	assert.Equal(t, "ГОСТ 2", a.StandardReference)
}

func TestSevenQuestionsTwoBlocks(t *testing.T) {
	s, err := NewSession(testMetadata(), testCatalog(7))
	require.NoError(t, err)

	start, end := s.CurrentBlock()
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
	assert.True(t, s.IsFirstBlock())

	assert.True(t, s.Advance())
	start, end = s.CurrentBlock()
	assert.Equal(t, 5, start)
	assert.Equal(t, 7, end)
	assert.True(t, s.IsLastBlock())

	assert.False(t, s.Advance())
	assert.Equal(t, 5, s.Cursor())
}

func TestAdvanceReturnsFalseExactlyAtLastBlock(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		advances int
	}{
		{name: "single question", size: 1, advances: 0},
		{name: "exactly one page", size: 5, advances: 0},
		{name: "one over a page", size: 6, advances: 1},
		{name: "two full pages", size: 10, advances: 1},
		{name: "many pages", size: 23, advances: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSession(testMetadata(), testCatalog(tt.size))
			require.NoError(t, err)

			for i := 0; i < tt.advances; i++ {
				before := s.Cursor()
				assert.False(t, before+PageSize >= tt.size)
				assert.True(t, s.Advance())
			}
			before := s.Cursor()
			assert.True(t, before+PageSize >= tt.size)
			assert.False(t, s.Advance())
			assert.Equal(t, before, s.Cursor())
		})
	}
}

func TestNavigationKeepsCursorOnBlockBoundary(t *testing.T) {
	s, err := NewSession(testMetadata(), testCatalog(17))
	require.NoError(t, err)

	moves := []bool{true, true, false, true, true, true, true, false, false, false, false, false, true}
	for _, forward := range moves {
		if forward {
			s.Advance()
		} else {
			s.Retreat()
		}
		assert.Zero(t, s.Cursor()%PageSize)
		assert.GreaterOrEqual(t, s.Cursor(), 0)
		assert.Less(t, s.Cursor(), s.Len())
	}
}

func TestRetreatAtFirstBlock(t *testing.T) {
	s, err := NewSession(testMetadata(), testCatalog(3))
	require.NoError(t, err)

	assert.NotPanics(t, func() { s.Retreat() })
	s.Retreat()
	assert.Equal(t, 0, s.Cursor())
}

func TestAnswersSurviveNavigation(t *testing.T) {
	s, err := NewSession(testMetadata(), testCatalog(12))
	require.NoError(t, err)

	require.True(t, s.SetAnswer(1, entity.DecisionYes, "ok"))
	require.True(t, s.Advance())
	require.True(t, s.SetAnswer(6, entity.DecisionNo, "нет акта"))
	s.Retreat()

	a, _ := s.Answer(1)
	assert.Equal(t, entity.DecisionYes, a.Decision)
	assert.Equal(t, "ok", a.Comment)

	require.True(t, s.Advance())
	a, _ = s.Answer(6)
	assert.Equal(t, entity.DecisionNo, a.Decision)
	assert.Equal(t, "нет акта", a.Comment)
}

func TestSetAnswer(t *testing.T) {
	s, err := NewSession(testMetadata(), testCatalog(5))
	require.NoError(t, err)

	assert.False(t, s.SetAnswer(-1, entity.DecisionYes, ""))
	assert.False(t, s.SetAnswer(5, entity.DecisionYes, ""))
	assert.False(t, s.SetAnswer(0, entity.DecisionUnset, "x"))

	a, _ := s.Answer(0)
	assert.Equal(t, entity.DecisionUnset, a.Decision)
	assert.Empty(t, a.Comment)

	assert.True(t, s.SetAnswer(0, entity.DecisionNo, "first"))
	assert.True(t, s.SetAnswer(0, entity.DecisionYes, ""))
	a, _ = s.Answer(0)
	assert.Equal(t, entity.DecisionYes, a.Decision)
	assert.Empty(t, a.Comment)
}

func TestCheckComplete(t *testing.T) {
	s, err := NewSession(testMetadata(), testCatalog(5))
	require.NoError(t, err)

	s.SetAnswer(0, entity.DecisionYes, "")
	s.SetAnswer(1, entity.DecisionNo, "")
	s.SetAnswer(3, entity.DecisionYes, "")
	s.SetAnswer(4, entity.DecisionYes, "")

	err = s.CheckComplete()
	var incomplete *IncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, 3, incomplete.Ordinal)

	s.SetAnswer(2, entity.DecisionNo, "")
	assert.NoError(t, s.CheckComplete())
}

func TestCheckCompleteReportsSmallestOrdinal(t *testing.T) {
	s, err := NewSession(testMetadata(), testCatalog(9))
	require.NoError(t, err)

	err = s.CheckComplete()
	var incomplete *IncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, 1, incomplete.Ordinal)

	for i := 0; i < 6; i++ {
		s.SetAnswer(i, entity.DecisionYes, "")
	}
	s.SetAnswer(8, entity.DecisionNo, "")

	err = s.CheckComplete()
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, 7, incomplete.Ordinal)
}

func TestAnswersReturnsCopy(t *testing.T) {
	s, err := NewSession(testMetadata(), testCatalog(2))
	require.NoError(t, err)

	answers := s.Answers()
	answers[0].Decision = entity.DecisionYes

	a, _ := s.Answer(0)
	assert.Equal(t, entity.DecisionUnset, a.Decision)
}
