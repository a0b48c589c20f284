package entity

import "time"

type Report struct {
	Id         int64
	FormName   string
	Month      string
	Year       int
	ReportDate string
	CreatedAt  time.Time
	FilePath   string
	Answers    []*StoredAnswer
}

func (r *Report) Metadata() ReportMetadata {
	return ReportMetadata{
		FormName:   r.FormName,
		Month:      r.Month,
		Year:       r.Year,
		ReportDate: r.ReportDate,
	}
}

// AnswerValues returns the stored answers in their persisted order.
func (r *Report) AnswerValues() []Answer {
	out := make([]Answer, 0, len(r.Answers))
	for _, a := range r.Answers {
		out = append(out, a.ToAnswer())
	}
	return out
}

// StoredAnswer is the durable projection of an Answer.
type StoredAnswer struct {
	Id                 int64
	ReportId           int64
	QuestionText       string
	Decision           Decision
	Comment            string
	StandardReference  string
	QualityReference   string
	DocumentsReference string
}

func (a *StoredAnswer) ToAnswer() Answer {
	return Answer{
		QuestionText:       a.QuestionText,
		StandardReference:  a.StandardReference,
		QualityReference:   a.QualityReference,
		DocumentsReference: a.DocumentsReference,
		Decision:           a.Decision,
		Comment:            a.Comment,
	}
}

func NewStoredAnswer(reportId int64, a Answer) *StoredAnswer {
	return &StoredAnswer{
		ReportId:           reportId,
		QuestionText:       a.QuestionText,
		Decision:           a.Decision,
		Comment:            a.Comment,
		StandardReference:  a.StandardReference,
		QualityReference:   a.QualityReference,
		DocumentsReference: a.DocumentsReference,
	}
}
