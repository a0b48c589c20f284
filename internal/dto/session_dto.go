package dto

type FormListResponse struct {
	Forms []string `json:"forms"`
}

type StartSessionRequest struct {
	FormName   string `json:"form_name" validate:"required"`
	Month      string `json:"month" validate:"required"`
	Year       int    `json:"year" validate:"required,gte=1900,lte=9999"`
	ReportDate string `json:"report_date" validate:"required"`
}

// AnswerInput is one flushed widget buffer. An empty decision means the
// operator has not chosen yet and is ignored.
type AnswerInput struct {
	Index    int    `json:"index" validate:"gte=0"`
	Decision string `json:"decision" validate:"omitempty,oneof=yes no Да Нет"`
	Comment  string `json:"comment"`
}

type SaveAnswersRequest struct {
	Answers []AnswerInput `json:"answers" validate:"dive"`
}

type SaveAnswersResponse struct {
	Applied int   `json:"applied"`
	Ignored []int `json:"ignored"`
}

type BlockQuestion struct {
	Index              int    `json:"index"`
	Ordinal            int    `json:"ordinal"`
	Text               string `json:"text"`
	StandardReference  string `json:"standard_reference"`
	QualityReference   string `json:"quality_reference"`
	DocumentsReference string `json:"documents_reference"`
	Decision           string `json:"decision"` // "yes" | "no" | "unset"
	Comment            string `json:"comment"`
}

type SessionBlockResponse struct {
	SessionId  string          `json:"session_id"`
	ReportName string          `json:"report_name"`
	Start      int             `json:"start"` // first index of the block
	End        int             `json:"end"`   // exclusive
	Total      int             `json:"total"`
	IsFirst    bool            `json:"is_first"`
	IsLast     bool            `json:"is_last"`
	Questions  []BlockQuestion `json:"questions"`
}

type NavigateResponse struct {
	Moved bool                  `json:"moved"`
	Block *SessionBlockResponse `json:"block"`
}

type CompletenessResponse struct {
	Complete        bool `json:"complete"`
	FirstUnanswered int  `json:"first_unanswered,omitempty"` // 1-based
}

type FinalizeSessionResponse struct {
	ReportId int64  `json:"report_id"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}
