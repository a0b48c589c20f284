package mapper

import (
	"report-automation-be/internal/entity"
	"report-automation-be/internal/model"
)

type AnswerMapper struct{}

func NewAnswerMapper() *AnswerMapper {
	return &AnswerMapper{}
}

func (m *AnswerMapper) ToEntity(a *model.Answer) *entity.StoredAnswer {
	if a == nil {
		return nil
	}
	var comment string
	if a.Comment != nil {
		comment = *a.Comment
	}
	return &entity.StoredAnswer{
		Id:                 a.Id,
		ReportId:           a.ReportId,
		QuestionText:       a.QuestionText,
		Decision:           entity.ParseDecision(a.DecisionLabel),
		Comment:            comment,
		StandardReference:  a.StandardReference,
		QualityReference:   a.QualityReference,
		DocumentsReference: a.DocumentsReference,
	}
}

// ToModel stores the decision as its label; an empty comment becomes NULL.
func (m *AnswerMapper) ToModel(a *entity.StoredAnswer) *model.Answer {
	if a == nil {
		return nil
	}
	var comment *string
	if a.Comment != "" {
		c := a.Comment
		comment = &c
	}
	return &model.Answer{
		Id:                 a.Id,
		ReportId:           a.ReportId,
		QuestionText:       a.QuestionText,
		DecisionLabel:      a.Decision.Label(),
		Comment:            comment,
		StandardReference:  a.StandardReference,
		QualityReference:   a.QualityReference,
		DocumentsReference: a.DocumentsReference,
	}
}

func (m *AnswerMapper) ToEntities(answers []*model.Answer) []*entity.StoredAnswer {
	entities := make([]*entity.StoredAnswer, len(answers))
	for i, a := range answers {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
