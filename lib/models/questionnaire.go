package models

// QuestionnaireOption is one answer of a questionnaire; Value marks the correct ones
type QuestionnaireOption struct {
	Label string `json:"label"`
	Value bool   `json:"value"`
}

// Questionnaire represents a row of timebank.questionnaires
type Questionnaire struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Options     []QuestionnaireOption `json:"options"`
	PassScore   int                   `json:"passScore"`
}

// CreateQuestionnaireRequest is the payload of POST /questionnaires
type CreateQuestionnaireRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Options     []QuestionnaireOption `json:"options"`
	PassScore   int                   `json:"passScore"`
}

// Validate returns the list of problems with the payload
func (r *CreateQuestionnaireRequest) Validate() []string {
	var errs []string
	if r.Title == "" {
		errs = append(errs, "title: is required")
	}
	if len(r.Options) == 0 {
		errs = append(errs, "options: at least one option is required")
	}
	for _, option := range r.Options {
		if option.Label == "" {
			errs = append(errs, "options: every option needs a label")
			break
		}
	}
	if r.PassScore < 0 || r.PassScore > len(r.Options) {
		errs = append(errs, "passScore: must be between 0 and the number of options")
	}
	return errs
}
