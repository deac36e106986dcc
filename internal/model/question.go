package model

type Question struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	Type            string   `json:"type"`
	Options         []string `json:"options"`
	Required        bool     `json:"required"`
	ContradictsWith []string `json:"contradicts_with,omitempty"`
	Position        int      `json:"position"`
}

type GetQuestionsRequest struct{}

type GetQuestionsResponse struct {
	Questions []Question `json:"questions"`
}

type CreateQuestionRequest struct {
	Text            string   `json:"text"`
	Type            string   `json:"type"`
	Options         []string `json:"options"`
	Required        bool     `json:"required"`
	ContradictsWith []string `json:"contradicts_with"`
}

type CreateQuestionResponse struct {
	ID string `json:"id"`
}

type UpdateQuestionRequest struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	Type            string   `json:"type"`
	Options         []string `json:"options"`
	Required        bool     `json:"required"`
	ContradictsWith []string `json:"contradicts_with"`
}

type UpdateQuestionResponse struct{}

type DeleteQuestionRequest struct {
	ID string `json:"id"`
}

type DeleteQuestionResponse struct{}

type ReorderQuestionsRequest struct {
	QuestionIDs []string `json:"question_ids"`
}

type ReorderQuestionsResponse struct{}
