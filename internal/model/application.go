package model

import (
	"encoding/json"
	"time"
)

// Answer accepts either a single string or an array of strings on the wire
// and normalizes both to a set of non-empty strings.
type Answer []string

func (a *Answer) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*a = normalizeAnswers([]string{single})
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}

	*a = normalizeAnswers(many)
	return nil
}

func normalizeAnswers(values []string) []string {
	result := []string{}
	seen := map[string]bool{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}

		seen[v] = true
		result = append(result, v)
	}

	return result
}

type FormResponse struct {
	QuestionID string `json:"question_id"`
	Answer     Answer `json:"answer"`
}

const (
	ErrorRequired      = "required"
	ErrorContradiction = "contradiction"
)

// ValidationResult reports per-question errors keyed by question id. The
// contradiction flag is surfaced besides the error map, never merged into it.
type ValidationResult struct {
	Errors            map[string]string `json:"errors"`
	HasContradictions bool              `json:"has_contradictions"`
}

func (r ValidationResult) Clean() bool {
	return len(r.Errors) == 0 && !r.HasContradictions
}

type ApplicationResponse struct {
	QuestionID      string   `json:"question_id"`
	QuestionText    string   `json:"question_text,omitempty"`
	QuestionRemoved bool     `json:"question_removed,omitempty"`
	Answers         []string `json:"answers"`
}

type Application struct {
	ID          string                `json:"id"`
	UserID      string                `json:"user_id"`
	Username    string                `json:"username,omitempty"`
	Responses   []ApplicationResponse `json:"responses"`
	SubmittedAt time.Time             `json:"submitted_at"`
	Status      string                `json:"status"`
	ReviewedBy  string                `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time            `json:"reviewed_at,omitempty"`
}

type SubmitApplicationRequest struct {
	Responses []FormResponse `json:"responses"`
}

type SubmitApplicationResponse struct {
	ID string `json:"id"`
}

type GetMyApplicationRequest struct{}

type GetMyApplicationResponse struct {
	Application Application `json:"application"`
}

type GetApplicationsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetApplicationsResponse struct {
	Applications []Application `json:"applications"`
}

type ReviewApplicationRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

type ReviewApplicationResponse struct{}
