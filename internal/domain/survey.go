package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Survey represents a community survey definition. Questions are stored as an
// opaque JSON document; rendering and answer validation happen client-side.
// swagger:model Survey
type Survey struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Questions   json.RawMessage `json:"questions"`
	Open        bool            `json:"open"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SurveyResponse represents one member's submission for a survey.
// A member has at most one response per survey; resubmitting replaces it.
// swagger:model SurveyResponse
type SurveyResponse struct {
	ID        string          `json:"id"`
	SurveyID  string          `json:"survey_id"`
	MemberID  string          `json:"member_id"`
	Answers   json.RawMessage `json:"answers"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SurveyRepository defines the interface for survey storage.
type SurveyRepository interface {
	CreateSurvey(ctx context.Context, s *Survey) error
	GetSurveyByID(ctx context.Context, id string) (*Survey, error)
	ListSurveys(ctx context.Context, openOnly bool) ([]*Survey, error)
	UpsertResponse(ctx context.Context, resp *SurveyResponse) error
	ListResponses(ctx context.Context, surveyID string) ([]*SurveyResponse, error)
}

// SurveyService defines survey operations. Creating surveys and reading
// responses are organizer actions.
type SurveyService interface {
	CreateSurvey(ctx context.Context, title, description string, questions json.RawMessage) (*Survey, error)
	ListOpenSurveys(ctx context.Context) ([]*Survey, error)
	SubmitResponse(ctx context.Context, surveyID, memberID string, answers json.RawMessage) (*SurveyResponse, error)
	ListResponses(ctx context.Context, surveyID string) ([]*SurveyResponse, error)
}
