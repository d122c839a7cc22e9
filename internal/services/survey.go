package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hellomiami/internal/domain"
)

type surveyService struct {
	surveyRepo domain.SurveyRepository
}

// NewSurveyService creates a SurveyService with the given repository.
func NewSurveyService(surveyRepo domain.SurveyRepository) domain.SurveyService {
	return &surveyService{surveyRepo: surveyRepo}
}

func (s *surveyService) CreateSurvey(ctx context.Context, title, description string, questions json.RawMessage) (*domain.Survey, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(questions) == 0 || !json.Valid(questions) {
		return nil, fmt.Errorf("%w: questions must be a JSON document", domain.ErrInvalidInput)
	}

	now := time.Now()
	survey := &domain.Survey{
		Title:       title,
		Description: strings.TrimSpace(description),
		Questions:   questions,
		Open:        true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.surveyRepo.CreateSurvey(ctx, survey); err != nil {
		return nil, fmt.Errorf("create survey: %w", err)
	}
	return survey, nil
}

func (s *surveyService) ListOpenSurveys(ctx context.Context) ([]*domain.Survey, error) {
	surveys, err := s.surveyRepo.ListSurveys(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	return surveys, nil
}

func (s *surveyService) SubmitResponse(ctx context.Context, surveyID, memberID string, answers json.RawMessage) (*domain.SurveyResponse, error) {
	if len(answers) == 0 || !json.Valid(answers) {
		return nil, fmt.Errorf("%w: answers must be a JSON document", domain.ErrInvalidInput)
	}
	survey, err := s.surveyRepo.GetSurveyByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if !survey.Open {
		return nil, fmt.Errorf("%w: survey is closed", domain.ErrInvalidInput)
	}

	now := time.Now()
	resp := &domain.SurveyResponse{
		SurveyID:  surveyID,
		MemberID:  memberID,
		Answers:   answers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.surveyRepo.UpsertResponse(ctx, resp); err != nil {
		return nil, fmt.Errorf("save survey response: %w", err)
	}
	return resp, nil
}

func (s *surveyService) ListResponses(ctx context.Context, surveyID string) ([]*domain.SurveyResponse, error) {
	if _, err := s.surveyRepo.GetSurveyByID(ctx, surveyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	responses, err := s.surveyRepo.ListResponses(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list survey responses: %w", err)
	}
	return responses, nil
}
