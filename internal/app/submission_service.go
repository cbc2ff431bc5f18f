package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"designer-quiz-service/internal/domain"
	"designer-quiz-service/internal/scoring"
	"github.com/google/uuid"
)

// SubmissionStore abstracts how quiz attempts are persisted (in-memory, Postgres, etc).
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, submission domain.Submission) error
	GetSubmission(ctx context.Context, id string) (domain.Submission, error)
	UpsertAnswer(ctx context.Context, answer domain.Answer) error
	UpdateProgress(ctx context.Context, id string, lastAnswered int, updatedAt time.Time) error
	FinalizeSubmission(ctx context.Context, submission domain.Submission) error
	AnswersFor(ctx context.Context, submissionID string) ([]domain.Answer, error)
}

// CatalogRepository loads quiz content (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context, version string) (domain.Catalog, error)
}

// ResumeState is everything a client needs to pick up an in-progress attempt.
type ResumeState struct {
	Submission   domain.Submission `json:"submission"`
	Answers      map[int]string    `json:"answers"`
	LastQuestion int               `json:"lastQuestion"`
}

// SubmissionService drives the quiz attempt lifecycle: start, record answers,
// resume, finish. The submission id doubles as the opaque resume token; the
// caller decides where to keep it (cookie, local storage, UI state).
type SubmissionService struct {
	store          SubmissionStore
	catalogs       CatalogRepository
	catalogVersion string
	hub            *DashboardHub
	now            func() time.Time
	newID          func() string
}

func NewSubmissionService(store SubmissionStore, catalogs CatalogRepository, catalogVersion string, hub *DashboardHub) *SubmissionService {
	return &SubmissionService{
		store:          store,
		catalogs:       catalogs,
		catalogVersion: catalogVersion,
		hub:            hub,
		now:            time.Now,
		newID:          func() string { return uuid.NewString() },
	}
}

// WithClock is test-only for deterministic timestamps.
func (s *SubmissionService) WithClock(now func() time.Time) *SubmissionService {
	s.now = now
	return s
}

// Start creates a fresh in-progress submission and returns it. The returned
// id is the resume token.
func (s *SubmissionService) Start(ctx context.Context, device domain.Device) (domain.Submission, error) {
	if device != domain.DeviceMobile && device != domain.DeviceDesktop {
		device = domain.DeviceDesktop
	}
	now := s.now()
	submission := domain.Submission{
		ID:                   s.newID(),
		CreatedAt:            now,
		UpdatedAt:            now,
		Status:               domain.StatusInProgress,
		Device:               device,
		LastQuestionAnswered: 0,
	}
	if err := s.store.CreateSubmission(ctx, submission); err != nil {
		return domain.Submission{}, fmt.Errorf("create submission: %w", err)
	}
	s.notifyChange()
	return submission, nil
}

// RecordAnswer upserts the answer for (submission, question) and advances
// progress. Safe to call repeatedly for the same question: re-answering
// replaces the stored choice, and progress only ever moves forward.
func (s *SubmissionService) RecordAnswer(ctx context.Context, submissionID string, questionIdx int, optionID string) (domain.Answer, error) {
	submission, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return domain.Answer{}, err
	}
	if submission.Status.IsTerminal() {
		return domain.Answer{}, domain.ErrAlreadyFinished
	}

	catalog, err := s.catalogs.GetCatalog(ctx, s.catalogVersion)
	if err != nil {
		return domain.Answer{}, err
	}
	question, ok := catalog.Question(questionIdx)
	if !ok {
		return domain.Answer{}, domain.ErrQuestionNotFound
	}
	option, ok := question.Option(optionID)
	if !ok {
		return domain.Answer{}, domain.ErrOptionNotFound
	}

	now := s.now()
	answer := domain.Answer{
		ID:            s.newID(),
		CreatedAt:     now,
		SubmissionID:  submissionID,
		QuestionIndex: questionIdx,
		OptionID:      option.ID,
		QuestionText:  question.Text,
		AnswerText:    option.Text,
	}
	if err := s.store.UpsertAnswer(ctx, answer); err != nil {
		return domain.Answer{}, fmt.Errorf("upsert answer: %w", err)
	}

	progress := submission.LastQuestionAnswered
	if questionIdx+1 > progress {
		progress = questionIdx + 1
	}
	if err := s.store.UpdateProgress(ctx, submissionID, progress, now); err != nil {
		return domain.Answer{}, fmt.Errorf("update progress: %w", err)
	}
	s.notifyChange()
	return answer, nil
}

// Resume reconstructs where an attempt stopped. Only in-progress submissions
// are resumable; finished or abandoned ones refuse with ErrNotResumable.
func (s *SubmissionService) Resume(ctx context.Context, token string) (ResumeState, error) {
	submission, err := s.store.GetSubmission(ctx, token)
	if err != nil {
		return ResumeState{}, err
	}
	if submission.Status != domain.StatusInProgress {
		return ResumeState{}, domain.ErrNotResumable
	}

	answers, err := s.store.AnswersFor(ctx, submission.ID)
	if err != nil {
		return ResumeState{}, fmt.Errorf("load answers: %w", err)
	}
	selected := make(map[int]string, len(answers))
	for _, a := range answers {
		selected[a.QuestionIndex] = a.OptionID
	}
	return ResumeState{
		Submission:   submission,
		Answers:      selected,
		LastQuestion: submission.LastQuestionAnswered,
	}, nil
}

// Finish scores the stored answers and finalizes the submission: completed
// when an email was given, anonymous otherwise. A finished submission cannot
// be finished or resumed again.
func (s *SubmissionService) Finish(ctx context.Context, submissionID string, email *string) (domain.Result, error) {
	if email != nil {
		trimmed := strings.TrimSpace(*email)
		if !strings.Contains(trimmed, "@") {
			return domain.Result{}, domain.ErrInvalidEmail
		}
		email = &trimmed
	}

	submission, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return domain.Result{}, err
	}
	if submission.Status.IsTerminal() {
		return domain.Result{}, domain.ErrAlreadyFinished
	}

	catalog, err := s.catalogs.GetCatalog(ctx, s.catalogVersion)
	if err != nil {
		return domain.Result{}, err
	}
	answers, err := s.store.AnswersFor(ctx, submissionID)
	if err != nil {
		return domain.Result{}, fmt.Errorf("load answers: %w", err)
	}
	selected := make(map[int]string, len(answers))
	for _, a := range answers {
		selected[a.QuestionIndex] = a.OptionID
	}
	result := scoring.Score(catalog, selected)

	status := domain.StatusAnonymous
	if email != nil {
		status = domain.StatusCompleted
	}

	submission.Status = status
	submission.Email = email
	submission.UpdatedAt = s.now()
	submission.PrimaryType = &result.Primary
	submission.PrimaryTypeName = &result.PrimaryName
	submission.PrimaryPercentage = intPtr(result.PrimaryPct)
	submission.SecondaryType = &result.Secondary
	submission.SecondaryTypeName = &result.SecondaryName
	submission.SecondaryPercentage = intPtr(result.SecondaryPct)
	submission.AllScores = result.Scores

	if err := s.store.FinalizeSubmission(ctx, submission); err != nil {
		return domain.Result{}, fmt.Errorf("finalize submission: %w", err)
	}
	s.notifyChange()
	return result, nil
}

func (s *SubmissionService) notifyChange() {
	if s.hub != nil {
		s.hub.Mark()
	}
}

func intPtr(v int) *int { return &v }
