package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"designer-quiz-service/internal/domain"
)

// SubmissionStore is an in-memory implementation of the submission and
// analytics stores. Suitable for dev mode and tests; nothing survives a
// restart.
type SubmissionStore struct {
	mu          sync.RWMutex
	submissions map[string]domain.Submission
	answers     map[string]map[int]domain.Answer
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{
		submissions: make(map[string]domain.Submission),
		answers:     make(map[string]map[int]domain.Answer),
	}
}

func (s *SubmissionStore) CreateSubmission(_ context.Context, submission domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[submission.ID] = submission
	return nil
}

func (s *SubmissionStore) GetSubmission(_ context.Context, id string) (domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submission, ok := s.submissions[id]
	if !ok {
		return domain.Submission{}, domain.ErrSubmissionNotFound
	}
	return submission, nil
}

// UpsertAnswer inserts or replaces the answer for (submission, question). A
// replaced answer keeps its original id and timestamp; only the choice moves.
func (s *SubmissionStore) UpsertAnswer(_ context.Context, answer domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submissions[answer.SubmissionID]; !ok {
		return domain.ErrSubmissionNotFound
	}
	byQuestion, ok := s.answers[answer.SubmissionID]
	if !ok {
		byQuestion = make(map[int]domain.Answer)
		s.answers[answer.SubmissionID] = byQuestion
	}
	if existing, ok := byQuestion[answer.QuestionIndex]; ok {
		existing.OptionID = answer.OptionID
		existing.AnswerText = answer.AnswerText
		byQuestion[answer.QuestionIndex] = existing
		return nil
	}
	byQuestion[answer.QuestionIndex] = answer
	return nil
}

func (s *SubmissionStore) UpdateProgress(_ context.Context, id string, lastAnswered int, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	submission, ok := s.submissions[id]
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	submission.LastQuestionAnswered = lastAnswered
	submission.UpdatedAt = updatedAt
	s.submissions[id] = submission
	return nil
}

func (s *SubmissionStore) FinalizeSubmission(_ context.Context, submission domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submissions[submission.ID]; !ok {
		return domain.ErrSubmissionNotFound
	}
	s.submissions[submission.ID] = submission
	return nil
}

func (s *SubmissionStore) AnswersFor(_ context.Context, submissionID string) ([]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byQuestion := s.answers[submissionID]
	answers := make([]domain.Answer, 0, len(byQuestion))
	for _, a := range byQuestion {
		answers = append(answers, a)
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].QuestionIndex < answers[j].QuestionIndex
	})
	return answers, nil
}

func (s *SubmissionStore) ListSubmissions(_ context.Context, filter domain.SubmissionFilter) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submissions := make([]domain.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		if !matches(sub, filter) {
			continue
		}
		submissions = append(submissions, sub)
	}
	sort.Slice(submissions, func(i, j int) bool {
		if !submissions[i].CreatedAt.Equal(submissions[j].CreatedAt) {
			return submissions[i].CreatedAt.After(submissions[j].CreatedAt)
		}
		return submissions[i].ID > submissions[j].ID
	})
	return submissions, nil
}

func (s *SubmissionStore) ListAnswers(_ context.Context) ([]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var answers []domain.Answer
	for _, byQuestion := range s.answers {
		for _, a := range byQuestion {
			answers = append(answers, a)
		}
	}
	return answers, nil
}

func (s *SubmissionStore) AnswersForSubmissions(_ context.Context, submissionIDs []string) ([]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var answers []domain.Answer
	for _, id := range submissionIDs {
		for _, a := range s.answers[id] {
			answers = append(answers, a)
		}
	}
	return answers, nil
}

func matches(sub domain.Submission, filter domain.SubmissionFilter) bool {
	if filter.Status != "" && sub.Status != filter.Status {
		return false
	}
	if filter.Device != "" && sub.Device != filter.Device {
		return false
	}
	if filter.PrimaryType != "" {
		if sub.PrimaryType == nil || *sub.PrimaryType != filter.PrimaryType {
			return false
		}
	}
	return true
}
