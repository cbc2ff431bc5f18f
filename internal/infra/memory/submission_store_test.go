package memory

import (
	"context"
	"testing"
	"time"

	"designer-quiz-service/internal/domain"
)

func TestSubmissionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	sub := domain.Submission{
		ID:        "s1",
		CreatedAt: now,
		UpdatedAt: now,
		Status:    domain.StatusInProgress,
		Device:    domain.DeviceMobile,
	}
	if err := store.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetSubmission(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", got.Status)
	}

	if _, err := store.GetSubmission(ctx, "nope"); err != domain.ErrSubmissionNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpsertAnswerReplacesChoice(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()
	now := time.Now()

	_ = store.CreateSubmission(ctx, domain.Submission{ID: "s1", CreatedAt: now, Status: domain.StatusInProgress})

	first := domain.Answer{ID: "a1", SubmissionID: "s1", QuestionIndex: 2, OptionID: "a", QuestionText: "Q", AnswerText: "A"}
	second := domain.Answer{ID: "a2", SubmissionID: "s1", QuestionIndex: 2, OptionID: "b", QuestionText: "Q", AnswerText: "B"}
	if err := store.UpsertAnswer(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.UpsertAnswer(ctx, second); err != nil {
		t.Fatalf("upsert replace: %v", err)
	}

	answers, err := store.AnswersFor(ctx, "s1")
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("expected one answer after re-answer, got %d", len(answers))
	}
	if answers[0].ID != "a1" || answers[0].OptionID != "b" {
		t.Fatalf("expected original row with updated choice, got %+v", answers[0])
	}
}

func TestListSubmissionsFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	viz := domain.CategoryVizionarius

	_ = store.CreateSubmission(ctx, domain.Submission{ID: "old", CreatedAt: base, Status: domain.StatusCompleted, Device: domain.DeviceMobile, PrimaryType: &viz})
	_ = store.CreateSubmission(ctx, domain.Submission{ID: "new", CreatedAt: base.Add(time.Hour), Status: domain.StatusInProgress, Device: domain.DeviceDesktop})

	all, err := store.ListSubmissions(ctx, domain.SubmissionFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != "new" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	completed, _ := store.ListSubmissions(ctx, domain.SubmissionFilter{Status: domain.StatusCompleted})
	if len(completed) != 1 || completed[0].ID != "old" {
		t.Fatalf("expected status filter to match one, got %+v", completed)
	}

	byType, _ := store.ListSubmissions(ctx, domain.SubmissionFilter{PrimaryType: domain.CategoryVizionarius})
	if len(byType) != 1 || byType[0].ID != "old" {
		t.Fatalf("expected primary-type filter to match one, got %+v", byType)
	}

	byDevice, _ := store.ListSubmissions(ctx, domain.SubmissionFilter{Device: domain.DeviceDesktop})
	if len(byDevice) != 1 || byDevice[0].ID != "new" {
		t.Fatalf("expected device filter to match one, got %+v", byDevice)
	}
}
