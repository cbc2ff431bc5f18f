package app

import (
	"context"
	"fmt"
	"math"
	"sort"

	"designer-quiz-service/internal/domain"
)

// AnalyticsStore is the read side over persisted submissions and answers.
type AnalyticsStore interface {
	ListSubmissions(ctx context.Context, filter domain.SubmissionFilter) ([]domain.Submission, error)
	ListAnswers(ctx context.Context) ([]domain.Answer, error)
	AnswersForSubmissions(ctx context.Context, submissionIDs []string) ([]domain.Answer, error)
}

// OverviewStats summarizes submission counts by status.
type OverviewStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Anonymous      int `json:"anonymous"`
	Abandoned      int `json:"abandoned"`
	InProgress     int `json:"inProgress"`
	CompletionRate int `json:"completionRate"`
}

// TypeDistributionEntry is one slice of the primary-type distribution.
type TypeDistributionEntry struct {
	Type       domain.Category `json:"type"`
	TypeName   string          `json:"typeName"`
	Emoji      string          `json:"emoji"`
	Count      int             `json:"count"`
	Percentage int             `json:"percentage"`
}

// DeviceSplit is the mobile/desktop breakdown across all submissions.
type DeviceSplit struct {
	Mobile     int `json:"mobile"`
	Desktop    int `json:"desktop"`
	MobilePct  int `json:"mobilePercentage"`
	DesktopPct int `json:"desktopPercentage"`
}

// DropoffBucket counts attempts that stalled at a question. The bucket one
// past the last question counts respondents who answered everything but never
// submitted the email step.
type DropoffBucket struct {
	Question int `json:"question"`
	Count    int `json:"count"`
}

// OptionStat tallies one chosen option within a question.
type OptionStat struct {
	OptionID   string `json:"optionId"`
	Text       string `json:"text"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// QuestionBreakdown aggregates every recorded answer for one question.
// Options nobody picked are absent.
type QuestionBreakdown struct {
	Question       int          `json:"question"`
	Text           string       `json:"text"`
	TotalResponses int          `json:"totalResponses"`
	Options        []OptionStat `json:"options"`
}

// AnalyticsService computes read-only rollups over the submission store.
// Everything is recomputed per request; data volumes are small enough that
// incremental aggregation is not worth its complexity.
type AnalyticsService struct {
	store          AnalyticsStore
	catalogs       CatalogRepository
	catalogVersion string
}

func NewAnalyticsService(store AnalyticsStore, catalogs CatalogRepository, catalogVersion string) *AnalyticsService {
	return &AnalyticsService{store: store, catalogs: catalogs, catalogVersion: catalogVersion}
}

// Overview returns counts by status and the completion rate.
func (s *AnalyticsService) Overview(ctx context.Context) (OverviewStats, error) {
	submissions, err := s.store.ListSubmissions(ctx, domain.SubmissionFilter{})
	if err != nil {
		return OverviewStats{}, fmt.Errorf("list submissions: %w", err)
	}

	stats := OverviewStats{Total: len(submissions)}
	for _, sub := range submissions {
		switch sub.Status {
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusAnonymous:
			stats.Anonymous++
		case domain.StatusAbandoned:
			stats.Abandoned++
		case domain.StatusInProgress:
			stats.InProgress++
		}
	}
	stats.CompletionRate = roundPct(stats.Completed+stats.Anonymous, stats.Total)
	return stats, nil
}

// TypeDistribution counts finished submissions by primary type, percentage
// relative to the finished total, sorted by count descending.
func (s *AnalyticsService) TypeDistribution(ctx context.Context) ([]TypeDistributionEntry, error) {
	finished, err := s.finishedSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Category]int)
	for _, sub := range finished {
		if sub.PrimaryType != nil {
			counts[*sub.PrimaryType]++
		}
	}

	total := len(finished)
	entries := make([]TypeDistributionEntry, 0, len(counts))
	for category, count := range counts {
		entries = append(entries, TypeDistributionEntry{
			Type:       category,
			TypeName:   category.DisplayName(),
			Emoji:      category.Emoji(),
			Count:      count,
			Percentage: roundPct(count, total),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Type < entries[j].Type
	})
	return entries, nil
}

// DeviceSplit breaks all submissions down by device class.
func (s *AnalyticsService) DeviceSplit(ctx context.Context) (DeviceSplit, error) {
	submissions, err := s.store.ListSubmissions(ctx, domain.SubmissionFilter{})
	if err != nil {
		return DeviceSplit{}, fmt.Errorf("list submissions: %w", err)
	}

	split := DeviceSplit{}
	for _, sub := range submissions {
		switch sub.Device {
		case domain.DeviceMobile:
			split.Mobile++
		case domain.DeviceDesktop:
			split.Desktop++
		}
	}
	total := len(submissions)
	split.MobilePct = roundPct(split.Mobile, total)
	split.DesktopPct = roundPct(split.Desktop, total)
	return split, nil
}

// Dropoff buckets unfinished attempts (abandoned or still in progress) by the
// question where they stalled, slots 1..N, plus slot N+1 for attempts that
// reached the last question but never finalized the email step.
func (s *AnalyticsService) Dropoff(ctx context.Context) ([]DropoffBucket, error) {
	catalog, err := s.catalogs.GetCatalog(ctx, s.catalogVersion)
	if err != nil {
		return nil, err
	}
	submissions, err := s.store.ListSubmissions(ctx, domain.SubmissionFilter{})
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	stalled := make(map[int]int)
	emailStep := 0
	questionCount := catalog.Len()
	for _, sub := range submissions {
		if sub.Status != domain.StatusAbandoned && sub.Status != domain.StatusInProgress {
			continue
		}
		stalled[sub.LastQuestionAnswered]++
		if sub.LastQuestionAnswered == questionCount {
			emailStep++
		}
	}

	buckets := make([]DropoffBucket, 0, questionCount+1)
	for i := 1; i <= questionCount; i++ {
		buckets = append(buckets, DropoffBucket{Question: i, Count: stalled[i]})
	}
	buckets = append(buckets, DropoffBucket{Question: questionCount + 1, Count: emailStep})
	return buckets, nil
}

// QuestionStats groups all answers by question and tallies the options that
// were actually chosen, sorted by count descending within each question.
func (s *AnalyticsService) QuestionStats(ctx context.Context) ([]QuestionBreakdown, error) {
	answers, err := s.store.ListAnswers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	type optionTally struct {
		text  string
		count int
	}
	type questionTally struct {
		text    string
		options map[string]*optionTally
		total   int
	}

	byQuestion := make(map[int]*questionTally)
	for _, a := range answers {
		q, ok := byQuestion[a.QuestionIndex]
		if !ok {
			q = &questionTally{text: a.QuestionText, options: make(map[string]*optionTally)}
			byQuestion[a.QuestionIndex] = q
		}
		opt, ok := q.options[a.OptionID]
		if !ok {
			opt = &optionTally{text: a.AnswerText}
			q.options[a.OptionID] = opt
		}
		opt.count++
		q.total++
	}

	breakdowns := make([]QuestionBreakdown, 0, len(byQuestion))
	for index, q := range byQuestion {
		options := make([]OptionStat, 0, len(q.options))
		for id, opt := range q.options {
			options = append(options, OptionStat{
				OptionID:   id,
				Text:       opt.text,
				Count:      opt.count,
				Percentage: roundPct(opt.count, q.total),
			})
		}
		sort.Slice(options, func(i, j int) bool {
			if options[i].Count != options[j].Count {
				return options[i].Count > options[j].Count
			}
			return options[i].OptionID < options[j].OptionID
		})
		breakdowns = append(breakdowns, QuestionBreakdown{
			Question:       index,
			Text:           q.text,
			TotalResponses: q.total,
			Options:        options,
		})
	}
	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].Question < breakdowns[j].Question
	})
	return breakdowns, nil
}

// ListSubmissions returns filtered submissions newest-first, each joined with
// its answers ordered by question index.
func (s *AnalyticsService) ListSubmissions(ctx context.Context, filter domain.SubmissionFilter) ([]domain.SubmissionWithAnswers, error) {
	submissions, err := s.store.ListSubmissions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	ids := make([]string, len(submissions))
	for i, sub := range submissions {
		ids[i] = sub.ID
	}
	answers, err := s.store.AnswersForSubmissions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	bySubmission := make(map[string][]domain.Answer, len(submissions))
	for _, a := range answers {
		bySubmission[a.SubmissionID] = append(bySubmission[a.SubmissionID], a)
	}

	joined := make([]domain.SubmissionWithAnswers, len(submissions))
	for i, sub := range submissions {
		subAnswers := bySubmission[sub.ID]
		sort.Slice(subAnswers, func(a, b int) bool {
			return subAnswers[a].QuestionIndex < subAnswers[b].QuestionIndex
		})
		joined[i] = domain.SubmissionWithAnswers{Submission: sub, Answers: subAnswers}
	}
	return joined, nil
}

func (s *AnalyticsService) finishedSubmissions(ctx context.Context) ([]domain.Submission, error) {
	submissions, err := s.store.ListSubmissions(ctx, domain.SubmissionFilter{})
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	finished := submissions[:0:0]
	for _, sub := range submissions {
		if sub.Status == domain.StatusCompleted || sub.Status == domain.StatusAnonymous {
			finished = append(finished, sub)
		}
	}
	return finished, nil
}

func roundPct(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
