package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"designer-quiz-service/internal/domain"
)

// ExportCSV renders filtered submissions into a fixed-column CSV: identity
// and result columns, then one column per question holding the chosen option
// id. encoding/csv applies RFC 4180 quoting, so embedded commas in values
// (emails included) cannot shift columns.
func (s *AnalyticsService) ExportCSV(ctx context.Context, filter domain.SubmissionFilter) ([]byte, error) {
	catalog, err := s.catalogs.GetCatalog(ctx, s.catalogVersion)
	if err != nil {
		return nil, err
	}
	submissions, err := s.ListSubmissions(ctx, filter)
	if err != nil {
		return nil, err
	}

	questionCount := catalog.Len()
	header := []string{
		"id", "email", "status", "device",
		"primary_type", "primary_pct", "secondary_type", "secondary_pct",
	}
	for i := 1; i <= questionCount; i++ {
		header = append(header, "q"+strconv.Itoa(i))
	}
	header = append(header, "last_question", "created_at")

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, sub := range submissions {
		chosen := make(map[int]string, len(sub.Answers))
		for _, a := range sub.Answers {
			chosen[a.QuestionIndex] = a.OptionID
		}

		record := []string{
			sub.ID,
			strOrEmpty(sub.Email),
			string(sub.Status),
			string(sub.Device),
			categoryOrEmpty(sub.PrimaryType),
			intOrEmpty(sub.PrimaryPercentage),
			categoryOrEmpty(sub.SecondaryType),
			intOrEmpty(sub.SecondaryPercentage),
		}
		for i := 0; i < questionCount; i++ {
			record = append(record, chosen[i])
		}
		record = append(record,
			strconv.Itoa(sub.LastQuestionAnswered),
			sub.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func categoryOrEmpty(v *domain.Category) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func intOrEmpty(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
