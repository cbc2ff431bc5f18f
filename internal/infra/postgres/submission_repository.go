package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"designer-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SubmissionRepository persists submissions and answers in Postgres. It
// serves both the write path (submission lifecycle) and the read path
// (analytics rollups).
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

const submissionColumns = `id, created_at, updated_at, email, status, device, last_question_answered,
	primary_type, primary_type_name, primary_percentage,
	secondary_type, secondary_type_name, secondary_percentage, all_scores`

func (r *SubmissionRepository) CreateSubmission(ctx context.Context, submission domain.Submission) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO submissions (id, created_at, updated_at, status, device, last_question_answered)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		submission.ID, submission.CreatedAt, submission.UpdatedAt,
		string(submission.Status), string(submission.Device), submission.LastQuestionAnswered,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) GetSubmission(ctx context.Context, id string) (domain.Submission, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id=$1`, id)
	submission, err := scanSubmission(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Submission{}, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return domain.Submission{}, fmt.Errorf("get submission: %w", err)
	}
	return submission, nil
}

// UpsertAnswer keeps at most one row per (submission, question); re-answering
// replaces the stored choice in place.
func (r *SubmissionRepository) UpsertAnswer(ctx context.Context, answer domain.Answer) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO answers (id, created_at, submission_id, question_index, option_id, question_text, answer_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (submission_id, question_index)
		DO UPDATE SET option_id=EXCLUDED.option_id, answer_text=EXCLUDED.answer_text`,
		answer.ID, answer.CreatedAt, answer.SubmissionID,
		answer.QuestionIndex, answer.OptionID, answer.QuestionText, answer.AnswerText,
	)
	if err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) UpdateProgress(ctx context.Context, id string, lastAnswered int, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE submissions SET last_question_answered=$2, updated_at=$3 WHERE id=$1`,
		id, lastAnswered, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepository) FinalizeSubmission(ctx context.Context, submission domain.Submission) error {
	var allScores []byte
	if submission.AllScores != nil {
		raw, err := json.Marshal(submission.AllScores)
		if err != nil {
			return fmt.Errorf("marshal scores: %w", err)
		}
		allScores = raw
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE submissions SET
			status=$2, email=$3, updated_at=$4,
			primary_type=$5, primary_type_name=$6, primary_percentage=$7,
			secondary_type=$8, secondary_type_name=$9, secondary_percentage=$10,
			all_scores=$11
		WHERE id=$1`,
		submission.ID, string(submission.Status), submission.Email, submission.UpdatedAt,
		categoryStr(submission.PrimaryType), submission.PrimaryTypeName, submission.PrimaryPercentage,
		categoryStr(submission.SecondaryType), submission.SecondaryTypeName, submission.SecondaryPercentage,
		allScores,
	)
	if err != nil {
		return fmt.Errorf("finalize submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *SubmissionRepository) AnswersFor(ctx context.Context, submissionID string) ([]domain.Answer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, submission_id, question_index, option_id, question_text, answer_text
		FROM answers WHERE submission_id=$1 ORDER BY question_index ASC`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()
	return collectAnswers(rows)
}

func (r *SubmissionRepository) ListSubmissions(ctx context.Context, filter domain.SubmissionFilter) ([]domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions`
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, "status=$"+strconv.Itoa(len(args)))
	}
	if filter.Device != "" {
		args = append(args, string(filter.Device))
		conditions = append(conditions, "device=$"+strconv.Itoa(len(args)))
	}
	if filter.PrimaryType != "" {
		args = append(args, string(filter.PrimaryType))
		conditions = append(conditions, "primary_type=$"+strconv.Itoa(len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []domain.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}

func (r *SubmissionRepository) ListAnswers(ctx context.Context) ([]domain.Answer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, submission_id, question_index, option_id, question_text, answer_text
		FROM answers`)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()
	return collectAnswers(rows)
}

func (r *SubmissionRepository) AnswersForSubmissions(ctx context.Context, submissionIDs []string) ([]domain.Answer, error) {
	if len(submissionIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, submission_id, question_index, option_id, question_text, answer_text
		FROM answers WHERE submission_id = ANY($1::uuid[]) ORDER BY question_index ASC`, submissionIDs)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()
	return collectAnswers(rows)
}

func scanSubmission(row pgx.Row) (domain.Submission, error) {
	var (
		submission     domain.Submission
		status, device string
		primaryType    *string
		secondaryType  *string
		allScores      []byte
	)
	err := row.Scan(
		&submission.ID, &submission.CreatedAt, &submission.UpdatedAt,
		&submission.Email, &status, &device, &submission.LastQuestionAnswered,
		&primaryType, &submission.PrimaryTypeName, &submission.PrimaryPercentage,
		&secondaryType, &submission.SecondaryTypeName, &submission.SecondaryPercentage,
		&allScores,
	)
	if err != nil {
		return domain.Submission{}, err
	}
	submission.Status = domain.Status(status)
	submission.Device = domain.Device(device)
	if primaryType != nil {
		c := domain.Category(*primaryType)
		submission.PrimaryType = &c
	}
	if secondaryType != nil {
		c := domain.Category(*secondaryType)
		submission.SecondaryType = &c
	}
	if len(allScores) > 0 {
		if err := json.Unmarshal(allScores, &submission.AllScores); err != nil {
			return domain.Submission{}, fmt.Errorf("unmarshal scores: %w", err)
		}
	}
	return submission, nil
}

func collectAnswers(rows pgx.Rows) ([]domain.Answer, error) {
	var answers []domain.Answer
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(&a.ID, &a.CreatedAt, &a.SubmissionID, &a.QuestionIndex, &a.OptionID, &a.QuestionText, &a.AnswerText); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func categoryStr(c *domain.Category) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}
