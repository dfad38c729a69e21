package repository

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rahul-nakum14/formcraft/internal/model"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
)

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	ByFormID(formID string) ([]*model.Submission, error)
	ByFormIDInRange(formID string, start, end time.Time) ([]*model.Submission, error)
	CountByFormID(formID string) (int, error)
	CountByUserID(userID string) (int, error)
}

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	query := `INSERT INTO submissions (id, form_id, data, ip_address, user_agent, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		submission.ID,
		submission.FormID,
		submission.Data,
		submission.IPAddress,
		submission.UserAgent,
		submission.CreatedAt,
	)

	return err
}

func (r *submissionRepository) ByFormID(formID string) ([]*model.Submission, error) {
	var submissions []*model.Submission
	query := `SELECT * FROM submissions WHERE form_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&submissions, query, formID)
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ByFormIDInRange(formID string, start, end time.Time) ([]*model.Submission, error) {
	var submissions []*model.Submission
	query := `SELECT * FROM submissions
	          WHERE form_id = $1 AND created_at >= $2 AND created_at <= $3
	          ORDER BY created_at DESC`

	err := r.db.Select(&submissions, query, formID, start, end)
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) CountByFormID(formID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM submissions WHERE form_id = $1`
	err := r.db.QueryRow(query, formID).Scan(&count)
	return count, err
}

// CountByUserID counts submissions across all of an owner's forms.
func (r *submissionRepository) CountByUserID(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM submissions s
	          JOIN forms f ON f.id = s.form_id
	          WHERE f.user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}
