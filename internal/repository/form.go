package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rahul-nakum14/formcraft/internal/model"
)

var (
	ErrFormNotFound = errors.New("form not found")
)

// FormStats aggregates an owner's dashboard counters.
type FormStats struct {
	TotalForms  int `db:"total_forms"`
	ActiveForms int `db:"active_forms"`
	TotalViews  int `db:"total_views"`
}

type FormRepository interface {
	Create(form *model.Form) error
	ByID(userID, formID string) (*model.Form, error)
	ByIDAny(formID string) (*model.Form, error)
	Forms(userID string) ([]*model.Form, error)
	CountUserForms(userID string) (int, error)
	Update(form *model.Form) error
	Delete(userID, formID string) error
	IncrementViews(formID string) error
	Stats(userID string) (*FormStats, error)
}

type formRepository struct {
	db *sqlx.DB
}

func NewFormRepository(db *sqlx.DB) FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) Create(form *model.Form) error {
	query := `INSERT INTO forms (id, user_id, title, description, status, fields, settings, theme, expires_at, views, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(query,
		form.ID,
		form.UserID,
		form.Title,
		form.Description,
		form.Status,
		form.Fields,
		form.Settings,
		form.Theme,
		form.ExpiresAt,
		form.Views,
		form.CreatedAt,
		form.UpdatedAt,
	)

	return err
}

func (r *formRepository) ByID(userID, formID string) (*model.Form, error) {
	form := &model.Form{}
	query := `SELECT * FROM forms WHERE id = $1 AND user_id = $2`

	err := r.db.Get(form, query, formID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrFormNotFound
	}

	return form, err
}

// ByIDAny looks a form up without an ownership filter. Used by the public
// surface, which gates on publication status instead.
func (r *formRepository) ByIDAny(formID string) (*model.Form, error) {
	form := &model.Form{}
	query := `SELECT * FROM forms WHERE id = $1`

	err := r.db.Get(form, query, formID)
	if err == sql.ErrNoRows {
		return nil, ErrFormNotFound
	}

	return form, err
}

func (r *formRepository) Forms(userID string) ([]*model.Form, error) {
	var forms []*model.Form
	query := `SELECT * FROM forms WHERE user_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&forms, query, userID)
	if err != nil {
		return nil, err
	}

	return forms, nil
}

func (r *formRepository) CountUserForms(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM forms WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *formRepository) Update(form *model.Form) error {
	query := `UPDATE forms
	          SET title = $1, description = $2, status = $3, fields = $4, settings = $5, theme = $6, expires_at = $7, updated_at = $8
	          WHERE id = $9 AND user_id = $10`

	result, err := r.db.Exec(query,
		form.Title,
		form.Description,
		form.Status,
		form.Fields,
		form.Settings,
		form.Theme,
		form.ExpiresAt,
		time.Now(),
		form.ID,
		form.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFormNotFound
	}

	return nil
}

func (r *formRepository) Delete(userID, formID string) error {
	query := `DELETE FROM forms WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, formID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFormNotFound
	}

	return nil
}

// IncrementViews bumps the lifetime view counter atomically in SQL so
// concurrent public fetches never lose an increment.
func (r *formRepository) IncrementViews(formID string) error {
	query := `UPDATE forms SET views = views + 1 WHERE id = $1`
	result, err := r.db.Exec(query, formID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFormNotFound
	}

	return nil
}

func (r *formRepository) Stats(userID string) (*FormStats, error) {
	stats := &FormStats{}
	query := `SELECT COUNT(*) AS total_forms,
	                 COALESCE(SUM(CASE WHEN status = $1 THEN 1 ELSE 0 END), 0) AS active_forms,
	                 COALESCE(SUM(views), 0) AS total_views
	          FROM forms WHERE user_id = $2`

	err := r.db.Get(stats, query, model.FormStatusPublished, userID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
