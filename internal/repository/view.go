package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rahul-nakum14/formcraft/internal/model"
)

type ViewRepository interface {
	Create(view *model.ViewRecord) error
	ByFormID(formID string) ([]*model.ViewRecord, error)
	ByFormIDInRange(formID string, start, end time.Time) ([]*model.ViewRecord, error)
	CountByFormID(formID string) (int, error)
}

type viewRepository struct {
	db *sqlx.DB
}

func NewViewRepository(db *sqlx.DB) ViewRepository {
	return &viewRepository{db: db}
}

func (r *viewRepository) Create(view *model.ViewRecord) error {
	query := `INSERT INTO form_views (id, form_id, ip_address, user_agent, referrer, country, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		view.ID,
		view.FormID,
		view.IPAddress,
		view.UserAgent,
		view.Referrer,
		view.Country,
		view.CreatedAt,
	)

	return err
}

func (r *viewRepository) ByFormID(formID string) ([]*model.ViewRecord, error) {
	var views []*model.ViewRecord
	query := `SELECT * FROM form_views WHERE form_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&views, query, formID)
	if err != nil {
		return nil, err
	}

	return views, nil
}

func (r *viewRepository) ByFormIDInRange(formID string, start, end time.Time) ([]*model.ViewRecord, error) {
	var views []*model.ViewRecord
	query := `SELECT * FROM form_views
	          WHERE form_id = $1 AND created_at >= $2 AND created_at <= $3
	          ORDER BY created_at DESC`

	err := r.db.Select(&views, query, formID, start, end)
	if err != nil {
		return nil, err
	}

	return views, nil
}

func (r *viewRepository) CountByFormID(formID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM form_views WHERE form_id = $1`
	err := r.db.QueryRow(query, formID).Scan(&count)
	return count, err
}
