package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rahul-nakum14/formcraft/internal/model"
)

var (
	ErrUploadNotFound = errors.New("upload not found")
)

type UploadRepository interface {
	Create(upload *model.Upload) error
	ByID(id string) (*model.Upload, error)
	ByFormID(formID string) ([]*model.Upload, error)
	Delete(id string) error
}

type uploadRepository struct {
	db *sqlx.DB
}

func NewUploadRepository(db *sqlx.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(upload *model.Upload) error {
	query := `INSERT INTO uploads (id, form_id, field_id, filename, original_name, mime_type, size, storage_path, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		upload.ID,
		upload.FormID,
		upload.FieldID,
		upload.Filename,
		upload.OriginalName,
		upload.MimeType,
		upload.Size,
		upload.StoragePath,
		upload.CreatedAt,
	)

	return err
}

func (r *uploadRepository) ByID(id string) (*model.Upload, error) {
	upload := &model.Upload{}
	query := `SELECT * FROM uploads WHERE id = $1`

	err := r.db.Get(upload, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUploadNotFound
	}

	return upload, err
}

func (r *uploadRepository) ByFormID(formID string) ([]*model.Upload, error) {
	var uploads []*model.Upload
	query := `SELECT * FROM uploads WHERE form_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&uploads, query, formID)
	if err != nil {
		return nil, err
	}

	return uploads, nil
}

func (r *uploadRepository) Delete(id string) error {
	query := `DELETE FROM uploads WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUploadNotFound
	}

	return nil
}
