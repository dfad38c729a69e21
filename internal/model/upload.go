package model

import (
	"time"
)

// Upload tracks a file stored for a form's file field before it is referenced
// by a submission.
type Upload struct {
	ID           string    `db:"id"`
	FormID       string    `db:"form_id"`
	FieldID      string    `db:"field_id"`
	Filename     string    `db:"filename"`
	OriginalName string    `db:"original_name"`
	MimeType     string    `db:"mime_type"`
	Size         int64     `db:"size"`
	StoragePath  string    `db:"storage_path"`
	CreatedAt    time.Time `db:"created_at"`
}
