package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// FileValue is the stored descriptor for a file answer. Raw bytes never pass
// through the submission pipeline.
type FileValue struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
	LastModified int64  `json:"lastModified,omitempty"`
	URL          string `json:"url,omitempty"`
}

// SubmissionData maps field ids to submitted values, stored as a JSON column.
type SubmissionData map[string]any

func (d SubmissionData) Value() (driver.Value, error) {
	if d == nil {
		d = SubmissionData{}
	}
	return json.Marshal(d)
}

func (d *SubmissionData) Scan(src any) error {
	return scanJSON(src, d)
}

type Submission struct {
	ID        string         `db:"id" json:"id"`
	FormID    string         `db:"form_id" json:"formId"`
	Data      SubmissionData `db:"data" json:"data"`
	IPAddress string         `db:"ip_address" json:"ipAddress,omitempty"`
	UserAgent string         `db:"user_agent" json:"userAgent,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}
