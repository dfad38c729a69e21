package model

import (
	"time"
)

// ViewRecord is an immutable record of one public form view.
type ViewRecord struct {
	ID        string    `db:"id" json:"id"`
	FormID    string    `db:"form_id" json:"formId"`
	IPAddress string    `db:"ip_address" json:"ipAddress,omitempty"`
	UserAgent string    `db:"user_agent" json:"userAgent,omitempty"`
	Referrer  string    `db:"referrer" json:"referrer,omitempty"`
	Country   string    `db:"country" json:"country,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
