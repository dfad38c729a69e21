package model

import (
	"time"
)

type User struct {
	ID              string     `db:"id" json:"id"`
	Username        string     `db:"username" json:"username"`
	Email           string     `db:"email" json:"email"`
	PasswordHash    string     `db:"password_hash" json:"-"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"emailVerifiedAt,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
