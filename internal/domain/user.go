package domain

import "time"

type UserStatus string

const (
	StatusInactive UserStatus = "inactive"
	StatusActive   UserStatus = "active"
)

type User struct {
	Id                 int64
	Email              string
	PassHash           string
	Status             UserStatus
	ActivationToken    string
	PasswordResetToken string
	FullName           string
	About              string
	CreatedAt          time.Time
}

// Registration carries the fields accepted at signup. Profile fields are
// stored as-is after sanitization, the core never interprets them.
type Registration struct {
	Email    string
	Password string
	FullName string
	About    string
}
