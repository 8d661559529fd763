package domain

import "time"

// Board is a named, user-owned collection of pins.
// (email, name) is unique per user, enforced at the storage layer.
type Board struct {
	Id        int64
	Email     string
	Name      string
	CreatedAt time.Time
}
