package entity

import (
	"time"
)

// User is the aggregate root for the account domain
// Password holds the bcrypt hash, never the plain value.
type User struct {
	ID          int64
	Email       string
	Password    string
	Name        string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
