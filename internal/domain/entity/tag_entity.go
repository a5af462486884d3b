package entity

import "time"

// Tag is a user-owned label for recipes
type Tag struct {
	ID        int64
	Name      string
	UserID    int64
	CreatedAt time.Time
}
