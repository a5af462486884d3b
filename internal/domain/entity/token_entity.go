package entity

import "time"

// Token is an opaque API key bound 1:1 to a user
type Token struct {
	Key       string
	UserID    int64
	CreatedAt time.Time
}
