package repository

import (
	"context"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
)

// TagRepository persists tags. Every read is scoped to the owning user.
type TagRepository interface {
	Create(ctx context.Context, t *entity.Tag) error
	// ListByUser returns the user's tags ordered by name descending.
	ListByUser(ctx context.Context, userID int64) ([]entity.Tag, error)
	DeleteForUser(ctx context.Context, userID, tagID int64) error
}
