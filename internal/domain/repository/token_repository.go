package repository

import (
	"context"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
)

// TokenRepository stores API tokens. A user owns at most one token.
type TokenRepository interface {
	// GetOrCreate returns the user's token, inserting t when none exists.
	GetOrCreate(ctx context.Context, t *entity.Token) (*entity.Token, error)
	GetByKey(ctx context.Context, key string) (*entity.Token, error)
	DeleteByUserID(ctx context.Context, userID int64) (*entity.Token, error)
}
