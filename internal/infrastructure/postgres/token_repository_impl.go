package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	"github.com/oksasatya/recipe-app-api/internal/domain/repository"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) GetOrCreate(ctx context.Context, t *entity.Token) (*entity.Token, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	out := &entity.Token{}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO auth_tokens (key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING key, user_id, created_at
	`, t.Key, t.UserID)
	if err := row.Scan(&out.Key, &out.UserID, &out.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*entity.Token, error) {
	out := &entity.Token{}
	row := r.pool.QueryRow(ctx, `SELECT key, user_id, created_at FROM auth_tokens WHERE key = $1`, key)
	if err := row.Scan(&out.Key, &out.UserID, &out.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID int64) (*entity.Token, error) {
	out := &entity.Token{}
	row := r.pool.QueryRow(ctx, `
		DELETE FROM auth_tokens WHERE user_id = $1
		RETURNING key, user_id, created_at
	`, userID)
	if err := row.Scan(&out.Key, &out.UserID, &out.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
