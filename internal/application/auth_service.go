package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-app-api/internal/domain/repository"
	"github.com/oksasatya/recipe-app-api/pkg/helpers"
)

// TokenCache maps token keys to user IDs in front of the token table.
type TokenCache interface {
	Get(ctx context.Context, key string) (int64, bool, error)
	Set(ctx context.Context, key string, userID int64) error
	Delete(ctx context.Context, key string) error
}

type AuthService struct {
	Users  repo.UserRepository
	Tokens repo.TokenRepository
	Cache  TokenCache
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, tokens repo.TokenRepository, cache TokenCache, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuthService{Users: users, Tokens: tokens, Cache: cache, Logger: logger}
}

// IssueToken checks the credentials and returns the user's token, creating it on first use.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (*entity.Token, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	key, err := helpers.GenTokenKey()
	if err != nil {
		return nil, err
	}
	tok, err := s.Tokens.GetOrCreate(ctx, &entity.Token{Key: key, UserID: u.ID})
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		return nil, err
	}
	return tok, nil
}

// Authenticate resolves a token key to its active owner.
func (s *AuthService) Authenticate(ctx context.Context, key string) (*entity.User, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrUnauthenticated
	}

	userID, cached := s.cachedOwner(ctx, key)
	if !cached {
		tok, err := s.Tokens.GetByKey(ctx, key)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrUnauthenticated
			}
			return nil, err
		}
		userID = tok.UserID
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.evict(ctx, key)
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrUnauthenticated
	}
	if !cached && s.Cache != nil {
		if err := s.Cache.Set(ctx, key, userID); err != nil {
			s.Logger.WithError(err).Warn("token cache set failed")
		}
	}
	return u, nil
}

// RevokeToken deletes the user's token; the next IssueToken creates a new key.
func (s *AuthService) RevokeToken(ctx context.Context, u *entity.User) error {
	tok, err := s.Tokens.DeleteByUserID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	s.evict(ctx, tok.Key)
	return nil
}

func (s *AuthService) cachedOwner(ctx context.Context, key string) (int64, bool) {
	if s.Cache == nil {
		return 0, false
	}
	id, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		// cache errors fall through to the database
		s.Logger.WithError(err).Warn("token cache get failed")
		return 0, false
	}
	return id, ok
}

func (s *AuthService) evict(ctx context.Context, key string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, key); err != nil {
		s.Logger.WithError(err).Warn("token cache delete failed")
	}
}
