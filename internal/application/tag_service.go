package application

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-app-api/internal/domain/repository"
	"github.com/oksasatya/recipe-app-api/pkg/helpers"
)

const maxTagNameLen = 255

type TagService struct {
	Repo   repo.TagRepository
	Logger *logrus.Logger
}

func NewTagService(repo repo.TagRepository, logger *logrus.Logger) *TagService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &TagService{Repo: repo, Logger: logger}
}

// CreateTag stores a tag owned by u.
func (s *TagService) CreateTag(ctx context.Context, u *entity.User, name string) (*entity.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, requiredField("name")
	}
	if utf8.RuneCountInString(name) > maxTagNameLen {
		return nil, &ValidationError{Field: "name", Message: "must be at most 255 characters long"}
	}
	t := &entity.Tag{Name: name, UserID: u.ID}
	if err := s.Repo.Create(ctx, t); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("create tag failed")
		return nil, err
	}
	return t, nil
}

// ListTags returns u's tags, name descending.
func (s *TagService) ListTags(ctx context.Context, u *entity.User) ([]entity.Tag, error) {
	return s.Repo.ListByUser(ctx, u.ID)
}

// DeleteTag removes one of u's tags. Tags of other users report ErrTagNotFound.
func (s *TagService) DeleteTag(ctx context.Context, u *entity.User, tagID int64) error {
	if err := s.Repo.DeleteForUser(ctx, u.ID, tagID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	return nil
}
