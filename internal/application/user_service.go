package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-app-api/internal/domain/repository"
	"github.com/oksasatya/recipe-app-api/pkg/helpers"
	"github.com/oksasatya/recipe-app-api/pkg/mailer"
)

// JobPublisher enqueues background jobs; *helpers.RabbitPublisher satisfies it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type UserService struct {
	Repo         repo.UserRepository
	Logger       *logrus.Logger
	Pub          JobPublisher
	MailEnabled  bool
	AppName      string
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(repo repo.UserRepository, logger *logrus.Logger) *UserService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &UserService{Repo: repo, Logger: logger}
}

// WithMail enables the welcome email job on registration.
func (s *UserService) WithMail(pub JobPublisher, appName string) *UserService {
	s.Pub = pub
	s.AppName = appName
	s.MailEnabled = pub != nil
	return s
}

// WithSearch enables user indexing and admin search.
func (s *UserService) WithSearch(es *elasticsearch.Client, index string) *UserService {
	s.ES = es
	s.ESUsersIndex = index
	return s
}

// UserExtra carries the optional fields accepted by CreateUser.
type UserExtra struct {
	Name        string
	IsStaff     bool
	IsSuperuser bool
}

// NormalizeEmail lowercases the whole address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser validates, normalizes and persists a new account.
func (s *UserService) CreateUser(ctx context.Context, email, password string, extra UserExtra) (*entity.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, requiredField("email")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:       email,
		Password:    hash,
		Name:        strings.TrimSpace(extra.Name),
		IsActive:    true,
		IsStaff:     extra.IsStaff,
		IsSuperuser: extra.IsSuperuser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		s.Logger.WithError(err).WithField("email", email).Error("create user failed")
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "staff": u.IsStaff}).Info("user created")

	_ = s.indexUser(ctx, u)
	s.enqueueWelcome(ctx, u)
	return u, nil
}

// CreateSuperuser creates a user flagged as staff and superuser.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*entity.User, error) {
	return s.CreateUser(ctx, email, password, UserExtra{IsStaff: true, IsSuperuser: true})
}

// CheckPassword reports whether plain matches the stored hash.
func (s *UserService) CheckPassword(u *entity.User, plain string) bool {
	if u == nil {
		return false
	}
	return helpers.CompareHashAndPassword(u.Password, plain)
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name     *string
	Password *string
}

// UpdateProfile changes the display name and/or password of the caller.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// ListUsers pages through all accounts for the admin surface.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, limit, offset)
}

// hashPassword reports unusable passwords as validation errors on "password".
func hashPassword(plain string) (string, error) {
	hash, err := helpers.HashPassword(plain)
	switch {
	case errors.Is(err, helpers.ErrEmptyPassword):
		return "", requiredField("password")
	case errors.Is(err, helpers.ErrPasswordTooLong):
		return "", &ValidationError{Field: "password", Message: fmt.Sprintf("must be at most %d bytes long", helpers.MaxPasswordBytes)}
	}
	return hash, err
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if !s.MailEnabled || s.Pub == nil {
		return
	}
	job := mailer.NewWelcomeJob(u.Email, u.Name, s.AppName)
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to publish welcome email")
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"is_staff":   u.IsStaff,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESUsersIndex,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search users: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
