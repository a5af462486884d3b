// Package testkit provides in-memory repositories for service and handler tests.
package testkit

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	"github.com/oksasatya/recipe-app-api/internal/domain/repository"
)

// Store backs the user, token and tag repositories with maps.
type Store struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]entity.User
	tokens map[string]entity.Token
	tags   map[int64]entity.Tag
}

func NewStore() *Store {
	return &Store{
		users:  map[int64]entity.User{},
		tokens: map[string]entity.Token{},
		tags:   map[int64]entity.Tag{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// Users returns the store as a UserRepository.
func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

// Tokens returns the store as a TokenRepository.
func (s *Store) Tokens() repository.TokenRepository { return (*tokenRepo)(s) }

// Tags returns the store as a TagRepository.
func (s *Store) Tags() repository.TagRepository { return (*tagRepo)(s) }

// TagCount returns the number of stored tags across all users.
func (s *Store) TagCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tags)
}

// UserCount returns the number of stored users.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	u.ID = s.id()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (r *userRepo) List(_ context.Context, limit, offset int) ([]entity.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []entity.User{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type tokenRepo Store

func (r *tokenRepo) GetOrCreate(_ context.Context, t *entity.Token) (*entity.Token, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tokens {
		if existing.UserID == t.UserID {
			return &existing, nil
		}
	}
	tok := entity.Token{Key: t.Key, UserID: t.UserID, CreatedAt: time.Now()}
	s.tokens[tok.Key] = tok
	return &tok, nil
}

func (r *tokenRepo) GetByKey(_ context.Context, key string) (*entity.Token, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tok, nil
}

func (r *tokenRepo) DeleteByUserID(_ context.Context, userID int64) (*entity.Token, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, tok := range s.tokens {
		if tok.UserID == userID {
			delete(s.tokens, key)
			return &tok, nil
		}
	}
	return nil, repository.ErrNotFound
}

type tagRepo Store

// errEmptyTagName mirrors the CHECK constraint on tags.name.
var errEmptyTagName = errors.New("tags.name must not be empty")

func (r *tagRepo) Create(_ context.Context, t *entity.Tag) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Name == "" {
		return errEmptyTagName
	}
	t.ID = s.id()
	t.CreatedAt = time.Now()
	s.tags[t.ID] = *t
	return nil
}

func (r *tagRepo) ListByUser(_ context.Context, userID int64) ([]entity.Tag, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Tag, 0)
	for _, t := range s.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name > out[j].Name
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *tagRepo) DeleteForUser(_ context.Context, userID, tagID int64) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tags[tagID]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.tags, tagID)
	return nil
}

// MapTokenCache is an in-memory TokenCache that counts hits.
type MapTokenCache struct {
	mu      sync.Mutex
	entries map[string]int64
	Hits    int
}

func NewMapTokenCache() *MapTokenCache {
	return &MapTokenCache{entries: map[string]int64{}}
}

func (c *MapTokenCache) Get(_ context.Context, key string) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.entries[key]
	if ok {
		c.Hits++
	}
	return id, ok, nil
}

func (c *MapTokenCache) Set(_ context.Context, key string, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = userID
	return nil
}

func (c *MapTokenCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len reports the number of cached keys.
func (c *MapTokenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// RecordingPublisher captures published jobs.
type RecordingPublisher struct {
	mu   sync.Mutex
	Jobs []any
	Err  error
}

func (p *RecordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Jobs = append(p.Jobs, body)
	return nil
}
