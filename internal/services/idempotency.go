package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/choibenassist/go-ai-backend/internal/repo"
)

// IdempotencyService stores and replays successful generation responses.
//
// Entries are keyed by (user, feature kind, client key) and expire after TTL.
// It backs both the HTTP replay lookup performed by middleware and the body
// retrieval done by handlers.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
}

// NewIdempotencyService constructs the service. A non-positive TTL defaults
// to 24 hours.
func NewIdempotencyService(db *gorm.DB, ttl time.Duration) *IdempotencyService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyService{DB: db, TTL: ttl}
}

// Exists reports whether a non-expired entry is stored for the tuple.
// Matches the middleware lookup signature.
func (s *IdempotencyService) Exists(ctx context.Context, userID, kind, key string, now time.Time) (bool, error) {
	_, err := repo.GetIdempotency(ctx, s.DB, userID, kind, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the stored response body and status for a non-expired entry.
func (s *IdempotencyService) Get(ctx context.Context, userID, kind, key string, now time.Time) (string, int, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, userID, kind, key, now)
	if err != nil {
		return "", 0, err
	}
	return rec.Body, rec.Status, nil
}

// Put stores a successful response body. A concurrent duplicate insert is
// not an error; the first writer wins and later replays serve its body.
func (s *IdempotencyService) Put(ctx context.Context, userID, kind, key, body string, status int) error {
	_, err := repo.CreateIdempotency(ctx, s.DB, userID, kind, key, body, status, s.TTL)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}
