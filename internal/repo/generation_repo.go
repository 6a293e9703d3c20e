package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/choibenassist/go-ai-backend/internal/domain"
)

// ErrNotFound indicates a requested row does not exist.
var ErrNotFound = errors.New("not found")

// CreateGenerationRecord appends one row to the generation audit log.
func CreateGenerationRecord(ctx context.Context, db *gorm.DB, userID string, kind domain.FeatureKind, status, model string, latency time.Duration) (*domain.GenerationRecord, error) {
	rec := &domain.GenerationRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      string(kind),
		Status:    status,
		Model:     model,
		LatencyMS: latency.Milliseconds(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// GenerationStats returns the total number of audit rows and the timestamp
// of the most recent one. Used by the detailed health endpoint.
func GenerationStats(ctx context.Context, db *gorm.DB) (count int64, last *time.Time, err error) {
	if err = db.WithContext(ctx).Model(&domain.GenerationRecord{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}
	var rec domain.GenerationRecord
	if err = db.WithContext(ctx).Order("created_at DESC").First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return count, nil, nil
		}
		return 0, nil, err
	}
	return count, &rec.CreatedAt, nil
}
