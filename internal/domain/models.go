package domain

import "time"

// Generation outcome statuses recorded in the audit log.
const (
	GenStatusOK            = "ok"
	GenStatusNotFound      = "not_found"
	GenStatusUpstreamError = "upstream_error"
	GenStatusInvalidOutput = "invalid_output"
)

// GenerationRecord is one row of the local generation audit log. Nothing
// user-visible is persisted; the record carries operational metadata only
// (who asked for what, how it went, and how long it took).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: learner the generation was produced for; indexed.
//   - Kind: feature kind (plan|todo|analysis|advice|goals).
//   - Status: ok|not_found|upstream_error|invalid_output.
//   - Model: LLM model identifier used for the call.
//   - LatencyMS: wall-clock duration of the full generate pipeline.
//   - CreatedAt: timestamp managed by GORM.
type GenerationRecord struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index:idx_user_generations"`
	Kind      string    `json:"kind"       gorm:"type:varchar(16);not null;check:kind IN ('plan','todo','analysis','advice','goals')"`
	Status    string    `json:"status"     gorm:"type:varchar(24);not null"`
	Model     string    `json:"model"      gorm:"type:varchar(64);not null"`
	LatencyMS int64     `json:"latency_ms" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName returns the database table name for GenerationRecord.
func (GenerationRecord) TableName() string { return "generation_records" }

// Idempotency records a previously completed generation keyed by
// (user_id, kind, key). It lets clients retry the expensive POST endpoints
// without paying for a second LLM call: the stored response body is replayed
// until the record expires.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_kind_key,priority:1"`
	Kind      string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_kind_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_kind_key,priority:3"`
	Body      string    `gorm:"type:TEXT NOT NULL"` // stored JSON response
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
