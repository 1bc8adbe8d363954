package persistence

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// AuditMetadata stores the free-form audit payload as JSONB
type AuditMetadata map[string]any

// Value implements driver.Valuer for JSONB storage
func (m AuditMetadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB retrieval
func (m *AuditMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = AuditMetadata{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AuditMetadata", value)
	}
	return json.Unmarshal(bytes, m)
}

// AuditLog is one immutable record of a financial mutation
type AuditLog struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	Action     string        `gorm:"type:varchar(100);not null;index"`
	EntityType string        `gorm:"type:varchar(100);not null;index:idx_audit_entity"`
	EntityID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_audit_entity"`
	Metadata   AuditMetadata `gorm:"type:jsonb"`
	CreatedAt  time.Time     `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

// GormAuditSink persists audit records to Postgres. Failures are logged and
// swallowed so an audit outage never fails the audited operation.
type GormAuditSink struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormAuditSink creates a new GormAuditSink
func NewGormAuditSink(db *gorm.DB, logger *zap.Logger) *GormAuditSink {
	return &GormAuditSink{db: db, logger: logger}
}

// Record writes one audit entry, fire-and-forget
func (s *GormAuditSink) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, metadata map[string]any) {
	entry := AuditLog{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   AuditMetadata(metadata),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.logger.Error("failed to write audit log",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
	}
}

// Ensure GormAuditSink implements AuditSink
var _ shared.AuditSink = (*GormAuditSink)(nil)
