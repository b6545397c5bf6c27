package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditdomain "github.com/zerorisk/claimledger/internal/audit/domain"
	"github.com/zerorisk/claimledger/internal/clock"
	"github.com/zerorisk/claimledger/internal/hospitalcontext"
	obslogger "github.com/zerorisk/claimledger/internal/observability/logger"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  auditdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  auditdomain.Repository
}

func NewService(p ServiceParam) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// AuditLog records a mutation. Actor identity falls back to the request
// context when not supplied; a nil tx uses the default connection. Audit
// failures are reported to the caller but callers usually ignore them.
func (s *Service) AuditLog(ctx context.Context, tx *gorm.DB, actorType string, actorID *string, action, targetType string, targetID *string, metadata map[string]any) error {
	if s == nil {
		return nil
	}
	db := tx
	if db == nil {
		db = s.db
	}

	if actorType == "" {
		actorType = string(auditdomain.ActorTypeSystem)
		if userID, ok := hospitalcontext.UserIDFromContext(ctx); ok {
			actorType = string(auditdomain.ActorTypeUser)
			id := userID.String()
			actorID = &id
		}
	}

	entry := &auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  actorType,
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   datatypes.JSONMap{},
		CreatedAt:  s.clock.Now(),
	}
	if hospitalID, ok := hospitalcontext.HospitalIDFromContext(ctx); ok {
		entry.HospitalID = &hospitalID
	}
	// Audit rows outlive retention windows; identifiers go in masked.
	for key, value := range obslogger.MaskJSON(metadata) {
		entry.Metadata[key] = value
	}

	if err := s.repo.Insert(ctx, db, entry); err != nil {
		s.log.Warn("audit insert failed", zap.String("action", action), zap.Error(err))
		return err
	}
	return nil
}

// List returns recent audit entries for the request's hospital.
func (s *Service) List(ctx context.Context, filter auditdomain.ListFilter) ([]*auditdomain.AuditLog, error) {
	if filter.HospitalID == 0 {
		if hospitalID, ok := hospitalcontext.HospitalIDFromContext(ctx); ok {
			filter.HospitalID = hospitalID
		}
	}
	return s.repo.List(ctx, s.db, filter)
}
