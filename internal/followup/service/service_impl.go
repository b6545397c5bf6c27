package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zerorisk/claimledger/internal/clock"
	followupdomain "github.com/zerorisk/claimledger/internal/followup/domain"
	"github.com/zerorisk/claimledger/internal/hospitalcontext"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Store followupdomain.Store
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	store followupdomain.Store
}

func NewService(p ServiceParam) followupdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("followup.service"),
		clock: p.Clock,
		store: p.Store,
	}
}

func (s *Service) List(ctx context.Context, status string) ([]followupdomain.FollowUp, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return nil, err
	}

	switch followupdomain.FollowUpStatus(status) {
	case "", followupdomain.FollowUpStatusOpen, followupdomain.FollowUpStatusClosed:
	default:
		return nil, followupdomain.ErrInvalidStatus
	}
	return s.store.List(ctx, hospitalID, followupdomain.FollowUpStatus(status))
}

func (s *Service) Close(ctx context.Context, id string) (*followupdomain.FollowUp, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return nil, err
	}
	followUpID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, followupdomain.ErrInvalidID
	}

	var followUp followupdomain.FollowUp
	err = s.db.WithContext(ctx).
		Where("hospital_id = ? AND id = ?", hospitalID, followUpID).
		First(&followUp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, followupdomain.ErrFollowUpNotFound
		}
		return nil, err
	}
	if followUp.Status != followupdomain.FollowUpStatusOpen {
		return nil, followupdomain.ErrFollowUpNotOpen
	}

	now := s.clock.Now()
	followUp.Status = followupdomain.FollowUpStatusClosed
	followUp.ClosedAt = &now
	if userID, ok := hospitalcontext.UserIDFromContext(ctx); ok {
		closedBy := userID.String()
		followUp.ClosedBy = &closedBy
	}

	if err := s.store.Put(ctx, &followUp); err != nil {
		return nil, err
	}
	return &followUp, nil
}

func (s *Service) hospitalID(ctx context.Context) (snowflake.ID, error) {
	if hospitalID, ok := hospitalcontext.HospitalIDFromContext(ctx); ok {
		return hospitalID, nil
	}
	return 0, followupdomain.ErrInvalidHospital
}
