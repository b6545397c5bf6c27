package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	followupdomain "github.com/zerorisk/claimledger/internal/followup/domain"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) followupdomain.Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context, hospitalID snowflake.ID, status followupdomain.FollowUpStatus) ([]followupdomain.FollowUp, error) {
	query := s.db.WithContext(ctx).Where("hospital_id = ?", hospitalID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var followUps []followupdomain.FollowUp
	if err := query.Order("opened_at DESC").Find(&followUps).Error; err != nil {
		return nil, err
	}
	return followUps, nil
}

func (s *Store) FindOpenByBill(ctx context.Context, hospitalID, billID snowflake.ID) (*followupdomain.FollowUp, error) {
	var followUp followupdomain.FollowUp
	err := s.db.WithContext(ctx).
		Where("hospital_id = ? AND bill_id = ? AND status = ?",
			hospitalID, billID, followupdomain.FollowUpStatusOpen).
		First(&followUp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &followUp, nil
}

func (s *Store) Put(ctx context.Context, followUp *followupdomain.FollowUp) error {
	return s.db.WithContext(ctx).Save(followUp).Error
}
