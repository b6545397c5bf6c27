package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	contactdomain "github.com/zerorisk/claimledger/internal/contact/domain"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) contactdomain.Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, hospitalID, id snowflake.ID) (*contactdomain.Contact, error) {
	var contact contactdomain.Contact
	err := s.db.WithContext(ctx).
		Where("hospital_id = ? AND id = ?", hospitalID, id).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contactdomain.ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (s *Store) List(ctx context.Context, hospitalID snowflake.ID, payerType string) ([]contactdomain.Contact, error) {
	query := s.db.WithContext(ctx).Where("hospital_id = ?", hospitalID)
	if payerType != "" {
		query = query.Where("payer_type = ?", payerType)
	}
	var contacts []contactdomain.Contact
	if err := query.Order("name ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *Store) Put(ctx context.Context, contact *contactdomain.Contact) error {
	return s.db.WithContext(ctx).Save(contact).Error
}

func (s *Store) Delete(ctx context.Context, hospitalID, id snowflake.ID) error {
	result := s.db.WithContext(ctx).
		Where("hospital_id = ? AND id = ?", hospitalID, id).
		Delete(&contactdomain.Contact{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contactdomain.ErrContactNotFound
	}
	return nil
}
