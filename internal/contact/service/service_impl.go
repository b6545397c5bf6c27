package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zerorisk/claimledger/internal/clock"
	contactdomain "github.com/zerorisk/claimledger/internal/contact/domain"
	"github.com/zerorisk/claimledger/internal/hospitalcontext"
)

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Store contactdomain.Store
}

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	store contactdomain.Store
}

func NewService(p ServiceParam) contactdomain.Service {
	return &Service{
		log:   p.Log.Named("contact.service"),
		clock: p.Clock,
		genID: p.GenID,
		store: p.Store,
	}
}

func (s *Service) Create(ctx context.Context, req contactdomain.CreateContactRequest) (*contactdomain.Contact, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, contactdomain.ErrInvalidName
	}

	now := s.clock.Now()
	contact := &contactdomain.Contact{
		ID:         s.genID.Generate(),
		HospitalID: hospitalID,
		Name:       name,
		PayerType:  strings.TrimSpace(req.PayerType),
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.TrimSpace(req.Email),
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Put(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *Service) Update(ctx context.Context, id string, req contactdomain.CreateContactRequest) (*contactdomain.Contact, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return nil, err
	}
	contactID, err := parseID(id)
	if err != nil {
		return nil, contactdomain.ErrInvalidID
	}

	contact, err := s.store.Get(ctx, hospitalID, contactID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		contact.Name = name
	}
	contact.PayerType = strings.TrimSpace(req.PayerType)
	contact.Phone = strings.TrimSpace(req.Phone)
	contact.Email = strings.TrimSpace(req.Email)
	contact.Notes = strings.TrimSpace(req.Notes)
	contact.UpdatedAt = s.clock.Now()

	if err := s.store.Put(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *Service) List(ctx context.Context, payerType string) ([]contactdomain.Contact, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, hospitalID, strings.TrimSpace(payerType))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return err
	}
	contactID, err := parseID(id)
	if err != nil {
		return contactdomain.ErrInvalidID
	}
	return s.store.Delete(ctx, hospitalID, contactID)
}

func (s *Service) hospitalID(ctx context.Context) (snowflake.ID, error) {
	if hospitalID, ok := hospitalcontext.HospitalIDFromContext(ctx); ok {
		return hospitalID, nil
	}
	return 0, contactdomain.ErrInvalidHospital
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
