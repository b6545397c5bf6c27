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
	"github.com/zerorisk/claimledger/internal/hospitalcontext"
	templatedomain "github.com/zerorisk/claimledger/internal/template/domain"
	"github.com/zerorisk/claimledger/internal/template/render"
)

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	GenID    *snowflake.Node
	Renderer *render.Renderer
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID    *snowflake.Node
	renderer *render.Renderer
}

func NewService(p ServiceParam) templatedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("template.service"),
		clock: p.Clock,

		genID:    p.GenID,
		renderer: p.Renderer,
	}
}

func (s *Service) Create(ctx context.Context, req templatedomain.CreateTemplateRequest) (*templatedomain.MessageTemplate, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, templatedomain.ErrInvalidName
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, templatedomain.ErrInvalidBody
	}
	channel := req.Channel
	if channel == "" {
		channel = templatedomain.ChannelEmail
	}
	switch channel {
	case templatedomain.ChannelEmail, templatedomain.ChannelWhatsApp, templatedomain.ChannelSMS:
	default:
		return nil, templatedomain.ErrInvalidChannel
	}

	now := s.clock.Now()
	tmpl := &templatedomain.MessageTemplate{
		ID:         s.genID.Generate(),
		HospitalID: hospitalID,
		Name:       name,
		Channel:    channel,
		Subject:    strings.TrimSpace(req.Subject),
		Body:       body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Reject templates that can never render before they are stored.
	if _, err := s.renderer.Render(*tmpl, templatedomain.RenderContext{}); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(tmpl).Error; err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *Service) List(ctx context.Context) ([]templatedomain.MessageTemplate, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return nil, err
	}
	var templates []templatedomain.MessageTemplate
	err = s.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("name ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *Service) Render(ctx context.Context, id string, rc templatedomain.RenderContext) (templatedomain.RenderedMessage, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return templatedomain.RenderedMessage{}, err
	}
	templateID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return templatedomain.RenderedMessage{}, templatedomain.ErrInvalidID
	}

	var tmpl templatedomain.MessageTemplate
	err = s.db.WithContext(ctx).
		Where("hospital_id = ? AND id = ?", hospitalID, templateID).
		First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return templatedomain.RenderedMessage{}, templatedomain.ErrTemplateNotFound
		}
		return templatedomain.RenderedMessage{}, err
	}

	return s.renderer.Render(tmpl, rc)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return err
	}
	templateID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return templatedomain.ErrInvalidID
	}

	result := s.db.WithContext(ctx).
		Where("hospital_id = ? AND id = ?", hospitalID, templateID).
		Delete(&templatedomain.MessageTemplate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return templatedomain.ErrTemplateNotFound
	}
	return nil
}

func (s *Service) hospitalID(ctx context.Context) (snowflake.ID, error) {
	if hospitalID, ok := hospitalcontext.HospitalIDFromContext(ctx); ok {
		return hospitalID, nil
	}
	return 0, templatedomain.ErrInvalidHospital
}
