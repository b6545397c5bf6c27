package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
	"github.com/zerorisk/claimledger/internal/clock"
	"github.com/zerorisk/claimledger/internal/events"
	"github.com/zerorisk/claimledger/internal/hospitalcontext"
	"github.com/zerorisk/claimledger/internal/observability/metrics"
	recoverydomain "github.com/zerorisk/claimledger/internal/recovery/domain"
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Repo    billdomain.Repository
	Outbox  *events.Outbox           `optional:"true"`
	Metrics *metrics.RecoveryMetrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	genID   *snowflake.Node
	repo    billdomain.Repository
	outbox  *events.Outbox
	metrics *metrics.RecoveryMetrics
}

func NewService(p ServiceParam) billdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("bill.service"),
		clock:   p.Clock,
		genID:   p.GenID,
		repo:    p.Repo,
		outbox:  p.Outbox,
		metrics: p.Metrics,
	}
}

// Create stores a single bill together with its visit and patient rows in
// one transaction.
func (s *Service) Create(ctx context.Context, input billdomain.BillInput) (*billdomain.Bill, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var bill *billdomain.Bill
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, txErr := s.createInTx(ctx, tx, hospitalID, input)
		if txErr != nil {
			return txErr
		}
		bill = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("bill created",
		zap.String("hospital_id", hospitalID.String()),
		zap.String("bill_id", bill.ID.String()),
		zap.String("payer_type", bill.PayerType))
	return bill, nil
}

// Import stores a batch of pre-structured rows. The whole batch commits or
// none of it does; a single malformed row rejects the import.
func (s *Service) Import(ctx context.Context, inputs []billdomain.BillInput) (billdomain.ImportResult, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return billdomain.ImportResult{}, err
	}
	if len(inputs) == 0 {
		return billdomain.ImportResult{}, billdomain.ErrEmptyImport
	}
	for _, input := range inputs {
		if err := validateInput(input); err != nil {
			return billdomain.ImportResult{}, err
		}
	}

	created := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, input := range inputs {
			if _, txErr := s.createInTx(ctx, tx, hospitalID, input); txErr != nil {
				return txErr
			}
			created++
		}
		if s.outbox != nil {
			return s.outbox.PublishTx(ctx, tx, events.Event{
				HospitalID: hospitalID,
				Type:       events.TypeBillImported,
				Payload:    map[string]any{"count": created},
			})
		}
		return nil
	})
	if err != nil {
		return billdomain.ImportResult{}, err
	}

	s.metrics.AddBillsImported(created)
	s.log.Info("bills imported",
		zap.String("hospital_id", hospitalID.String()),
		zap.Int("count", created))
	return billdomain.ImportResult{Created: created}, nil
}

// Update patches payment progress onto an existing bill. Recording a
// receipt date publishes a bill.received event exactly once per bill.
func (s *Service) Update(ctx context.Context, id string, req billdomain.UpdateBillRequest) (*billdomain.Bill, error) {
	hospitalID, err := s.hospitalID(ctx)
	if err != nil {
		return nil, err
	}
	billID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, billdomain.ErrInvalidBillID
	}

	bill, err := s.repo.GetBill(ctx, hospitalID, billID)
	if err != nil {
		return nil, err
	}

	receiptRecorded := bill.ReceivedDate == nil && req.ReceivedDate != nil

	if req.ReceivedAmount != nil {
		if *req.ReceivedAmount < 0 {
			return nil, billdomain.ErrInvalidAmount
		}
		bill.ReceivedAmount = req.ReceivedAmount
	}
	if req.ReceivedDate != nil {
		bill.ReceivedDate = req.ReceivedDate
	}
	if req.DeductionAmount != nil {
		if *req.DeductionAmount < 0 {
			return nil, billdomain.ErrInvalidAmount
		}
		bill.DeductionAmount = req.DeductionAmount
	}
	if req.ExpectedAmount != nil {
		if *req.ExpectedAmount < 0 {
			return nil, billdomain.ErrInvalidAmount
		}
		bill.ExpectedAmount = req.ExpectedAmount
	}
	if req.ExpectedPaymentDate != nil {
		bill.ExpectedPaymentDate = req.ExpectedPaymentDate
	}
	if req.InfoQuery != nil {
		query := strings.TrimSpace(*req.InfoQuery)
		if query == "" {
			bill.InfoQuery = nil
			bill.InfoQueryAnsweredAt = nil
		} else {
			bill.InfoQuery = &query
		}
	}
	if req.InfoQueryAnsweredAt != nil {
		bill.InfoQueryAnsweredAt = req.InfoQueryAnsweredAt
	}
	if req.PayerType != nil {
		payerType := strings.ToLower(strings.TrimSpace(*req.PayerType))
		if payerType == "" {
			payerType = recoverydomain.DefaultPayerType
		}
		bill.PayerType = payerType
	}
	bill.UpdatedAt = s.clock.Now()

	if err := s.repo.UpdateBill(ctx, bill); err != nil {
		return nil, err
	}

	if receiptRecorded {
		s.metrics.IncBillsReceived()
	}
	if receiptRecorded && s.outbox != nil {
		if err := s.outbox.Publish(ctx, events.Event{
			HospitalID: hospitalID,
			Type:       events.TypeBillReceived,
			DedupeKey:  "bill.received:" + bill.ID.String(),
			Payload: map[string]any{
				"bill_id":    bill.ID.String(),
				"payer_type": bill.PayerType,
			},
		}); err != nil {
			s.log.Warn("outbox publish failed", zap.Error(err))
		}
	}
	return bill, nil
}

func (s *Service) createInTx(ctx context.Context, tx *gorm.DB, hospitalID snowflake.ID, input billdomain.BillInput) (*billdomain.Bill, error) {
	now := s.clock.Now()

	patient := billdomain.Patient{
		ID:         s.genID.Generate(),
		HospitalID: hospitalID,
		Name:       strings.TrimSpace(input.PatientName),
		CreatedAt:  now,
	}
	if err := tx.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}

	visit := billdomain.Visit{
		ID:         s.genID.Generate(),
		HospitalID: hospitalID,
		PatientID:  patient.ID,
		ClaimID:    trimmedOrNil(input.ClaimID),
		AdmittedAt: input.AdmittedAt,
		CreatedAt:  now,
	}
	if err := tx.WithContext(ctx).Create(&visit).Error; err != nil {
		return nil, err
	}

	payerType := strings.ToLower(strings.TrimSpace(input.PayerType))
	if payerType == "" {
		payerType = recoverydomain.DefaultPayerType
	}

	bill := billdomain.Bill{
		ID:                  s.genID.Generate(),
		HospitalID:          hospitalID,
		VisitID:             visit.ID,
		BillAmount:          input.BillAmount,
		ExpectedAmount:      input.ExpectedAmount,
		DateOfSubmission:    input.DateOfSubmission,
		ExpectedPaymentDate: input.ExpectedPaymentDate,
		PayerType:           payerType,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if len(input.Metadata) > 0 {
		bill.Metadata = datatypes.JSONMap(input.Metadata)
	}
	if err := tx.WithContext(ctx).Create(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *Service) hospitalID(ctx context.Context) (snowflake.ID, error) {
	if hospitalID, ok := hospitalcontext.HospitalIDFromContext(ctx); ok {
		return hospitalID, nil
	}
	return 0, billdomain.ErrInvalidHospital
}

func validateInput(input billdomain.BillInput) error {
	if strings.TrimSpace(input.PatientName) == "" {
		return billdomain.ErrInvalidPatient
	}
	if input.BillAmount <= 0 {
		return billdomain.ErrInvalidAmount
	}
	if input.ExpectedAmount != nil && *input.ExpectedAmount < 0 {
		return billdomain.ErrInvalidAmount
	}
	return nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
