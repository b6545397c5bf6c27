package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
	"github.com/zerorisk/claimledger/internal/clock"
	"github.com/zerorisk/claimledger/internal/config"
	"github.com/zerorisk/claimledger/internal/events"
	followupdomain "github.com/zerorisk/claimledger/internal/followup/domain"
	"github.com/zerorisk/claimledger/internal/observability/metrics"
	recoverydomain "github.com/zerorisk/claimledger/internal/recovery/domain"
)

// Scheduler periodically scans overdue bills and opens follow-up action
// items. Message delivery is delegated to outbox consumers.
type Scheduler struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node

	followUpStore followupdomain.Store
	outbox        *events.Outbox
	metrics       *metrics.RecoveryMetrics

	interval       time.Duration
	minOverdueDays int

	stop chan struct{}
	done chan struct{}
}

type Param struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Clock         clock.Clock
	GenID         *snowflake.Node
	Config        config.Config
	FollowUpStore followupdomain.Store
	Outbox        *events.Outbox
	Metrics       *metrics.RecoveryMetrics `optional:"true"`
}

const defaultScanInterval = time.Hour

func New(p Param) *Scheduler {
	interval := p.Config.FollowUpInterval
	if interval <= 0 {
		// time.NewTicker panics on non-positive intervals.
		interval = defaultScanInterval
	}
	return &Scheduler{
		db:    p.DB,
		log:   p.Log.Named("scheduler"),
		clock: p.Clock,
		genID: p.GenID,

		followUpStore: p.FollowUpStore,
		outbox:        p.Outbox,
		metrics:       p.Metrics,

		interval:       interval,
		minOverdueDays: p.Config.FollowUpMinOverdueDays,

		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(Register),
)

// Register hooks the scan loop into the fx lifecycle.
func Register(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(s.stop)
			select {
			case <-s.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func (s *Scheduler) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if err := s.ScanOnce(context.Background()); err != nil {
				s.log.Warn("follow-up scan failed", zap.Error(err))
			}
		}
	}
}

// ScanOnce walks every hospital's unpaid bills and opens follow-ups for
// those overdue past the configured threshold. Bills with an open follow-up
// are skipped, so the scan is idempotent across runs.
func (s *Scheduler) ScanOnce(ctx context.Context) error {
	hospitalIDs, err := s.listHospitalIDs(ctx)
	if err != nil {
		return err
	}

	started := time.Now()
	now := s.clock.Now()
	for _, hospitalID := range hospitalIDs {
		if err := s.scanHospital(ctx, hospitalID, now); err != nil {
			s.log.Warn("hospital scan failed",
				zap.String("hospital_id", hospitalID.String()),
				zap.Error(err))
		}
	}
	s.metrics.ObserveScanDuration(time.Since(started))

	var openCount int64
	err = s.db.WithContext(ctx).
		Model(&followupdomain.FollowUp{}).
		Where("status = ?", followupdomain.FollowUpStatusOpen).
		Count(&openCount).Error
	if err == nil {
		s.metrics.SetFollowUpsOpen(int(openCount))
	}
	return nil
}

func (s *Scheduler) scanHospital(ctx context.Context, hospitalID snowflake.ID, now time.Time) error {
	var bills []billdomain.Bill
	err := s.db.WithContext(ctx).
		Where("hospital_id = ? AND received_date IS NULL AND expected_payment_date IS NOT NULL AND expected_payment_date < ?",
			hospitalID, now).
		Find(&bills).Error
	if err != nil {
		return err
	}

	opened := 0
	for _, bill := range bills {
		overdueDays := recoverydomain.DaysOverdue(bill.ExpectedPaymentDate, now)
		if overdueDays < s.minOverdueDays {
			continue
		}

		existing, err := s.followUpStore.FindOpenByBill(ctx, hospitalID, bill.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		followUp := &followupdomain.FollowUp{
			ID:          s.genID.Generate(),
			HospitalID:  hospitalID,
			BillID:      bill.ID,
			Status:      followupdomain.FollowUpStatusOpen,
			Reason:      fmt.Sprintf("bill overdue by %d days", overdueDays),
			OverdueDays: overdueDays,
			OpenedAt:    now,
		}
		if err := s.followUpStore.Put(ctx, followUp); err != nil {
			return err
		}
		opened++

		if err := s.outbox.Publish(ctx, events.Event{
			HospitalID: hospitalID,
			Type:       events.TypeFollowUpOpened,
			DedupeKey:  fmt.Sprintf("follow_up.opened:%s", followUp.ID),
			Payload: map[string]any{
				"follow_up_id": followUp.ID.String(),
				"bill_id":      bill.ID.String(),
				"payer_type":   bill.PayerType,
				"overdue_days": overdueDays,
				"aging_bucket": string(recoverydomain.AgingBucketFor(overdueDays)),
			},
		}); err != nil {
			s.log.Warn("outbox publish failed", zap.Error(err))
		}
	}

	s.metrics.IncFollowUpsOpened(opened)
	if opened > 0 {
		s.log.Info("opened follow-ups",
			zap.String("hospital_id", hospitalID.String()),
			zap.Int("count", opened))
	}
	return nil
}

func (s *Scheduler) listHospitalIDs(ctx context.Context) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	if err := s.db.WithContext(ctx).
		Table("hospitals").
		Select("id").
		Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
