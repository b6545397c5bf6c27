package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	authdomain "github.com/zerorisk/claimledger/internal/auth/domain"
	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
	"github.com/zerorisk/claimledger/internal/clock"
	"github.com/zerorisk/claimledger/internal/config"
	"github.com/zerorisk/claimledger/internal/events"
	followupdomain "github.com/zerorisk/claimledger/internal/followup/domain"
	followuprepository "github.com/zerorisk/claimledger/internal/followup/repository"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&authdomain.Hospital{},
		&billdomain.Bill{},
		&billdomain.Visit{},
		&billdomain.Patient{},
		&followupdomain.FollowUp{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	err = db.Exec(`CREATE TABLE recovery_events (
		id INTEGER PRIMARY KEY,
		hospital_id INTEGER NOT NULL,
		event_type TEXT NOT NULL,
		payload TEXT,
		dedupe_key TEXT UNIQUE,
		created_at TIMESTAMP NOT NULL
	)`).Error
	if err != nil {
		t.Fatalf("create recovery_events: %v", err)
	}
	return db
}

func newTestScheduler(t *testing.T, db *gorm.DB) *Scheduler {
	t.Helper()
	node, err := snowflake.NewNode(3)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return &Scheduler{
		db:    db,
		log:   zap.NewNop(),
		clock: clock.FixedClock{At: testNow},
		genID: node,

		followUpStore: followuprepository.NewStore(db),
		outbox:        events.NewOutbox(db, node),

		minOverdueDays: 7,
	}
}

func seedHospital(t *testing.T, db *gorm.DB, id snowflake.ID) {
	t.Helper()
	if err := db.Create(&authdomain.Hospital{ID: id, Name: "Scan Hospital", CreatedAt: testNow}).Error; err != nil {
		t.Fatalf("seed hospital: %v", err)
	}
}

func seedBill(t *testing.T, db *gorm.DB, hospitalID snowflake.ID, id int64, overdueDays int, received bool) {
	t.Helper()
	expected := testNow.AddDate(0, 0, -overdueDays)
	bill := billdomain.Bill{
		ID:                  snowflake.ID(id),
		HospitalID:          hospitalID,
		VisitID:             snowflake.ID(id + 2000),
		BillAmount:          10000,
		PayerType:           "esic",
		ExpectedPaymentDate: &expected,
		CreatedAt:           testNow,
		UpdatedAt:           testNow,
	}
	if received {
		amount := int64(10000)
		receivedAt := testNow.AddDate(0, 0, -1)
		bill.ReceivedAmount = &amount
		bill.ReceivedDate = &receivedAt
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("seed bill: %v", err)
	}
}

func openFollowUps(t *testing.T, db *gorm.DB, hospitalID snowflake.ID) []followupdomain.FollowUp {
	t.Helper()
	var followUps []followupdomain.FollowUp
	err := db.Where("hospital_id = ? AND status = ?", hospitalID, followupdomain.FollowUpStatusOpen).
		Find(&followUps).Error
	if err != nil {
		t.Fatalf("list follow-ups: %v", err)
	}
	return followUps
}

func TestNewDefaultsNonPositiveInterval(t *testing.T) {
	db := setupTestDB(t, "scheduler_interval")
	node, err := snowflake.NewNode(3)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	s := New(Param{
		DB:            db,
		Log:           zap.NewNop(),
		Clock:         clock.FixedClock{At: testNow},
		GenID:         node,
		Config:        config.Config{FollowUpInterval: 0, FollowUpMinOverdueDays: 7},
		FollowUpStore: followuprepository.NewStore(db),
		Outbox:        events.NewOutbox(db, node),
	})
	if s.interval <= 0 {
		t.Fatalf("expected positive interval, got %v", s.interval)
	}
}

func TestScanOnceOpensFollowUpForOverdueBill(t *testing.T) {
	db := setupTestDB(t, "scheduler_scan")
	s := newTestScheduler(t, db)

	hospitalID := snowflake.ID(77)
	seedHospital(t, db, hospitalID)
	seedBill(t, db, hospitalID, 1, 10, false)

	if err := s.ScanOnce(context.Background()); err != nil {
		t.Fatalf("ScanOnce returned error: %v", err)
	}

	followUps := openFollowUps(t, db, hospitalID)
	if len(followUps) != 1 {
		t.Fatalf("expected 1 open follow-up, got %d", len(followUps))
	}
	if followUps[0].OverdueDays != 10 {
		t.Fatalf("expected 10 overdue days, got %d", followUps[0].OverdueDays)
	}
	if followUps[0].Reason != "bill overdue by 10 days" {
		t.Fatalf("unexpected reason %q", followUps[0].Reason)
	}

	var eventCount int64
	if err := db.Table("recovery_events").Where("event_type = ?", events.TypeFollowUpOpened).Count(&eventCount).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if eventCount != 1 {
		t.Fatalf("expected 1 outbox event, got %d", eventCount)
	}
}

func TestScanOnceIsIdempotent(t *testing.T) {
	db := setupTestDB(t, "scheduler_idempotent")
	s := newTestScheduler(t, db)

	hospitalID := snowflake.ID(88)
	seedHospital(t, db, hospitalID)
	seedBill(t, db, hospitalID, 1, 14, false)

	if err := s.ScanOnce(context.Background()); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if err := s.ScanOnce(context.Background()); err != nil {
		t.Fatalf("second scan: %v", err)
	}

	followUps := openFollowUps(t, db, hospitalID)
	if len(followUps) != 1 {
		t.Fatalf("expected 1 open follow-up after rescan, got %d", len(followUps))
	}
}

func TestScanOnceSkipsBelowThresholdAndReceived(t *testing.T) {
	db := setupTestDB(t, "scheduler_skip")
	s := newTestScheduler(t, db)

	hospitalID := snowflake.ID(99)
	seedHospital(t, db, hospitalID)
	seedBill(t, db, hospitalID, 1, 3, false)
	seedBill(t, db, hospitalID, 2, 20, true)

	if err := s.ScanOnce(context.Background()); err != nil {
		t.Fatalf("ScanOnce returned error: %v", err)
	}

	if followUps := openFollowUps(t, db, hospitalID); len(followUps) != 0 {
		t.Fatalf("expected no follow-ups, got %d", len(followUps))
	}
}
