package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zerorisk/claimledger/internal/clock"
	followupdomain "github.com/zerorisk/claimledger/internal/followup/domain"
	followuprepository "github.com/zerorisk/claimledger/internal/followup/repository"
	"github.com/zerorisk/claimledger/internal/hospitalcontext"
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
	if err := db.AutoMigrate(&followupdomain.FollowUp{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(db *gorm.DB) *Service {
	return &Service{
		db:    db,
		log:   zap.NewNop(),
		clock: clock.FixedClock{At: testNow},
		store: followuprepository.NewStore(db),
	}
}

func seedFollowUp(t *testing.T, db *gorm.DB, hospitalID snowflake.ID, id int64, status followupdomain.FollowUpStatus) {
	t.Helper()
	followUp := followupdomain.FollowUp{
		ID:          snowflake.ID(id),
		HospitalID:  hospitalID,
		BillID:      snowflake.ID(id + 1000),
		Status:      status,
		Reason:      "bill overdue by 9 days",
		OverdueDays: 9,
		OpenedAt:    testNow.AddDate(0, 0, -2),
	}
	if err := db.Create(&followUp).Error; err != nil {
		t.Fatalf("seed follow-up: %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	db := setupTestDB(t, "followupsvc_list")
	svc := newTestService(db)

	hospitalID := snowflake.ID(31)
	seedFollowUp(t, db, hospitalID, 1, followupdomain.FollowUpStatusOpen)
	seedFollowUp(t, db, hospitalID, 2, followupdomain.FollowUpStatusClosed)
	seedFollowUp(t, db, snowflake.ID(32), 3, followupdomain.FollowUpStatusOpen)

	ctx := hospitalcontext.WithHospitalID(context.Background(), hospitalID)
	open, err := svc.List(ctx, "open")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(open) != 1 || open[0].ID != snowflake.ID(1) {
		t.Fatalf("expected only the open follow-up, got %+v", open)
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 follow-ups without status filter, got %d", len(all))
	}

	if _, err := svc.List(ctx, "pending"); !errors.Is(err, followupdomain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCloseFollowUp(t *testing.T) {
	db := setupTestDB(t, "followupsvc_close")
	svc := newTestService(db)

	hospitalID := snowflake.ID(41)
	seedFollowUp(t, db, hospitalID, 1, followupdomain.FollowUpStatusOpen)

	ctx := hospitalcontext.WithHospitalID(context.Background(), hospitalID)
	ctx = hospitalcontext.WithUser(ctx, snowflake.ID(900), "staff")

	closed, err := svc.Close(ctx, "1")
	if err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if closed.Status != followupdomain.FollowUpStatusClosed {
		t.Fatalf("expected closed status, got %q", closed.Status)
	}
	if closed.ClosedAt == nil || !closed.ClosedAt.Equal(testNow) {
		t.Fatalf("expected closed_at %v, got %v", testNow, closed.ClosedAt)
	}
	if closed.ClosedBy == nil || *closed.ClosedBy != snowflake.ID(900).String() {
		t.Fatalf("expected closed_by recorded, got %v", closed.ClosedBy)
	}

	if _, err := svc.Close(ctx, "1"); !errors.Is(err, followupdomain.ErrFollowUpNotOpen) {
		t.Fatalf("expected ErrFollowUpNotOpen on second close, got %v", err)
	}
}

func TestCloseErrors(t *testing.T) {
	db := setupTestDB(t, "followupsvc_close_errors")
	svc := newTestService(db)
	ctx := hospitalcontext.WithHospitalID(context.Background(), snowflake.ID(51))

	if _, err := svc.Close(ctx, "nope"); !errors.Is(err, followupdomain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.Close(ctx, "12345"); !errors.Is(err, followupdomain.ErrFollowUpNotFound) {
		t.Fatalf("expected ErrFollowUpNotFound, got %v", err)
	}
	if _, err := svc.Close(context.Background(), "12345"); !errors.Is(err, followupdomain.ErrInvalidHospital) {
		t.Fatalf("expected ErrInvalidHospital, got %v", err)
	}
}
