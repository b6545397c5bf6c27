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

	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
	billrepository "github.com/zerorisk/claimledger/internal/bill/repository"
	"github.com/zerorisk/claimledger/internal/cache"
	"github.com/zerorisk/claimledger/internal/clock"
	"github.com/zerorisk/claimledger/internal/hospitalcontext"
	recoverydomain "github.com/zerorisk/claimledger/internal/recovery/domain"
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
	if err := db.AutoMigrate(&billdomain.Bill{}, &billdomain.Visit{}, &billdomain.Patient{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(db *gorm.DB) *Service {
	return &Service{
		log:      zap.NewNop(),
		clock:    clock.FixedClock{At: testNow},
		billrepo: billrepository.NewRepository(db),

		payerCache:   cache.NewTTLCache[snowflake.ID, []recoverydomain.PayerSummary](),
		summaryCache: cache.NewTTLCache[snowflake.ID, recoverydomain.RecoverySummary](),
	}
}

func daysAgo(d int) *time.Time {
	t := testNow.AddDate(0, 0, -d)
	return &t
}

func seedBill(t *testing.T, db *gorm.DB, hospitalID snowflake.ID, id int64, payerType string, received bool) {
	t.Helper()
	patient := billdomain.Patient{
		ID:         snowflake.ID(id + 1000),
		HospitalID: hospitalID,
		Name:       "Patient " + snowflake.ID(id).String(),
		CreatedAt:  testNow,
	}
	visit := billdomain.Visit{
		ID:         snowflake.ID(id + 2000),
		HospitalID: hospitalID,
		PatientID:  patient.ID,
		CreatedAt:  testNow,
	}
	bill := billdomain.Bill{
		ID:                  snowflake.ID(id),
		HospitalID:          hospitalID,
		VisitID:             visit.ID,
		BillAmount:          10000,
		DateOfSubmission:    daysAgo(40),
		ExpectedPaymentDate: daysAgo(10),
		PayerType:           payerType,
		CreatedAt:           testNow.Add(time.Duration(id) * time.Second),
		UpdatedAt:           testNow,
	}
	if received {
		amount := int64(10000)
		bill.ReceivedAmount = &amount
		bill.ReceivedDate = daysAgo(2)
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	if err := db.Create(&visit).Error; err != nil {
		t.Fatalf("seed visit: %v", err)
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("seed bill: %v", err)
	}
}

func TestListBillsScopedToHospital(t *testing.T) {
	db := setupTestDB(t, "recoverysvc_scope")
	svc := newTestService(db)

	hospitalA := snowflake.ID(11)
	hospitalB := snowflake.ID(22)
	seedBill(t, db, hospitalA, 1, "esic", false)
	seedBill(t, db, hospitalA, 2, "private", true)
	seedBill(t, db, hospitalB, 3, "esic", false)

	ctx := hospitalcontext.WithHospitalID(context.Background(), hospitalA)
	resp, err := svc.ListBills(ctx, recoverydomain.ListBillsRequest{})
	if err != nil {
		t.Fatalf("ListBills returned error: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected count 2, got %d", resp.Count)
	}
	for _, bill := range resp.Bills {
		if bill.PatientName == "" || bill.PatientName == "Unknown" {
			t.Fatalf("expected resolved patient name, got %q", bill.PatientName)
		}
	}
}

func TestListBillsFiltersAndWindows(t *testing.T) {
	db := setupTestDB(t, "recoverysvc_filters")
	svc := newTestService(db)

	hospitalID := snowflake.ID(33)
	for i := int64(1); i <= 5; i++ {
		seedBill(t, db, hospitalID, i, "esic", false)
	}
	seedBill(t, db, hospitalID, 6, "private", true)

	ctx := hospitalcontext.WithHospitalID(context.Background(), hospitalID)
	resp, err := svc.ListBills(ctx, recoverydomain.ListBillsRequest{
		PayerType: "esic",
		Limit:     2,
		Offset:    4,
	})
	if err != nil {
		t.Fatalf("ListBills returned error: %v", err)
	}
	if resp.Count != 5 {
		t.Fatalf("expected filtered count 5, got %d", resp.Count)
	}
	if len(resp.Bills) != 1 {
		t.Fatalf("expected 1 row in final page, got %d", len(resp.Bills))
	}
}

func TestListBillsValidation(t *testing.T) {
	db := setupTestDB(t, "recoverysvc_validation")
	svc := newTestService(db)
	ctx := hospitalcontext.WithHospitalID(context.Background(), snowflake.ID(44))

	if _, err := svc.ListBills(ctx, recoverydomain.ListBillsRequest{Status: "bogus"}); !errors.Is(err, recoverydomain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.ListBills(ctx, recoverydomain.ListBillsRequest{Limit: -1}); !errors.Is(err, recoverydomain.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := svc.ListBills(ctx, recoverydomain.ListBillsRequest{Offset: -1}); !errors.Is(err, recoverydomain.ErrInvalidOffset) {
		t.Fatalf("expected ErrInvalidOffset, got %v", err)
	}
	if _, err := svc.ListBills(context.Background(), recoverydomain.ListBillsRequest{}); !errors.Is(err, recoverydomain.ErrInvalidHospital) {
		t.Fatalf("expected ErrInvalidHospital, got %v", err)
	}
}

func TestSummaryIsCached(t *testing.T) {
	db := setupTestDB(t, "recoverysvc_cache")
	svc := newTestService(db)

	hospitalID := snowflake.ID(55)
	seedBill(t, db, hospitalID, 1, "esic", false)

	ctx := hospitalcontext.WithHospitalID(context.Background(), hospitalID)
	first, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if first.Summary.TotalBills != 1 {
		t.Fatalf("expected 1 bill, got %d", first.Summary.TotalBills)
	}

	// A write landing inside the TTL window is not reflected yet.
	seedBill(t, db, hospitalID, 2, "esic", false)
	second, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if second.Summary.TotalBills != 1 {
		t.Fatalf("expected cached summary with 1 bill, got %d", second.Summary.TotalBills)
	}
}

func TestPayerSummariesGrouped(t *testing.T) {
	db := setupTestDB(t, "recoverysvc_payers")
	svc := newTestService(db)

	hospitalID := snowflake.ID(66)
	seedBill(t, db, hospitalID, 1, "esic", false)
	seedBill(t, db, hospitalID, 2, "esic", true)
	seedBill(t, db, hospitalID, 3, "private", false)

	ctx := hospitalcontext.WithHospitalID(context.Background(), hospitalID)
	resp, err := svc.PayerSummaries(ctx)
	if err != nil {
		t.Fatalf("PayerSummaries returned error: %v", err)
	}
	if len(resp.Payers) != 2 {
		t.Fatalf("expected 2 payer groups, got %d", len(resp.Payers))
	}
	if resp.Payers[0].PayerType != "esic" {
		t.Fatalf("expected esic first by total amount, got %q", resp.Payers[0].PayerType)
	}
	if resp.Payers[0].PendingCount != 1 || resp.Payers[0].ReceivedCount != 1 {
		t.Fatalf("unexpected esic split: %+v", resp.Payers[0])
	}
}
