package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	authdomain "github.com/zerorisk/claimledger/internal/auth/domain"
	billdomain "github.com/zerorisk/claimledger/internal/bill/domain"
	"github.com/zerorisk/claimledger/internal/config"
	"github.com/zerorisk/claimledger/internal/migration"
)

func newCleanupTestServer(t *testing.T, name string) (*Server, *gorm.DB, *gin.Engine) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migration.RunMigrations(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	node, err := snowflake.NewNode(5)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	s := &Server{
		cfg:   config.Config{Environment: "development"},
		db:    db,
		log:   zap.NewNop(),
		genID: node,
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/test/cleanup", s.TestCleanup)
	return s, db, engine
}

func seedFixtureHospital(t *testing.T, db *gorm.DB, id int64, name string) {
	t.Helper()
	if err := db.Create(&authdomain.Hospital{ID: snowflake.ID(id), Name: name}).Error; err != nil {
		t.Fatalf("seed hospital: %v", err)
	}
	patient := billdomain.Patient{
		ID:         snowflake.ID(id + 100),
		HospitalID: snowflake.ID(id),
		Name:       "Fixture Patient",
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
}

func postCleanup(engine *gin.Engine, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCleanupDryRunLeavesDataInPlace(t *testing.T) {
	_, db, engine := newCleanupTestServer(t, "cleanup_dryrun")
	seedFixtureHospital(t, db, 1, "E2E Hospital One")

	rec := postCleanup(engine, "/api/test/cleanup?dry_run=true", `{"prefix":"E2E "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var count int64
	if err := db.Model(&authdomain.Hospital{}).Count(&count).Error; err != nil {
		t.Fatalf("count hospitals: %v", err)
	}
	if count != 1 {
		t.Fatalf("dry run must not delete, have %d hospitals", count)
	}
}

func TestCleanupDeletesByPrefix(t *testing.T) {
	_, db, engine := newCleanupTestServer(t, "cleanup_delete")
	seedFixtureHospital(t, db, 1, "E2E Hospital One")
	seedFixtureHospital(t, db, 2, "Production Hospital")

	rec := postCleanup(engine, "/api/test/cleanup", `{"prefix":"E2E "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var names []string
	if err := db.Model(&authdomain.Hospital{}).Pluck("name", &names).Error; err != nil {
		t.Fatalf("list hospitals: %v", err)
	}
	if len(names) != 1 || names[0] != "Production Hospital" {
		t.Fatalf("expected only the non-fixture hospital, got %v", names)
	}

	var patients int64
	if err := db.Model(&billdomain.Patient{}).Where("hospital_id = ?", snowflake.ID(1)).Count(&patients).Error; err != nil {
		t.Fatalf("count patients: %v", err)
	}
	if patients != 0 {
		t.Fatalf("expected fixture patients removed, got %d", patients)
	}
}

func TestCleanupRejectsBadDryRun(t *testing.T) {
	_, _, engine := newCleanupTestServer(t, "cleanup_badbool")

	rec := postCleanup(engine, "/api/test/cleanup?dry_run=maybe", `{"prefix":"E2E "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
