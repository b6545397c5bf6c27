package migration

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestRunMigrationsAppliesEmbeddedFiles(t *testing.T) {
	db := setupTestDB(t, "migrate_apply")

	if err := RunMigrations(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("RunMigrations returned error: %v", err)
	}

	names, err := migrationNames()
	if err != nil {
		t.Fatalf("migrationNames returned error: %v", err)
	}
	var applied int64
	if err := db.Model(&appliedMigration{}).Count(&applied).Error; err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if int(applied) != len(names) {
		t.Fatalf("expected %d applied migrations, got %d", len(names), applied)
	}

	if err := db.Exec(`INSERT INTO hospitals (id, name) VALUES (1, 'Migration Hospital')`).Error; err != nil {
		t.Fatalf("expected hospitals table to exist: %v", err)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := setupTestDB(t, "migrate_rerun")

	if err := RunMigrations(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	names, err := migrationNames()
	if err != nil {
		t.Fatalf("migrationNames returned error: %v", err)
	}
	var applied int64
	if err := db.Model(&appliedMigration{}).Count(&applied).Error; err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if int(applied) != len(names) {
		t.Fatalf("expected %d applied migrations after rerun, got %d", len(names), applied)
	}
}
