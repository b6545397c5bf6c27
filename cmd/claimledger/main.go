package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zerorisk/claimledger/internal/audit"
	"github.com/zerorisk/claimledger/internal/bill"
	"github.com/zerorisk/claimledger/internal/clock"
	"github.com/zerorisk/claimledger/internal/config"
	"github.com/zerorisk/claimledger/internal/contact"
	"github.com/zerorisk/claimledger/internal/events"
	"github.com/zerorisk/claimledger/internal/followup"
	"github.com/zerorisk/claimledger/internal/logger"
	"github.com/zerorisk/claimledger/internal/migration"
	"github.com/zerorisk/claimledger/internal/observability"
	"github.com/zerorisk/claimledger/internal/recovery"
	"github.com/zerorisk/claimledger/internal/scheduler"
	"github.com/zerorisk/claimledger/internal/seed"
	"github.com/zerorisk/claimledger/internal/server"
	"github.com/zerorisk/claimledger/internal/template"
	"github.com/zerorisk/claimledger/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB, log *zap.Logger) error {
			ctx := context.Background()
			if err := migration.RunMigrations(ctx, conn, log); err != nil {
				return err
			}
			return seed.EnsureDefaultHospitalAndAdmin(conn)
		}),

		events.Module,
		audit.Module,
		bill.Module,
		recovery.Module,
		contact.Module,
		template.Module,
		followup.Module,
		scheduler.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
