package bill

import (
	"go.uber.org/fx"

	"github.com/zerorisk/claimledger/internal/bill/repository"
	"github.com/zerorisk/claimledger/internal/bill/service"
)

var Module = fx.Module("bill.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
