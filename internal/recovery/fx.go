package recovery

import (
	"go.uber.org/fx"

	"github.com/zerorisk/claimledger/internal/recovery/service"
)

var Module = fx.Module("recovery.service",
	fx.Provide(service.NewService),
)
