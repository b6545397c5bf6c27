package audit

import (
	"go.uber.org/fx"

	"github.com/zerorisk/claimledger/internal/audit/repository"
	"github.com/zerorisk/claimledger/internal/audit/service"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
