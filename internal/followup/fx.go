package followup

import (
	"go.uber.org/fx"

	"github.com/zerorisk/claimledger/internal/followup/repository"
	"github.com/zerorisk/claimledger/internal/followup/service"
)

var Module = fx.Module("followup.service",
	fx.Provide(repository.NewStore),
	fx.Provide(service.NewService),
)
