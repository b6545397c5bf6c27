package contact

import (
	"go.uber.org/fx"

	"github.com/zerorisk/claimledger/internal/contact/repository"
	"github.com/zerorisk/claimledger/internal/contact/service"
)

var Module = fx.Module("contact.service",
	fx.Provide(repository.NewStore),
	fx.Provide(service.NewService),
)
