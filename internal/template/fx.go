package template

import (
	"go.uber.org/fx"

	"github.com/zerorisk/claimledger/internal/template/render"
	"github.com/zerorisk/claimledger/internal/template/service"
)

var Module = fx.Module("template.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
