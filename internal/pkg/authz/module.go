package authz

import (
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/config"
	"go.uber.org/fx"
)

// Module provides the admin gate via fx.
var Module = fx.Options(
	fx.Provide(newGate),
)

type gateParams struct {
	fx.In

	Config *config.Config
}

func newGate(p gateParams) Gate {
	return NewStaticTokenGate(p.Config.AdminToken)
}
