package extraction

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/config"
)

// Module exposes the extraction client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.ExtractionAddress == "" {
		p.Logger.Warn("extraction service not configured, document prefill disabled")
		return NewDisabled(), nil
	}
	return NewHTTPClient(p.Config.ExtractionAddress, p.Logger)
}
