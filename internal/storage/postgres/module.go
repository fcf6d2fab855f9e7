package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/config"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.ItemRepository { return s.Items() },
		func(s *Storage) repository.TransactionRepository { return s.Transactions() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.AttachmentRepository { return s.Attachments() },
		func(s *Storage) repository.DemoRepository { return s.Demos() },
		func(s *Storage) repository.TransitionRepository { return s.Transitions() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
