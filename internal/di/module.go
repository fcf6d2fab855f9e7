package di

import (
	"go.uber.org/fx"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/adapter/extraction"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/app"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/blob"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/config"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/logger"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/pkg/authz"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/handlers"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/router"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/storage/postgres"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		authz.Module,
		postgres.Module,
		blob.Module,
		extraction.Module,
		usecase.Module,
		app.Module,
		fx.Provide(func(facade *app.OperationsFacade) handlers.OperationsFacade { return facade }),
		router.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
