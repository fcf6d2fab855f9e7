package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/adapter/extraction"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/blob"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/config"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newProjector,
	newAttachmentUseCase,
	NewLifecycleUseCase,
	newRollbackUseCase,
	NewInventoryUseCase,
	NewDemoUseCase,
	newExtractionUseCase,
)

type projectorParams struct {
	fx.In

	Transactions repository.TransactionRepository
	Config       *config.Config
	Logger       *slog.Logger
}

func newProjector(p projectorParams) *Projector {
	return NewProjector(p.Transactions, p.Config.ScanWindow, p.Config.ScanTimeout, p.Logger)
}

type attachmentParams struct {
	fx.In

	Attachments repository.AttachmentRepository
	Blobs       blob.Store
	Config      *config.Config
	Logger      *slog.Logger
}

func newAttachmentUseCase(p attachmentParams) *AttachmentUseCase {
	return NewAttachmentUseCase(p.Attachments, p.Blobs, p.Config.MaxFileSize, p.Logger)
}

type rollbackParams struct {
	fx.In

	Orders       repository.OrderRepository
	Attachments  repository.AttachmentRepository
	Transactions repository.TransactionRepository
	Transitions  repository.TransitionRepository
	Demos        repository.DemoRepository
	Blobs        blob.Store
	Config       *config.Config
	Logger       *slog.Logger
}

func newRollbackUseCase(p rollbackParams) *RollbackUseCase {
	return NewRollbackUseCase(p.Orders, p.Attachments, p.Transactions, p.Transitions, p.Demos, p.Blobs, p.Config.RepairGrace, p.Logger)
}

type extractionParams struct {
	fx.In

	Client extraction.Client
	Config *config.Config
}

func newExtractionUseCase(p extractionParams) *ExtractionUseCase {
	return NewExtractionUseCase(p.Client, p.Config.MaxFileSize)
}
