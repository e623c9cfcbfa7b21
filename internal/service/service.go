package service

import (
	"boutiqueCMS/internal/config"
	"boutiqueCMS/internal/instagram"
	"boutiqueCMS/internal/repository"
	"boutiqueCMS/internal/storage"
)

// Dependencies are the non-database collaborators of the services.
type Dependencies struct {
	Storage      storage.Storage
	Variants     VariantGenerator
	Categories   CategoryRegistry
	FeedProvider instagram.Provider
	FeedMirror   FeedMirror
	Sealer       SecretSealer
}

type Service struct {
	Auth        AuthService
	Image       ImageService
	Sync        SyncService
	Category    CategoryService
	Feed        FeedService
	Contact     ContactService
	Expense     ExpenseService
	Event       EventService
	EmailConfig EmailConfigService
	Tables      TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, deps Dependencies) *Service {
	mirrorWorkers := 0
	if cfg.Instagram.MirrorImages {
		mirrorWorkers = 4
	}

	return &Service{
		Auth:     NewAuthService(rep.User, cfg),
		Image:    NewImageService(rep.Image, deps.Storage, deps.Variants, deps.Categories),
		Sync:     NewSyncService(rep.Image, deps.Storage),
		Category: NewCategoryService(deps.Categories, rep.Category),
		Feed: NewFeedService(rep.Feed, deps.FeedProvider, deps.FeedMirror, deps.Storage, FeedOptions{
			BatchSize:      cfg.Instagram.BatchSize,
			StaleAfter:     cfg.Instagram.StaleAfter,
			RequestTimeout: cfg.Instagram.RequestTimeout,
			MirrorWorkers:  mirrorWorkers,
		}),
		Contact:     NewContactService(rep.Contact),
		Expense:     NewExpenseService(rep.Expense),
		Event:       NewEventService(rep.Event),
		EmailConfig: NewEmailConfigService(rep.EmailConfig, deps.Sealer),
		Tables:      NewTablesService(rep.Tables),
	}
}
