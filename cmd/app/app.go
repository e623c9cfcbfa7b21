package app

import (
	"context"
	"fmt"
	"time"

	"boutiqueCMS/internal/category"
	"boutiqueCMS/internal/config"
	"boutiqueCMS/internal/database"
	"boutiqueCMS/internal/imageproc"
	"boutiqueCMS/internal/instagram"
	"boutiqueCMS/internal/metrics"
	"boutiqueCMS/internal/repository"
	"boutiqueCMS/internal/secret"
	"boutiqueCMS/internal/service"
	"boutiqueCMS/internal/storage"

	"github.com/rs/zerolog/log"
)

const (
	breakerFailures = 3
	breakerOpenFor  = 5 * time.Minute
)

// Database connects to PostgreSQL and applies migrations.
func Database(cfg *config.Config) (*database.DB, *repository.Repository) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("не удалось подключиться к БД")
	}

	return db, repository.NewRepository(db.DB)
}

// NewStorage returns the backend selected by STORAGE_BACKEND.
func NewStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		return storage.NewLocalStorage(cfg.Storage.UploadsDir)
	case "minio":
		return storage.NewMinIOStorage(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("неизвестное хранилище: %q", cfg.Storage.Backend)
	}
}

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	ctx := context.Background()

	db, repo := Database(cfg)

	store, err := NewStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("не удалось инициализировать хранилище")
	}

	box, err := secret.NewBox(cfg.EmailConfigKey)
	if err != nil {
		log.Fatal().Err(err).Msg("не удалось инициализировать шифрование настроек почты")
	}

	processor := imageproc.New(store, imageproc.Options{
		MaxDimension:     cfg.Images.MaxDimension,
		OptimizedQuality: cfg.Images.OptimizedQuality,
		ThumbnailSize:    cfg.Images.ThumbnailSize,
		ThumbnailQuality: cfg.Images.ThumbnailQuality,
	})
	processor.Observe = func(d time.Duration) {
		metrics.ImageProcessingDuration.Observe(d.Seconds())
	}

	if cfg.Instagram.APIToken == "" {
		log.Warn().Msg("APIFY_API_TOKEN не задан, лента Instagram будет отдаваться только из кэша")
	}

	registry := category.NewRegistry()
	services := service.NewService(repo, cfg, service.Dependencies{
		Storage:      store,
		Variants:     processor,
		Categories:   registry,
		FeedProvider: instagram.NewBreakerProvider(instagram.NewClient(cfg.Instagram, nil), breakerFailures, breakerOpenFor),
		FeedMirror:   instagram.NewDownloader(store, nil),
		Sealer:       box,
	})

	loaded, err := services.Category.LoadPersisted(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("не удалось загрузить категории")
	}
	log.Info().Int("custom", loaded).Int("total", len(registry.List())).Msg("категории загружены")

	return db, repo, services
}
