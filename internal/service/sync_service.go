package service

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
	"time"

	"boutiqueCMS/internal/instagram"
	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"
	"boutiqueCMS/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"
)

const HeroCategory = "hero"

var syncableExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type SyncOptions struct {
	// BaseURL is the public scheme://host of the API.
	BaseURL string
	// HeroFile, when set, is registered under HeroCategory if no hero image exists yet.
	HeroFile string
}

type SyncReport struct {
	Processed int   `json:"processed"`
	Added     int   `json:"added"`
	Skipped   int   `json:"skipped"`
	HeroAdded bool  `json:"heroAdded"`
	Bytes     int64 `json:"bytes"`
}

type SyncService interface {
	Sync(ctx context.Context, opts SyncOptions) (*SyncReport, error)
}

type syncService struct {
	imageRepo repository.ImageRepository
	storage   storage.Storage
	now       func() time.Time
}

func NewSyncService(imageRepo repository.ImageRepository, store storage.Storage) SyncService {
	return &syncService{imageRepo: imageRepo, storage: store, now: time.Now}
}

// Sync registers files found in storage as "<category>/<file>" that have no image record.
func (s *syncService) Sync(ctx context.Context, opts SyncOptions) (*SyncReport, error) {
	report := &SyncReport{}

	if opts.HeroFile != "" {
		added, err := s.ensureHero(ctx, opts)
		if err != nil {
			return nil, err
		}
		report.HeroAdded = added
	}

	objects, err := s.storage.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения хранилища: %w", err)
	}

	for _, obj := range objects {
		category, file, ok := strings.Cut(obj.Name, "/")
		if !ok || strings.Contains(file, "/") || category == instagram.ImagePrefix || isVariant(file) {
			continue
		}
		if _, ok := syncableExtensions[strings.ToLower(path.Ext(file))]; !ok {
			continue
		}

		report.Processed++

		exists, err := s.imageRepo.ExistsByFilename(ctx, obj.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			report.Skipped++
			continue
		}

		image, err := s.describe(ctx, obj, opts.BaseURL)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("file", obj.Name).Msg("файл пропущен")
			report.Skipped++
			continue
		}
		image.Category = strings.ToLower(category)
		alt := "Image pour la catégorie " + category
		image.AltText = &alt

		if err := s.imageRepo.Create(ctx, image); err != nil {
			return nil, err
		}

		report.Added++
		report.Bytes += obj.Size
	}

	return report, nil
}

func (s *syncService) ensureHero(ctx context.Context, opts SyncOptions) (bool, error) {
	_, total, err := s.imageRepo.List(ctx, HeroCategory, 1, 0)
	if err != nil {
		return false, err
	}
	if total > 0 {
		return false, nil
	}

	info, err := s.storage.Stat(ctx, opts.HeroFile)
	if err != nil {
		return false, fmt.Errorf("файл hero %s: %w", opts.HeroFile, err)
	}

	image, err := s.describe(ctx, *info, opts.BaseURL)
	if err != nil {
		return false, err
	}
	image.Category = HeroCategory
	alt := "Image principale du site"
	image.AltText = &alt

	// prefer generated renditions when they exist next to the original
	base := strings.TrimSuffix(opts.HeroFile, path.Ext(opts.HeroFile))
	if ok, _ := s.storage.Exists(ctx, base+"-optimized.webp"); ok {
		image.URL = fileURL(opts.BaseURL, base+"-optimized.webp")
	}
	if ok, _ := s.storage.Exists(ctx, base+"-thumbnail.webp"); ok {
		image.ThumbnailURL = fileURL(opts.BaseURL, base+"-thumbnail.webp")
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		return false, err
	}

	return true, nil
}

// describe reads the image header of obj and builds a record whose three URLs all point at obj.
func (s *syncService) describe(ctx context.Context, obj storage.ObjectInfo, baseURL string) (*models.Image, error) {
	f, _, err := s.storage.Open(ctx, obj.Name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать заголовок изображения: %w", err)
	}

	mimeType := syncableExtensions[strings.ToLower(path.Ext(obj.Name))]
	if format != "" {
		mimeType = "image/" + format
	}

	url := fileURL(baseURL, obj.Name)
	return &models.Image{
		ID:           uuid.New().String(),
		Filename:     obj.Name,
		OriginalName: path.Base(obj.Name),
		URL:          url,
		OriginalURL:  url,
		ThumbnailURL: url,
		Size:         obj.Size,
		Width:        cfg.Width,
		Height:       cfg.Height,
		MimeType:     mimeType,
		UploadedAt:   s.now().UTC(),
	}, nil
}

func isVariant(name string) bool {
	return strings.HasSuffix(name, "-optimized.webp") || strings.HasSuffix(name, "-thumbnail.webp")
}
