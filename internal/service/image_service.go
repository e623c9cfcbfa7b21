package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"boutiqueCMS/internal/imageproc"
	"boutiqueCMS/internal/metrics"
	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"
	"boutiqueCMS/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ServeImageRoute prefixes every stored file URL.
const ServeImageRoute = "/api/serve-image/"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type VariantGenerator interface {
	Process(ctx context.Context, baseName string, data []byte) (*imageproc.Variants, error)
}

// CategoryValidator normalizes a requested category to a registered one.
type CategoryValidator interface {
	Validate(id string) string
}

type UploadInput struct {
	Data         []byte
	OriginalName string
	Category     string
	AltText      string
	// BaseURL is scheme://host used to build absolute file URLs.
	BaseURL string
}

type ImageService interface {
	Upload(ctx context.Context, in UploadInput) (*models.Image, error)
	List(ctx context.Context, category string, page, limit int) (*models.ImagePage, error)
	Get(ctx context.Context, imageID string) (*models.Image, error)
	Delete(ctx context.Context, imageID string) (int, error)
	Open(ctx context.Context, name string) (io.ReadSeekCloser, *storage.ObjectInfo, error)
}

type imageService struct {
	imageRepo  repository.ImageRepository
	storage    storage.Storage
	variants   VariantGenerator
	categories CategoryValidator
	now        func() time.Time
}

func NewImageService(imageRepo repository.ImageRepository, store storage.Storage, variants VariantGenerator, categories CategoryValidator) ImageService {
	return &imageService{
		imageRepo:  imageRepo,
		storage:    store,
		variants:   variants,
		categories: categories,
		now:        time.Now,
	}
}

// Upload stores the original, derives both renditions and records the image.
// On any failure the files written so far are removed.
func (s *imageService) Upload(ctx context.Context, in UploadInput) (*models.Image, error) {
	if len(in.Data) == 0 {
		return nil, ErrEmptyFile
	}

	mtype := mimetype.Detect(in.Data)
	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mtype.String())
	}

	base := fmt.Sprintf("%d-%s", s.now().UnixMilli(), uuid.New().String())
	originalName := base + ext

	if _, err := s.storage.Save(ctx, originalName, bytes.NewReader(in.Data), int64(len(in.Data)), mtype.String()); err != nil {
		return nil, fmt.Errorf("ошибка сохранения оригинала: %w", err)
	}

	variants, err := s.variants.Process(ctx, base, in.Data)
	if err != nil {
		s.removeFiles(ctx, originalName)
		if errors.Is(err, imageproc.ErrDecode) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
		}
		return nil, fmt.Errorf("ошибка обработки изображения: %w", err)
	}

	image := &models.Image{
		Filename:     originalName,
		OriginalName: in.OriginalName,
		URL:          fileURL(in.BaseURL, variants.Optimized.Name),
		OriginalURL:  fileURL(in.BaseURL, originalName),
		ThumbnailURL: fileURL(in.BaseURL, variants.Thumbnail.Name),
		Size:         variants.Optimized.Size,
		Width:        variants.Optimized.Width,
		Height:       variants.Optimized.Height,
		MimeType:     models.VariantMimeType,
		Category:     s.categories.Validate(in.Category),
		UploadedAt:   s.now().UTC(),
	}
	if alt := strings.TrimSpace(in.AltText); alt != "" {
		image.AltText = &alt
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		s.removeFiles(ctx, originalName, variants.Optimized.Name, variants.Thumbnail.Name)
		return nil, fmt.Errorf("ошибка сохранения изображения в БД: %w", err)
	}

	metrics.ImagesUploadedTotal.Inc()
	log.Ctx(ctx).Info().Str("image_id", image.ID).Str("category", image.Category).Int64("size", image.Size).Msg("изображение загружено")

	return image, nil
}

func (s *imageService) List(ctx context.Context, category string, page, limit int) (*models.ImagePage, error) {
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPagination
	}

	images, total, err := s.imageRepo.List(ctx, category, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &models.ImagePage{
		Data:        images,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
		TotalImages: total,
	}, nil
}

func (s *imageService) Get(ctx context.Context, imageID string) (*models.Image, error) {
	return s.imageRepo.GetByID(ctx, imageID)
}

// Delete removes the record and then its files, returning how many files were actually removed.
func (s *imageService) Delete(ctx context.Context, imageID string) (int, error) {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return 0, err
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return 0, err
	}

	return s.removeFiles(ctx, imageFiles(image)...), nil
}

func (s *imageService) Open(ctx context.Context, name string) (io.ReadSeekCloser, *storage.ObjectInfo, error) {
	clean, err := storage.CleanName(name)
	if err != nil {
		return nil, nil, err
	}

	return s.storage.Open(ctx, clean)
}

// removeFiles deletes names, ignoring ones already gone, and reports how many were removed.
func (s *imageService) removeFiles(ctx context.Context, names ...string) int {
	removed := 0
	for _, name := range names {
		err := s.storage.Delete(ctx, name)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, storage.ErrNotFound):
		default:
			log.Ctx(ctx).Warn().Err(err).Str("file", name).Msg("не удалось удалить файл")
		}
	}
	return removed
}

func fileURL(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + ServeImageRoute + name
}

// storedName extracts the storage key from a serve-image URL.
func storedName(url string) string {
	i := strings.Index(url, ServeImageRoute)
	if i < 0 {
		return ""
	}
	return url[i+len(ServeImageRoute):]
}

// imageFiles lists the distinct storage keys backing an image record.
func imageFiles(image *models.Image) []string {
	seen := make(map[string]bool)
	var names []string

	for _, name := range []string{image.Filename, storedName(image.URL), storedName(image.ThumbnailURL), storedName(image.OriginalURL)} {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	return names
}
