package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"boutiqueCMS/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	imageColumns = `id, filename, original_name, url, original_url, thumbnail_url, size, width, height, mime_type, category, alt_text, uploaded_at`

	insertImageQuery = `
		INSERT INTO images (id, filename, original_name, url, original_url, thumbnail_url, size, width, height, mime_type, category, alt_text, uploaded_at)
		VALUES (:id, :filename, :original_name, :url, :original_url, :thumbnail_url, :size, :width, :height, :mime_type, :category, :alt_text, :uploaded_at)
	`
	selectImageByIDQuery      = `SELECT ` + imageColumns + ` FROM images WHERE id = $1`
	existsImageFilenameQuery  = `SELECT EXISTS (SELECT 1 FROM images WHERE filename = $1)`
	deleteImageQuery          = `DELETE FROM images WHERE id = $1`
	categoryFilterClause      = ` WHERE (category = $1 OR category LIKE $2 ESCAPE '\')`
	countImagesQuery          = `SELECT COUNT(*) FROM images`
	listImagesQuery           = `SELECT ` + imageColumns + ` FROM images`
	listImagesOrderClause     = ` ORDER BY uploaded_at DESC`
	listImagesPageClause      = ` LIMIT $1 OFFSET $2`
	listImagesFilteredPageCls = ` LIMIT $3 OFFSET $4`
)

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.Image) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}

	if image.UploadedAt.IsZero() {
		image.UploadedAt = time.Now().UTC()
	}

	if image.Category == "" {
		image.Category = models.DefaultCategory
	}

	_, err := r.db.NamedExecContext(ctx, insertImageQuery, image)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("изображение %s: %w", image.Filename, ErrConflict)
		}
		return fmt.Errorf("ошибка при создании изображения: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) GetByID(ctx context.Context, imageID string) (*models.Image, error) {
	var image models.Image

	err := r.db.GetContext(ctx, &image, selectImageByIDQuery, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, fmt.Errorf("изображение %s: %w", imageID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения изображения: %w", err)
	}

	return &image, nil
}

// List returns one page of images, newest first, together with the total count.
// A non-empty category matches itself and its "<category>_" sub-categories.
func (r *ImageRepositoryImpl) List(ctx context.Context, category string, limit, offset int) ([]*models.Image, int, error) {
	countQuery, listQuery := countImagesQuery, listImagesQuery+listImagesOrderClause+listImagesPageClause
	var filterArgs []any

	if category != "" {
		countQuery = countImagesQuery + categoryFilterClause
		listQuery = listImagesQuery + categoryFilterClause + listImagesOrderClause + listImagesFilteredPageCls
		filterArgs = []any{category, likePrefix(category)}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, filterArgs...); err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте изображений: %w", err)
	}

	images := make([]*models.Image, 0)
	args := append(filterArgs, limit, offset)
	if err := r.db.SelectContext(ctx, &images, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении изображений: %w", err)
	}

	return images, total, nil
}

func (r *ImageRepositoryImpl) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	var exists bool

	if err := r.db.GetContext(ctx, &exists, existsImageFilenameQuery, filename); err != nil {
		return false, fmt.Errorf("ошибка при проверке изображения: %w", err)
	}

	return exists, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, imageID string) error {
	result, err := r.db.ExecContext(ctx, deleteImageQuery, imageID)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("изображение %s: %w", imageID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при удалении изображения: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("изображение %s: %w", imageID, ErrNotFound)
	}

	return nil
}
