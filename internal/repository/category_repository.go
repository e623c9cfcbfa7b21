package repository

import (
	"context"
	"fmt"

	"boutiqueCMS/internal/models"

	"github.com/jmoiron/sqlx"
)

const (
	listCategoriesQuery = `SELECT id, name, description, icon FROM categories ORDER BY created_at`
	insertCategoryQuery = `INSERT INTO categories (id, name, description, icon) VALUES (:id, :name, :description, :icon)`
	updateCategoryQuery = `UPDATE categories SET name = :name, description = :description, icon = :icon WHERE id = :id`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`
)

// categoryRepository persists user-added categories only; the predefined set lives in memory.
type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	categories := make([]*models.Category, 0)

	if err := r.db.SelectContext(ctx, &categories, listCategoriesQuery); err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	_, err := r.db.NamedExecContext(ctx, insertCategoryQuery, category)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("категория %s: %w", category.ID, ErrConflict)
		}
		return fmt.Errorf("ошибка при создании категории: %w", err)
	}

	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	result, err := r.db.NamedExecContext(ctx, updateCategoryQuery, category)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении категории: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("категория %s: %w", category.ID, ErrNotFound)
	}

	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, categoryID string) error {
	result, err := r.db.ExecContext(ctx, deleteCategoryQuery, categoryID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении категории: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("категория %s: %w", categoryID, ErrNotFound)
	}

	return nil
}
