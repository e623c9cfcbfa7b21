package service

import (
	"context"
	"errors"
	"fmt"

	"boutiqueCMS/internal/category"
	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"

	"github.com/rs/zerolog/log"
)

// CategoryRegistry is the in-memory category set the service writes through.
type CategoryRegistry interface {
	List() []*models.Category
	Get(id string) (*models.Category, bool)
	Add(c models.Category) (*models.Category, error)
	Update(id string, u models.CategoryUpdate) (*models.Category, error)
	Delete(id string) error
	IsPredefined(id string) bool
	Validate(id string) string
	Load(categories []*models.Category) int
}

type CategoryService interface {
	List(ctx context.Context) []*models.Category
	Get(ctx context.Context, id string) (*models.Category, bool)
	Create(ctx context.Context, c models.Category) (*models.Category, error)
	Update(ctx context.Context, id string, u models.CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, id string) error
	LoadPersisted(ctx context.Context) (int, error)
}

type categoryService struct {
	registry     CategoryRegistry
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(registry CategoryRegistry, categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{registry: registry, categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context) []*models.Category {
	return s.registry.List()
}

func (s *categoryService) Get(ctx context.Context, id string) (*models.Category, bool) {
	return s.registry.Get(id)
}

// Create adds the category in memory and persists it; a failed insert undoes the in-memory add.
func (s *categoryService) Create(ctx context.Context, c models.Category) (*models.Category, error) {
	created, err := s.registry.Add(c)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, created); err != nil {
		if rollbackErr := s.registry.Delete(created.ID); rollbackErr != nil {
			log.Ctx(ctx).Error().Err(rollbackErr).Str("category", created.ID).Msg("не удалось откатить категорию")
		}
		return nil, fmt.Errorf("ошибка сохранения категории: %w", err)
	}

	return created, nil
}

// Update changes predefined categories in memory only; user categories are persisted too.
func (s *categoryService) Update(ctx context.Context, id string, u models.CategoryUpdate) (*models.Category, error) {
	previous, ok := s.registry.Get(id)

	updated, err := s.registry.Update(id, u)
	if err != nil {
		return nil, err
	}

	if updated.Predefined {
		return updated, nil
	}

	if err := s.categoryRepo.Update(ctx, updated); err != nil && !errors.Is(err, repository.ErrNotFound) {
		if ok {
			restore := models.CategoryUpdate{Name: previous.Name, Description: &previous.Description, Icon: &previous.Icon}
			_, _ = s.registry.Update(id, restore)
		}
		return nil, fmt.Errorf("ошибка сохранения категории: %w", err)
	}

	return updated, nil
}

// Delete removes the stored row first; the registry entry survives a failed delete.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	c, ok := s.registry.Get(id)
	if !ok {
		return fmt.Errorf("категория %s: %w", id, category.ErrNotFound)
	}
	if c.Predefined {
		return fmt.Errorf("категория %s: %w", c.ID, category.ErrProtected)
	}

	if err := s.categoryRepo.Delete(ctx, c.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("ошибка удаления категории: %w", err)
	}

	return s.registry.Delete(c.ID)
}

// LoadPersisted seeds the registry with categories stored by earlier runs.
func (s *categoryService) LoadPersisted(ctx context.Context) (int, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	return s.registry.Load(categories), nil
}
