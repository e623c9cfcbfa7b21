package service

import (
	"context"

	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"
)

type EventService interface {
	List(ctx context.Context) ([]*models.Event, error)
	Get(ctx context.Context, eventID string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, eventID string, event *models.Event) error
	Delete(ctx context.Context, eventID string) error
}

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) List(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.List(ctx)
}

func (s *eventService) Get(ctx context.Context, eventID string) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *eventService) Create(ctx context.Context, event *models.Event) error {
	return s.eventRepo.Create(ctx, event)
}

// Update replaces every editable field; the creation time is kept from the stored row.
func (s *eventService) Update(ctx context.Context, eventID string, event *models.Event) error {
	existing, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	event.ID = eventID
	event.CreatedAt = existing.CreatedAt

	return s.eventRepo.Update(ctx, event)
}

func (s *eventService) Delete(ctx context.Context, eventID string) error {
	return s.eventRepo.Delete(ctx, eventID)
}
