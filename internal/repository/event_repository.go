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
	eventColumns = `id, title, description, location, starts_at, ends_at, image_url, created_at, updated_at`

	listEventsQuery  = `SELECT ` + eventColumns + ` FROM events ORDER BY starts_at ASC`
	selectEventQuery = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	insertEventQuery = `
		INSERT INTO events (id, title, description, location, starts_at, ends_at, image_url, created_at, updated_at)
		VALUES (:id, :title, :description, :location, :starts_at, :ends_at, :image_url, :created_at, :updated_at)
	`
	updateEventQuery = `
		UPDATE events
		SET title = :title, description = :description, location = :location,
			starts_at = :starts_at, ends_at = :ends_at, image_url = :image_url, updated_at = :updated_at
		WHERE id = :id
	`
	deleteEventQuery = `DELETE FROM events WHERE id = $1`
)

type EventRepositoryImpl struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepositoryImpl {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*models.Event, error) {
	events := make([]*models.Event, 0)

	if err := r.db.SelectContext(ctx, &events, listEventsQuery); err != nil {
		return nil, fmt.Errorf("ошибка при получении событий: %w", err)
	}

	return events, nil
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event

	err := r.db.GetContext(ctx, &event, selectEventQuery, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, fmt.Errorf("событие %s: %w", eventID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении события: %w", err)
	}

	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *models.Event) error {
	event.ID = uuid.New().String()
	now := time.Now().UTC()
	event.CreatedAt, event.UpdatedAt = now, now

	if _, err := r.db.NamedExecContext(ctx, insertEventQuery, event); err != nil {
		return fmt.Errorf("ошибка при создании события: %w", err)
	}

	return nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, updateEventQuery, event)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("событие %s: %w", event.ID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при обновлении события: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("событие %s: %w", event.ID, ErrNotFound)
	}

	return nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, eventID string) error {
	result, err := r.db.ExecContext(ctx, deleteEventQuery, eventID)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("событие %s: %w", eventID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при удалении события: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("событие %s: %w", eventID, ErrNotFound)
	}

	return nil
}
