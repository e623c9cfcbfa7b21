package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"boutiqueCMS/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	contactColumns = `id, name, email, phone, subject, message, delivery_address, ip_address, status, processing_status, payment_status, submitted_at, updated_at`

	insertContactQuery = `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, delivery_address, ip_address, status, processing_status, payment_status, submitted_at, updated_at)
		VALUES (:id, :name, :email, :phone, :subject, :message, :delivery_address, :ip_address, :status, :processing_status, :payment_status, :submitted_at, :updated_at)
	`
	listContactsQuery  = `SELECT ` + contactColumns + ` FROM contact_messages ORDER BY submitted_at DESC`
	selectContactQuery = `SELECT ` + contactColumns + ` FROM contact_messages WHERE id = $1`
	deleteContactQuery = `DELETE FROM contact_messages WHERE id = $1`
)

type ContactRepositoryImpl struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) *ContactRepositoryImpl {
	return &ContactRepositoryImpl{db: db}
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = uuid.New().String()
	now := time.Now().UTC()
	msg.SubmittedAt, msg.UpdatedAt = now, now

	if msg.Status == "" {
		msg.Status = models.MessageNew
	}
	if msg.ProcessingStatus == "" {
		msg.ProcessingStatus = models.ProcessingPending
	}
	if msg.PaymentStatus == "" {
		msg.PaymentStatus = models.PaymentUnpaid
	}

	if _, err := r.db.NamedExecContext(ctx, insertContactQuery, msg); err != nil {
		return fmt.Errorf("ошибка при сохранении сообщения: %w", err)
	}

	return nil
}

func (r *ContactRepositoryImpl) List(ctx context.Context) ([]*models.ContactMessage, error) {
	messages := make([]*models.ContactMessage, 0)

	if err := r.db.SelectContext(ctx, &messages, listContactsQuery); err != nil {
		return nil, fmt.Errorf("ошибка при получении сообщений: %w", err)
	}

	return messages, nil
}

func (r *ContactRepositoryImpl) GetByID(ctx context.Context, messageID string) (*models.ContactMessage, error) {
	var msg models.ContactMessage

	err := r.db.GetContext(ctx, &msg, selectContactQuery, messageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, fmt.Errorf("сообщение %s: %w", messageID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении сообщения: %w", err)
	}

	return &msg, nil
}

// buildContactUpdate renders the SET clause for the non-nil fields of update.
func buildContactUpdate(messageID string, update models.ContactStatusUpdate) (string, []any) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if update.Status != nil {
		add("status", string(*update.Status))
	}
	if update.ProcessingStatus != nil {
		add("processing_status", string(*update.ProcessingStatus))
	}
	if update.PaymentStatus != nil {
		add("payment_status", string(*update.PaymentStatus))
	}

	args = append(args, messageID)
	query := `UPDATE contact_messages SET ` + strings.Join(sets, ", ") +
		`, updated_at = NOW() WHERE id = $` + strconv.Itoa(len(args)) +
		` RETURNING ` + contactColumns

	return query, args
}

func (r *ContactRepositoryImpl) UpdateStatus(ctx context.Context, messageID string, update models.ContactStatusUpdate) (*models.ContactMessage, error) {
	if update.Empty() {
		return nil, errors.New("нет данных для обновления")
	}

	query, args := buildContactUpdate(messageID, update)

	var msg models.ContactMessage
	err := r.db.GetContext(ctx, &msg, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, fmt.Errorf("сообщение %s: %w", messageID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при обновлении сообщения: %w", err)
	}

	return &msg, nil
}

func (r *ContactRepositoryImpl) Delete(ctx context.Context, messageID string) error {
	result, err := r.db.ExecContext(ctx, deleteContactQuery, messageID)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("сообщение %s: %w", messageID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при удалении сообщения: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("сообщение %s: %w", messageID, ErrNotFound)
	}

	return nil
}
