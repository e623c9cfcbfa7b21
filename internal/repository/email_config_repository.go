package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"boutiqueCMS/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	emailConfigColumns = `id, user_id, smtp_host, smtp_port, email, password, from_name, to_email, created_at, updated_at`

	selectEmailConfigQuery = `SELECT ` + emailConfigColumns + ` FROM email_configs WHERE user_id = $1`
	upsertEmailConfigQuery = `
		INSERT INTO email_configs (id, user_id, smtp_host, smtp_port, email, password, from_name, to_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET smtp_host = EXCLUDED.smtp_host, smtp_port = EXCLUDED.smtp_port, email = EXCLUDED.email,
			password = EXCLUDED.password, from_name = EXCLUDED.from_name, to_email = EXCLUDED.to_email,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	deleteEmailConfigQuery = `DELETE FROM email_configs WHERE user_id = $1`
)

type emailConfigRepository struct {
	db *sqlx.DB
}

func NewEmailConfigRepository(db *sqlx.DB) EmailConfigRepository {
	return &emailConfigRepository{db: db}
}

func (r *emailConfigRepository) GetByUserID(ctx context.Context, userID string) (*models.EmailConfig, error) {
	var cfg models.EmailConfig

	err := r.db.GetContext(ctx, &cfg, selectEmailConfigQuery, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("настройки почты пользователя %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении настроек почты: %w", err)
	}

	return &cfg, nil
}

// Upsert inserts or replaces the configuration of cfg.UserID and fills the generated columns.
func (r *emailConfigRepository) Upsert(ctx context.Context, cfg *models.EmailConfig) error {
	row := r.db.QueryRowxContext(ctx, upsertEmailConfigQuery,
		uuid.New().String(), cfg.UserID, cfg.SMTPHost, cfg.SMTPPort, cfg.Email, cfg.Password, cfg.FromName, cfg.ToEmail)

	if err := row.Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return fmt.Errorf("ошибка при сохранении настроек почты: %w", err)
	}

	return nil
}

func (r *emailConfigRepository) DeleteByUserID(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, deleteEmailConfigQuery, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении настроек почты: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("настройки почты пользователя %s: %w", userID, ErrNotFound)
	}

	return nil
}
