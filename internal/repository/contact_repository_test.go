package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"boutiqueCMS/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactRowColumns = []string{
	"id", "name", "email", "phone", "subject", "message", "delivery_address", "ip_address",
	"status", "processing_status", "payment_status", "submitted_at", "updated_at",
}

func TestContactRepository_Create(t *testing.T) {
	db, mock := newRegexpMockDB(t)
	repo := NewContactRepository(db)

	msg := &models.ContactMessage{Name: "Jeanne", Email: "j@example.com", Subject: "Bouquet", Message: "Bonjour"}

	mock.ExpectExec(`INSERT INTO contact_messages`).WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), msg))
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, models.MessageNew, msg.Status)
	assert.Equal(t, models.ProcessingPending, msg.ProcessingStatus)
	assert.Equal(t, models.PaymentUnpaid, msg.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)
	now := time.Now()

	mock.ExpectQuery(listContactsQuery).WillReturnRows(sqlmock.NewRows(contactRowColumns).
		AddRow("m-2", "B", "b@example.com", nil, "s", "m", nil, "10.0.0.1", "NEW", "PENDING", "UNPAID", now, now).
		AddRow("m-1", "A", "a@example.com", "0600000000", "s", "m", "1 rue", nil, "READ", "COMPLETED", "PAID", now.Add(-time.Hour), now))

	messages, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "m-2", messages[0].ID)
	require.NotNil(t, messages[0].IPAddress)
	assert.Equal(t, "10.0.0.1", *messages[0].IPAddress)
	assert.Equal(t, models.PaymentPaid, messages[1].PaymentStatus)
}

func TestContactRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	status := models.MessageRead
	payment := models.PaymentPaid
	update := models.ContactStatusUpdate{Status: &status, PaymentStatus: &payment}

	t.Run("Частичное обновление", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewContactRepository(db)
		query, _ := buildContactUpdate("m-1", update)
		now := time.Now()

		mock.ExpectQuery(query).WithArgs("READ", "PAID", "m-1").WillReturnRows(sqlmock.NewRows(contactRowColumns).
			AddRow("m-1", "A", "a@example.com", nil, "s", "m", nil, nil, "READ", "PENDING", "PAID", now, now))

		msg, err := repo.UpdateStatus(ctx, "m-1", update)

		require.NoError(t, err)
		assert.Equal(t, models.MessageRead, msg.Status)
		assert.Equal(t, models.ProcessingPending, msg.ProcessingStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Сообщение не найдено", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewContactRepository(db)
		query, _ := buildContactUpdate("missing", update)

		mock.ExpectQuery(query).WithArgs("READ", "PAID", "missing").WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateStatus(ctx, "missing", update)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Пустое обновление", func(t *testing.T) {
		db, _ := newMockDB(t)
		repo := NewContactRepository(db)

		_, err := repo.UpdateStatus(ctx, "m-1", models.ContactStatusUpdate{})

		assert.Error(t, err)
	})
}

func TestBuildContactUpdate(t *testing.T) {
	processing := models.ProcessingInProgress
	query, args := buildContactUpdate("m-9", models.ContactStatusUpdate{ProcessingStatus: &processing})

	assert.Contains(t, query, "SET processing_status = $1, updated_at = NOW() WHERE id = $2")
	assert.Equal(t, []any{"IN_PROGRESS", "m-9"}, args)
}

func TestContactRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(deleteContactQuery).WithArgs("m-1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "m-1"), ErrNotFound)
}
