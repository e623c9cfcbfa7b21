package repository

import (
	"context"
	"testing"
	"time"

	"boutiqueCMS/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expenseRowColumns = []string{
	"id", "date", "amount", "category", "description", "supplier", "receipt_url",
	"payment_method", "status", "notes", "tags", "created_at", "updated_at",
}

func TestExpenseWhere(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	where, args := expenseWhere(models.ExpenseFilter{})
	assert.Empty(t, where)
	assert.Nil(t, args)

	where, args = expenseWhere(models.ExpenseFilter{From: &from, Category: "fleurs"})
	assert.Equal(t, " WHERE date >= $1 AND category = $2", where)
	assert.Equal(t, []any{from, "fleurs"}, args)
}

func TestExpenseRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)
	now := time.Now()

	mock.ExpectQuery(listExpensesQuery+" WHERE category = $1 ORDER BY date DESC").
		WithArgs("fleurs").
		WillReturnRows(sqlmock.NewRows(expenseRowColumns).
			AddRow("e-1", now, "125.50", "fleurs", "Roses", "Rungis", nil, "CARD", "PAID", nil, "{roses,mariage}", now, now))

	expenses, err := repo.List(context.Background(), models.ExpenseFilter{Category: "fleurs"})

	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.True(t, decimal.RequireFromString("125.50").Equal(expenses[0].Amount))
	assert.Equal(t, []string{"roses", "mariage"}, []string(expenses[0].Tags))
	assert.Nil(t, expenses[0].ReceiptURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_Create(t *testing.T) {
	db, mock := newRegexpMockDB(t)
	repo := NewExpenseRepository(db)

	expense := &models.Expense{Date: time.Now(), Amount: decimal.NewFromInt(40), Category: "transport"}

	mock.ExpectExec(`INSERT INTO expenses`).WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), expense))
	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, models.DefaultExpenseStatus, expense.Status)
	assert.NotNil(t, expense.Tags)
}

func TestExpenseRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Обновление отсутствующего расхода", func(t *testing.T) {
		db, mock := newRegexpMockDB(t)
		repo := NewExpenseRepository(db)

		mock.ExpectExec(`UPDATE expenses`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &models.Expense{ID: "missing", Category: "x", Amount: decimal.NewFromInt(1)})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Удаление", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewExpenseRepository(db)

		mock.ExpectExec(deleteExpenseQuery).WithArgs("e-1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "e-1"))
	})
}

func TestExpenseRepository_TotalsByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)

	mock.ExpectQuery(expenseTotalsQuery + expenseTotalsSuffix).
		WillReturnRows(sqlmock.NewRows([]string{"category", "total", "count"}).
			AddRow("fleurs", "300.00", 3).
			AddRow("transport", "45.10", 1))

	totals, err := repo.TotalsByCategory(context.Background(), models.ExpenseFilter{})

	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "fleurs", totals[0].Category)
	assert.Equal(t, 3, totals[0].Count)
	assert.True(t, decimal.RequireFromString("45.1").Equal(totals[1].Total))
}
