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
	"github.com/lib/pq"
)

const (
	expenseColumns = `id, date, amount, category, description, supplier, receipt_url, payment_method, status, notes, tags, created_at, updated_at`

	listExpensesQuery  = `SELECT ` + expenseColumns + ` FROM expenses`
	selectExpenseQuery = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	insertExpenseQuery = `
		INSERT INTO expenses (id, date, amount, category, description, supplier, receipt_url, payment_method, status, notes, tags, created_at, updated_at)
		VALUES (:id, :date, :amount, :category, :description, :supplier, :receipt_url, :payment_method, :status, :notes, :tags, :created_at, :updated_at)
	`
	updateExpenseQuery = `
		UPDATE expenses
		SET date = :date, amount = :amount, category = :category, description = :description,
			supplier = :supplier, receipt_url = :receipt_url, payment_method = :payment_method,
			status = :status, notes = :notes, tags = :tags, updated_at = :updated_at
		WHERE id = :id
	`
	deleteExpenseQuery  = `DELETE FROM expenses WHERE id = $1`
	expenseTotalsQuery  = `SELECT category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count FROM expenses`
	expenseTotalsSuffix = ` GROUP BY category ORDER BY total DESC`
)

type ExpenseRepositoryImpl struct {
	db *sqlx.DB
}

func NewExpenseRepository(db *sqlx.DB) *ExpenseRepositoryImpl {
	return &ExpenseRepositoryImpl{db: db}
}

// expenseWhere renders the WHERE clause of filter, numbering placeholders from $1.
func expenseWhere(filter models.ExpenseFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, cond+" $"+strconv.Itoa(len(args)))
	}

	if filter.From != nil {
		add("date >=", *filter.From)
	}
	if filter.To != nil {
		add("date <=", *filter.To)
	}
	if filter.Category != "" {
		add("category =", filter.Category)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ExpenseRepositoryImpl) List(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	where, args := expenseWhere(filter)
	expenses := make([]*models.Expense, 0)

	if err := r.db.SelectContext(ctx, &expenses, listExpensesQuery+where+` ORDER BY date DESC`, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении расходов: %w", err)
	}

	return expenses, nil
}

func (r *ExpenseRepositoryImpl) GetByID(ctx context.Context, expenseID string) (*models.Expense, error) {
	var expense models.Expense

	err := r.db.GetContext(ctx, &expense, selectExpenseQuery, expenseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, fmt.Errorf("расход %s: %w", expenseID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении расхода: %w", err)
	}

	return &expense, nil
}

func normalizeExpense(expense *models.Expense) {
	if expense.Status == "" {
		expense.Status = models.DefaultExpenseStatus
	}
	if expense.Tags == nil {
		expense.Tags = pq.StringArray{}
	}
	expense.UpdatedAt = time.Now().UTC()
}

func (r *ExpenseRepositoryImpl) Create(ctx context.Context, expense *models.Expense) error {
	expense.ID = uuid.New().String()
	normalizeExpense(expense)
	expense.CreatedAt = expense.UpdatedAt

	if _, err := r.db.NamedExecContext(ctx, insertExpenseQuery, expense); err != nil {
		return fmt.Errorf("ошибка при создании расхода: %w", err)
	}

	return nil
}

func (r *ExpenseRepositoryImpl) Update(ctx context.Context, expense *models.Expense) error {
	normalizeExpense(expense)

	result, err := r.db.NamedExecContext(ctx, updateExpenseQuery, expense)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("расход %s: %w", expense.ID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при обновлении расхода: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("расход %s: %w", expense.ID, ErrNotFound)
	}

	return nil
}

func (r *ExpenseRepositoryImpl) Delete(ctx context.Context, expenseID string) error {
	result, err := r.db.ExecContext(ctx, deleteExpenseQuery, expenseID)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("расход %s: %w", expenseID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при удалении расхода: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("расход %s: %w", expenseID, ErrNotFound)
	}

	return nil
}

func (r *ExpenseRepositoryImpl) TotalsByCategory(ctx context.Context, filter models.ExpenseFilter) ([]*models.CategoryTotal, error) {
	where, args := expenseWhere(filter)
	totals := make([]*models.CategoryTotal, 0)

	if err := r.db.SelectContext(ctx, &totals, expenseTotalsQuery+where+expenseTotalsSuffix, args...); err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте расходов: %w", err)
	}

	return totals, nil
}
