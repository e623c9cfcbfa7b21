package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"

	expenseSheet = "Dépenses"
	// amountColumn is written as a number so spreadsheets can sum it
	amountColumn = 4
)

var ErrUnsupportedFormat = errors.New("неподдерживаемый формат экспорта")

var expenseHeaders = []string{"Date", "Catégorie", "Description", "Fournisseur", "Montant", "Moyen de paiement", "Statut", "Notes", "Tags"}

type ExpenseService interface {
	List(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
	Get(ctx context.Context, expenseID string) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expenseID string, expense *models.Expense) error
	Delete(ctx context.Context, expenseID string) error
	Summary(ctx context.Context, filter models.ExpenseFilter) (*models.ExpenseSummary, error)
	Export(ctx context.Context, filter models.ExpenseFilter, format string, w io.Writer) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) List(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	return s.expenseRepo.List(ctx, filter)
}

func (s *expenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.expenseRepo.GetByID(ctx, expenseID)
}

func (s *expenseService) Create(ctx context.Context, expense *models.Expense) error {
	return s.expenseRepo.Create(ctx, expense)
}

// Update is a full replacement of the stored expense.
func (s *expenseService) Update(ctx context.Context, expenseID string, expense *models.Expense) error {
	existing, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}

	expense.ID = expenseID
	expense.CreatedAt = existing.CreatedAt

	return s.expenseRepo.Update(ctx, expense)
}

func (s *expenseService) Delete(ctx context.Context, expenseID string) error {
	return s.expenseRepo.Delete(ctx, expenseID)
}

func (s *expenseService) Summary(ctx context.Context, filter models.ExpenseFilter) (*models.ExpenseSummary, error) {
	totals, err := s.expenseRepo.TotalsByCategory(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &models.ExpenseSummary{Total: decimal.Zero, ByCategory: totals}
	for _, t := range totals {
		summary.Total = summary.Total.Add(t.Total)
		summary.Count += t.Count
	}

	return summary, nil
}

func (s *expenseService) Export(ctx context.Context, filter models.ExpenseFilter, format string, w io.Writer) error {
	if format != ExportCSV && format != ExportXLSX {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	expenses, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return err
	}

	if format == ExportCSV {
		return writeExpensesCSV(w, expenses)
	}
	return writeExpensesXLSX(w, expenses)
}

func expenseRow(e *models.Expense) []string {
	return []string{
		e.Date.Format("2006-01-02"),
		e.Category,
		e.Description,
		deref(e.Supplier),
		e.Amount.StringFixed(2),
		e.PaymentMethod,
		e.Status,
		deref(e.Notes),
		strings.Join(e.Tags, ";"),
	}
}

func writeExpensesCSV(w io.Writer, expenses []*models.Expense) error {
	// UTF-8 BOM so spreadsheet apps detect the encoding
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(expenseHeaders); err != nil {
		return err
	}
	for _, e := range expenses {
		if err := writer.Write(expenseRow(e)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeExpensesXLSX(w io.Writer, expenses []*models.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", expenseSheet); err != nil {
		return fmt.Errorf("ошибка создания листа: %w", err)
	}

	for i, h := range expenseHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(expenseSheet, cell, h); err != nil {
			return err
		}
	}

	for idx, e := range expenses {
		row := idx + 2
		values := expenseRow(e)
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			var value any = v
			if i == amountColumn {
				value = e.Amount.InexactFloat64()
			}
			if err := f.SetCellValue(expenseSheet, cell, value); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(expenseSheet, "A", "A", 12)
	_ = f.SetColWidth(expenseSheet, "B", "D", 20)
	_ = f.SetColWidth(expenseSheet, "H", "I", 30)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("ошибка записи xlsx: %w", err)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
