package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/service"

	"github.com/shopspring/decimal"
)

type ExpenseRequest struct {
	Date          string          `json:"date" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	Supplier      *string         `json:"supplier"`
	ReceiptURL    *string         `json:"receiptUrl"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	Status        string          `json:"status"`
	Notes         *string         `json:"notes"`
	Tags          []string        `json:"tags"`
}

var exportContentTypes = map[string]string{
	service.ExportCSV:  "text/csv; charset=utf-8",
	service.ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// toExpense validates the fields the struct tags cannot express.
func (req *ExpenseRequest) toExpense() (*models.Expense, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, errors.New("Сумма должна быть больше нуля")
	}

	return &models.Expense{
		Date:          date,
		Amount:        req.Amount,
		Category:      strings.TrimSpace(req.Category),
		Description:   req.Description,
		Supplier:      req.Supplier,
		ReceiptURL:    req.ReceiptURL,
		PaymentMethod: req.PaymentMethod,
		Status:        strings.ToUpper(strings.TrimSpace(req.Status)),
		Notes:         req.Notes,
		Tags:          req.Tags,
	}, nil
}

func (h *Handlers) decodeExpense(r *http.Request) (*models.Expense, error) {
	var req ExpenseRequest
	if err := h.decodeJSON(r, &req); err != nil {
		return nil, err
	}
	return req.toExpense()
}

func expenseFilter(r *http.Request) (models.ExpenseFilter, error) {
	query := r.URL.Query()
	filter := models.ExpenseFilter{Category: strings.TrimSpace(query.Get("category"))}

	if from := query.Get("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}

	if to := query.Get("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, errors.New("Дата окончания раньше даты начала")
	}

	return filter, nil
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter, err := expenseFilter(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	expenses, err := h.ExpenseService.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении расходов")
		return
	}

	writeSuccess(w, expenses, http.StatusOK)
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении расхода")
		return
	}

	expense, err := h.ExpenseService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении расхода")
		return
	}

	writeSuccess(w, expense, http.StatusOK)
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.decodeExpense(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ExpenseService.Create(r.Context(), expense); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при создании расхода")
		return
	}

	writeSuccess(w, expense, http.StatusCreated)
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при обновлении расхода")
		return
	}

	expense, err := h.decodeExpense(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ExpenseService.Update(r.Context(), id, expense); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при обновлении расхода")
		return
	}

	writeSuccess(w, expense, http.StatusOK)
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при удалении расхода")
		return
	}

	if err := h.ExpenseService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при удалении расхода")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := expenseFilter(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.ExpenseService.Summary(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при подсчёте расходов")
		return
	}

	writeSuccess(w, summary, http.StatusOK)
}

// ExportExpenses renders the whole file before answering so a failure can still produce a JSON error.
func (h *Handlers) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	filter, err := expenseFilter(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = service.ExportCSV
	}

	var buf bytes.Buffer
	if err := h.ExpenseService.Export(r.Context(), filter, format, &buf); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при экспорте расходов")
		return
	}

	filename := fmt.Sprintf("depenses-%s.%s", h.now().Format("2006-01-02"), format)
	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
