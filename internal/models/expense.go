package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const DefaultExpenseStatus = "PAID"

type Expense struct {
	ID            string          `json:"id" db:"id"`
	Date          time.Time       `json:"date" db:"date"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Category      string          `json:"category" db:"category"`
	Description   string          `json:"description" db:"description"`
	Supplier      *string         `json:"supplier" db:"supplier"`
	ReceiptURL    *string         `json:"receiptUrl" db:"receipt_url"`
	PaymentMethod string          `json:"paymentMethod" db:"payment_method"`
	Status        string          `json:"status" db:"status"`
	Notes         *string         `json:"notes" db:"notes"`
	Tags          pq.StringArray  `json:"tags" db:"tags"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

type ExpenseFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
}

type CategoryTotal struct {
	Category string          `json:"category" db:"category"`
	Total    decimal.Decimal `json:"total" db:"total"`
	Count    int             `json:"count" db:"count"`
}

type ExpenseSummary struct {
	Total      decimal.Decimal  `json:"total"`
	Count      int              `json:"count"`
	ByCategory []*CategoryTotal `json:"byCategory"`
}
