package models

import (
	"slices"
	"time"
)

type MessageStatus string

const (
	MessageNew      MessageStatus = "NEW"
	MessageRead     MessageStatus = "READ"
	MessageReplied  MessageStatus = "REPLIED"
	MessageArchived MessageStatus = "ARCHIVED"
)

func (s MessageStatus) Valid() bool {
	return slices.Contains([]MessageStatus{MessageNew, MessageRead, MessageReplied, MessageArchived}, s)
}

type ProcessingStatus string

const (
	ProcessingPending    ProcessingStatus = "PENDING"
	ProcessingInProgress ProcessingStatus = "IN_PROGRESS"
	ProcessingCompleted  ProcessingStatus = "COMPLETED"
	ProcessingCancelled  ProcessingStatus = "CANCELLED"
)

func (s ProcessingStatus) Valid() bool {
	return slices.Contains([]ProcessingStatus{ProcessingPending, ProcessingInProgress, ProcessingCompleted, ProcessingCancelled}, s)
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	return slices.Contains([]PaymentStatus{PaymentUnpaid, PaymentPaid, PaymentRefunded}, s)
}

type ContactMessage struct {
	ID               string           `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Email            string           `json:"email" db:"email"`
	Phone            *string          `json:"phone" db:"phone"`
	Subject          string           `json:"subject" db:"subject"`
	Message          string           `json:"message" db:"message"`
	DeliveryAddress  *string          `json:"deliveryAddress" db:"delivery_address"`
	IPAddress        *string          `json:"ipAddress" db:"ip_address"`
	Status           MessageStatus    `json:"status" db:"status"`
	ProcessingStatus ProcessingStatus `json:"processingStatus" db:"processing_status"`
	PaymentStatus    PaymentStatus    `json:"paymentStatus" db:"payment_status"`
	SubmittedAt      time.Time        `json:"submittedAt" db:"submitted_at"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`
}

// ContactStatusUpdate holds the optional status fields of a PATCH; nil means unchanged.
type ContactStatusUpdate struct {
	Status           *MessageStatus
	ProcessingStatus *ProcessingStatus
	PaymentStatus    *PaymentStatus
}

func (u ContactStatusUpdate) Empty() bool {
	return u.Status == nil && u.ProcessingStatus == nil && u.PaymentStatus == nil
}
