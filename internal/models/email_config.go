package models

import "time"

// EmailConfig is stored per user. Password holds the sealed SMTP secret and never leaves the service layer.
type EmailConfig struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	SMTPHost  string    `json:"smtpHost" db:"smtp_host"`
	SMTPPort  int       `json:"smtpPort" db:"smtp_port"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	FromName  string    `json:"fromName" db:"from_name"`
	ToEmail   string    `json:"toEmail" db:"to_email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
