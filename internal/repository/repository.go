package repository

import (
	"context"
	"time"

	"boutiqueCMS/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, password string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, imageID string) (*models.Image, error)
	List(ctx context.Context, category string, limit, offset int) ([]*models.Image, int, error)
	ExistsByFilename(ctx context.Context, filename string) (bool, error)
	Delete(ctx context.Context, imageID string) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, categoryID string) error
}

type EventRepository interface {
	List(ctx context.Context) ([]*models.Event, error)
	GetByID(ctx context.Context, eventID string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, eventID string) error
}

type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]*models.ContactMessage, error)
	GetByID(ctx context.Context, messageID string) (*models.ContactMessage, error)
	UpdateStatus(ctx context.Context, messageID string, update models.ContactStatusUpdate) (*models.ContactMessage, error)
	Delete(ctx context.Context, messageID string) error
}

type ExpenseRepository interface {
	List(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
	GetByID(ctx context.Context, expenseID string) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, expenseID string) error
	TotalsByCategory(ctx context.Context, filter models.ExpenseFilter) ([]*models.CategoryTotal, error)
}

type EmailConfigRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.EmailConfig, error)
	Upsert(ctx context.Context, cfg *models.EmailConfig) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type FeedRepository interface {
	LatestCachedAt(ctx context.Context) (time.Time, bool, error)
	ListPosts(ctx context.Context) ([]*models.FeedPost, error)
	UpsertPosts(ctx context.Context, posts []*models.FeedPost) error
}

type TablesRepository interface {
	Ping(ctx context.Context) error
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User        UserRepository
	Image       ImageRepository
	Category    CategoryRepository
	Event       EventRepository
	Contact     ContactRepository
	Expense     ExpenseRepository
	EmailConfig EmailConfigRepository
	Feed        FeedRepository
	Tables      TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:        NewUserRepository(db),
		Image:       NewImageRepository(db),
		Category:    NewCategoryRepository(db),
		Event:       NewEventRepository(db),
		Contact:     NewContactRepository(db),
		Expense:     NewExpenseRepository(db),
		EmailConfig: NewEmailConfigRepository(db),
		Feed:        NewFeedRepository(db),
		Tables:      NewTablesRepository(db),
	}
}
