package handlers

import (
	"time"

	"boutiqueCMS/internal/config"
	"boutiqueCMS/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	AuthService        service.AuthService
	ImageService       service.ImageService
	CategoryService    service.CategoryService
	FeedService        service.FeedService
	ContactService     service.ContactService
	ExpenseService     service.ExpenseService
	EventService       service.EventService
	EmailConfigService service.EmailConfigService
	TablesService      service.TablesService
	Cfg                *config.Config
	Validate           *validator.Validate
	Now                func() time.Time
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:        service.Auth,
		ImageService:       service.Image,
		CategoryService:    service.Category,
		FeedService:        service.Feed,
		ContactService:     service.Contact,
		ExpenseService:     service.Expense,
		EventService:       service.Event,
		EmailConfigService: service.EmailConfig,
		TablesService:      service.Tables,
		Cfg:                config,
		Validate:           NewValidator(),
		Now:                time.Now,
	}
}

func (h *Handlers) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
