package handlers

import (
	"net/http"

	"boutiqueCMS/internal/metrics"
	"boutiqueCMS/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// NewRouter registers every route and wraps the router in the global middleware.
func NewRouter(h *Handlers, logger zerolog.Logger) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)
	router.Use(middleware.Metrics)

	auth := middleware.Auth(h.AuthService)
	protected := func(f http.HandlerFunc) http.Handler {
		return auth(f)
	}
	loginLimit := middleware.RateLimit(h.Cfg.RateLimit.LoginRequests, h.Cfg.RateLimit.Window)
	contactLimit := middleware.RateLimit(h.Cfg.RateLimit.ContactRequests, h.Cfg.RateLimit.Window)

	router.HandleFunc("/", h.Home).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/images/upload", h.LegacyUpload).Methods(http.MethodPost)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	api.HandleFunc("/health/ready", h.Ready).Methods(http.MethodGet)

	// auth
	api.Handle("/auth/login", loginLimit(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	api.Handle("/auth/me", protected(h.Me)).Methods(http.MethodGet)

	// images
	api.Handle("/images/upload", protected(h.UploadImage)).Methods(http.MethodPost)
	api.HandleFunc("/images", h.ListImages).Methods(http.MethodGet)
	api.HandleFunc("/images/{id}", h.GetImage).Methods(http.MethodGet)
	api.Handle("/images/{id}", protected(h.DeleteImage)).Methods(http.MethodDelete)
	api.HandleFunc("/serve-image/{filename:.+}", h.ServeImage).Methods(http.MethodGet, http.MethodHead)

	// categories
	api.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	api.Handle("/categories", protected(h.CreateCategory)).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", h.GetCategory).Methods(http.MethodGet)
	api.Handle("/categories/{id}", protected(h.UpdateCategory)).Methods(http.MethodPut)
	api.Handle("/categories/{id}", protected(h.DeleteCategory)).Methods(http.MethodDelete)

	// contact messages
	api.Handle("/contact-messages", contactLimit(http.HandlerFunc(h.SubmitContactMessage))).Methods(http.MethodPost)
	api.Handle("/contact-messages", protected(h.ListContactMessages)).Methods(http.MethodGet)
	api.Handle("/contact-messages/{id}", protected(h.GetContactMessage)).Methods(http.MethodGet)
	api.Handle("/contact-messages/{id}", protected(h.UpdateContactMessage)).Methods(http.MethodPatch)
	api.Handle("/contact-messages/{id}", protected(h.DeleteContactMessage)).Methods(http.MethodDelete)

	// expenses
	api.Handle("/expenses", protected(h.ListExpenses)).Methods(http.MethodGet)
	api.Handle("/expenses", protected(h.CreateExpense)).Methods(http.MethodPost)
	api.Handle("/expenses/summary", protected(h.ExpenseSummary)).Methods(http.MethodGet)
	api.Handle("/expenses/export", protected(h.ExportExpenses)).Methods(http.MethodGet)
	api.Handle("/expenses/{id}", protected(h.GetExpense)).Methods(http.MethodGet)
	api.Handle("/expenses/{id}", protected(h.UpdateExpense)).Methods(http.MethodPut)
	api.Handle("/expenses/{id}", protected(h.DeleteExpense)).Methods(http.MethodDelete)

	// events
	api.HandleFunc("/events", h.ListEvents).Methods(http.MethodGet)
	api.Handle("/events", protected(h.CreateEvent)).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}", h.GetEvent).Methods(http.MethodGet)
	api.Handle("/events/{id}", protected(h.UpdateEvent)).Methods(http.MethodPut)
	api.Handle("/events/{id}", protected(h.DeleteEvent)).Methods(http.MethodDelete)

	// email configuration
	api.Handle("/email-config", protected(h.GetEmailConfig)).Methods(http.MethodGet)
	api.Handle("/email-config", protected(h.SaveEmailConfig)).Methods(http.MethodPost)
	api.Handle("/email-config", protected(h.DeleteEmailConfig)).Methods(http.MethodDelete)

	// instagram
	api.HandleFunc("/instagram", h.GetInstagramFeed).Methods(http.MethodGet)
	api.HandleFunc("/instagram/image/{filename}", h.GetInstagramImage).Methods(http.MethodGet, http.MethodHead)

	return middleware.Chain(router,
		middleware.Recoverer,
		middleware.CORS(h.Cfg.CORSAllowedOrigins),
		middleware.Logging(logger),
	)
}
