package handlers

import (
	"errors"
	"net/http"

	"boutiqueCMS/internal/category"
	"boutiqueCMS/internal/repository"
	"boutiqueCMS/internal/service"
	"boutiqueCMS/internal/storage"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/hlog"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// EnvelopeResponse is used by the image, category and feed endpoints.
type EnvelopeResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeFailure(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, EnvelopeResponse{Success: false, Error: message}, statusCode)
}

// writeSuccess - функция для успешных ответов
func writeSuccess(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, category.ErrExists):
		return http.StatusConflict
	case errors.Is(err, category.ErrProtected):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmptyFile),
		errors.Is(err, service.ErrUnsupportedImage),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, service.ErrEmptyUpdate),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, storage.ErrInvalidName),
		errors.Is(err, category.ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// failure maps err to a status and a client-facing message.
// Internal errors are logged and their detail is only exposed in development.
func (h *Handlers) failure(r *http.Request, err error, message string) (int, string) {
	status := errorStatus(err)
	if status != http.StatusInternalServerError {
		return status, err.Error()
	}

	hlog.FromRequest(r).Error().Err(err).Msg(message)
	if h.Cfg.IsDevelopment() {
		message += ": " + err.Error()
	}
	return status, message
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status, message := h.failure(r, err, message)
	WriteError(w, message, status)
}

func (h *Handlers) writeServiceFailure(w http.ResponseWriter, r *http.Request, err error, message string) {
	status, message := h.failure(r, err, message)
	writeFailure(w, message, status)
}

// decodeJSON reads the body into dst and runs struct validation on it.
func (h *Handlers) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("Неверный формат запроса")
	}

	if err := h.Validate.Struct(dst); err != nil {
		return validationError(err)
	}

	return nil
}
