package handlers

import (
	"errors"
	"net/http"
	"time"

	"boutiqueCMS/internal/models"
)

type EventRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt" validate:"required"`
	EndsAt      *time.Time `json:"endsAt"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,url"`
}

func (h *Handlers) decodeEvent(r *http.Request) (*models.Event, error) {
	var req EventRequest
	if err := h.decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, errors.New("Окончание события раньше его начала")
	}

	return &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		ImageURL:    req.ImageURL,
	}, nil
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.EventService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении событий")
		return
	}

	writeSuccess(w, events, http.StatusOK)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении события")
		return
	}

	event, err := h.EventService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении события")
		return
	}

	writeSuccess(w, event, http.StatusOK)
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.decodeEvent(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.EventService.Create(r.Context(), event); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при создании события")
		return
	}

	writeSuccess(w, event, http.StatusCreated)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при обновлении события")
		return
	}

	event, err := h.decodeEvent(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.EventService.Update(r.Context(), id, event); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при обновлении события")
		return
	}

	writeSuccess(w, event, http.StatusOK)
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при удалении события")
		return
	}

	if err := h.EventService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при удалении события")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
