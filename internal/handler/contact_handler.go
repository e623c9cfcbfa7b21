package handlers

import (
	"net"
	"net/http"
	"strings"

	"boutiqueCMS/internal/models"
)

type ContactMessageRequest struct {
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone"`
	Subject         string  `json:"subject" validate:"required"`
	Message         string  `json:"message" validate:"required"`
	DeliveryAddress *string `json:"deliveryAddress"`
}

type ContactStatusRequest struct {
	Status           *models.MessageStatus    `json:"status"`
	ProcessingStatus *models.ProcessingStatus `json:"processingStatus"`
	PaymentStatus    *models.PaymentStatus    `json:"paymentStatus"`
}

func (h *Handlers) SubmitContactMessage(w http.ResponseWriter, r *http.Request) {
	var req ContactMessageRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	msg := &models.ContactMessage{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           req.Phone,
		Subject:         strings.TrimSpace(req.Subject),
		Message:         req.Message,
		DeliveryAddress: req.DeliveryAddress,
	}
	if ip := clientIP(r); ip != "" {
		msg.IPAddress = &ip
	}

	if err := h.ContactService.Submit(r.Context(), msg); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при отправке сообщения")
		return
	}

	writeSuccess(w, msg, http.StatusCreated)
}

func (h *Handlers) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.ContactService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении сообщений")
		return
	}

	writeSuccess(w, messages, http.StatusOK)
}

func (h *Handlers) GetContactMessage(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении сообщения")
		return
	}

	msg, err := h.ContactService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении сообщения")
		return
	}

	writeSuccess(w, msg, http.StatusOK)
}

func (h *Handlers) UpdateContactMessage(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при обновлении сообщения")
		return
	}

	var req ContactStatusRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.ContactService.UpdateStatus(r.Context(), id, models.ContactStatusUpdate{
		Status:           req.Status,
		ProcessingStatus: req.ProcessingStatus,
		PaymentStatus:    req.PaymentStatus,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при обновлении сообщения")
		return
	}

	writeSuccess(w, updated, http.StatusOK)
}

func (h *Handlers) DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при удалении сообщения")
		return
	}

	if err := h.ContactService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при удалении сообщения")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// clientIP is the peer address of the connection without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
