package handlers

import (
	"net/http"

	"boutiqueCMS/internal/middleware"
	"boutiqueCMS/internal/models"
)

type EmailConfigRequest struct {
	SMTPHost string `json:"smtpHost" validate:"required,hostname_rfc1123"`
	SMTPPort int    `json:"smtpPort" validate:"required,min=1,max=65535"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FromName string `json:"fromName" validate:"required"`
	ToEmail  string `json:"toEmail" validate:"required,email"`
}

type EmailConfigResponse struct {
	Message string              `json:"message,omitempty"`
	Data    *models.EmailConfig `json:"data"`
}

func (h *Handlers) GetEmailConfig(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	cfg, err := h.EmailConfigService.Get(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении настроек почты")
		return
	}

	writeSuccess(w, EmailConfigResponse{Data: cfg}, http.StatusOK)
}

func (h *Handlers) SaveEmailConfig(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req EmailConfigRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg := &models.EmailConfig{
		UserID:   user.ID,
		SMTPHost: req.SMTPHost,
		SMTPPort: req.SMTPPort,
		Email:    req.Email,
		Password: req.Password,
		FromName: req.FromName,
		ToEmail:  req.ToEmail,
	}
	if err := h.EmailConfigService.Save(r.Context(), cfg); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при сохранении настроек почты")
		return
	}

	writeSuccess(w, EmailConfigResponse{Message: "Настройки сохранены", Data: cfg}, http.StatusCreated)
}

func (h *Handlers) DeleteEmailConfig(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	if err := h.EmailConfigService.Delete(r.Context(), user.ID); err != nil {
		h.writeServiceError(w, r, err, "Ошибка при удалении настроек почты")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
