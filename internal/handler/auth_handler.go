package handlers

import (
	"errors"
	"net/http"

	"boutiqueCMS/internal/middleware"
	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/service"
)

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type MeResponse struct {
	User *models.User `json:"user"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, "Неверный пароль", http.StatusUnauthorized)
			return
		}
		h.writeServiceError(w, r, err, "Ошибка при входе")
		return
	}

	writeSuccess(w, LoginResponse{Message: "Вход выполнен", Token: token}, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	writeSuccess(w, MeResponse{User: user}, http.StatusOK)
}
