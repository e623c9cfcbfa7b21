package handlers

import (
	"net/http"

	"boutiqueCMS/internal/models"

	"github.com/gorilla/mux"
)

type CreateCategoryRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type UpdateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, EnvelopeResponse{Success: true, Data: h.CategoryService.List(r.Context())}, http.StatusOK)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := h.CategoryService.Get(r.Context(), mux.Vars(r)["id"])
	if !ok {
		writeFailure(w, "Категория не найдена", http.StatusNotFound)
		return
	}

	writeSuccess(w, EnvelopeResponse{Success: true, Data: c}, http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeFailure(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.CategoryService.Create(r.Context(), models.Category{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		h.writeServiceFailure(w, r, err, "Ошибка при создании категории")
		return
	}

	writeSuccess(w, EnvelopeResponse{Success: true, Data: created, Message: "Категория создана"}, http.StatusCreated)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeFailure(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.CategoryService.Update(r.Context(), mux.Vars(r)["id"], models.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		h.writeServiceFailure(w, r, err, "Ошибка при обновлении категории")
		return
	}

	writeSuccess(w, EnvelopeResponse{Success: true, Data: updated, Message: "Категория обновлена"}, http.StatusOK)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.CategoryService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceFailure(w, r, err, "Ошибка при удалении категории")
		return
	}

	writeSuccess(w, EnvelopeResponse{Success: true, Message: "Категория удалена"}, http.StatusOK)
}
