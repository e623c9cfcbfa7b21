package handlers

import (
	"errors"
	"net/http"

	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

type FeedResponse struct {
	Success bool               `json:"success"`
	Posts   []*models.FeedPost `json:"posts"`
	Source  models.FeedSource  `json:"source"`
}

func (h *Handlers) GetInstagramFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.FeedService.GetFeed(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("лента Instagram недоступна")

		resp := ErrorResponse{Error: "Ошибка при получении публикаций Instagram"}
		if h.Cfg.IsDevelopment() {
			resp.Message = err.Error()
		}
		writeSuccess(w, struct {
			Success bool `json:"success"`
			ErrorResponse
		}{ErrorResponse: resp}, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, FeedResponse{Success: true, Posts: feed.Posts, Source: feed.Source}, http.StatusOK)
}

func (h *Handlers) GetInstagramImage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	file, info, err := h.FeedService.OpenImage(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			WriteError(w, "Изображение не найдено", http.StatusNotFound)
			return
		}
		h.writeServiceError(w, r, err, "Ошибка при чтении изображения")
		return
	}
	defer file.Close()

	serveFile(w, r, "image/jpeg", info, file)
}
