package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"boutiqueCMS/internal/service"
	"boutiqueCMS/internal/storage"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100

	// multipartOverhead leaves room for boundaries and the text fields next to the file.
	multipartOverhead = 64 << 10

	imageCacheControl = "public, max-age=86400"
)

type DeleteImageResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	FilesRemoved int    `json:"filesRemoved"`
}

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailure(w, fmt.Sprintf("Файл слишком большой (макс. %s)", humanize.IBytes(uint64(h.Cfg.MaxUploadSize))), http.StatusBadRequest)
			return
		}
		writeFailure(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeFailure(w, "Файл не загружен", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > h.Cfg.MaxUploadSize {
		writeFailure(w, fmt.Sprintf("Файл слишком большой (макс. %s)", humanize.IBytes(uint64(h.Cfg.MaxUploadSize))), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, "Не удалось прочитать файл", http.StatusBadRequest)
		return
	}

	image, err := h.ImageService.Upload(r.Context(), service.UploadInput{
		Data:         data,
		OriginalName: header.Filename,
		Category:     r.FormValue("category"),
		AltText:      r.FormValue("altText"),
		BaseURL:      requestBaseURL(r),
	})
	if err != nil {
		h.writeServiceFailure(w, r, err, "Ошибка загрузки изображения")
		return
	}

	writeSuccess(w, EnvelopeResponse{Success: true, Data: image}, http.StatusCreated)
}

// LegacyUpload keeps old clients working by pointing them at the current route.
func (h *Handlers) LegacyUpload(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/images/upload", http.StatusTemporaryRedirect)
}

func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, okPage := positiveQueryInt(query.Get("page"), defaultPage)
	limit, okLimit := positiveQueryInt(query.Get("limit"), defaultLimit)
	if !okPage || !okLimit {
		WriteError(w, "Некорректные параметры пагинации", http.StatusBadRequest)
		return
	}
	if limit > maxLimit {
		WriteError(w, fmt.Sprintf("Параметр limit не может превышать %d", maxLimit), http.StatusBadRequest)
		return
	}

	result, err := h.ImageService.List(r.Context(), strings.TrimSpace(query.Get("category")), page, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка при получении изображений")
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceFailure(w, r, err, "Ошибка при получении изображения")
		return
	}

	image, err := h.ImageService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceFailure(w, r, err, "Ошибка при получении изображения")
		return
	}

	writeSuccess(w, EnvelopeResponse{Success: true, Data: image}, http.StatusOK)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := resourceID(r)
	if err != nil {
		h.writeServiceFailure(w, r, err, "Ошибка при удалении изображения")
		return
	}

	removed, err := h.ImageService.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceFailure(w, r, err, "Ошибка при удалении изображения")
		return
	}

	writeSuccess(w, DeleteImageResponse{
		Success:      true,
		Message:      "Изображение удалено",
		FilesRemoved: removed,
	}, http.StatusOK)
}

func (h *Handlers) ServeImage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	file, info, err := h.ImageService.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			WriteError(w, "Изображение не найдено", http.StatusNotFound)
			return
		}
		h.writeServiceError(w, r, err, "Ошибка при чтении изображения")
		return
	}
	defer file.Close()

	serveFile(w, r, contentTypeByExt(name), info, file)
}

func serveFile(w http.ResponseWriter, r *http.Request, contentType string, info *storage.ObjectInfo, content io.ReadSeeker) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", imageCacheControl)
	w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")

	http.ServeContent(w, r, path.Base(info.Name), info.ModTime, content)
}

func contentTypeByExt(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// requestBaseURL is scheme://host as seen by the client, honouring a TLS-terminating proxy.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme, _, _ = strings.Cut(proto, ",")
		scheme = strings.ToLower(strings.TrimSpace(scheme))
	}

	return scheme + "://" + r.Host
}
