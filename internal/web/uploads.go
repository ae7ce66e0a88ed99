package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/db"
)

func StageUpload(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(MaxMemory); err != nil {
			log.Error().Err(err).Msg("failed to read multipart form from request")
			w.WriteHeader(http.StatusBadRequest)
			h.renderUploads(r.Context(), w, "Failed to read the uploaded files.")
			return
		}

		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			h.renderUploads(r.Context(), w, "No files selected.")
			return
		}

		for _, header := range files {
			file, err := header.Open()
			if err != nil {
				h.renderUploads(r.Context(), w, "Failed to open "+header.Filename+".")
				return
			}
			body, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				h.renderUploads(r.Context(), w, "Failed to read "+header.Filename+".")
				return
			}

			contentType := header.Header.Get("Content-Type")
			_, err = h.service.StageUpload(r.Context(), header.Filename, contentType, body)
			if err != nil {
				h.renderUploads(r.Context(), w, "Failed to stage "+header.Filename+".")
				return
			}
		}

		h.renderUploads(r.Context(), w, "")
	}
}

func DeleteUpload(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			h.renderUploads(r.Context(), w, "Invalid upload id.")
			return
		}

		err = h.service.DeleteUpload(r.Context(), id)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			h.renderUploads(r.Context(), w, "Failed to delete the upload.")
			return
		}
		h.renderUploads(r.Context(), w, "")
	}
}
