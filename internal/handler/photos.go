package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/avkorz/diskhub/internal/disk"
	"github.com/avkorz/diskhub/internal/family"
	"github.com/avkorz/diskhub/internal/scope"
)

const maxPhotoSize = 8 << 20 // 8 MiB

// PhotoHandler serves profile photos stored under each member's folder.
type PhotoHandler struct {
	families *family.Service
	disk     *disk.Client
	logger   *slog.Logger
}

func NewPhotoHandler(families *family.Service, diskClient *disk.Client, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{families: families, disk: diskClient, logger: logger}
}

// photoPath resolves the member's photo location, revalidating the scope.
func (h *PhotoHandler) photoPath(r *http.Request) (string, error) {
	member, err := h.families.GetMember(r.Context(), r.PathValue("id"))
	if err != nil {
		return "", err
	}
	fp, err := scope.ParseFamilyPath(member.FolderPath + "/profile/photo.jpg")
	if err != nil {
		return "", err
	}
	return fp.String(), nil
}

func (h *PhotoHandler) Get(w http.ResponseWriter, r *http.Request) {
	path, err := h.photoPath(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	data, err := h.disk.Download(r.Context(), requestToken(r.Context()), path)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(data)
}

func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	path, err := h.photoPath(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		badRequest(w, "photo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.disk.Upload(r.Context(), requestToken(r.Context()), path, data, "image/jpeg", true); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "uploaded", "path": path})
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	path, err := h.photoPath(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.disk.Delete(r.Context(), requestToken(r.Context()), path, true); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
