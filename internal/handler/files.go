package handler

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	gopath "path"
	"strconv"

	"github.com/avkorz/diskhub/internal/disk"
	"github.com/avkorz/diskhub/internal/scope"
)

const maxUploadSize = 64 << 20 // 64 MiB

// FileHandler exposes raw file operations confined to the family area. Every
// caller-supplied path passes through the scope factory before any upstream
// call is made.
type FileHandler struct {
	disk   *disk.Client
	logger *slog.Logger
}

func NewFileHandler(diskClient *disk.Client, logger *slog.Logger) *FileHandler {
	return &FileHandler{disk: diskClient, logger: logger}
}

func familyPathParam(r *http.Request) (scope.FamilyPath, error) {
	return scope.ParseFamilyPath(r.URL.Query().Get("path"))
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	fp, err := familyPathParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.disk.List(r.Context(), requestToken(r.Context()), fp.String(), limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if items == nil {
		items = []disk.Resource{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fp, err := familyPathParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	permanently := r.URL.Query().Get("permanently") == "true"
	if err := h.disk.Delete(r.Context(), requestToken(r.Context()), fp.String(), permanently); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FileHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	fp, err := scope.ParseFamilyPath(req.Path)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.disk.Mkdir(r.Context(), requestToken(r.Context()), fp.String()); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": fp.String()})
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	fp, err := familyPathParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	target, err := fp.Join(header.Filename)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(gopath.Ext(header.Filename))
	}

	if err := h.disk.Upload(r.Context(), requestToken(r.Context()), target.String(), data, contentType, true); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": target.String()})
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	fp, err := familyPathParam(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	data, err := h.disk.Download(r.Context(), requestToken(r.Context()), fp.String())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(gopath.Base(fp.String())))
	w.Write(data)
}
