package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	gopath "path"
	"strconv"
	"time"

	"github.com/avkorz/diskhub/internal/disk"
)

// DriveHandler is the browser-facing file surface: root listing, text content
// editing, uploads. Paths here are not family-scoped; the session cookie
// already proves the caller owns the disk.
type DriveHandler struct {
	disk   *disk.Client
	fetch  *http.Client
	logger *slog.Logger
}

func NewDriveHandler(diskClient *disk.Client, logger *slog.Logger) *DriveHandler {
	return &DriveHandler{
		disk:   diskClient,
		fetch:  &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

func (h *DriveHandler) List(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.disk.List(r.Context(), requestToken(r.Context()), path, limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if items == nil {
		items = []disk.Resource{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *DriveHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		badRequest(w, "path is required")
		return
	}

	data, err := h.disk.Download(r.Context(), requestToken(r.Context()), path)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path, "content": string(data)})
}

func (h *DriveHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.Path == "" {
		badRequest(w, "path is required")
		return
	}

	if err := h.disk.Upload(r.Context(), requestToken(r.Context()), req.Path, []byte(req.Content), "text/plain", true); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "path": req.Path})
}

// CreateFile writes a new file without overwrite, so an existing file at the
// path answers 409.
func (h *DriveHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.Path == "" {
		badRequest(w, "path is required")
		return
	}

	if err := h.disk.Upload(r.Context(), requestToken(r.Context()), req.Path, []byte(req.Content), "text/plain", false); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created", "path": req.Path})
}

func (h *DriveHandler) Upload(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("path")
	if dir == "" {
		dir = "/"
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

	target := gopath.Join(dir, header.Filename)
	if err := h.disk.Upload(r.Context(), requestToken(r.Context()), target, data, header.Header.Get("Content-Type"), true); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": target})
}

// UploadFromURL fetches an external resource server-side and stores it on the
// disk. Only http(s) sources are accepted.
func (h *DriveHandler) UploadFromURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL  string `json:"url"`
		Path string `json:"path"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if req.URL == "" || req.Path == "" {
		badRequest(w, "url and path are required")
		return
	}

	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		badRequest(w, "url must be http or https")
		return
	}

	src, err := http.NewRequestWithContext(r.Context(), http.MethodGet, req.URL, nil)
	if err != nil {
		badRequest(w, "invalid url")
		return
	}

	resp, err := h.fetch.Do(src)
	if err != nil {
		respondError(w, h.logger, fmt.Errorf("fetch source: %w", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respondError(w, h.logger, fmt.Errorf("source returned %d", resp.StatusCode))
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadSize))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.disk.Upload(r.Context(), requestToken(r.Context()), req.Path, data, resp.Header.Get("Content-Type"), true); err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": req.Path})
}
