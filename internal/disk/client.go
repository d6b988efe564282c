package disk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
)

// Sentinel errors mapped from upstream responses.
var (
	ErrUnauthorized = errors.New("disk: token rejected")
	ErrNotFound     = errors.New("disk: resource not found")
	ErrConflict     = errors.New("disk: resource already exists")
)

const (
	// DefaultBaseURL is the cloud disk REST API root.
	DefaultBaseURL = "https://cloud-api.yandex.net/v1/disk"

	requestTimeout = 30 * time.Second
)

// Resource is a single entry in the remote file tree.
type Resource struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Type     string    `json:"type"` // "file" or "dir"
	Size     int64     `json:"size,omitempty"`
	Modified time.Time `json:"modified,omitempty"`
	MimeType string    `json:"mime_type,omitempty"`
}

// apiError is the upstream structured error body.
type apiError struct {
	Error       string `json:"error"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// Client issues authenticated requests against the cloud disk API. The bearer
// token is supplied per call; the client keeps no credential state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a disk client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

type listResponse struct {
	Embedded struct {
		Items []Resource `json:"items"`
	} `json:"_embedded"`
}

// List returns the children of a directory path. A missing path yields
// ErrNotFound; callers decide whether that maps to an empty listing.
func (c *Client) List(ctx context.Context, token, path string, limit int) ([]Resource, error) {
	q := url.Values{}
	q.Set("path", path)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var lr listResponse
	if err := c.getJSON(ctx, token, "/resources?"+q.Encode(), &lr); err != nil {
		return nil, err
	}
	return lr.Embedded.Items, nil
}

type hrefResponse struct {
	Href string `json:"href"`
}

// DownloadURL asks the store for a short-lived signed URL for the file at path.
func (c *Client) DownloadURL(ctx context.Context, token, path string) (string, error) {
	q := url.Values{}
	q.Set("path", path)

	var hr hrefResponse
	if err := c.getJSON(ctx, token, "/resources/download?"+q.Encode(), &hr); err != nil {
		return "", err
	}
	return hr.Href, nil
}

// Download performs the two-step fetch: signed URL first, then the content
// itself. The second stage hits the signed URL directly, unauthenticated.
func (c *Client) Download(ctx context.Context, token, path string) ([]byte, error) {
	href, err := c.DownloadURL(ctx, token, path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, href, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content fetch returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return data, nil
}

// UploadURL asks the store for a signed PUT target. With overwrite disabled an
// existing file at path yields ErrConflict.
func (c *Client) UploadURL(ctx context.Context, token, path string, overwrite bool) (string, error) {
	q := url.Values{}
	q.Set("path", path)
	q.Set("overwrite", strconv.FormatBool(overwrite))

	var hr hrefResponse
	if err := c.getJSON(ctx, token, "/resources/upload?"+q.Encode(), &hr); err != nil {
		return "", err
	}
	return hr.Href, nil
}

// PutBytes performs the literal upload to a previously obtained signed URL.
// There is no retry here: a signed PUT is not safely repeatable.
func (c *Client) PutBytes(ctx context.Context, href string, body []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, href, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("upload returned %d", resp.StatusCode)
	}
	return nil
}

// Upload runs the full two-step write: signed URL request, then the PUT.
func (c *Client) Upload(ctx context.Context, token, path string, body []byte, contentType string, overwrite bool) error {
	href, err := c.UploadURL(ctx, token, path, overwrite)
	if err != nil {
		return err
	}
	return c.PutBytes(ctx, href, body, contentType)
}

// Mkdir creates a directory. Creating one that already exists returns
// ErrConflict; callers that want mkdir-if-missing treat that as success.
func (c *Client) Mkdir(ctx context.Context, token, path string) error {
	q := url.Values{}
	q.Set("path", path)

	resp, err := c.do(ctx, token, http.MethodPut, "/resources?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkStatus(resp)
}

// Delete removes the resource at path. With permanently=false the upstream
// moves it to trash instead.
func (c *Client) Delete(ctx context.Context, token, path string, permanently bool) error {
	q := url.Values{}
	q.Set("path", path)
	q.Set("permanently", strconv.FormatBool(permanently))

	resp, err := c.do(ctx, token, http.MethodDelete, "/resources?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkStatus(resp)
}

// getJSON issues an authenticated GET and decodes the response body. GETs are
// idempotent, so transient upstream failures are retried with backoff.
func (c *Client) getJSON(ctx context.Context, token, endpoint string, out any) error {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.do(ctx, token, http.MethodGet, endpoint, nil)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if err := c.checkStatus(resp); err != nil {
			if resp.StatusCode >= 500 {
				return retry.RetryableError(err)
			}
			return err
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

func (c *Client) do(ctx context.Context, token, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("disk request: %w", err)
	}
	return resp, nil
}

// checkStatus maps upstream failures onto the client's error taxonomy. The
// caller still owns resp.Body.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode < 300 {
		return nil
	}

	var ae apiError
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if len(body) > 0 {
		json.Unmarshal(body, &ae)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict,
		ae.Error == "DiskPathPointsToExistentDirectoryError",
		ae.Error == "DiskResourceAlreadyExistsError":
		return ErrConflict
	}

	if c.logger != nil {
		c.logger.Warn("disk API error",
			"status", resp.StatusCode,
			"code", ae.Error,
			"description", ae.Description,
		)
	}
	return fmt.Errorf("disk API returned %d (%s)", resp.StatusCode, ae.Error)
}
