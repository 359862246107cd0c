package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"filegrip/internal/domain"
	"filegrip/internal/logging"
	"filegrip/internal/retry"
)

// Client is the HTTP DataSource backed by the file server's /api endpoints
type Client struct {
	baseURL     string
	httpClient  *http.Client
	retryConfig retry.Config
	authToken   string
	metrics     *Metrics
}

// Config holds client configuration.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	RetryConfig retry.Config
	AuthToken   string

	// HTTPClient overrides the default transport, mostly for tests
	HTTPClient *http.Client
	// Registerer receives the request metrics; nil keeps them private
	Registerer prometheus.Registerer
}

var _ DataSource = (*Client)(nil)

// New creates a new client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryConfig.MaxAttempts == 0 {
		cfg.RetryConfig = retry.DefaultConfig()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  httpClient,
		retryConfig: cfg.RetryConfig,
		authToken:   cfg.AuthToken,
		metrics:     NewMetrics(cfg.Registerer),
	}
}

type listResponse struct {
	Path       string             `json:"path"`
	ParentPath string             `json:"parentPath"`
	Files      []domain.FileEntry `json:"files"`
}

type itemResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Item    domain.FileEntry `json:"item"`
}

type uploadResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	File    domain.FileEntry `json:"file"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type diskSpaceResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Data    domain.DiskSpace `json:"data"`
}

// ListDirectory fetches the entries of dir
func (c *Client) ListDirectory(ctx context.Context, dir string) (domain.DirectoryContents, error) {
	dir = NormalizePath(dir)
	var resp listResponse
	if err := c.do(ctx, "list", http.MethodGet, "/api/files", url.Values{"path": {dir}}, "", nil, &resp); err != nil {
		return domain.DirectoryContents{Path: dir, ParentPath: ParentPath(dir)}, err
	}

	contents := domain.DirectoryContents{
		Path:       resp.Path,
		ParentPath: resp.ParentPath,
		Files:      make([]domain.FileEntry, 0, len(resp.Files)),
	}
	if contents.Path == "" {
		contents.Path = dir
	}
	if contents.ParentPath == "" {
		contents.ParentPath = ParentPath(contents.Path)
	}
	for _, f := range resp.Files {
		contents.Files = append(contents.Files, normalizeEntry(f, contents.Path))
	}
	return contents, nil
}

// CreateDirectory creates name inside parent
func (c *Client) CreateDirectory(ctx context.Context, parent, name string) (domain.FileEntry, error) {
	parent = NormalizePath(parent)
	body, err := json.Marshal(map[string]string{"path": parent, "name": name})
	if err != nil {
		return domain.FileEntry{}, err
	}

	var resp itemResponse
	if err := c.do(ctx, "create", http.MethodPost, "/api/directory", nil, "application/json", body, &resp); err != nil {
		return domain.FileEntry{}, err
	}
	if !resp.Success {
		return domain.FileEntry{}, &APIError{Op: "create", Status: http.StatusOK, Message: resp.Error}
	}

	entry := resp.Item
	if entry.Name == "" {
		entry.Name = name
	}
	entry.IsDirectory = true
	return normalizeEntry(entry, parent), nil
}

// Upload sends content as the multipart field "file" into dir.
// The body is buffered so a failed attempt can be replayed.
func (c *Client) Upload(ctx context.Context, dir, name string, content io.Reader) (domain.FileEntry, error) {
	dir = NormalizePath(dir)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return domain.FileEntry{}, err
	}
	n, err := io.Copy(part, content)
	if err != nil {
		return domain.FileEntry{}, fmt.Errorf("upload: read %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return domain.FileEntry{}, err
	}

	var resp uploadResponse
	if err := c.do(ctx, "upload", http.MethodPost, "/api/upload", url.Values{"path": {dir}}, mw.FormDataContentType(), buf.Bytes(), &resp); err != nil {
		return domain.FileEntry{}, err
	}
	if !resp.Success {
		return domain.FileEntry{}, &APIError{Op: "upload", Status: http.StatusOK, Message: resp.Error}
	}
	c.metrics.addUploaded(int(n))

	entry := resp.File
	if entry.Name == "" {
		entry.Name = name
	}
	if entry.Size == 0 {
		entry.Size = n
	}
	return normalizeEntry(entry, dir), nil
}

// Delete removes the entry. entry.Path must hold its full path.
func (c *Client) Delete(ctx context.Context, entry domain.FileEntry) error {
	full := NormalizePath(entry.Path)
	query := url.Values{"path": {strings.TrimPrefix(full, "/")}}

	var resp statusResponse
	if err := c.do(ctx, "delete", http.MethodDelete, "/api/delete/"+url.PathEscape(entryID(entry)), query, "", nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Op: "delete", Status: http.StatusOK, Message: resp.Error}
	}
	return nil
}

// Rename gives the entry a new base name inside the same directory
func (c *Client) Rename(ctx context.Context, entry domain.FileEntry, newName string) (domain.FileEntry, error) {
	full := NormalizePath(entry.Path)
	dir := path.Dir(full)
	if dir == "/" {
		dir = ""
	}
	query := url.Values{"path": {path.Base(full)}, "dir": {dir}}

	body, err := json.Marshal(map[string]string{"newName": newName})
	if err != nil {
		return domain.FileEntry{}, err
	}

	var resp itemResponse
	if err := c.do(ctx, "rename", http.MethodPut, "/api/rename/"+url.PathEscape(entryID(entry)), query, "application/json", body, &resp); err != nil {
		return domain.FileEntry{}, err
	}
	if !resp.Success {
		return domain.FileEntry{}, &APIError{Op: "rename", Status: http.StatusOK, Message: resp.Error}
	}

	renamed := resp.Item
	if renamed.Name == "" {
		renamed = entry
		renamed.Name = newName
		renamed.Path = ""
		renamed.Type = ""
	}
	return normalizeEntry(renamed, path.Dir(full)), nil
}

// DiskSpace fetches storage usage
func (c *Client) DiskSpace(ctx context.Context) (domain.DiskSpace, error) {
	var resp diskSpaceResponse
	if err := c.do(ctx, "disk-space", http.MethodGet, "/api/disk-space", nil, "", nil, &resp); err != nil {
		return domain.DiskSpace{}, err
	}
	if !resp.Success {
		return domain.DiskSpace{}, &APIError{Op: "disk-space", Status: http.StatusOK, Message: resp.Error}
	}
	return resp.Data, nil
}

// do sends one logical request with retries. Transport errors and 5xx
// answers are retried, everything else is returned as is.
func (c *Client) do(ctx context.Context, op, method, endpoint string, query url.Values, contentType string, body []byte, out any) error {
	requestID := uuid.NewString()
	log := logging.WithContext(logging.WithRequestID(ctx, requestID)).With(zap.String("op", op))

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	attempt := 0
	err := retry.Do(ctx, c.retryConfig, func() error {
		attempt++
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if c.authToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.authToken)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.metrics.observe(op, 0, time.Since(start))
			log.Debug("request failed", zap.Int("attempt", attempt), zap.Error(err))
			return retry.Retryable(fmt.Errorf("%s: %w", op, err))
		}
		defer resp.Body.Close()
		c.metrics.observe(op, resp.StatusCode, time.Since(start))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			apiErr := &APIError{Op: op, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
			log.Debug("server rejected request",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
				zap.String("message", apiErr.Message))
			if resp.StatusCode >= 500 {
				return retry.Retryable(apiErr)
			}
			return apiErr
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
		return nil
	})
	if err != nil {
		log.Warn("request gave up", zap.String("url", target), zap.Int("attempts", attempt), zap.Error(err))
		return err
	}
	log.Debug("request done", zap.String("url", target), zap.Int("attempts", attempt))
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var er ErrorResponse
	if json.Unmarshal(raw, &er) == nil {
		if er.Error != "" {
			return er.Error
		}
		if er.Message != "" {
			return er.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

// entryID returns the id used in delete/rename URLs. The server keys
// those calls on the path query, so any unique token works when absent.
func entryID(entry domain.FileEntry) string {
	if entry.ID != "" {
		return entry.ID
	}
	return uuid.NewString()
}

// normalizeEntry fills the fields the server may leave out
func normalizeEntry(entry domain.FileEntry, dir string) domain.FileEntry {
	if entry.Path == "" {
		entry.Path = JoinPath(dir, entry.Name)
	} else {
		entry.Path = NormalizePath(entry.Path)
	}
	if entry.ID == "" {
		entry.ID = entry.Path
	}
	if entry.IsDirectory {
		entry.Type = domain.TypeFolder
	} else if entry.Type == "" {
		entry.Type = domain.TypeFromName(entry.Name)
	}
	if entry.URL == "" {
		entry.URL = entry.ThumbnailURL
	}
	return entry
}
