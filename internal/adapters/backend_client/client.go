package backend_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultCacheTTL = 60 * time.Second
	cacheKeyPrefix  = "backend:"
)

// StatusError - ответ бэкенда с кодом не из 2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned non-success status code %d: %s", e.StatusCode, e.Body)
}

// Unwrap: 404 сводится к domain.ErrNotFound.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Cache хранит ответы справочников (локации, категории, схемы свойств); nil отключает кэш
	Cache    port.CachePort
	CacheTTL time.Duration
}

// Client - HTTP-клиент удаленного REST-бэкенда маркетплейса.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      port.CachePort
	cacheTTL   time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      cfg.Cache,
		cacheTTL:   ttl,
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if token := contextkeys.BearerTokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// fetch выполняет запрос и возвращает тело успешного ответа.
func (c *Client) fetch(ctx context.Context, logger port.LoggerPort, method, path string, body io.Reader, contentType string) ([]byte, error) {
	logger.Debug("Sending request to backend", port.Fields{"http_method": method, "path": path})

	resp, err := c.doRequest(ctx, method, path, body, contentType)
	if err != nil {
		logger.Error("Failed to perform request to backend", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read backend response", err, nil)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
		logger.Error("Received error response from backend", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}
	return data, nil
}

// getJSON - GET с декодированием; cacheable-ответы читаются из кэша и кладутся в него.
func (c *Client) getJSON(ctx context.Context, method, path string, cacheable bool, out any) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "BackendClient",
		"method":    method,
	})

	useCache := cacheable && c.cache != nil
	key := cacheKeyPrefix + path

	if useCache {
		cached, found, err := c.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("Cache read failed, falling back to backend", port.Fields{"error": err.Error()})
		} else if found {
			if err := decodePayload(cached, out); err == nil {
				logger.Debug("Served from cache", port.Fields{"path": path})
				return nil
			}
		}
	}

	data, err := c.fetch(ctx, logger, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	if err := decodePayload(data, out); err != nil {
		logger.Error("Failed to decode response from backend", err, nil)
		return err
	}

	if useCache {
		if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
			logger.Warn("Cache write failed", port.Fields{"error": err.Error()})
		}
	}
	return nil
}

// decodePayload принимает как голый JSON, так и обертку {"data": ...}.
func decodePayload(data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil && len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
			trimmed = envelope.Data
		}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("failed to decode backend payload: %w", err)
	}
	return nil
}
