package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/medsync/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// TriggerHeader сообщает серверу источник запуска синхронизации
const TriggerHeader = "X-Sync-Trigger"

// ClientAPI операции сервера синхронизации, доступные клиенту
type ClientAPI interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
	Pull(ctx context.Context, trigger string, req api.PullRequest) (*api.PullResponse, error)
	Push(ctx context.Context, trigger string, req api.PushRequest) (*api.PushResponse, error)
	Bidirectional(ctx context.Context, trigger string, req api.BidirectionalRequest) (*api.BidirectionalResponse, error)
	ListConflicts(ctx context.Context, page, limit int) (*api.ConflictList, error)
	Resolve(ctx context.Context, req api.ResolveRequest) (*api.ResolveResponse, error)
	EntityHistory(ctx context.Context, entityType, syncID string) (*api.EntityHistory, error)
}

// Error ответ сервера с кодом статуса вне 2xx
type Error struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is a server Error with the given status code
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент.
// token передается в заголовке Authorization каждого запроса.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Health проверяет доступность сервера и базы
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// Pull получает изменения сервера после req.LastSync
func (c *Client) Pull(ctx context.Context, trigger string, req api.PullRequest) (*api.PullResponse, error) {
	resp, err := doData[api.PullResponse](ctx, c, http.MethodPost, "/api/v1/sync/pull", trigger, req)
	if err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	return resp, nil
}

// Push отправляет локальные изменения в порядке их возникновения
func (c *Client) Push(ctx context.Context, trigger string, req api.PushRequest) (*api.PushResponse, error) {
	resp, err := doData[api.PushResponse](ctx, c, http.MethodPost, "/api/v1/sync/push", trigger, req)
	if err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	return resp, nil
}

// Bidirectional выполняет pull и push одним запросом
func (c *Client) Bidirectional(ctx context.Context, trigger string, req api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
	resp, err := doData[api.BidirectionalResponse](ctx, c, http.MethodPost, "/api/v1/sync/bidirectional", trigger, req)
	if err != nil {
		return nil, fmt.Errorf("bidirectional request failed: %w", err)
	}
	return resp, nil
}

// ListConflicts возвращает страницу неразрешенных конфликтов пользователя
func (c *Client) ListConflicts(ctx context.Context, page, limit int) (*api.ConflictList, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/sync/conflicts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := doData[api.ConflictList](ctx, c, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, fmt.Errorf("list conflicts request failed: %w", err)
	}
	return resp, nil
}

// Resolve применяет решения по конфликтам
func (c *Client) Resolve(ctx context.Context, req api.ResolveRequest) (*api.ResolveResponse, error) {
	resp, err := doData[api.ResolveResponse](ctx, c, http.MethodPost, "/api/v1/sync/conflicts/resolve", "", req)
	if err != nil {
		return nil, fmt.Errorf("resolve request failed: %w", err)
	}
	return resp, nil
}

// EntityHistory возвращает полный аудит одной сущности
func (c *Client) EntityHistory(ctx context.Context, entityType, syncID string) (*api.EntityHistory, error) {
	path := fmt.Sprintf("/api/v1/sync/entities/%s/%s/history", url.PathEscape(entityType), url.PathEscape(syncID))

	resp, err := doData[api.EntityHistory](ctx, c, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, fmt.Errorf("entity history request failed: %w", err)
	}
	return resp, nil
}

// doData распаковывает конверт api.Response и возвращает Data
func doData[T any](ctx context.Context, c *Client, method, path, trigger string, body any) (*T, error) {
	var envelope api.Response[T]
	if err := c.doRequest(ctx, method, path, trigger, body, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, trigger string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if trigger != "" {
		req.Header.Set(TriggerHeader, trigger)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return &Error{StatusCode: resp.StatusCode, Code: errResp.Error, Message: errResp.Message}
		}
		return &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
