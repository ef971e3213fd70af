package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/iudanet/savesync/internal/engine"
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/pkg/api"
)

// DefaultTimeout - таймаут запроса по умолчанию.
const DefaultTimeout = 30 * time.Second

// Client представляет HTTP клиент для взаимодействия с сервером синхронизации.
// Реализует engine.Transport.
type Client struct {
	client  *resty.Client
	baseURL string
}

var _ engine.Transport = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimRight(baseURL, "/")

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{client: cli, baseURL: baseURL}
}

// Pull получает версии записей, измененных на сервере после since
func (c *Client) Pull(ctx context.Context, namespace string, since uint64) (*engine.Batch, error) {
	var resp api.PullResponse
	err := c.doRequest(ctx, c.client.R().
		SetQueryParam("since", strconv.FormatUint(since, 10)).
		SetResult(&resp), "GET", recordsPath(namespace))
	if err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}

	records, err := api.ToRecords(resp.Records)
	if err != nil {
		return nil, fmt.Errorf("invalid pull response: %w", err)
	}

	return &engine.Batch{Records: records, Cursor: resp.Cursor}, nil
}

// Push отправляет записи на сервер
func (c *Client) Push(ctx context.Context, namespace string, records []*models.SaveRecord) (*engine.PushReport, error) {
	var resp api.PushResponse
	err := c.doRequest(ctx, c.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(api.PushRequest{Records: api.FromRecords(records)}).
		SetResult(&resp), "POST", recordsPath(namespace))
	if err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}

	return api.ToPushReport(resp), nil
}

// Conflicts получает ключи пространства имен, находящиеся в конфликте на сервере
func (c *Client) Conflicts(ctx context.Context, namespace string) ([]*models.ReplicaEntry, error) {
	var resp api.ConflictsResponse
	err := c.doRequest(ctx, c.client.R().SetResult(&resp), "GET",
		"/api/v1/namespaces/"+url.PathEscape(namespace)+"/conflicts")
	if err != nil {
		return nil, fmt.Errorf("conflicts request failed: %w", err)
	}

	entries := make([]*models.ReplicaEntry, 0, len(resp.Conflicts))
	for _, e := range resp.Conflicts {
		entry, err := api.ToEntry(e)
		if err != nil {
			return nil, fmt.Errorf("invalid conflicts response: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, c.client.R().SetResult(&resp), "GET", "/api/v1/health"); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос и разбирает ошибку сервера
func (c *Client) doRequest(ctx context.Context, req *resty.Request, method, path string) error {
	var errResp api.ErrorResponse

	resp, err := req.
		SetContext(ctx).
		SetError(&errResp).
		Execute(method, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	// Проверяем статус код
	if resp.IsError() {
		if errResp.Code != "" {
			return fmt.Errorf("server error (%d): %w", resp.StatusCode(), api.ToError(errResp))
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	return nil
}

func recordsPath(namespace string) string {
	return "/api/v1/namespaces/" + url.PathEscape(namespace) + "/records"
}
