package activitylog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с внешним журналом действий
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента журнала действий
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Append добавляет запись в журнал действий
func (c *Client) Append(ctx context.Context, entry Entry) error {
	url := fmt.Sprintf("%s/internal/activities", c.baseURL)

	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal entry: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

// AppendBestEffort добавляет запись в журнал, не пробрасывая ошибку.
// Журнал действий — вспомогательный след: его недоступность не должна
// откатывать основную мутацию, ошибка только логируется.
func (c *Client) AppendBestEffort(ctx context.Context, entry Entry) {
	if err := c.Append(ctx, entry); err != nil {
		c.log.Error("ActivityLog unavailable, entry dropped: action=%s, actor=%d: %v",
			entry.Action, entry.ActorID, err)
		return
	}
	c.log.Info("ActivityLog: appended action=%s, actor=%d", entry.Action, entry.ActorID)
}
