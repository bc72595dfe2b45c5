package sitepay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/sitepay-client/internal/lib/formenc"
	"github.com/magabrotheeeer/sitepay-client/internal/lib/sl"
)

const maxBackoff = 10 * time.Second

// apiRequest логическое описание одного вызова API до кодирования.
type apiRequest struct {
	method  string
	path    string
	query   map[string]any
	body    map[string]any
	headers map[string]string
}

// call превращает логический запрос в подписанный HTTP-вызов и выполняет
// его через транспорт с повторами. Повторяются только сбои без HTTP-статуса
// и ответы 5xx; после последней попытки наружу отдаётся последняя ошибка
// без изменений. Заголовок X-Request-Id генерируется один раз на логический
// запрос и переиспользуется всеми попытками, чтобы шлюз мог отбросить
// задвоенные мутации.
func (c *Client) call(ctx context.Context, req apiRequest) (*Envelope, error) {
	const op = "sitepay.call"

	url := c.baseURL + normalizePath(req.path)
	if q := formenc.Query(req.query); q != "" {
		url += "?" + q
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
		"Accept":        "application/json",
		"X-Request-Id":  uuid.NewString(),
	}
	if c.cfg.SecureToken != "" {
		headers["x-secure-token"] = c.cfg.SecureToken
	}
	var body []byte
	if req.body != nil && methodHasBody(req.method) {
		body = []byte(formenc.Form(req.body))
		headers["Content-Type"] = "application/x-www-form-urlencoded"
	}
	for k, v := range req.headers {
		headers[k] = v
	}

	log := c.log.With(
		slog.String("op", op),
		slog.String("method", req.method),
		slog.String("path", req.path),
		slog.String("request_id", headers["X-Request-Id"]),
	)

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}

		env, err := c.send(ctx, req.method, url, headers, body)
		if err == nil {
			return env, nil
		}
		lastErr = err

		var apiErr *Error
		if errors.As(err, &apiErr) && !apiErr.retryable() {
			return nil, err
		}
		if attempt == c.cfg.MaxRetries {
			break
		}

		delay := backoffDelay(attempt)
		log.Warn("request failed, retrying",
			sl.Err(err),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
		)
		c.metrics.ObserveRetry()
		if err := sleepCtx(ctx, delay); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil, lastErr
}

// send выполняет одну попытку: транспорт, разбор конверта, маппинг не-2xx
// ответа в структурированную ошибку.
func (c *Client) send(ctx context.Context, method, url string, headers map[string]string, body []byte) (*Envelope, error) {
	started := time.Now()
	resp, err := c.transport.Send(ctx, &TransportRequest{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    body,
		Timeout: c.cfg.Timeout,
	})
	if err != nil {
		c.metrics.ObserveRequest(method, 0, time.Since(started))
		return nil, &Error{Message: err.Error(), cause: err}
	}
	c.metrics.ObserveRequest(method, resp.StatusCode, time.Since(started))

	var env Envelope
	parseErr := json.Unmarshal(resp.Body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := env.Message
		if message == "" {
			message = resp.Status
		}
		return nil, &Error{
			Message:    message,
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Errors:     env.Errors,
		}
	}
	if parseErr != nil {
		return nil, &Error{
			Message:    "failed to parse response body",
			StatusCode: resp.StatusCode,
			cause:      parseErr,
		}
	}
	return &env, nil
}

// do выполняет вызов и декодирует поле data конверта в T.
func do[T any](ctx context.Context, c *Client, req apiRequest) (*T, *Envelope, error) {
	env, err := c.call(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	var data T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, nil, &Error{Message: "failed to decode response data", cause: err}
		}
	}
	return &data, env, nil
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

func methodHasBody(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH", "DELETE":
		return true
	default:
		return false
	}
}

// backoffDelay задержка после неудачной попытки attempt (нумерация с 1):
// min(1000 * 2^(attempt-1), 10000) мс.
func backoffDelay(attempt int) time.Duration {
	delay := time.Second << (attempt - 1)
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
