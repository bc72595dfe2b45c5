package sitepay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Transport отправляет один HTTP-запрос и возвращает единый дескриптор
// ответа. Конвейер запросов не зависит от конкретной реализации: в тестах
// подставляется заглушка, в проде используется HTTPTransport.
type Transport interface {
	Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error)
}

// TransportRequest описывает один исходящий запрос.
// Timeout ограничивает отдельную попытку, а не весь цикл повторов.
type TransportRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
}

// TransportResponse единый дескриптор HTTP-ответа.
type TransportResponse struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

// HTTPTransport реализация Transport поверх net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport создаёт транспорт с пулом keep-alive соединений.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Send выполняет запрос с таймаутом на попытку.
func (t *HTTPTransport) Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	const op = "sitepay.HTTPTransport.Send"

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &TransportResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}
