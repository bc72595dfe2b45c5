package sitepay_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sitepay-client/internal/sitepay"
)

// stubResult одна заготовленная реакция транспорта.
type stubResult struct {
	resp *sitepay.TransportResponse
	err  error
}

// stubTransport отдаёт заготовленные ответы по порядку и записывает
// все полученные запросы.
type stubTransport struct {
	results []stubResult
	calls   []*sitepay.TransportRequest
}

func (s *stubTransport) Send(_ context.Context, req *sitepay.TransportRequest) (*sitepay.TransportResponse, error) {
	s.calls = append(s.calls, req)
	if len(s.results) == 0 {
		return nil, errors.New("stub transport: no more results")
	}
	next := s.results[0]
	s.results = s.results[1:]
	return next.resp, next.err
}

func okResponse(body string) stubResult {
	return stubResult{resp: &sitepay.TransportResponse{
		StatusCode: 200,
		Status:     "200 OK",
		Body:       []byte(body),
	}}
}

func errorResponse(status int, statusText, body string) stubResult {
	return stubResult{resp: &sitepay.TransportResponse{
		StatusCode: status,
		Status:     statusText,
		Body:       []byte(body),
	}}
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestClient(t *testing.T, transport sitepay.Transport, cfg sitepay.Config) *sitepay.Client {
	t.Helper()
	if cfg.APIKey == "" {
		cfg.APIKey = "sk_test_secret"
	}
	client, err := sitepay.New(cfg, sitepay.WithTransport(transport), sitepay.WithLogger(newNoopLogger()))
	require.NoError(t, err)
	return client
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := sitepay.New(sitepay.Config{})
	assert.ErrorIs(t, err, sitepay.ErrAPIKeyRequired)
}

func TestClient_RetriesServerErrorThenSucceeds(t *testing.T) {
	transport := &stubTransport{results: []stubResult{
		errorResponse(500, "500 Internal Server Error", `{"code":500,"message":"internal error"}`),
		errorResponse(500, "500 Internal Server Error", `{"code":500,"message":"internal error"}`),
		okResponse(`{"code":0,"message":"ok","data":{"id":7,"externalId":"cus-7"}}`),
	}}
	client := newTestClient(t, transport, sitepay.Config{})

	customer, err := client.Customers().Get(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), customer.ID)
	assert.Len(t, transport.calls, 3)
}

func TestClient_ClientErrorNotRetried(t *testing.T) {
	transport := &stubTransport{results: []stubResult{
		errorResponse(400, "400 Bad Request",
			`{"code":1400,"message":"invalid request","error":[{"code":10,"message":"externalId is required","type":"validation","field":"externalId"}]}`),
	}}
	client := newTestClient(t, transport, sitepay.Config{})

	_, err := client.Customers().Create(context.Background(), sitepay.CustomerParams{})

	require.Error(t, err)
	assert.Len(t, transport.calls, 1)

	var apiErr *sitepay.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, 1400, apiErr.Code)
	assert.Equal(t, "invalid request", apiErr.Message)
	assert.True(t, apiErr.IsValidationError())
	assert.Equal(t, []string{"externalId is required"}, apiErr.FieldMessages()["externalId"])
}

func TestClient_NetworkErrorRetriedUntilExhausted(t *testing.T) {
	transport := &stubTransport{results: []stubResult{
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
	}}
	client := newTestClient(t, transport, sitepay.Config{})

	_, err := client.Customers().Get(context.Background(), 1)

	require.Error(t, err)
	assert.Len(t, transport.calls, 3)

	var apiErr *sitepay.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "connection refused")
}

func TestClient_AuthHeaders(t *testing.T) {
	transport := &stubTransport{results: []stubResult{
		okResponse(`{"code":0,"message":"ok","data":{"id":1}}`),
	}}
	client := newTestClient(t, transport, sitepay.Config{
		APIKey:      "sk_live_topsecret",
		SecureToken: "st_cards",
	})

	_, err := client.Customers().Get(context.Background(), 1)
	require.NoError(t, err)

	headers := transport.calls[0].Headers
	assert.Equal(t, "Bearer sk_live_topsecret", headers["Authorization"])
	assert.Equal(t, "st_cards", headers["x-secure-token"])
	assert.NotEmpty(t, headers["X-Request-Id"])
}

func TestClient_RequestIDStableAcrossRetries(t *testing.T) {
	transport := &stubTransport{results: []stubResult{
		errorResponse(502, "502 Bad Gateway", ``),
		okResponse(`{"code":0,"message":"ok","data":{"id":1}}`),
	}}
	client := newTestClient(t, transport, sitepay.Config{})

	_, err := client.Customers().Get(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, transport.calls, 2)
	first := transport.calls[0].Headers["X-Request-Id"]
	assert.NotEmpty(t, first)
	assert.Equal(t, first, transport.calls[1].Headers["X-Request-Id"])
}

func TestClient_QueryEncoding(t *testing.T) {
	transport := &stubTransport{results: []stubResult{
		okResponse(`{"code":0,"message":"ok","data":[]}`),
	}}
	client := newTestClient(t, transport, sitepay.Config{})

	_, err := client.Customers().Find(context.Background(), sitepay.CustomerSearchParams{
		ExternalID: "cus 1",
		Page:       2,
	})
	require.NoError(t, err)

	parsed, err := url.Parse(transport.calls[0].URL)
	require.NoError(t, err)
	assert.Equal(t, "/customers", parsed.Path)
	assert.Equal(t, "cus 1", parsed.Query().Get("externalId"))
	assert.Equal(t, "2", parsed.Query().Get("page"))
	assert.Empty(t, parsed.Query().Get("email"))
}

func TestClient_FormBodyEncoding(t *testing.T) {
	transport := &stubTransport{results: []stubResult{
		okResponse(`{"code":0,"message":"ok","data":{"id":1}}`),
	}}
	client := newTestClient(t, transport, sitepay.Config{})

	_, err := client.Customers().Create(context.Background(), sitepay.CustomerParams{
		ExternalID: "cus-1",
		Email:      "user@example.com",
	})
	require.NoError(t, err)

	call := transport.calls[0]
	assert.Equal(t, "application/x-www-form-urlencoded", call.Headers["Content-Type"])

	form, err := url.ParseQuery(string(call.Body))
	require.NoError(t, err)
	assert.Equal(t, "cus-1", form.Get("externalId"))
	assert.Equal(t, "user@example.com", form.Get("email"))
	assert.NotContains(t, form, "phone")
}

func TestClient_ErrorMessageFallsBackToStatus(t *testing.T) {
	transport := &stubTransport{results: []stubResult{
		errorResponse(503, "503 Service Unavailable", ``),
		errorResponse(503, "503 Service Unavailable", ``),
		errorResponse(503, "503 Service Unavailable", ``),
	}}
	client := newTestClient(t, transport, sitepay.Config{})

	_, err := client.Orders().Get(context.Background(), 5)

	var apiErr *sitepay.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.True(t, strings.Contains(apiErr.Message, "503"))
}

func TestCards_SecureTokenRequired(t *testing.T) {
	transport := &stubTransport{}
	client := newTestClient(t, transport, sitepay.Config{})

	_, err := client.Cards().Charge(context.Background(), 9, sitepay.CardChargeParams{
		OrderExternalID: "ord-1",
		Amount:          100,
		Currency:        "USD",
	})
	assert.ErrorIs(t, err, sitepay.ErrSecureTokenRequired)

	err = client.Cards().Delete(context.Background(), 9)
	assert.ErrorIs(t, err, sitepay.ErrSecureTokenRequired)

	assert.Empty(t, transport.calls)
}

func TestClient_FindPaginatesThroughTransport(t *testing.T) {
	transport := &stubTransport{results: []stubResult{
		okResponse(`{"code":0,"message":"ok","data":[{"id":1},{"id":2}],"pagination":{"currentPageNumber":1,"itemsPerPage":2,"itemsCount":5,"pageCount":3}}`),
		okResponse(`{"code":0,"message":"ok","data":[{"id":3},{"id":4}],"pagination":{"currentPageNumber":2,"itemsPerPage":2,"itemsCount":5,"pageCount":3}}`),
		okResponse(`{"code":0,"message":"ok","data":[{"id":5}],"pagination":{"currentPageNumber":3,"itemsPerPage":2,"itemsCount":5,"pageCount":3}}`),
	}}
	client := newTestClient(t, transport, sitepay.Config{})

	list, err := client.Orders().Find(context.Background(), sitepay.OrderSearchParams{ItemsPerPage: 2})
	require.NoError(t, err)
	assert.Len(t, transport.calls, 1)

	all, err := list.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, int64(5), all[4].ID)

	// Первый вызов Find плюс две дозагрузки страниц.
	require.Len(t, transport.calls, 3)
	for i, expected := range []string{"", "2", "3"} {
		parsed, err := url.Parse(transport.calls[i].URL)
		require.NoError(t, err)
		assert.Equal(t, expected, parsed.Query().Get("page"), "call %d", i)
	}
}
