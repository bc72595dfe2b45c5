package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/sitepay-client/internal/models"
	"github.com/magabrotheeeer/sitepay-client/internal/sitepay"
)

// MockGateway реализует интерфейс read.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockGateway)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение транзакции",
			url:  "/payments/77",
			setupMock: func(m *MockGateway) {
				m.On("Get", mock.Anything, int64(77)).Return(&models.Transaction{
					ID:     77,
					Status: "success",
					Amount: 199.99,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"success"`,
		},
		{
			name:           "некорректный id в URL",
			url:            "/payments/abc",
			setupMock:      func(_ *MockGateway) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
		{
			name: "транзакция не найдена",
			url:  "/payments/404",
			setupMock: func(m *MockGateway) {
				m.On("Get", mock.Anything, int64(404)).
					Return(nil, &sitepay.Error{Message: "not found", StatusCode: http.StatusNotFound})
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"transaction not found"`,
		},
		{
			name: "ошибка шлюза",
			url:  "/payments/500",
			setupMock: func(m *MockGateway) {
				m.On("Get", mock.Anything, int64(500)).
					Return(nil, errors.New("gateway unreachable"))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `"error":"could not read transaction"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGateway := new(MockGateway)
			tt.setupMock(mockGateway)

			handler := New(logger, mockGateway)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/payments/"))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockGateway.AssertExpectations(t)
		})
	}
}
