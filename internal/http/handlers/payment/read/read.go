// Package read реализует HTTP-обработчик чтения транзакции из шлюза.
//
// Handler извлекает ID транзакции из URL и проксирует запрос в API шлюза
// через ресурсный клиент транзакций.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sitepay-client/internal/http/response"
	"github.com/magabrotheeeer/sitepay-client/internal/lib/sl"
	"github.com/magabrotheeeer/sitepay-client/internal/models"
	"github.com/magabrotheeeer/sitepay-client/internal/sitepay"
)

// Handler управляет HTTP-запросами на чтение транзакции.
type Handler struct {
	log     *slog.Logger
	gateway Gateway
}

// Gateway описывает интерфейс клиента транзакций шлюза.
type Gateway interface {
	Get(ctx context.Context, id int64) (*models.Transaction, error)
}

// New создает новый Handler с переданными логгером и клиентом шлюза.
func New(log *slog.Logger, gateway Gateway) *Handler {
	return &Handler{
		log:     log,
		gateway: gateway,
	}
}

// ServeHTTP godoc
// @Summary Прочитать транзакцию
// @Description Возвращает транзакцию из API шлюза по её идентификатору.
// @Tags Payments
// @Produce  json
// @Param id path int true "ID транзакции"
// @Success 200 {object} response.Response "Данные транзакции"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Транзакция не найдена"
// @Failure 502 {object} response.ErrorResponse "Ошибка шлюза"
// @Router /payments/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	tx, err := h.gateway.Get(r.Context(), id)
	if err != nil {
		var apiErr *sitepay.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			log.Info("transaction not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("transaction not found"))
			return
		}
		log.Error("failed to read transaction", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not read transaction"))
		return
	}

	log.Info("transaction read", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithData(tx))
}
