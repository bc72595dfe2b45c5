// Package result реализует HTTP-обработчик webhook-уведомлений шлюза о
// завершении hosted checkout.
//
// Шлюз присылает зашифрованный результат оплаты в поле формы opensslResult.
// Handler передаёт его бизнес-логике: расшифровка, отсев дубликатов,
// сохранение платежа и публикация события. Дубликат не считается ошибкой,
// шлюзу отвечаем 200, чтобы он прекратил повторные доставки.
package result

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sitepay-client/internal/checkout"
	"github.com/magabrotheeeer/sitepay-client/internal/http/response"
	"github.com/magabrotheeeer/sitepay-client/internal/lib/sl"
	"github.com/magabrotheeeer/sitepay-client/internal/models"
	paymentservice "github.com/magabrotheeeer/sitepay-client/internal/services/payment"
)

// Handler управляет webhook-уведомлениями о результате оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обработки результата оплаты.
type Service interface {
	HandleResult(ctx context.Context, envelope string) (*models.CheckoutResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Принять результат оплаты
// @Description Принимает зашифрованное уведомление шлюза о завершении оплаты (поле формы opensslResult).
// @Tags Checkout
// @Accept  x-www-form-urlencoded
// @Produce  json
// @Param opensslResult formData string true "Зашифрованный результат оплаты"
// @Success 200 {object} response.Response "Платёж обработан"
// @Failure 400 {object} response.ErrorResponse "Некорректное уведомление"
// @Failure 500 {object} response.ErrorResponse "Ошибка обработки платежа"
// @Router /checkout/result [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.result"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid form body"))
		return
	}

	envelope := r.PostFormValue(checkout.CallbackParam)
	if envelope == "" {
		log.Error("missing opensslResult field")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing opensslResult field"))
		return
	}

	result, err := h.service.HandleResult(r.Context(), envelope)
	switch {
	case errors.Is(err, paymentservice.ErrDuplicateNotification):
		log.Info("duplicate notification dropped")
		render.JSON(w, r, response.OKWithData(map[string]any{"duplicate": true}))
		return
	case errors.Is(err, checkout.ErrInvalidEnvelope), errors.Is(err, checkout.ErrParseResult):
		log.Error("failed to decode notification", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid notification"))
		return
	case err != nil:
		log.Error("failed to process payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process payment"))
		return
	}

	log.Info("payment processed",
		slog.Int64("transaction_id", result.TransactionID),
		slog.String("status", result.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transactionId": result.TransactionID,
		"status":        result.Status,
	}))
}
