// Package create реализует HTTP-обработчик построения платёжной формы hosted checkout.
//
// Handler принимает JSON-запрос с данными платежа, валидирует их, строит через
// бизнес-логику подписанную форму и возвращает поля jsonRequest и checksum вместе
// с адресом страницы оплаты. Мерчант вставляет эти поля в HTML-форму без изменений.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/sitepay-client/internal/checkout"
	"github.com/magabrotheeeer/sitepay-client/internal/http/response"
	"github.com/magabrotheeeer/sitepay-client/internal/lib/sl"
	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// Handler управляет HTTP-запросами на построение платёжной формы.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики платежей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики построения платёжной формы.
type Service interface {
	BuildForm(req models.CheckoutRequest) (*checkout.Encoded, string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Построить платёжную форму
// @Description Строит подписанную форму hosted checkout. Возвращает поля jsonRequest и checksum и адрес страницы оплаты.
// @Tags Checkout
// @Accept  json
// @Produce  json
// @Param request body models.CheckoutRequest true "Данные платежа"
// @Success 200 {object} map[string]any "Поля платёжной формы"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка построения формы"
// @Router /checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded",
		slog.String("order_external_id", req.Order.ExternalID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	enc, checkoutURL, err := h.service.BuildForm(req)
	if err != nil {
		log.Error("failed to build checkout form", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build checkout form"))
		return
	}

	log.Info("checkout form built", slog.String("site_id", enc.SiteID))
	data := map[string]any{"checkoutUrl": checkoutURL}
	data[checkout.FormFieldPayload] = enc.Payload
	data[checkout.FormFieldChecksum] = enc.Checksum
	render.JSON(w, r, response.OKWithData(data))
}
