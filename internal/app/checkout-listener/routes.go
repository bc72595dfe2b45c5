// Package checkoutlistener предоставляет маршруты сервиса приёма платежей.
package checkoutlistener

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	checkoutcreate "github.com/magabrotheeeer/sitepay-client/internal/http/handlers/checkout/create"
	checkoutresult "github.com/magabrotheeeer/sitepay-client/internal/http/handlers/checkout/result"
	paymentread "github.com/magabrotheeeer/sitepay-client/internal/http/handlers/payment/read"
	paymentservice "github.com/magabrotheeeer/sitepay-client/internal/services/payment"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, paymentService *paymentservice.Service, transactions paymentread.Gateway) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/checkout", checkoutcreate.New(logger, paymentService).ServeHTTP)
		r.Get("/payments/{id}", paymentread.New(logger, transactions).ServeHTTP)

		// Webhook endpoint (без аутентификации)
		r.Post("/checkout/result", checkoutresult.New(logger, paymentService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
