// Package checkoutlistener собирает сервис приёма платежей: хранилище,
// кэш, брокер событий, клиент шлюза и HTTP-сервер.
package checkoutlistener

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/sitepay-client/internal/cache"
	"github.com/magabrotheeeer/sitepay-client/internal/config"
	"github.com/magabrotheeeer/sitepay-client/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/sitepay-client/internal/lib/sl"
	"github.com/magabrotheeeer/sitepay-client/internal/metrics"
	"github.com/magabrotheeeer/sitepay-client/internal/migrations"
	paymentservice "github.com/magabrotheeeer/sitepay-client/internal/services/payment"
	"github.com/magabrotheeeer/sitepay-client/internal/sitepay"
	"github.com/magabrotheeeer/sitepay-client/internal/storage"
)

// App HTTP-сервис приёма платежей и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	broker *amqp.Connection
}

// New подключает зависимости и собирает приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	brokerConn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	channel, err := rabbitmq.SetupChannel(brokerConn, rabbitmq.GetPaymentQueues())
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(channel)

	gatewayClient, err := sitepay.New(sitepay.Config{
		APIKey:      cfg.Gateway.APIKey,
		SecureToken: cfg.Gateway.SecureToken,
		Host:        cfg.Gateway.Host,
		Protocol:    cfg.Gateway.Protocol,
		Port:        cfg.Gateway.Port,
		Timeout:     cfg.Gateway.Timeout,
		MaxRetries:  cfg.Gateway.MaxRetries,
	},
		sitepay.WithLogger(logger),
		sitepay.WithMetrics(metrics.New(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("gateway client configured",
		slog.String("host", cfg.Gateway.Host),
		sl.Secret("api_key", cfg.Gateway.APIKey))

	paymentService := paymentservice.New(db, cacheRedis, publisher, logger,
		cfg.Gateway.PublicKey, cfg.Gateway.APIKey, cfg.Gateway.CheckoutURL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, paymentService, gatewayClient.Transactions())

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		broker: brokerConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.broker.Close()
		return err
	}
}
