// Package sitepay реализует клиент HTTP API платёжного шлюза SitePay:
// конвейер подписанных запросов с повторами и экспоненциальной задержкой,
// типизированные ресурсные клиенты (покупатели, заказы, транзакции, карты,
// уведомления) и ленивую пагинацию ответов-списков.
package sitepay

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/sitepay-client/internal/metrics"
)

// Значения конфигурации по умолчанию.
const (
	DefaultHost       = "api.sitepay.com"
	DefaultProtocol   = "https"
	DefaultPort       = 443
	DefaultTimeout    = 80 * time.Second
	DefaultMaxRetries = 3
)

// ErrAPIKeyRequired возвращается из New, когда не задан API-ключ.
var ErrAPIKeyRequired = errors.New("sitepay: api key is required")

// Config настройки клиента. Создаётся один раз при старте и после этого
// не изменяется: каждый запрос только читает её.
type Config struct {
	// APIKey секрет аккаунта: bearer-учётные данные ресурсных вызовов и
	// ключ подписи/расшифровки протокола hosted checkout.
	APIKey string
	// SecureToken учётные данные карточных операций, опционален.
	SecureToken string
	Host        string
	Protocol    string
	Port        int
	// Timeout ограничивает отдельную попытку на уровне транспорта.
	Timeout time.Duration
	// MaxRetries максимальное количество попыток логического запроса.
	MaxRetries int
}

// Client клиент API шлюза. Безопасен для одновременного использования
// из нескольких горутин: всё состояние после New только читается.
type Client struct {
	cfg       Config
	baseURL   string
	transport Transport
	log       *slog.Logger
	limiter   *rate.Limiter
	metrics   *metrics.Collector
}

// Option настраивает клиент при создании.
type Option func(*Client)

// WithTransport подменяет транспортную реализацию.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithLogger задаёт логгер клиента.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithRateLimit ограничивает частоту исходящих попыток.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithMetrics включает сбор метрик Prometheus для конвейера запросов.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// New создает клиент шлюза, заполняя незаданные поля значениями
// по умолчанию.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Protocol == "" {
		cfg.Protocol = DefaultProtocol
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	c := &Client{
		cfg:       cfg,
		baseURL:   baseURL(cfg),
		transport: NewHTTPTransport(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func baseURL(cfg Config) string {
	standard := (cfg.Protocol == "https" && cfg.Port == 443) ||
		(cfg.Protocol == "http" && cfg.Port == 80)
	if standard {
		return fmt.Sprintf("%s://%s", cfg.Protocol, cfg.Host)
	}
	return fmt.Sprintf("%s://%s:%d", cfg.Protocol, cfg.Host, cfg.Port)
}

// Customers возвращает клиент ресурса покупателей.
func (c *Client) Customers() *CustomersService { return &CustomersService{client: c} }

// Orders возвращает клиент ресурса заказов.
func (c *Client) Orders() *OrdersService { return &OrdersService{client: c} }

// Transactions возвращает клиент ресурса транзакций.
func (c *Client) Transactions() *TransactionsService { return &TransactionsService{client: c} }

// Cards возвращает клиент ресурса сохранённых карт.
func (c *Client) Cards() *CardsService { return &CardsService{client: c} }

// Notifications возвращает клиент ресурса уведомлений.
func (c *Client) Notifications() *NotificationsService { return &NotificationsService{client: c} }
