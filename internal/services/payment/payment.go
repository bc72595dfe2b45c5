// Package payment реализует бизнес-логику приёма платежей через hosted
// checkout: построение платёжной формы, обработку зашифрованных
// уведомлений шлюза и выборку сохранённых платежей.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/sitepay-client/internal/checkout"
	"github.com/magabrotheeeer/sitepay-client/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/sitepay-client/internal/lib/sl"
	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// Повторные доставки уведомления отбрасываются в течение суток.
const dedupeTTL = 24 * time.Hour

// ErrDuplicateNotification уведомление об этой транзакции уже обработано.
var ErrDuplicateNotification = errors.New("payment: notification already processed")

// PaymentRepository описывает хранилище платежей.
type PaymentRepository interface {
	SavePayment(ctx context.Context, result *models.CheckoutResult) (int64, error)
	GetPaymentByTransactionID(ctx context.Context, transactionID int64) (*models.CheckoutResult, error)
	ListPaymentsByCustomer(ctx context.Context, customerExternalID string, limit, offset int) ([]models.CheckoutResult, error)
}

// Deduplicator отбрасывает повторные доставки уведомлений.
type Deduplicator interface {
	MarkProcessed(ctx context.Context, transactionID int64, ttl time.Duration) (bool, error)
}

// EventPublisher публикует платёжные события для других сервисов.
type EventPublisher interface {
	Publish(exchange, routingkey string, message any) error
}

// Event платёжное событие, публикуемое в обменник payments.
type Event struct {
	Status        string  `json:"status"`
	TransactionID int64   `json:"transactionId"`
	OrderID       int64   `json:"orderId"`
	ExternalID    string  `json:"externalId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Date          int64   `json:"date"`
}

// Service бизнес-логика платежей.
type Service struct {
	repo      PaymentRepository
	dedupe    Deduplicator
	publisher EventPublisher
	log       *slog.Logger

	publicKey   string
	privateKey  string
	checkoutURL string
}

// New создает Service с переданными зависимостями и ключами шлюза.
func New(repo PaymentRepository, dedupe Deduplicator, publisher EventPublisher,
	log *slog.Logger, publicKey, privateKey, checkoutURL string) *Service {
	return &Service{
		repo:        repo,
		dedupe:      dedupe,
		publisher:   publisher,
		log:         log,
		publicKey:   publicKey,
		privateKey:  privateKey,
		checkoutURL: checkoutURL,
	}
}

// BuildForm строит подписанную платёжную форму и возвращает её вместе с
// адресом страницы hosted checkout.
func (s *Service) BuildForm(req models.CheckoutRequest) (*checkout.Encoded, string, error) {
	enc, err := checkout.Encode(req, s.publicKey, s.privateKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build checkout form: %w", err)
	}
	return enc, s.checkoutURL, nil
}

// HandleResult расшифровывает уведомление шлюза, отбрасывает дубликаты,
// сохраняет платёж и публикует событие. Ошибка публикации не откатывает
// сохранённый платёж: событие вторично по отношению к записи в базе.
func (s *Service) HandleResult(ctx context.Context, envelope string) (*models.CheckoutResult, error) {
	result, err := checkout.Decode(envelope, s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode checkout result: %w", err)
	}

	fresh, err := s.dedupe.MarkProcessed(ctx, result.TransactionID, dedupeTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate: %w", err)
	}
	if !fresh {
		return nil, ErrDuplicateNotification
	}

	if _, err := s.repo.SavePayment(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	routingKey := rabbitmq.RoutingKeyFailed
	if result.Status == "success" {
		routingKey = rabbitmq.RoutingKeyCompleted
	}
	event := Event{
		Status:        result.Status,
		TransactionID: result.TransactionID,
		OrderID:       result.OrderID,
		ExternalID:    result.ExternalID,
		Amount:        result.Amount,
		Currency:      result.Currency,
		Date:          result.Date,
	}
	if err := s.publisher.Publish(rabbitmq.PaymentsExchange, routingKey, event); err != nil {
		s.log.Error("failed to publish payment event",
			slog.Int64("transaction_id", result.TransactionID), sl.Err(err))
	}

	return result, nil
}

// GetPayment возвращает сохранённый платёж по ID транзакции.
func (s *Service) GetPayment(ctx context.Context, transactionID int64) (*models.CheckoutResult, error) {
	return s.repo.GetPaymentByTransactionID(ctx, transactionID)
}

// ListPayments возвращает платежи покупателя.
func (s *Service) ListPayments(ctx context.Context, customerExternalID string, limit, offset int) ([]models.CheckoutResult, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListPaymentsByCustomer(ctx, customerExternalID, limit, offset)
}
