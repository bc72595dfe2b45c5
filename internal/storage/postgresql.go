// Package storage реализует хранилище данных на основе PostgreSQL
// для учёта платежей, принятых через hosted checkout. Предоставляет
// методы сохранения расшифрованных результатов оплаты и выборки
// платежей по транзакции и покупателю.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// ErrPaymentNotFound платёж с указанной транзакцией отсутствует.
var ErrPaymentNotFound = errors.New("payment not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с платежами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'payments'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table payments missing or query error: %w", err)
	}
	return nil
}

// SavePayment вставляет результат оплаты и возвращает ID записи.
// Повторная вставка той же транзакции обновляет статус: шлюз может
// доставить уведомление несколько раз.
func (s *Storage) SavePayment(ctx context.Context, result *models.CheckoutResult) (int64, error) {
	const op = "storage.SavePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	customData, err := json.Marshal(result.CustomData)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO payments (status, order_id, transaction_id, customer_id,
			      external_id, amount, currency, custom_data, saved_card_id, paid_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  ON CONFLICT (transaction_id) DO UPDATE SET status = EXCLUDED.status
			  RETURNING id`
	var newID int64
	err = s.DB.QueryRowContext(ctx, query,
		result.Status, result.OrderID, result.TransactionID, result.CustomerID,
		result.ExternalID, result.Amount, result.Currency, customData,
		result.SavedCardID, time.Unix(result.Date, 0).UTC()).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPaymentByTransactionID возвращает платёж по ID транзакции шлюза.
func (s *Storage) GetPaymentByTransactionID(ctx context.Context, transactionID int64) (*models.CheckoutResult, error) {
	const op = "storage.GetPaymentByTransactionID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT status, order_id, transaction_id, customer_id, external_id,
				  amount, currency, custom_data, saved_card_id, paid_at
			  FROM payments WHERE transaction_id = $1`
	row := s.DB.QueryRowContext(ctx, query, transactionID)

	result, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrPaymentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPaymentsByCustomer возвращает платежи покупателя, новые первыми.
func (s *Storage) ListPaymentsByCustomer(ctx context.Context, customerExternalID string, limit, offset int) ([]models.CheckoutResult, error) {
	const op = "storage.ListPaymentsByCustomer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT status, order_id, transaction_id, customer_id, external_id,
				  amount, currency, custom_data, saved_card_id, paid_at
			  FROM payments WHERE external_id = $1
			  ORDER BY paid_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, customerExternalID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.CheckoutResult
	for rows.Next() {
		result, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*models.CheckoutResult, error) {
	var result models.CheckoutResult
	var customData []byte
	var paidAt time.Time

	if err := row.Scan(&result.Status, &result.OrderID, &result.TransactionID,
		&result.CustomerID, &result.ExternalID, &result.Amount, &result.Currency,
		&customData, &result.SavedCardID, &paidAt); err != nil {
		return nil, err
	}
	if len(customData) > 0 {
		if err := json.Unmarshal(customData, &result.CustomData); err != nil {
			return nil, err
		}
	}
	result.Date = paidAt.Unix()
	return &result, nil
}
