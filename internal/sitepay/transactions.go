package sitepay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// TransactionsService ресурсный клиент транзакций.
type TransactionsService struct {
	client *Client
}

// TransactionSearchParams параметры поиска транзакций.
type TransactionSearchParams struct {
	OrderID      int64
	CustomerID   int64
	Status       string
	Page         int
	ItemsPerPage int
}

// Get возвращает транзакцию по идентификатору.
func (s *TransactionsService) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	tx, _, err := do[models.Transaction](ctx, s.client, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("/transactions/%d", id),
	})
	return tx, err
}

// Refund возвращает средства по транзакции. Нулевая сумма означает
// полный возврат.
func (s *TransactionsService) Refund(ctx context.Context, id int64, amount float64) (*models.Transaction, error) {
	body := map[string]any{}
	if amount > 0 {
		body["amount"] = amount
	}
	tx, _, err := do[models.Transaction](ctx, s.client, apiRequest{
		method: http.MethodPost,
		path:   fmt.Sprintf("/transactions/%d/refund", id),
		body:   body,
	})
	return tx, err
}

// Find ищет транзакции.
func (s *TransactionsService) Find(ctx context.Context, params TransactionSearchParams) (*List[models.Transaction], error) {
	query := map[string]any{}
	if params.OrderID != 0 {
		query["orderId"] = params.OrderID
	}
	if params.CustomerID != 0 {
		query["customerId"] = params.CustomerID
	}
	if params.Status != "" {
		query["status"] = params.Status
	}
	addPageParams(query, params.Page, params.ItemsPerPage)

	items, env, err := do[[]models.Transaction](ctx, s.client, apiRequest{
		method: http.MethodGet,
		path:   "/transactions",
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	return NewList(*items, env.Pagination, func(ctx context.Context, page int) (*List[models.Transaction], error) {
		next := params
		next.Page = page
		return s.Find(ctx, next)
	}), nil
}
