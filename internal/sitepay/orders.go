package sitepay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/sitepay-client/internal/lib/formenc"
	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// OrdersService ресурсный клиент заказов.
type OrdersService struct {
	client *Client
}

// OrderParams параметры создания заказа.
type OrderParams struct {
	ExternalID  string  `json:"externalId"`
	CustomerID  int64   `json:"customerId,omitempty"`
	Type        string  `json:"type,omitempty"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description,omitempty"`
}

// OrderSearchParams параметры поиска заказов.
type OrderSearchParams struct {
	ExternalID   string
	Status       string
	CustomerID   int64
	Page         int
	ItemsPerPage int
}

// Create создаёт заказ.
func (s *OrdersService) Create(ctx context.Context, params OrderParams) (*models.Order, error) {
	body, err := formenc.StructToMap(params)
	if err != nil {
		return nil, err
	}
	order, _, err := do[models.Order](ctx, s.client, apiRequest{
		method: http.MethodPost,
		path:   "/orders",
		body:   body,
	})
	return order, err
}

// Get возвращает заказ по идентификатору.
func (s *OrdersService) Get(ctx context.Context, id int64) (*models.Order, error) {
	order, _, err := do[models.Order](ctx, s.client, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("/orders/%d", id),
	})
	return order, err
}

// Cancel отменяет неоплаченный заказ.
func (s *OrdersService) Cancel(ctx context.Context, id int64) (*models.Order, error) {
	order, _, err := do[models.Order](ctx, s.client, apiRequest{
		method: http.MethodPost,
		path:   fmt.Sprintf("/orders/%d/cancel", id),
	})
	return order, err
}

// Find ищет заказы.
func (s *OrdersService) Find(ctx context.Context, params OrderSearchParams) (*List[models.Order], error) {
	query := map[string]any{}
	if params.ExternalID != "" {
		query["externalId"] = params.ExternalID
	}
	if params.Status != "" {
		query["status"] = params.Status
	}
	if params.CustomerID != 0 {
		query["customerId"] = params.CustomerID
	}
	addPageParams(query, params.Page, params.ItemsPerPage)

	items, env, err := do[[]models.Order](ctx, s.client, apiRequest{
		method: http.MethodGet,
		path:   "/orders",
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	return NewList(*items, env.Pagination, func(ctx context.Context, page int) (*List[models.Order], error) {
		next := params
		next.Page = page
		return s.Find(ctx, next)
	}), nil
}
