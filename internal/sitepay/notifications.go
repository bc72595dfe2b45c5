package sitepay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// NotificationsService ресурсный клиент уведомлений шлюза.
type NotificationsService struct {
	client *Client
}

// NotificationSearchParams параметры поиска уведомлений.
type NotificationSearchParams struct {
	Type          string
	OrderID       int64
	TransactionID int64
	Page          int
	ItemsPerPage  int
}

// Get возвращает уведомление по идентификатору.
func (s *NotificationsService) Get(ctx context.Context, id int64) (*models.Notification, error) {
	n, _, err := do[models.Notification](ctx, s.client, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("/notifications/%d", id),
	})
	return n, err
}

// Find ищет уведомления.
func (s *NotificationsService) Find(ctx context.Context, params NotificationSearchParams) (*List[models.Notification], error) {
	query := map[string]any{}
	if params.Type != "" {
		query["type"] = params.Type
	}
	if params.OrderID != 0 {
		query["orderId"] = params.OrderID
	}
	if params.TransactionID != 0 {
		query["transactionId"] = params.TransactionID
	}
	addPageParams(query, params.Page, params.ItemsPerPage)

	items, env, err := do[[]models.Notification](ctx, s.client, apiRequest{
		method: http.MethodGet,
		path:   "/notifications",
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	return NewList(*items, env.Pagination, func(ctx context.Context, page int) (*List[models.Notification], error) {
		next := params
		next.Page = page
		return s.Find(ctx, next)
	}), nil
}
