package sitepay

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/sitepay-client/internal/lib/formenc"
	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// ErrSecureTokenRequired возвращается карточными операциями, когда в
// конфигурации клиента не задан secure token.
var ErrSecureTokenRequired = errors.New("sitepay: secure token is required for card operations")

// CardsService ресурсный клиент сохранённых карт. Все операции требуют
// secure token: конвейер добавляет заголовок x-secure-token автоматически,
// если токен задан в конфигурации.
type CardsService struct {
	client *Client
}

// CardChargeParams параметры списания с сохранённой карты.
type CardChargeParams struct {
	OrderExternalID string  `json:"orderExternalId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description,omitempty"`
}

// CardSearchParams параметры поиска карт.
type CardSearchParams struct {
	CustomerID   int64
	Page         int
	ItemsPerPage int
}

// Charge списывает средства с сохранённой карты без участия покупателя.
func (s *CardsService) Charge(ctx context.Context, cardID int64, params CardChargeParams) (*models.Transaction, error) {
	if s.client.cfg.SecureToken == "" {
		return nil, ErrSecureTokenRequired
	}
	body, err := formenc.StructToMap(params)
	if err != nil {
		return nil, err
	}
	tx, _, err := do[models.Transaction](ctx, s.client, apiRequest{
		method: http.MethodPost,
		path:   fmt.Sprintf("/cards/%d/charge", cardID),
		body:   body,
	})
	return tx, err
}

// Delete удаляет сохранённую карту.
func (s *CardsService) Delete(ctx context.Context, cardID int64) error {
	if s.client.cfg.SecureToken == "" {
		return ErrSecureTokenRequired
	}
	_, err := s.client.call(ctx, apiRequest{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/cards/%d", cardID),
	})
	return err
}

// Find возвращает карты покупателя.
func (s *CardsService) Find(ctx context.Context, params CardSearchParams) (*List[models.Card], error) {
	if s.client.cfg.SecureToken == "" {
		return nil, ErrSecureTokenRequired
	}
	query := map[string]any{}
	if params.CustomerID != 0 {
		query["customerId"] = params.CustomerID
	}
	addPageParams(query, params.Page, params.ItemsPerPage)

	items, env, err := do[[]models.Card](ctx, s.client, apiRequest{
		method: http.MethodGet,
		path:   "/cards",
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	return NewList(*items, env.Pagination, func(ctx context.Context, page int) (*List[models.Card], error) {
		next := params
		next.Page = page
		return s.Find(ctx, next)
	}), nil
}
