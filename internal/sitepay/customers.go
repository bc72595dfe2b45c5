package sitepay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/sitepay-client/internal/lib/formenc"
	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// CustomersService ресурсный клиент покупателей.
type CustomersService struct {
	client *Client
}

// CustomerParams параметры создания и обновления покупателя.
type CustomerParams struct {
	ExternalID string `json:"externalId,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}

// CustomerSearchParams параметры поиска покупателей.
type CustomerSearchParams struct {
	ExternalID   string
	Email        string
	Page         int
	ItemsPerPage int
}

// Create регистрирует покупателя на стороне шлюза.
func (s *CustomersService) Create(ctx context.Context, params CustomerParams) (*models.Customer, error) {
	body, err := formenc.StructToMap(params)
	if err != nil {
		return nil, err
	}
	customer, _, err := do[models.Customer](ctx, s.client, apiRequest{
		method: http.MethodPost,
		path:   "/customers",
		body:   body,
	})
	return customer, err
}

// Get возвращает покупателя по идентификатору шлюза.
func (s *CustomersService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	customer, _, err := do[models.Customer](ctx, s.client, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("/customers/%d", id),
	})
	return customer, err
}

// Update обновляет данные покупателя.
func (s *CustomersService) Update(ctx context.Context, id int64, params CustomerParams) (*models.Customer, error) {
	body, err := formenc.StructToMap(params)
	if err != nil {
		return nil, err
	}
	customer, _, err := do[models.Customer](ctx, s.client, apiRequest{
		method: http.MethodPut,
		path:   fmt.Sprintf("/customers/%d", id),
		body:   body,
	})
	return customer, err
}

// Find ищет покупателей и возвращает страницу результатов со связанным
// способом получить следующие.
func (s *CustomersService) Find(ctx context.Context, params CustomerSearchParams) (*List[models.Customer], error) {
	query := map[string]any{}
	if params.ExternalID != "" {
		query["externalId"] = params.ExternalID
	}
	if params.Email != "" {
		query["email"] = params.Email
	}
	addPageParams(query, params.Page, params.ItemsPerPage)

	items, env, err := do[[]models.Customer](ctx, s.client, apiRequest{
		method: http.MethodGet,
		path:   "/customers",
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	return NewList(*items, env.Pagination, func(ctx context.Context, page int) (*List[models.Customer], error) {
		next := params
		next.Page = page
		return s.Find(ctx, next)
	}), nil
}

func addPageParams(query map[string]any, page, itemsPerPage int) {
	if page > 0 {
		query["page"] = page
	}
	if itemsPerPage > 0 {
		query["itemsPerPage"] = itemsPerPage
	}
}
