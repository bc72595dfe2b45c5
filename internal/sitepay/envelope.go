package sitepay

import (
	"encoding/json"

	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// Envelope унифицированная форма ответа шлюза. В неё декодируется каждый
// ресурсный вызов; типизированные данные лежат в Data и разбираются отдельно.
type Envelope struct {
	Code         int                 `json:"code"`
	Message      string              `json:"message"`
	Data         json.RawMessage     `json:"data,omitempty"`
	Errors       []models.FieldError `json:"error,omitempty"`
	Pagination   *PageInfo           `json:"pagination,omitempty"`
	SearchParams map[string]any      `json:"searchParams,omitempty"`
}

// PageInfo блок пагинации ответа-списка. Номера страниц начинаются с 1.
type PageInfo struct {
	CurrentPageNumber int `json:"currentPageNumber"`
	ItemsPerPage      int `json:"itemsPerPage"`
	ItemsCount        int `json:"itemsCount"`
	PageCount         int `json:"pageCount"`
}
