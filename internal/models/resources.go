package models

// Customer покупатель, зарегистрированный на стороне шлюза.
type Customer struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"externalId"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	CreatedAt  Date   `json:"createdAt"`
	UpdatedAt  Date   `json:"updatedAt"`
}

// Order заказ на стороне шлюза.
type Order struct {
	ID          int64   `json:"id"`
	ExternalID  string  `json:"externalId"`
	CustomerID  int64   `json:"customerId,omitempty"`
	Type        string  `json:"type,omitempty"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description,omitempty"`
	CreatedAt   Date    `json:"createdAt"`
}

// Transaction карточная транзакция по заказу.
type Transaction struct {
	ID         int64   `json:"id"`
	OrderID    int64   `json:"orderId"`
	CustomerID int64   `json:"customerId,omitempty"`
	Type       string  `json:"type"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	CardID     *int64  `json:"cardId,omitempty"`
	CreatedAt  Date    `json:"createdAt"`
}

// Card сохранённая карта покупателя. Операции с картами требуют
// secure token в конфигурации клиента.
type Card struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customerId"`
	MaskedPan   string `json:"maskedPan"`
	Brand       string `json:"brand,omitempty"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
	CreatedAt   Date   `json:"createdAt"`
}

// Notification уведомление шлюза о событии по транзакции или заказу.
type Notification struct {
	ID            int64          `json:"id"`
	Type          string         `json:"type"`
	OrderID       *int64         `json:"orderId,omitempty"`
	TransactionID *int64         `json:"transactionId,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
	CreatedAt     Date           `json:"createdAt"`
}
