package models

// TransactionMode режим карточной транзакции hosted checkout.
type TransactionMode string

const (
	// TransactionModeCharge — немедленное списание.
	TransactionModeCharge TransactionMode = "charge"
	// TransactionModeAuth — холдирование с последующим подтверждением.
	TransactionModeAuth TransactionMode = "auth"
)

// CheckoutCustomer данные покупателя в платёжной форме.
type CheckoutCustomer struct {
	ExternalID string `json:"externalId" validate:"required"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}

// CheckoutOrder данные заказа в платёжной форме. Бизнес-валидацию суммы и
// валюты выполняет сервер шлюза, клиент её не дублирует.
type CheckoutOrder struct {
	ExternalID  string  `json:"externalId" validate:"required"`
	Type        string  `json:"type,omitempty"`
	Amount      float64 `json:"amount" validate:"required"`
	Currency    string  `json:"currency" validate:"required"`
	Description string  `json:"description,omitempty"`
}

// CheckoutRequest запрос мерчанта на построение платёжной формы.
// SaveCard по умолчанию false, если не задан.
type CheckoutRequest struct {
	TransactionMode TransactionMode  `json:"transactionMode" validate:"required,oneof=charge auth"`
	Customer        CheckoutCustomer `json:"customer" validate:"required"`
	Order           CheckoutOrder    `json:"order" validate:"required"`
	SaveCard        *bool            `json:"saveCard,omitempty"`
	InvoiceEmail    string           `json:"invoiceEmail,omitempty" validate:"omitempty,email"`
	BackURL         string           `json:"backUrl,omitempty" validate:"omitempty,url"`
	CustomData      map[string]any   `json:"customData,omitempty"`
}

// CheckoutResult расшифрованный результат оплаты, который шлюз доставляет
// через webhook или redirect после завершения hosted checkout.
// Библиотека не хранит результат — владение сразу переходит вызывающему.
type CheckoutResult struct {
	Status        string         `json:"status"`
	OrderID       int64          `json:"orderId"`
	TransactionID int64          `json:"transactionId"`
	CustomerID    int64          `json:"customerId"`
	ExternalID    string         `json:"externalId"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	CustomData    map[string]any `json:"customData,omitempty"`
	Date          int64          `json:"date"`
	SavedCardID   *int64         `json:"savedCardId,omitempty"`
	Errors        []FieldError   `json:"errors,omitempty"`
}
