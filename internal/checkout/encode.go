// Package checkout реализует протокол hosted checkout платёжного шлюза:
// построение подписанной платёжной формы (payload + checksum) и расшифровку
// зашифрованного результата оплаты, который шлюз возвращает через
// webhook или redirect.
package checkout

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/magabrotheeeer/sitepay-client/internal/lib/cryptoutil"
	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

// Имена полей HTML-формы hosted checkout и параметра обратного вызова.
const (
	FormFieldPayload  = "jsonRequest"
	FormFieldChecksum = "checksum"
	CallbackParam     = "opensslResult"
)

var (
	// ErrPublicKeyMissing публичный ключ не задан.
	ErrPublicKeyMissing = errors.New("checkout: public key is required")
	// ErrPublicKeyInvalid публичный ключ не соответствует формату
	// pk_(test|live)_<siteId>.
	ErrPublicKeyInvalid = errors.New("checkout: malformed public key, expected pk_(test|live)_<siteId>")
)

var publicKeyPattern = regexp.MustCompile(`^pk_(?:test|live)_(.+)$`)

// Encoded подписанная платёжная форма. Payload и Checksum вычислены над
// одной и той же канонической сериализацией: любое расхождение между ними
// ломает серверную проверку подписи.
type Encoded struct {
	// Payload base64 канонического JSON — значение поля jsonRequest.
	Payload string
	// Checksum base64 HMAC-SHA512 над тем же JSON — значение поля checksum.
	Checksum string
	// SiteID идентификатор сайта мерчанта, извлечённый из публичного ключа.
	SiteID string
}

// FormValues возвращает поля HTML-формы hosted checkout.
func (e *Encoded) FormValues() url.Values {
	return url.Values{
		FormFieldPayload:  {e.Payload},
		FormFieldChecksum: {e.Checksum},
	}
}

// canonicalPayload каноническая форма платёжного запроса. Порядок полей
// структуры задаёт порядок ключей JSON и является контрактом сериализации.
type canonicalPayload struct {
	SiteID          string                  `json:"siteId"`
	TransactionMode models.TransactionMode  `json:"transactionMode"`
	Customer        models.CheckoutCustomer `json:"customer"`
	Order           models.CheckoutOrder    `json:"order"`
	SaveCard        bool                    `json:"saveCard"`
	InvoiceEmail    string                  `json:"invoiceEmail,omitempty"`
	BackURL         string                  `json:"backUrl,omitempty"`
	CustomData      map[string]any          `json:"customData,omitempty"`
}

// SiteID извлекает идентификатор сайта из публичного ключа.
func SiteID(publicKey string) (string, error) {
	if publicKey == "" {
		return "", ErrPublicKeyMissing
	}
	match := publicKeyPattern.FindStringSubmatch(publicKey)
	if match == nil {
		return "", ErrPublicKeyInvalid
	}
	return match[1], nil
}

// Encode строит подписанную платёжную форму. Каноническая сериализация
// вычисляется ровно один раз и используется и для payload, и для checksum.
// Функция детерминирована: повторный вызов с теми же аргументами даёт
// тот же результат.
func Encode(req models.CheckoutRequest, publicKey, privateKey string) (*Encoded, error) {
	siteID, err := SiteID(publicKey)
	if err != nil {
		return nil, err
	}

	saveCard := false
	if req.SaveCard != nil {
		saveCard = *req.SaveCard
	}

	payload := canonicalPayload{
		SiteID:          siteID,
		TransactionMode: req.TransactionMode,
		Customer:        req.Customer,
		Order:           req.Order,
		SaveCard:        saveCard,
		InvoiceEmail:    req.InvoiceEmail,
		BackURL:         req.BackURL,
		CustomData:      req.CustomData,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("checkout.Encode: %w", err)
	}

	return &Encoded{
		Payload:  base64.StdEncoding.EncodeToString(raw),
		Checksum: base64.StdEncoding.EncodeToString(cryptoutil.HMACSHA512([]byte(privateKey), raw)),
		SiteID:   siteID,
	}, nil
}
