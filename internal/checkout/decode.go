package checkout

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/sitepay-client/internal/lib/cryptoutil"
	"github.com/magabrotheeeer/sitepay-client/internal/models"
)

var (
	// ErrInvalidEnvelope входная строка не имеет формы
	// "<base64 iv>,<base64 ciphertext>".
	ErrInvalidEnvelope = errors.New("checkout: invalid encrypted response format")
	// ErrParseResult конверт расшифровался, но содержимое не является
	// корректным JSON результата оплаты. Отличается от ErrInvalidEnvelope,
	// чтобы вызывающий мог различить битый вход и битое содержимое.
	ErrParseResult = errors.New("checkout: failed to parse decrypted response")
)

// Decode расшифровывает конверт результата оплаты приватным ключом
// аккаунта. Чистая функция своих аргументов: ничего не сохраняет,
// владение результатом сразу переходит вызывающему.
func Decode(envelope, privateKey string) (*models.CheckoutResult, error) {
	ivPart, cipherPart, found := strings.Cut(envelope, ",")
	if !found || ivPart == "" || cipherPart == "" {
		return nil, ErrInvalidEnvelope
	}

	iv, err := base64.StdEncoding.DecodeString(ivPart)
	if err != nil {
		return nil, fmt.Errorf("%w: iv: %v", ErrInvalidEnvelope, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(cipherPart)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", ErrInvalidEnvelope, err)
	}

	plaintext, err := cryptoutil.DecryptAES256CBC([]byte(privateKey), iv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("checkout.Decode: %w", err)
	}

	var result models.CheckoutResult
	if err := json.Unmarshal(plaintext, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseResult, err)
	}
	return &result, nil
}
