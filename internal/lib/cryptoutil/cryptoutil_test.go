package cryptoutil_test

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sitepay-client/internal/lib/cryptoutil"
)

var (
	testKey = []byte("01234567890123456789012345678901")
	testIV  = []byte("abcdefghijklmnop")
)

func TestHMACSHA512(t *testing.T) {
	digest := cryptoutil.HMACSHA512([]byte("secret"), []byte("payload"))

	assert.Len(t, digest, sha512.Size)

	// Повторный вызов детерминирован.
	assert.Equal(t, digest, cryptoutil.HMACSHA512([]byte("secret"), []byte("payload")))

	// Другой ключ или другие данные дают другой дайджест.
	assert.NotEqual(t, digest, cryptoutil.HMACSHA512([]byte("other"), []byte("payload")))
	assert.NotEqual(t, digest, cryptoutil.HMACSHA512([]byte("secret"), []byte("payload2")))
}

func TestHMACSHA512_KnownVector(t *testing.T) {
	// RFC 4231, test case 2.
	digest := cryptoutil.HMACSHA512([]byte("Jefe"), []byte("what do ya want for nothing?"))

	expected := "164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea250554" +
		"9758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737"
	assert.Equal(t, expected, hex.EncodeToString(digest))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{"short", "ok"},
		{"exact block", "0123456789abcdef"},
		{"json payload", `{"status":"completed","orderId":42}`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := cryptoutil.EncryptAES256CBC(testKey, testIV, []byte(tt.plaintext))
			require.NoError(t, err)

			plaintext, err := cryptoutil.DecryptAES256CBC(testKey, testIV, ciphertext)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, string(plaintext))
		})
	}
}

func TestDecryptAES256CBC_WrongKeyLength(t *testing.T) {
	_, err := cryptoutil.DecryptAES256CBC([]byte("short"), testIV, make([]byte, 16))
	assert.Error(t, err)
}

func TestDecryptAES256CBC_WrongIVLength(t *testing.T) {
	_, err := cryptoutil.DecryptAES256CBC(testKey, []byte("bad"), make([]byte, 16))
	assert.Error(t, err)
}

func TestDecryptAES256CBC_TruncatedCiphertext(t *testing.T) {
	_, err := cryptoutil.DecryptAES256CBC(testKey, testIV, []byte("not a block"))
	assert.Error(t, err)
}

func TestDecryptAES256CBC_WrongKey(t *testing.T) {
	ciphertext, err := cryptoutil.EncryptAES256CBC(testKey, testIV, []byte("payload"))
	require.NoError(t, err)

	otherKey := []byte("99999999999999999999999999999999")
	plaintext, err := cryptoutil.DecryptAES256CBC(otherKey, testIV, ciphertext)
	if err == nil {
		// Мусорный блок изредка проходит проверку дополнения,
		// но исходный текст восстановиться не может.
		assert.NotEqual(t, "payload", string(plaintext))
	}
}
