// Package cryptoutil реализует криптографические примитивы протокола
// платёжного шлюза: подпись HMAC-SHA512 для контрольной суммы платежа и
// симметричное шифрование AES-256-CBC для зашифрованного ответа шлюза.
package cryptoutil

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"fmt"
)

// ErrBadPadding возвращается, когда расшифрованный блок содержит
// некорректное дополнение PKCS#7. Обычно это означает, что данные были
// зашифрованы другим ключом.
var ErrBadPadding = errors.New("invalid pkcs7 padding")

// HMACSHA512 вычисляет HMAC-SHA512 от data с ключом key.
func HMACSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// DecryptAES256CBC расшифровывает ciphertext ключом key и вектором iv.
// Ключ обязан быть длиной 32 байта, iv — размером блока AES.
func DecryptAES256CBC(key, iv, ciphertext []byte) ([]byte, error) {
	const op = "cryptoutil.DecryptAES256CBC"

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%s: iv length %d, want %d", op, len(iv), aes.BlockSize)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%s: ciphertext length %d is not a multiple of block size", op, len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return unpadded, nil
}

// EncryptAES256CBC шифрует plaintext ключом key и вектором iv.
// Обратная операция к DecryptAES256CBC: шлюз шифрует результат оплаты именно
// так, поэтому функция используется для воспроизведения его конвертов.
func EncryptAES256CBC(key, iv, plaintext []byte) ([]byte, error) {
	const op = "cryptoutil.EncryptAES256CBC"

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%s: iv length %d, want %d", op, len(iv), aes.BlockSize)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrBadPadding
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > aes.BlockSize || padding > len(data) {
		return nil, ErrBadPadding
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, ErrBadPadding
		}
	}
	return data[:len(data)-padding], nil
}
