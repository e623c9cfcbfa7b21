package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

var ErrMalformed = errors.New("повреждённые зашифрованные данные")

const (
	keyIterations = 100_000
	keySalt       = "boutique-email-config"
)

// Box seals short secrets with AES-256-GCM. Output is base64(nonce || ciphertext).
type Box struct {
	aead cipher.AEAD
}

func NewBox(key string) (*Box, error) {
	if key == "" {
		return nil, errors.New("ключ шифрования не задан")
	}

	derived := pbkdf2.Key([]byte(key), []byte(keySalt), keyIterations, 32, sha256.New)
	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания шифра: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	return &Box{aead: aead}, nil
}

func (b *Box) Seal(plaintext string) (string, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	sealed := b.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (b *Box) Open(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrMalformed
	}

	ns := b.aead.NonceSize()
	if len(data) < ns {
		return "", ErrMalformed
	}

	plaintext, err := b.aead.Open(nil, data[:ns], data[ns:], nil)
	if err != nil {
		return "", fmt.Errorf("ошибка расшифровки: %w", err)
	}

	return string(plaintext), nil
}
