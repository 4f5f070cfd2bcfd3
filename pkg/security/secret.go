package security

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

// ErrInvalidKey signals a secret key that is not 32 base64url-encoded bytes.
var ErrInvalidKey = errors.New("invalid secret key")

// ErrDecrypt signals a ciphertext that could not be opened with the key.
var ErrDecrypt = errors.New("unable to decrypt value")

// GenerateKey returns a fresh base64url-encoded 32 byte key.
func GenerateKey() (string, error) {
	var key [keySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return base64.URLEncoding.EncodeToString(key[:]), nil
}

// Encrypt seals plaintext with the key. The output is base64url(nonce || box).
func Encrypt(encodedKey, plaintext string) (string, error) {
	key, err := decodeKey(encodedKey)
	if err != nil {
		return "", err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, key)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt.
func Decrypt(encodedKey, ciphertext string) (string, error) {
	key, err := decodeKey(encodedKey)
	if err != nil {
		return "", err
	}

	raw, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrDecrypt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(plain), nil
}

func decodeKey(encoded string) (*[keySize]byte, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil || len(raw) != keySize {
		return nil, ErrInvalidKey
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}
