package security

import (
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	sealed, err := Encrypt(key, "s3cret")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if sealed == "s3cret" {
		t.Fatal("expected ciphertext to differ from plaintext")
	}

	plain, err := Decrypt(key, sealed)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "s3cret" {
		t.Fatalf("expected s3cret, got %q", plain)
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	key, _ := GenerateKey()
	other, _ := GenerateKey()

	sealed, err := Encrypt(key, "s3cret")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := Decrypt(other, sealed); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt, got %v", err)
	}
}

func TestInvalidKeyRejected(t *testing.T) {
	if _, err := Encrypt("short", "x"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := Decrypt("short", "x"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestDecryptTruncatedCiphertext(t *testing.T) {
	key, _ := GenerateKey()
	if _, err := Decrypt(key, "AAAA"); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt, got %v", err)
	}
}
