package service

import (
	"bytes"
	"errors"
	"testing"
)

func TestShippingCipherRoundTrip(t *testing.T) {
	cipher, err := NewShippingCipher(testShippingCryptoKey)
	if err != nil {
		t.Fatalf("create cipher failed: %v", err)
	}

	address := ShippingAddress{
		Name:       "山田太郎",
		PostalCode: "100-0001",
		Prefecture: "東京都",
		City:       "千代田区",
		Town:       "千代田1-1",
	}
	ciphertext, nonce, err := cipher.Encrypt(address)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if len(ciphertext) == 0 || len(nonce) == 0 {
		t.Fatalf("ciphertext and nonce must not be empty")
	}

	decrypted, err := cipher.Decrypt(ciphertext, nonce)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if *decrypted != address {
		t.Fatalf("round trip mismatch: %+v", decrypted)
	}
}

func TestShippingCipherNonceUnique(t *testing.T) {
	cipher, err := NewShippingCipher(testShippingCryptoKey)
	if err != nil {
		t.Fatalf("create cipher failed: %v", err)
	}
	_, nonce1, err := cipher.Encrypt(ShippingAddress{Name: "a"})
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	_, nonce2, err := cipher.Encrypt(ShippingAddress{Name: "a"})
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if bytes.Equal(nonce1, nonce2) {
		t.Fatalf("nonces must be random per encryption")
	}
}

func TestShippingCipherTamperDetected(t *testing.T) {
	cipher, err := NewShippingCipher(testShippingCryptoKey)
	if err != nil {
		t.Fatalf("create cipher failed: %v", err)
	}
	ciphertext, nonce, err := cipher.Encrypt(ShippingAddress{Name: "a"})
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	ciphertext[0] ^= 0xff
	if _, err := cipher.Decrypt(ciphertext, nonce); !errors.Is(err, ErrShippingEncryptFailed) {
		t.Fatalf("tampered ciphertext should fail, got %v", err)
	}
}

func TestShippingCipherKeyValidation(t *testing.T) {
	// 未設定は「準備なし」で作成自体は成功する
	empty, err := NewShippingCipher("   ")
	if err != nil {
		t.Fatalf("empty key should not error: %v", err)
	}
	if empty.Ready() {
		t.Fatalf("empty key must not be ready")
	}
	if _, _, err := empty.Encrypt(ShippingAddress{}); !errors.Is(err, ErrShippingCryptoNotReady) {
		t.Fatalf("expected ErrShippingCryptoNotReady, got %v", err)
	}

	// 16 進でない・長さ不正は拒否
	if _, err := NewShippingCipher("zz"); err == nil {
		t.Fatalf("non-hex key should be rejected")
	}
	if _, err := NewShippingCipher("0001"); err == nil {
		t.Fatalf("short key should be rejected")
	}
}
