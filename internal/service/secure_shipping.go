package service

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// ShippingAddress 暗号化対象の配送先住所
type ShippingAddress struct {
	Name         string `json:"name"`
	PostalCode   string `json:"postal_code"`
	Prefecture   string `json:"prefecture"`
	City         string `json:"city"`
	Town         string `json:"town"`
	AddressLine2 string `json:"address_line2,omitempty"`
}

// ShippingCipher 配送先住所の暗号化器
// 鍵は設定の 16 進文字列から導出する。鍵未設定の場合は暗号化を拒否する。
type ShippingCipher struct {
	key []byte
}

// NewShippingCipher 16 進文字列の鍵から暗号化器を作成
// 空文字列は「未設定」を表し、エラーにはしない（利用時に検出する）。
func NewShippingCipher(hexKey string) (*ShippingCipher, error) {
	trimmed := strings.TrimSpace(hexKey)
	if trimmed == "" {
		return &ShippingCipher{}, nil
	}
	key, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, ErrShippingCryptoNotReady
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrShippingCryptoNotReady
	}
	return &ShippingCipher{key: key}, nil
}

// Ready 暗号化キーが設定済みか
func (c *ShippingCipher) Ready() bool {
	return c != nil && len(c.key) == chacha20poly1305.KeySize
}

// Encrypt 住所を暗号化して暗号文とナンスを返す
func (c *ShippingCipher) Encrypt(address ShippingAddress) (ciphertext, nonce []byte, err error) {
	if !c.Ready() {
		return nil, nil, ErrShippingCryptoNotReady
	}
	plaintext, err := json.Marshal(address)
	if err != nil {
		return nil, nil, ErrShippingEncryptFailed
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, nil, ErrShippingEncryptFailed
	}
	nonce = make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, ErrShippingEncryptFailed
	}
	return aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Decrypt 暗号文とナンスから住所を復元する
func (c *ShippingCipher) Decrypt(ciphertext, nonce []byte) (*ShippingAddress, error) {
	if !c.Ready() {
		return nil, ErrShippingCryptoNotReady
	}
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, ErrShippingEncryptFailed
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrShippingEncryptFailed
	}
	var address ShippingAddress
	if err := json.Unmarshal(plaintext, &address); err != nil {
		return nil, ErrShippingEncryptFailed
	}
	return &address, nil
}
