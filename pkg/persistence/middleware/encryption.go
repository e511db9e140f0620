package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/ports"
)

// encryptedPrefix marks a field value as ciphertext.
const encryptedPrefix = "enc:v1:"

// ErrNotEncrypted is returned when a stored lead carries plaintext contact fields.
var ErrNotEncrypted = errors.New("lead contact is not encrypted")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are older keys tried when decryption with ActiveKey fails.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.LeadStore
	config EncryptionConfig
}

// NewEncryptionMiddleware encrypts the contact fields of every lead with
// AES-GCM. Flow, answers and timestamps stay readable for reporting.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.LeadStore) ports.LeadStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

// ParseKey decodes a base64 AES-256 key.
func ParseKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid key encoding: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

func (m *encryptionMiddleware) Submit(ctx context.Context, lead *domain.Lead) error {
	sealed := lead.Clone()
	for _, field := range contactFields(sealed) {
		ciphertext, err := encrypt([]byte(*field), m.config.ActiveKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt lead: %w", err)
		}
		*field = encryptedPrefix + base64.StdEncoding.EncodeToString(ciphertext)
	}
	return m.next.Submit(ctx, sealed)
}

func (m *encryptionMiddleware) Lead(ctx context.Context, id string) (*domain.Lead, error) {
	lead, err := m.next.Lead(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, field := range contactFields(lead) {
		encoded, ok := strings.CutPrefix(*field, encryptedPrefix)
		if !ok {
			return nil, fmt.Errorf("%w: lead %s", ErrNotEncrypted, id)
		}
		ciphertext, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
		}
		plain, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt lead %s: %w", id, err)
		}
		*field = string(plain)
	}
	return lead, nil
}

func contactFields(l *domain.Lead) []*string {
	return []*string{&l.ContactName, &l.ContactEmail, &l.ContactPhone}
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
