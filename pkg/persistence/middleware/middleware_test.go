package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/incorporate/pkg/adapters/memory"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/persistence/middleware"
	"github.com/aretw0/incorporate/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func sampleLead(id string) *domain.Lead {
	answers := domain.AnswerStore{}
	answers.SetSingle(domain.CompanyStatusID, "new")
	return &domain.Lead{
		ID:           id,
		SessionID:    "s1",
		Flow:         domain.FlowNew,
		ContactName:  "Amira Haddad",
		ContactEmail: "amira@example.com",
		ContactPhone: "+971501234567",
		Answers:      answers,
		CapturedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewLeadSink()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := context.Background()

	original := sampleLead("l1")
	require.NoError(t, secure.Submit(ctx, original))
	assert.Equal(t, "Amira Haddad", original.ContactName, "caller's lead must not be modified")

	stored, err := underlying.Lead(ctx, "l1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.ContactEmail, "enc:v1:"))
	assert.NotContains(t, stored.ContactPhone, "971")
	assert.Equal(t, domain.FlowNew, stored.Flow)

	loaded, err := secure.Lead(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewLeadSink()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := context.Background()

	secureOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, secureOld.Submit(ctx, sampleLead("old")))

	secureNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := secureNew.Lead(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "amira@example.com", loaded.ContactEmail)

	require.NoError(t, secureNew.Submit(ctx, sampleLead("new")))
	_, err = secureOld.Lead(ctx, "new")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsPlaintext(t *testing.T) {
	underlying := memory.NewLeadSink()
	require.NoError(t, underlying.Submit(context.Background(), sampleLead("plain")))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secure.Lead(context.Background(), "plain")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)
}

func TestEncryptionMiddleware_NotFound(t *testing.T) {
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(memory.NewLeadSink())
	_, err := secure.Lead(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrLeadNotFound)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)
	got, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	_, err = middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.Error(t, err)
	_, err = middleware.ParseKey("%%%")
	assert.Error(t, err)
}

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := memory.NewLeadSink()
	masked := middleware.NewPIIMiddleware()(underlying)
	ctx := context.Background()

	lead := sampleLead("l1")
	require.NoError(t, masked.Submit(ctx, lead))
	assert.Equal(t, "amira@example.com", lead.ContactEmail, "caller's lead must not be modified")

	stored, err := masked.Lead(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "***", stored.ContactName)
	assert.Equal(t, "***@example.com", stored.ContactEmail)
	assert.Equal(t, "***67", stored.ContactPhone)
	assert.Equal(t, lead.Answers, stored.Answers)
}

func TestMaskHelpers(t *testing.T) {
	assert.Equal(t, "***", middleware.MaskEmail("not-an-email"))
	assert.Equal(t, "***", middleware.MaskPhone("1"))
}

func TestChain_ContractHolds(t *testing.T) {
	store := middleware.Chain(memory.NewLeadSink(),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}),
	)
	ports.RunLeadSinkContract(t, store)
}
