package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/cyoa/pkg/adapters/memory"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/persistence/middleware"
	"github.com/aretw0/cyoa/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func secretRun() *domain.Run {
	run := domain.NewRun("r1", "quest.xml")
	run.Results.Set("hero", "Ada")
	run.Results.Set("gold", 12)
	run.Results.Set("aliases", []string{"A", "L"})
	return run
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	ports.RunRunStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	secure := mw(underlying)

	require.NoError(t, secure.Save(ctx, secretRun()))

	// The underlying store only sees the envelope.
	stored, err := underlying.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{middleware.EnvelopeKey}, stored.Results.Names())
	assert.Equal(t, "quest.xml", stored.Document, "metadata stays readable")

	loaded, err := secure.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, secretRun().Results.Entries(), loaded.Results.Entries())
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)

	oldMW, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	require.NoError(t, err)
	require.NoError(t, oldMW(underlying).Save(ctx, secretRun()))

	rotated, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	require.NoError(t, err)
	loaded, err := rotated(underlying).Load(ctx, "r1")
	require.NoError(t, err)
	hero, _ := loaded.Results.Get("hero")
	assert.Equal(t, "Ada", hero)

	wrong, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})
	require.NoError(t, err)
	_, err = wrong(underlying).Load(ctx, "r1")
	assert.ErrorContains(t, err, "decryption failed")
}

func TestEncryptionMiddleware_RejectsPlainRuns(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(ctx, secretRun()))

	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	_, err = mw(underlying).Load(ctx, "r1")
	assert.ErrorContains(t, err, "missing encrypted data envelope")
}

func TestEncryptionConfig_Validate(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.ErrorContains(t, err, "active key must be 32 bytes")

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.ErrorContains(t, err, "fallback key 0")
}

func TestPIIMiddleware(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	mw, err := middleware.NewPIIMiddleware([]string{"^hero$", "alias"})
	require.NoError(t, err)

	run := secretRun()
	require.NoError(t, mw(underlying).Save(ctx, run))

	stored, err := underlying.Load(ctx, "r1")
	require.NoError(t, err)
	hero, _ := stored.Results.Get("hero")
	aliases, _ := stored.Results.Get("aliases")
	gold, _ := stored.Results.Get("gold")
	assert.Equal(t, middleware.Mask, hero)
	assert.Equal(t, []string{middleware.Mask, middleware.Mask}, aliases)
	assert.Equal(t, 12, gold)

	original, _ := run.Results.Get("hero")
	assert.Equal(t, "Ada", original, "the caller's run is not modified")

	_, err = middleware.NewPIIMiddleware([]string{"("})
	assert.ErrorContains(t, err, "invalid mask pattern")
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	pii, err := middleware.NewPIIMiddleware([]string{"hero"})
	require.NoError(t, err)
	enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)

	store := middleware.Chain(underlying, pii, enc)
	require.NoError(t, store.Save(ctx, secretRun()))

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	hero, _ := loaded.Results.Get("hero")
	assert.Equal(t, middleware.Mask, hero, "masking runs before encryption")

	stored, err := underlying.Load(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, stored.Results.Len() == 1)
}
