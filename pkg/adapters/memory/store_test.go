package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/cyoa/pkg/adapters/memory"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/aretw0/cyoa/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunRunStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	run := domain.NewRun("r1", "doc")
	run.Results.Set("gold", 1)
	require.NoError(t, store.Save(ctx, run))

	run.Results.Set("gold", 99)

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	gold, _ := loaded.Results.Get("gold")
	assert.Equal(t, 1, gold)
}
