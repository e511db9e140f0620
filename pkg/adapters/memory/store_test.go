package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/incorporate/pkg/adapters/memory"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}

func TestMemoryLeadSink_Contract(t *testing.T) {
	ports.RunLeadSinkContract(t, memory.NewLeadSink())
}

func TestMemoryLeadSink_Order(t *testing.T) {
	sink := memory.NewLeadSink()
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, sink.Submit(ctx, &domain.Lead{ID: id}))
	}
	require.NoError(t, sink.Submit(ctx, &domain.Lead{ID: "a", ContactName: "resubmitted"}))

	leads := sink.Leads()
	require.Len(t, leads, 3)
	assert.Equal(t, "b", leads[0].ID)
	assert.Equal(t, "a", leads[1].ID)
	assert.Equal(t, "resubmitted", leads[1].ContactName)
	assert.Equal(t, "c", leads[2].ID)
}
