package closing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
)

func TestDraftStore(t *testing.T) {
	t.Run("Rascunho visível apenas para o próprio tenant", func(t *testing.T) {
		store := NewDraftStore(time.Minute, clock.Fixed(referenceNow))
		store.Put(domain.CloseDraft{ID: "d1", TenantID: 1})

		_, ok := store.Get(2, "d1")
		assert.False(t, ok)

		draft, ok := store.Get(1, "d1")
		require.True(t, ok)
		assert.Equal(t, "d1", draft.ID)
	})

	t.Run("Rascunho expira depois do ttl", func(t *testing.T) {
		store := NewDraftStore(time.Minute, clock.Fixed(referenceNow))
		store.Put(domain.CloseDraft{ID: "d1", TenantID: 1})

		store.clock = clock.Fixed(referenceNow.Add(59 * time.Second))
		_, ok := store.Get(1, "d1")
		assert.True(t, ok)

		store.clock = clock.Fixed(referenceNow.Add(time.Minute))
		_, ok = store.Get(1, "d1")
		assert.False(t, ok)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Nova escrita varre rascunhos expirados", func(t *testing.T) {
		store := NewDraftStore(time.Minute, clock.Fixed(referenceNow))
		store.Put(domain.CloseDraft{ID: "velho", TenantID: 1})

		store.clock = clock.Fixed(referenceNow.Add(2 * time.Minute))
		store.Put(domain.CloseDraft{ID: "novo", TenantID: 1})

		assert.Equal(t, 1, store.Len())
	})

	t.Run("Delete remove o rascunho", func(t *testing.T) {
		store := NewDraftStore(time.Minute, clock.Fixed(referenceNow))
		store.Put(domain.CloseDraft{ID: "d1", TenantID: 1})

		store.Delete("d1")

		_, ok := store.Get(1, "d1")
		assert.False(t, ok)
	})
}
