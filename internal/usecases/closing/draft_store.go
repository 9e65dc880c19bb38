package closing

import (
	"sync"
	"time"

	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/pkg/clock"
)

type draftEntry struct {
	draft     domain.CloseDraft
	expiresAt time.Time
}

// DraftStore guarda os rascunhos em andamento em memória, isolados por tenant.
// Rascunhos expiram ttl depois da última escrita.
type DraftStore struct {
	mu      sync.Mutex
	entries map[string]draftEntry
	ttl     time.Duration
	clock   clock.Clock
}

func NewDraftStore(ttl time.Duration, clk clock.Clock) *DraftStore {
	return &DraftStore{
		entries: make(map[string]draftEntry),
		ttl:     ttl,
		clock:   clk,
	}
}

// Get devolve o rascunho somente se pertence ao tenant e ainda não expirou
func (s *DraftStore) Get(tenantID int64, id string) (domain.CloseDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || entry.draft.TenantID != tenantID {
		return domain.CloseDraft{}, false
	}

	if !s.clock.Now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return domain.CloseDraft{}, false
	}

	return entry.draft, true
}

func (s *DraftStore) Put(draft domain.CloseDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweepLocked(now)
	s.entries[draft.ID] = draftEntry{draft: draft, expiresAt: now.Add(s.ttl)}
}

func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
}

// Len conta os rascunhos guardados, inclusive os já expirados ainda não varridos
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *DraftStore) sweepLocked(now time.Time) {
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
