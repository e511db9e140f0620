package memory

import (
	"context"
	"sync"

	"github.com/aretw0/incorporate/pkg/domain"
)

// LeadSink implements ports.LeadSink and ports.LeadReader in memory.
// Safe for concurrent use.
type LeadSink struct {
	mu    sync.RWMutex
	leads map[string]*domain.Lead
	order []string
}

// NewLeadSink creates an empty in-memory sink.
func NewLeadSink() *LeadSink {
	return &LeadSink{leads: make(map[string]*domain.Lead)}
}

// Submit stores a copy of lead.
func (s *LeadSink) Submit(ctx context.Context, lead *domain.Lead) error {
	copied := lead.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.leads[lead.ID]; !exists {
		s.order = append(s.order, lead.ID)
	}
	s.leads[lead.ID] = copied
	return nil
}

// Lead returns a copy of the lead with the given ID.
func (s *LeadSink) Lead(ctx context.Context, id string) (*domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lead, ok := s.leads[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	return lead.Clone(), nil
}

// Leads returns copies of all submitted leads in submission order.
func (s *LeadSink) Leads() []*domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Lead, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.leads[id].Clone())
	}
	return out
}
