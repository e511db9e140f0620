package ports

import (
	"context"

	"github.com/aretw0/incorporate/pkg/domain"
)

// LeadSink receives completed answer records. A failed Submit never rolls
// back the session; retrying is up to the caller.
type LeadSink interface {
	Submit(ctx context.Context, lead *domain.Lead) error
}

// LeadReader is implemented by sinks that can read leads back.
type LeadReader interface {
	// Lead returns the lead with the given ID, or domain.ErrLeadNotFound.
	Lead(ctx context.Context, id string) (*domain.Lead, error)
}
