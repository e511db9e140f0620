package middleware

import (
	"context"
	"strings"

	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/ports"
)

const mask = "***"

type piiMiddleware struct {
	next ports.LeadStore
}

// NewPIIMiddleware masks contact details before they reach the sink. The
// email keeps its domain and the phone its last two digits, enough for
// reporting without identifying the visitor.
func NewPIIMiddleware() Middleware {
	return func(next ports.LeadStore) ports.LeadStore {
		return &piiMiddleware{next: next}
	}
}

func (m *piiMiddleware) Submit(ctx context.Context, lead *domain.Lead) error {
	// Clone so the caller's lead is untouched.
	masked := lead.Clone()
	masked.ContactName = mask
	masked.ContactEmail = MaskEmail(lead.ContactEmail)
	masked.ContactPhone = MaskPhone(lead.ContactPhone)
	return m.next.Submit(ctx, masked)
}

func (m *piiMiddleware) Lead(ctx context.Context, id string) (*domain.Lead, error) {
	return m.next.Lead(ctx, id)
}

// MaskEmail replaces the local part: "amira@example.com" -> "***@example.com".
func MaskEmail(email string) string {
	_, domainPart, ok := strings.Cut(email, "@")
	if !ok {
		return mask
	}
	return mask + "@" + domainPart
}

// MaskPhone keeps the last two digits: "+971501234567" -> "***67".
func MaskPhone(phone string) string {
	if len(phone) <= 2 {
		return mask
	}
	return mask + phone[len(phone)-2:]
}
