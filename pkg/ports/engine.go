package ports

import (
	"context"

	"github.com/aretw0/incorporate/pkg/catalog"
	"github.com/aretw0/incorporate/pkg/domain"
)

// Conversation is the engine surface used by adapters (HTTP, MCP, terminal).
// Implementations hold no per-session state: every call takes a snapshot
// and returns the next one.
type Conversation interface {
	Start(ctx context.Context, sessionID string) (*domain.Session, error)
	SubmitSingle(ctx context.Context, s *domain.Session, questionID, optionID string) (*domain.Session, error)
	ToggleMulti(ctx context.Context, s *domain.Session, questionID, optionID string) (*domain.Session, error)
	SubmitMulti(ctx context.Context, s *domain.Session, questionID string) (*domain.Session, error)
	Progress(s *domain.Session, questionID string) domain.Progress
	CurrentProgress(s *domain.Session) domain.Progress
	Catalog() *catalog.Catalog
}
