package incorporate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/incorporate/internal/runtime"
	"github.com/aretw0/incorporate/pkg/catalog"
	"github.com/aretw0/incorporate/pkg/domain"
)

// Engine is the high-level entry point of the library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime     *runtime.Engine
	catalog     *catalog.Catalog
	catalogPath string
	greeting    string
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog uses an already built catalog instead of the built-in one.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithCatalogFile loads the catalog from a YAML or JSON file.
func WithCatalogFile(path string) Option {
	return func(e *Engine) {
		e.catalogPath = path
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithGreeting replaces the opening message of every session.
func WithGreeting(text string) Option {
	return func(e *Engine) {
		e.greeting = text
	}
}

// WithClock sets the time source used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithClock(now))
	}
}

// New initializes an Engine. Without WithCatalog or WithCatalogFile it uses
// catalog.Default().
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog != nil && eng.catalogPath != "" {
		return nil, fmt.Errorf("WithCatalog and WithCatalogFile are mutually exclusive")
	}
	if eng.catalogPath != "" {
		c, err := catalog.LoadFile(eng.catalogPath)
		if err != nil {
			return nil, err
		}
		eng.catalog = c
	}
	if eng.catalog == nil {
		eng.catalog = catalog.Default()
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.catalogPath != "" {
		eng.logger = eng.logger.With("catalog", eng.catalogPath)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithGreeting(eng.greeting),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)

	rt, err := runtime.NewEngine(eng.catalog, runtimeOpts...)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	eng.runtime = rt
	return eng, nil
}

// Start creates a new session with the greeting and the first branch question.
// An empty sessionID gets a random one.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.runtime.Start(ctx, sessionID)
}

// SubmitSingle answers the current single-select question and advances.
func (e *Engine) SubmitSingle(ctx context.Context, s *domain.Session, questionID, optionID string) (*domain.Session, error) {
	return e.runtime.SubmitSingle(ctx, s, questionID, optionID)
}

// ToggleMulti flips one option of the current multi-select question.
func (e *Engine) ToggleMulti(ctx context.Context, s *domain.Session, questionID, optionID string) (*domain.Session, error) {
	return e.runtime.ToggleMulti(ctx, s, questionID, optionID)
}

// SubmitMulti confirms the selection of the current multi-select question and advances.
func (e *Engine) SubmitMulti(ctx context.Context, s *domain.Session, questionID string) (*domain.Session, error) {
	return e.runtime.SubmitMulti(ctx, s, questionID)
}

// Progress returns the "question N of M" indicator for a question of s.
func (e *Engine) Progress(s *domain.Session, questionID string) domain.Progress {
	return e.runtime.Progress(s, questionID)
}

// CurrentProgress returns the indicator for the current question of s.
func (e *Engine) CurrentProgress(s *domain.Session) domain.Progress {
	return e.runtime.CurrentProgress(s)
}

// CurrentQuestion returns the question s is waiting on.
// It fails with domain.ErrSessionCompleted once the session is finished.
func (e *Engine) CurrentQuestion(s *domain.Session) (domain.Question, error) {
	if s.Completed() {
		return domain.Question{}, domain.ErrSessionCompleted
	}
	return e.catalog.Question(s.CurrentQuestionID)
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Logger returns the logger the engine writes to.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
