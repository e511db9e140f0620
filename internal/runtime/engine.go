package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/incorporate/internal/logging"
	"github.com/aretw0/incorporate/pkg/catalog"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/flow"
	"github.com/google/uuid"
)

// DefaultGreeting opens every transcript unless replaced with WithGreeting.
const DefaultGreeting = "Hi! I'm your incorporation assistant. Answer a few quick questions and I'll recommend the services that fit your business."

// Engine is the conversation state machine.
//
// It holds no per-session state: every operation takes a session snapshot
// and returns a new one, leaving the input untouched. A rejected event
// returns a *domain.RejectedError and no session.
type Engine struct {
	catalog  *catalog.Catalog
	selector *flow.Selector
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	greeting string
	now      func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithGreeting replaces the synthetic opening turn text.
func WithGreeting(text string) EngineOption {
	return func(e *Engine) {
		if text != "" {
			e.greeting = text
		}
	}
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine over an immutable catalog. It fails if the
// catalog's branch questions cannot be routed to a flow.
func NewEngine(cat *catalog.Catalog, opts ...EngineOption) (*Engine, error) {
	selector, err := flow.NewSelector(cat)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		catalog:  cat,
		selector: selector,
		logger:   logging.NewNop(),
		greeting: DefaultGreeting,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Catalog returns the catalog the engine reads from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Start creates a session with the greeting and the company_status question.
// An empty sessionID gets a random one.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	first := e.catalog.CompanyStatus()
	s := domain.NewSession(sessionID, e.now())
	s.CurrentQuestionID = first.ID
	s.Transcript = append(s.Transcript,
		domain.GreetingTurn(e.greeting),
		domain.QuestionTurn(first),
	)

	e.logger.Debug("session started", "session_id", s.ID)
	e.emit(ctx, e.hooks.OnSessionStart, &domain.SessionEvent{Type: domain.EventSessionStart, SessionID: s.ID})
	e.emit(ctx, e.hooks.OnQuestion, &domain.SessionEvent{Type: domain.EventQuestion, SessionID: s.ID, QuestionID: first.ID})
	return s, nil
}

// SubmitSingle answers the current single-select question with optionID and
// advances: a branch question consults the flow selector, a sequence
// question moves to the next question or completes the session.
func (e *Engine) SubmitSingle(ctx context.Context, s *domain.Session, questionID, optionID string) (*domain.Session, error) {
	const op = "submit_single"

	q, err := e.current(ctx, op, s, questionID)
	if err != nil {
		return nil, err
	}
	if q.MultiSelect {
		return nil, e.reject(ctx, op, s, questionID, domain.ErrMultiSelectQuestion)
	}
	opt, ok := q.Option(optionID)
	if !ok {
		return nil, e.reject(ctx, op, s, questionID, fmt.Errorf("%w: %q", domain.ErrUnknownOption, optionID))
	}

	var t *transition
	if flow.IsTrigger(questionID) {
		t, err = e.planBranch(s, questionID, optionID)
	} else {
		t, err = e.planAdvance(s)
	}
	if err != nil {
		e.logger.Error("catalog integrity failure", "session_id", s.ID, "question_id", questionID, "err", err)
		return nil, err
	}

	next := s.Clone()
	next.Answers.SetSingle(questionID, optionID)
	next.Transcript = append(next.Transcript, domain.AnswerTurn(questionID, opt.Text))
	t.events = append([]*domain.SessionEvent{{
		Type:       domain.EventAnswer,
		QuestionID: questionID,
		OptionIDs:  []string{optionID},
	}}, t.events...)

	return e.commit(ctx, next, t), nil
}

// ToggleMulti flips optionID in the in-progress answer of the current
// multi-select question. It appends no turn and does not advance.
func (e *Engine) ToggleMulti(ctx context.Context, s *domain.Session, questionID, optionID string) (*domain.Session, error) {
	const op = "toggle_multi"

	q, err := e.current(ctx, op, s, questionID)
	if err != nil {
		return nil, err
	}
	if !q.MultiSelect {
		return nil, e.reject(ctx, op, s, questionID, domain.ErrNotMultiSelect)
	}
	if _, ok := q.Option(optionID); !ok {
		return nil, e.reject(ctx, op, s, questionID, fmt.Errorf("%w: %q", domain.ErrUnknownOption, optionID))
	}

	next := s.Clone()
	selection := next.Answers.Toggle(questionID, optionID)
	next.UpdatedAt = e.now()

	e.logger.Debug("option toggled",
		"session_id", s.ID,
		"question_id", questionID,
		"option_id", optionID,
		"selection", selection.Values(),
	)
	return next, nil
}

// SubmitMulti confirms the in-progress selection of the current
// multi-select question and advances like SubmitSingle.
func (e *Engine) SubmitMulti(ctx context.Context, s *domain.Session, questionID string) (*domain.Session, error) {
	const op = "submit_multi"

	q, err := e.current(ctx, op, s, questionID)
	if err != nil {
		return nil, err
	}
	if !q.MultiSelect {
		return nil, e.reject(ctx, op, s, questionID, domain.ErrNotMultiSelect)
	}
	answer, ok := s.Answers.Get(questionID)
	if !ok || answer.Empty() {
		return nil, e.reject(ctx, op, s, questionID, domain.ErrEmptySelection)
	}

	text, err := DisplayText(q, answer)
	if err != nil {
		e.logger.Error("catalog integrity failure", "session_id", s.ID, "question_id", questionID, "err", err)
		return nil, err
	}

	t, err := e.planAdvance(s)
	if err != nil {
		e.logger.Error("catalog integrity failure", "session_id", s.ID, "question_id", questionID, "err", err)
		return nil, err
	}

	next := s.Clone()
	next.Transcript = append(next.Transcript, domain.AnswerTurn(questionID, text))
	t.events = append([]*domain.SessionEvent{{
		Type:       domain.EventAnswer,
		QuestionID: questionID,
		OptionIDs:  answer.Values(),
	}}, t.events...)

	return e.commit(ctx, next, t), nil
}

// current resolves the question an event targets, rejecting events for
// completed sessions or for any question other than the current one.
func (e *Engine) current(ctx context.Context, op string, s *domain.Session, questionID string) (domain.Question, error) {
	if s == nil {
		return domain.Question{}, fmt.Errorf("%s: nil session", op)
	}
	if s.Completed() {
		return domain.Question{}, e.reject(ctx, op, s, questionID, domain.ErrSessionCompleted)
	}
	if questionID != s.CurrentQuestionID {
		return domain.Question{}, e.reject(ctx, op, s, questionID,
			fmt.Errorf("%w: current is %q", domain.ErrStaleQuestion, s.CurrentQuestionID))
	}
	q, err := e.catalog.Question(questionID)
	if err != nil {
		e.logger.Error("catalog integrity failure", "session_id", s.ID, "question_id", questionID, "err", err)
		return domain.Question{}, fmt.Errorf("%w: %v", domain.ErrCatalogIntegrity, err)
	}
	return q, nil
}

func (e *Engine) reject(ctx context.Context, op string, s *domain.Session, questionID string, cause error) error {
	err := &domain.RejectedError{Op: op, SessionID: s.ID, QuestionID: questionID, Err: cause}
	e.logger.Warn("event rejected",
		"session_id", s.ID,
		"op", op,
		"question_id", questionID,
		"err", cause,
	)
	e.emit(ctx, e.hooks.OnReject, &domain.SessionEvent{
		Type:       domain.EventRejected,
		SessionID:  s.ID,
		QuestionID: questionID,
		Reason:     op + ": " + cause.Error(),
	})
	return err
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.SessionEvent), ev *domain.SessionEvent) {
	if hook == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = e.now()
	}
	hook(ctx, ev)
}
