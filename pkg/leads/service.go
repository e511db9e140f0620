package leads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/incorporate/internal/logging"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/ports"
	"github.com/google/uuid"
)

// ErrSinkFailed wraps errors returned by the lead sink.
var ErrSinkFailed = errors.New("lead sink failed")

// CaptureHook observes every capture attempt that reached the sink.
type CaptureHook func(ctx context.Context, lead *domain.Lead, err error)

// Service captures leads from completed sessions.
type Service struct {
	sink   ports.LeadSink
	logger *slog.Logger
	now    func() time.Time
	hook   CaptureHook
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock sets the time source for CapturedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithCaptureHook registers a callback run after every sink submission.
func WithCaptureHook(hook CaptureHook) Option {
	return func(s *Service) {
		s.hook = hook
	}
}

// NewService creates a capture service writing to sink.
func NewService(sink ports.LeadSink, opts ...Option) *Service {
	s := &Service{
		sink:   sink,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capture builds a lead from a completed session and submits it.
//
// The answer store is copied verbatim. The session is never modified, so a
// sink failure leaves it completed and the caller may retry.
func (s *Service) Capture(ctx context.Context, sess *domain.Session, contact Contact) (*domain.Lead, error) {
	if sess == nil {
		return nil, fmt.Errorf("capture: nil session")
	}
	if !sess.Completed() {
		return nil, fmt.Errorf("%w: %q is %s", domain.ErrSessionNotCompleted, sess.ID, sess.Status)
	}

	contact = contact.Normalize()
	if err := contact.Validate(); err != nil {
		return nil, err
	}

	lead := &domain.Lead{
		ID:           uuid.NewString(),
		SessionID:    sess.ID,
		Flow:         sess.Flow,
		ContactName:  contact.Name,
		ContactEmail: contact.Email,
		ContactPhone: contact.Phone,
		Answers:      sess.Answers.Clone(),
		CapturedAt:   s.now().UTC(),
	}

	err := s.sink.Submit(ctx, lead)
	if s.hook != nil {
		s.hook(ctx, lead, err)
	}
	if err != nil {
		s.logger.Error("lead submission failed",
			"session_id", sess.ID,
			"lead_id", lead.ID,
			"err", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrSinkFailed, err)
	}

	s.logger.Info("lead captured",
		"session_id", sess.ID,
		"lead_id", lead.ID,
		"flow", lead.Flow.String(),
	)
	return lead, nil
}
