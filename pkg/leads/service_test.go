package leads_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/leads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Submit(ctx context.Context, lead *domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func completedSession() *domain.Session {
	s := domain.NewSession("sess-1", time.Now())
	s.Status = domain.StatusCompleted
	s.Flow = domain.FlowNew
	s.Answers.SetSingle(domain.CompanyStatusID, "new")
	s.Answers.Toggle("support_services", domain.SentinelAll)
	return s
}

var validContact = leads.Contact{Name: "Omar Khalid", Email: "omar@example.com", Phone: "+971 50-123 4567"}

func TestCapture_Success(t *testing.T) {
	sink := new(MockSink)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	var hooked *domain.Lead
	svc := leads.NewService(sink,
		leads.WithClock(func() time.Time { return fixed }),
		leads.WithCaptureHook(func(_ context.Context, l *domain.Lead, err error) {
			hooked = l
			assert.NoError(t, err)
		}),
	)

	sess := completedSession()
	sink.On("Submit", mock.Anything, mock.MatchedBy(func(l *domain.Lead) bool {
		return l.SessionID == "sess-1" && l.ContactPhone == "+971501234567"
	})).Return(nil).Once()

	lead, err := svc.Capture(context.Background(), sess, validContact)
	require.NoError(t, err)
	sink.AssertExpectations(t)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, domain.FlowNew, lead.Flow)
	assert.Equal(t, "Omar Khalid", lead.ContactName)
	assert.Equal(t, fixed, lead.CapturedAt)
	assert.Equal(t, sess.Answers.Values(), lead.Answers.Values(), "answers are handed over verbatim")
	assert.Same(t, lead, hooked)

	// The lead owns its answers.
	sess.Answers.SetSingle("extra", "x")
	_, ok := lead.Answers.Get("extra")
	assert.False(t, ok)
}

func TestCapture_RequiresCompletedSession(t *testing.T) {
	sink := new(MockSink)
	svc := leads.NewService(sink)

	sess := completedSession()
	sess.Status = domain.StatusAwaitingSequence

	_, err := svc.Capture(context.Background(), sess, validContact)
	assert.ErrorIs(t, err, domain.ErrSessionNotCompleted)
	sink.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestCapture_InvalidContact(t *testing.T) {
	sink := new(MockSink)
	svc := leads.NewService(sink)

	_, err := svc.Capture(context.Background(), completedSession(), leads.Contact{Name: "A", Email: "not-an-email", Phone: "0501234567"})
	require.Error(t, err)
	assert.ErrorIs(t, err, leads.ErrInvalidContact)

	var verr *leads.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []leads.FieldError{
		{Field: "name", Rule: "min"},
		{Field: "email", Rule: "email"},
		{Field: "phone", Rule: "e164"},
	}, verr.Fields)
	sink.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestCapture_SinkFailureKeepsSession(t *testing.T) {
	sink := new(MockSink)
	boom := errors.New("connection refused")
	sink.On("Submit", mock.Anything, mock.Anything).Return(boom).Once()

	var hookErr error
	svc := leads.NewService(sink, leads.WithCaptureHook(func(_ context.Context, _ *domain.Lead, err error) {
		hookErr = err
	}))

	sess := completedSession()
	snapshot := sess.Clone()

	lead, err := svc.Capture(context.Background(), sess, validContact)
	assert.Nil(t, lead)
	assert.ErrorIs(t, err, leads.ErrSinkFailed)
	assert.ErrorIs(t, err, boom)
	assert.Same(t, boom, hookErr)
	assert.Equal(t, snapshot, sess, "a failed hand-off never rolls back the session")
	sink.AssertExpectations(t)
}

func TestContact_Normalize(t *testing.T) {
	c := leads.Contact{Name: "  Sara  ", Email: " sara@example.com ", Phone: "+1 (415) 555.0100"}.Normalize()
	assert.Equal(t, leads.Contact{Name: "Sara", Email: "sara@example.com", Phone: "+14155550100"}, c)
	assert.NoError(t, c.Validate())
}
