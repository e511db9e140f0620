package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("Save and Load", func(t *testing.T) {
		s := domain.NewSession(sessionID, now)
		s.Status = domain.StatusAwaitingSequence
		s.Flow = domain.FlowNew
		s.BranchPath = []string{domain.CompanyStatusID}
		s.Sequence = []string{"business_activity", "support_services"}
		s.Position = 1
		s.CurrentQuestionID = "support_services"
		s.Answers.SetSingle(domain.CompanyStatusID, "new")
		s.Answers.SetSingle("business_activity", "trading")
		s.Answers.Toggle("support_services", "bank_account")
		s.Answers.Toggle("support_services", "accounting")
		s.Transcript = append(s.Transcript,
			domain.GreetingTurn("hello"),
			domain.QuestionTurn(domain.Question{ID: "business_activity", Text: "What?", Options: []domain.Option{{ID: "trading", Text: "Trading"}}}),
			domain.AnswerTurn("business_activity", "Trading"),
		)

		err := store.Save(ctx, sessionID, s)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, s.ID, loaded.ID)
		assert.Equal(t, s.Status, loaded.Status)
		assert.Equal(t, s.Flow, loaded.Flow)
		assert.Equal(t, s.BranchPath, loaded.BranchPath)
		assert.Equal(t, s.Sequence, loaded.Sequence)
		assert.Equal(t, s.Position, loaded.Position)
		assert.Equal(t, s.CurrentQuestionID, loaded.CurrentQuestionID)
		assert.True(t, s.CreatedAt.Equal(loaded.CreatedAt))
		require.Len(t, loaded.Transcript, 3)
		assert.Equal(t, s.Transcript[1].Question.ID, loaded.Transcript[1].Question.ID)

		multi, ok := loaded.Answers.Get("support_services")
		require.True(t, ok)
		assert.True(t, multi.IsMulti(), "multi-select answers keep their kind")
		assert.Equal(t, []string{"bank_account", "accounting"}, multi.Values())
		single, ok := loaded.Answers.Get("business_activity")
		require.True(t, ok)
		assert.Equal(t, "trading", single.Single())
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Answers.SetSingle("business_activity", "consulting")

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		a, _ := again.Answers.Get("business_activity")
		assert.Equal(t, "trading", a.Single(), "mutating a loaded session must not affect the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSession(sessionID, now))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSession(id1, now)))
		require.NoError(t, store.Save(ctx, id2, domain.NewSession(id2, now)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// LeadStore is a LeadSink that can read its leads back, as required by
// RunLeadSinkContract.
type LeadStore interface {
	LeadSink
	LeadReader
}

// RunLeadSinkContract verifies that a sink persists leads verbatim.
func RunLeadSinkContract(t *testing.T, sink LeadStore) {
	ctx := context.Background()

	answers := domain.AnswerStore{}
	answers.SetSingle(domain.CompanyStatusID, "existing")
	answers.SetSingle(domain.IncorporationCountryID, "uae")
	answers.Toggle("growth_services", domain.SentinelAll)

	lead := &domain.Lead{
		ID:           "lead-contract-" + time.Now().Format("20060102150405"),
		SessionID:    "session-1",
		Flow:         domain.FlowExistingUAE,
		ContactName:  "Layla Haddad",
		ContactEmail: "layla@example.com",
		ContactPhone: "+971501234567",
		Answers:      answers,
		CapturedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	t.Run("Submit and Read", func(t *testing.T) {
		require.NoError(t, sink.Submit(ctx, lead))

		got, err := sink.Lead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, lead.SessionID, got.SessionID)
		assert.Equal(t, lead.Flow, got.Flow)
		assert.Equal(t, lead.ContactName, got.ContactName)
		assert.Equal(t, lead.ContactEmail, got.ContactEmail)
		assert.Equal(t, lead.ContactPhone, got.ContactPhone)
		assert.True(t, lead.CapturedAt.Equal(got.CapturedAt))
		assert.Equal(t, lead.Answers.Values(), got.Answers.Values())
	})

	t.Run("Submitted Lead Is Copied", func(t *testing.T) {
		lead.Answers.SetSingle("uae_license_type", "mainland")

		got, err := sink.Lead(ctx, lead.ID)
		require.NoError(t, err)
		_, ok := got.Answers.Get("uae_license_type")
		assert.False(t, ok, "mutating a submitted lead must not affect the sink")
	})

	t.Run("Unknown Lead", func(t *testing.T) {
		_, err := sink.Lead(ctx, "missing-"+lead.ID)
		assert.ErrorIs(t, err, domain.ErrLeadNotFound)
	})
}
