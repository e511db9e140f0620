package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/incorporate"
	"github.com/aretw0/incorporate/pkg/adapters/memory"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/leads"
	"github.com/aretw0/incorporate/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*Server, *memory.LeadSink) {
	t.Helper()
	engine, err := incorporate.New()
	require.NoError(t, err)
	sink := memory.NewLeadSink()
	return NewServer(engine, session.NewManager(memory.NewStore()), WithLeadService(leads.NewService(sink))), sink
}

func TestStartAndAnswer(t *testing.T) {
	s, _ := newServer(t)
	ctx := context.Background()

	resp, err := s.handleStart(ctx, mcp.CallToolRequest{}, startArgs{SessionID: "m1"})
	require.NoError(t, err)
	require.NotNil(t, resp.Current)
	assert.Equal(t, domain.CompanyStatusID, resp.Current.ID)
	assert.Empty(t, resp.Progress)

	resp, err = s.handleAnswer(ctx, mcp.CallToolRequest{}, answerArgs{SessionID: "m1", QuestionID: domain.CompanyStatusID, OptionID: "new"})
	require.NoError(t, err)
	assert.Equal(t, domain.FlowNew, resp.Session.Flow)
	assert.Equal(t, "Question 2 of 8", resp.Progress)

	got, err := s.handleGet(ctx, mcp.CallToolRequest{}, sessionArgs{SessionID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, resp.Session.CurrentQuestionID, got.Session.CurrentQuestionID)
}

func TestAnswer_RejectedLeavesSession(t *testing.T) {
	s, _ := newServer(t)
	ctx := context.Background()

	_, err := s.handleStart(ctx, mcp.CallToolRequest{}, startArgs{SessionID: "m1"})
	require.NoError(t, err)

	_, err = s.handleAnswer(ctx, mcp.CallToolRequest{}, answerArgs{SessionID: "m1", QuestionID: "timeline", OptionID: "asap"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStaleQuestion)

	got, err := s.handleGet(ctx, mcp.CallToolRequest{}, sessionArgs{SessionID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, domain.CompanyStatusID, got.Session.CurrentQuestionID)
}

func TestToggleShowsSelection(t *testing.T) {
	s, _ := newServer(t)
	ctx := context.Background()

	resp, err := s.handleStart(ctx, mcp.CallToolRequest{}, startArgs{SessionID: "m1"})
	require.NoError(t, err)
	resp, err = s.handleAnswer(ctx, mcp.CallToolRequest{}, answerArgs{SessionID: "m1", QuestionID: domain.CompanyStatusID, OptionID: "new"})
	require.NoError(t, err)

	// Answer single-select questions until the first multi-select one.
	for !resp.Current.MultiSelect {
		resp, err = s.handleAnswer(ctx, mcp.CallToolRequest{}, answerArgs{
			SessionID: "m1", QuestionID: resp.Current.ID, OptionID: resp.Current.Options[0].ID,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Current)
	}

	q := resp.Current
	resp, err = s.handleToggle(ctx, mcp.CallToolRequest{}, answerArgs{SessionID: "m1", QuestionID: q.ID, OptionID: domain.SentinelAll})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.SentinelAll}, resp.Selected)
	assert.Equal(t, q.ID, resp.Current.ID)

	resp, err = s.handleSubmit(ctx, mcp.CallToolRequest{}, submitArgs{SessionID: "m1", QuestionID: q.ID})
	require.NoError(t, err)
	assert.NotEqual(t, q.ID, resp.Session.CurrentQuestionID)
}

func TestCaptureLead_RequiresCompletion(t *testing.T) {
	s, sink := newServer(t)
	ctx := context.Background()

	_, err := s.handleStart(ctx, mcp.CallToolRequest{}, startArgs{SessionID: "m1"})
	require.NoError(t, err)

	_, err = s.handleCaptureLead(ctx, mcp.CallToolRequest{}, leadArgs{
		SessionID: "m1", Name: "Amira", Email: "amira@example.com", Phone: "+971501234567",
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotCompleted)
	assert.Empty(t, sink.Leads())
}

func TestGet_UnknownSession(t *testing.T) {
	s, _ := newServer(t)

	_, err := s.handleGet(context.Background(), mcp.CallToolRequest{}, sessionArgs{SessionID: "missing"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
