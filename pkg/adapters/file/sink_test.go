package file_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/incorporate/pkg/adapters/file"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.LeadStore = (*file.LeadSink)(nil)

func TestFileLeadSink_Contract(t *testing.T) {
	ports.RunLeadSinkContract(t, file.NewLeadSink(filepath.Join(t.TempDir(), "data", "leads.jsonl")))
}

func TestFileLeadSink_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.jsonl")
	sink := file.NewLeadSink(path)
	ctx := context.Background()

	answers := domain.AnswerStore{}
	answers.Toggle("support_services", "bank_account")
	require.NoError(t, sink.Submit(ctx, &domain.Lead{ID: "1", Answers: answers}))
	require.NoError(t, sink.Submit(ctx, &domain.Lead{ID: "2", ContactName: "first"}))
	require.NoError(t, sink.Submit(ctx, &domain.Lead{ID: "2", ContactName: "second"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"support_services":["bank_account"]`)

	leads, err := sink.Leads()
	require.NoError(t, err)
	require.Len(t, leads, 3)

	latest, err := sink.Lead(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "second", latest.ContactName)

	assert.Error(t, sink.Submit(ctx, nil))
}

func TestFileLeadSink_CorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":\"ok\"}\n{broken\n"), 0644))

	_, err := file.NewLeadSink(path).Leads()
	assert.ErrorContains(t, err, "line 2")
}
