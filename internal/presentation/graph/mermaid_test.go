package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/incorporate"
	"github.com/aretw0/incorporate/internal/presentation/graph"
	"github.com/aretw0/incorporate/pkg/catalog"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMermaid_DefaultCatalog(t *testing.T) {
	out, err := graph.Mermaid(catalog.Default(), nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		contains []string
	}{
		{
			name: "Branch Shapes",
			contains: []string{
				"company_status{\"",
				"incorporation_country{\"",
			},
		},
		{
			name: "Branch Edges",
			contains: []string{
				"company_status -- \"I already have a company\" --> incorporation_country",
				"incorporation_country -- \"In the UAE\" --> ",
			},
		},
		{
			name: "Flow Ends",
			contains: []string{
				"done_new((\"new\"))",
				"done_existing_uae((\"existing_uae\"))",
				"done_existing_other((\"existing_other\"))",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.NotContains(t, out, "classDef", "no overlay styles without an overlay")
}

func TestMermaid_SequenceIsLinear(t *testing.T) {
	cat := catalog.Default()
	out, err := graph.Mermaid(cat, nil)
	require.NoError(t, err)

	questions, err := cat.Sequence(domain.FlowNew)
	require.NoError(t, err)
	assert.Contains(t, out, "company_status -- \"I want to set up a new company\" --> "+questions[0].ID)
	for i := 0; i+1 < len(questions); i++ {
		assert.Contains(t, out, questions[i].ID+" --> "+questions[i+1].ID)
	}
	assert.Contains(t, out, questions[len(questions)-1].ID+" --> done_new")
}

func TestMermaid_SessionOverlay(t *testing.T) {
	eng, err := incorporate.New()
	require.NoError(t, err)
	ctx := context.Background()

	s, err := eng.Start(ctx, "graph")
	require.NoError(t, err)
	s, err = eng.SubmitSingle(ctx, s, domain.CompanyStatusID, "existing")
	require.NoError(t, err)

	overlay := graph.OverlayFor(s)
	assert.Equal(t, []string{domain.CompanyStatusID}, overlay.VisitedQuestions)
	assert.Equal(t, domain.IncorporationCountryID, overlay.Current)

	out, err := graph.Mermaid(eng.Catalog(), overlay)
	require.NoError(t, err)
	assert.Contains(t, out, "class company_status visited;")
	assert.Contains(t, out, "class incorporation_country current;")
}

func TestOverlayFor_Completed(t *testing.T) {
	s := &domain.Session{
		Status:     domain.StatusCompleted,
		Flow:       domain.FlowExistingOther,
		BranchPath: []string{domain.CompanyStatusID, domain.IncorporationCountryID},
		Sequence:   []string{"a", "b"},
		Position:   2,
	}
	overlay := graph.OverlayFor(s)
	assert.Equal(t, []string{domain.CompanyStatusID, domain.IncorporationCountryID, "a", "b"}, overlay.VisitedQuestions)
	assert.Equal(t, "done_existing_other", overlay.Current)
	assert.Nil(t, graph.OverlayFor(nil))
}
