package flow_test

import (
	"testing"

	"github.com/aretw0/incorporate/pkg/catalog"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_DecisionTable(t *testing.T) {
	cat := catalog.Default()
	sel, err := flow.NewSelector(cat)
	require.NoError(t, err)

	tests := []struct {
		trigger  string
		option   string
		kind     flow.OutcomeKind
		flow     domain.Flow
		next     string
		firstQID string
	}{
		{domain.CompanyStatusID, "new", flow.OutcomeSequence, domain.FlowNew, "", "business_activity"},
		{domain.CompanyStatusID, "existing", flow.OutcomeFollowup, domain.FlowUnset, domain.IncorporationCountryID, ""},
		{domain.IncorporationCountryID, "uae", flow.OutcomeSequence, domain.FlowExistingUAE, "", "uae_license_type"},
		{domain.IncorporationCountryID, "other", flow.OutcomeSequence, domain.FlowExistingOther, "", "home_country"},
	}

	for _, tt := range tests {
		t.Run(tt.trigger+"="+tt.option, func(t *testing.T) {
			out, err := sel.Select(tt.trigger, tt.option)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.flow, out.Flow)

			if tt.kind == flow.OutcomeFollowup {
				assert.Equal(t, tt.next, out.Next.ID)
				assert.Empty(t, out.Questions)
				return
			}
			want, _ := cat.Sequence(tt.flow)
			assert.Equal(t, want, out.Questions)
			assert.Equal(t, tt.firstQID, out.Questions[0].ID)
		})
	}
}

func TestSelector_IntegrityErrors(t *testing.T) {
	sel, err := flow.NewSelector(catalog.Default())
	require.NoError(t, err)

	_, err = sel.Select("business_activity", "trading")
	assert.ErrorIs(t, err, domain.ErrCatalogIntegrity)

	_, err = sel.Select(domain.CompanyStatusID, "maybe")
	assert.ErrorIs(t, err, domain.ErrCatalogIntegrity)
	assert.Contains(t, err.Error(), "maybe")
}

func TestNewSelector_RejectsUnroutableBranchOption(t *testing.T) {
	def := catalog.DefaultDefinition()
	def.Branches.IncorporationCountry.Options[1].ID = "gcc"
	cat, err := catalog.New(def)
	require.NoError(t, err, "catalog validation does not know the router table")

	_, err = flow.NewSelector(cat)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogIntegrity)
	assert.Contains(t, err.Error(), "gcc")
}

func TestNewSelector_RejectsExtraBranchOption(t *testing.T) {
	def := catalog.DefaultDefinition()
	def.Branches.CompanyStatus.Options = append(def.Branches.CompanyStatus.Options,
		domain.Option{ID: "dormant", Text: "A dormant company"})
	cat, err := catalog.New(def)
	require.NoError(t, err)

	_, err = flow.NewSelector(cat)
	assert.ErrorIs(t, err, domain.ErrCatalogIntegrity)
}

func TestNewSelector_NilCatalog(t *testing.T) {
	_, err := flow.NewSelector(nil)
	assert.ErrorIs(t, err, domain.ErrCatalogIntegrity)
}

func TestIsTrigger(t *testing.T) {
	assert.True(t, flow.IsTrigger(domain.CompanyStatusID))
	assert.True(t, flow.IsTrigger(domain.IncorporationCountryID))
	assert.False(t, flow.IsTrigger("business_activity"))
}
