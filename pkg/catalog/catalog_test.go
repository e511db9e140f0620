package catalog_test

import (
	"testing"

	"github.com/aretw0/incorporate/pkg/catalog"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Shape(t *testing.T) {
	c := catalog.Default()

	newSeq, err := c.Sequence(domain.FlowNew)
	require.NoError(t, err)
	require.Len(t, newSeq, 7)
	assert.Equal(t, "business_activity", newSeq[0].ID)
	assert.True(t, newSeq[len(newSeq)-1].MultiSelect)

	for _, f := range []domain.Flow{domain.FlowExistingUAE, domain.FlowExistingOther} {
		seq, err := c.Sequence(f)
		require.NoError(t, err)
		assert.Len(t, seq, 6, f.String())
	}

	for _, f := range domain.Flows() {
		services, err := c.Services(f)
		require.NoError(t, err)
		assert.NotEmpty(t, services, f.String())
	}

	assert.Equal(t, domain.CompanyStatusID, c.CompanyStatus().ID)
	assert.Equal(t, domain.IncorporationCountryID, c.IncorporationCountry().ID)
	assert.NotEmpty(t, c.Seed())
}

func TestCatalog_Question(t *testing.T) {
	c := catalog.Default()

	q, err := c.Question("physical_office")
	require.NoError(t, err)
	assert.Equal(t, "physical_office", q.ID)

	flow, ok := c.FlowOf("physical_office")
	assert.True(t, ok)
	assert.Equal(t, domain.FlowNew, flow)

	_, ok = c.FlowOf(domain.CompanyStatusID)
	assert.False(t, ok, "branch questions belong to no flow")

	_, err = c.Question("no_such_question")
	assert.ErrorIs(t, err, domain.ErrUnknownQuestion)

	_, err = c.Sequence(domain.FlowUnset)
	assert.ErrorIs(t, err, domain.ErrCatalogIntegrity)
}

func TestCatalog_Immutable(t *testing.T) {
	c := catalog.Default()

	seq, _ := c.Sequence(domain.FlowNew)
	seq[0].Text = "mutated"
	seq[0].Options[0].Text = "mutated"

	q, _ := c.Question("business_activity")
	assert.NotEqual(t, "mutated", q.Text)
	assert.NotEqual(t, "mutated", q.Options[0].Text)

	def := catalog.DefaultDefinition()
	built := catalog.MustNew(def)
	def.Branches.CompanyStatus.Text = "mutated after build"
	assert.NotEqual(t, "mutated after build", built.CompanyStatus().Text)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*catalog.Definition)
		want   string
	}{
		{
			name: "duplicate question id",
			mutate: func(d *catalog.Definition) {
				fd := d.Flows[domain.FlowExistingUAE]
				fd.Questions[0].ID = "business_activity"
				d.Flows[domain.FlowExistingUAE] = fd
			},
			want: "duplicate id",
		},
		{
			name: "multi-select without sentinel",
			mutate: func(d *catalog.Definition) {
				fd := d.Flows[domain.FlowNew]
				last := &fd.Questions[len(fd.Questions)-1]
				last.Options = last.Options[:len(last.Options)-1]
				d.Flows[domain.FlowNew] = fd
			},
			want: `must define option "all"`,
		},
		{
			name: "multi-select branch question",
			mutate: func(d *catalog.Definition) {
				d.Branches.CompanyStatus.MultiSelect = true
			},
			want: "must be single-select",
		},
		{
			name: "wrong branch id",
			mutate: func(d *catalog.Definition) {
				d.Branches.IncorporationCountry.ID = "country"
			},
			want: `must have id "incorporation_country"`,
		},
		{
			name: "missing flow",
			mutate: func(d *catalog.Definition) {
				delete(d.Flows, domain.FlowExistingOther)
			},
			want: `flow "existing_other" is not defined`,
		},
		{
			name: "branch question inside a flow",
			mutate: func(d *catalog.Definition) {
				fd := d.Flows[domain.FlowNew]
				fd.Questions = append(fd.Questions, d.Branches.CompanyStatus)
				d.Flows[domain.FlowNew] = fd
			},
			want: "branch question cannot belong",
		},
		{
			name: "duplicate option",
			mutate: func(d *catalog.Definition) {
				fd := d.Flows[domain.FlowNew]
				fd.Questions[0].Options[1].ID = fd.Questions[0].Options[0].ID
				d.Flows[domain.FlowNew] = fd
			},
			want: "duplicate option",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := catalog.DefaultDefinition()
			tt.mutate(&def)

			_, err := catalog.New(def)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCatalogIntegrity)
			assert.Contains(t, err.Error(), tt.want)
			assert.NotEmpty(t, catalog.IntegrityErrors(err))
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		catalog.MustNew(catalog.Definition{})
	})
}
