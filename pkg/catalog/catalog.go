package catalog

import (
	"fmt"

	"github.com/aretw0/incorporate/pkg/domain"
)

// Catalog is a validated, immutable set of questions indexed by id.
// All accessors return copies; a Catalog is safe for concurrent use.
type Catalog struct {
	def     Definition
	index   map[string]domain.Question
	members map[string]domain.Flow // sequence question id -> owning flow
}

// New validates def and builds a catalog from a private copy of it.
func New(def Definition) (*Catalog, error) {
	if err := Validate(def); err != nil {
		return nil, err
	}

	c := &Catalog{
		def:     def.clone(),
		index:   make(map[string]domain.Question),
		members: make(map[string]domain.Flow),
	}
	for _, q := range c.def.Seed {
		c.index[q.ID] = q
	}
	c.index[c.def.Branches.CompanyStatus.ID] = c.def.Branches.CompanyStatus
	c.index[c.def.Branches.IncorporationCountry.ID] = c.def.Branches.IncorporationCountry
	for f, fd := range c.def.Flows {
		for _, q := range fd.Questions {
			c.index[q.ID] = q
			c.members[q.ID] = f
		}
	}
	return c, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew(def Definition) *Catalog {
	c, err := New(def)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Question returns the question with the given id from any section.
func (c *Catalog) Question(id string) (domain.Question, error) {
	q, ok := c.index[id]
	if !ok {
		return domain.Question{}, fmt.Errorf("%w: %q", domain.ErrUnknownQuestion, id)
	}
	return q.Clone(), nil
}

// Sequence returns the ordered questions of a terminal flow.
func (c *Catalog) Sequence(f domain.Flow) ([]domain.Question, error) {
	fd, ok := c.def.Flows[f]
	if !ok {
		return nil, fmt.Errorf("%w: no sequence for flow %q", domain.ErrCatalogIntegrity, f)
	}
	return cloneQuestions(fd.Questions), nil
}

// Services returns the completion recommendation of a terminal flow.
func (c *Catalog) Services(f domain.Flow) ([]domain.Service, error) {
	fd, ok := c.def.Flows[f]
	if !ok {
		return nil, fmt.Errorf("%w: no services for flow %q", domain.ErrCatalogIntegrity, f)
	}
	return append([]domain.Service(nil), fd.Services...), nil
}

// FlowOf reports which terminal flow a sequence question belongs to.
func (c *Catalog) FlowOf(questionID string) (domain.Flow, bool) {
	f, ok := c.members[questionID]
	return f, ok
}

// Seed returns the generic seed questions.
func (c *Catalog) Seed() []domain.Question {
	return cloneQuestions(c.def.Seed)
}

// CompanyStatus returns the first branch question.
func (c *Catalog) CompanyStatus() domain.Question {
	return c.def.Branches.CompanyStatus.Clone()
}

// IncorporationCountry returns the follow-up branch question.
func (c *Catalog) IncorporationCountry() domain.Question {
	return c.def.Branches.IncorporationCountry.Clone()
}

// IsBranch reports whether id is one of the branch questions of this catalog.
func (c *Catalog) IsBranch(id string) bool {
	return domain.IsBranchQuestion(id)
}

// Size returns the number of indexed questions.
func (c *Catalog) Size() int {
	return len(c.index)
}

// Definition returns a copy of the underlying definition, e.g. for export.
func (c *Catalog) Definition() Definition {
	return c.def.clone()
}
