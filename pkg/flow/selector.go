package flow

import (
	"fmt"

	"github.com/aretw0/incorporate/pkg/catalog"
	"github.com/aretw0/incorporate/pkg/domain"
)

// Branch option ids understood by the selector.
const (
	OptionNew      = "new"
	OptionExisting = "existing"
	OptionUAE      = "uae"
	OptionOther    = "other"
)

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind string

const (
	// OutcomeFollowup asks another branch question before a flow is known.
	OutcomeFollowup OutcomeKind = "followup"
	// OutcomeSequence installs a terminal flow.
	OutcomeSequence OutcomeKind = "sequence"
)

// Outcome is the result of a branch decision.
type Outcome struct {
	Kind OutcomeKind

	// Next is set for OutcomeFollowup.
	Next domain.Question

	// Flow and Questions are set for OutcomeSequence.
	Flow      domain.Flow
	Questions []domain.Question
}

type route struct {
	followup string
	flow     domain.Flow
}

// table maps trigger question -> option -> route.
var table = map[string]map[string]route{
	domain.CompanyStatusID: {
		OptionNew:      {flow: domain.FlowNew},
		OptionExisting: {followup: domain.IncorporationCountryID},
	},
	domain.IncorporationCountryID: {
		OptionUAE:   {flow: domain.FlowExistingUAE},
		OptionOther: {flow: domain.FlowExistingOther},
	},
}

// Selector resolves branch answers against a catalog.
type Selector struct {
	catalog *catalog.Catalog
}

// NewSelector binds the decision table to cat. It fails if any branch
// option of cat has no route, or any route points at a missing question or
// flow, so a misconfigured catalog is rejected before the first session.
func NewSelector(cat *catalog.Catalog) (*Selector, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: nil catalog", domain.ErrCatalogIntegrity)
	}
	s := &Selector{catalog: cat}

	for _, q := range []domain.Question{cat.CompanyStatus(), cat.IncorporationCountry()} {
		routes := table[q.ID]
		if len(q.Options) != len(routes) {
			return nil, fmt.Errorf("%w: question %q must offer exactly %d options",
				domain.ErrCatalogIntegrity, q.ID, len(routes))
		}
		for _, o := range q.Options {
			if _, err := s.Select(q.ID, o.ID); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// Select returns the outcome of answering triggerID with optionID.
// An unknown trigger or unmapped option wraps domain.ErrCatalogIntegrity.
func (s *Selector) Select(triggerID, optionID string) (Outcome, error) {
	routes, ok := table[triggerID]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q is not a branch question", domain.ErrCatalogIntegrity, triggerID)
	}
	r, ok := routes[optionID]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: no flow for %s=%q", domain.ErrCatalogIntegrity, triggerID, optionID)
	}

	if r.followup != "" {
		next, err := s.catalog.Question(r.followup)
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: follow-up %q: %v", domain.ErrCatalogIntegrity, r.followup, err)
		}
		return Outcome{Kind: OutcomeFollowup, Next: next}, nil
	}

	questions, err := s.catalog.Sequence(r.flow)
	if err != nil {
		return Outcome{}, err
	}
	if len(questions) == 0 {
		return Outcome{}, fmt.Errorf("%w: flow %q has no questions", domain.ErrCatalogIntegrity, r.flow)
	}
	return Outcome{Kind: OutcomeSequence, Flow: r.flow, Questions: questions}, nil
}

// IsTrigger reports whether questionID is a branch decision point.
func IsTrigger(questionID string) bool {
	_, ok := table[questionID]
	return ok
}
