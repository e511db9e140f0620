package catalog

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/incorporate/pkg/domain"
)

// Validate checks a definition without building a catalog.
func Validate(def Definition) error {
	v := &validator{seen: make(map[string]string)}

	for _, q := range def.Seed {
		v.question("seed", q)
	}

	v.branch(domain.CompanyStatusID, def.Branches.CompanyStatus)
	v.branch(domain.IncorporationCountryID, def.Branches.IncorporationCountry)

	for _, f := range slices.Sorted(maps.Keys(def.Flows)) {
		if !f.Valid() {
			v.fail("", fmt.Sprintf("unknown flow %q", f))
		}
	}
	for _, f := range domain.Flows() {
		fd, ok := def.Flows[f]
		if !ok {
			v.fail("", fmt.Sprintf("flow %q is not defined", f))
			continue
		}
		if len(fd.Questions) == 0 {
			v.fail("", fmt.Sprintf("flow %q has no questions", f))
		}
		if len(fd.Services) == 0 {
			v.fail("", fmt.Sprintf("flow %q has no services", f))
		}
		for _, q := range fd.Questions {
			if domain.IsBranchQuestion(q.ID) {
				v.fail(q.ID, fmt.Sprintf("branch question cannot belong to flow %q", f))
				continue
			}
			v.question(string(f), q)
		}
	}

	if len(v.errs) > 0 {
		return &AggregateError{Errors: v.errs}
	}
	return nil
}

type validator struct {
	seen map[string]string // question id -> owning section
	errs []error
}

func (v *validator) fail(questionID, reason string) {
	v.errs = append(v.errs, &IntegrityError{QuestionID: questionID, Reason: reason})
}

func (v *validator) branch(id string, q domain.Question) {
	if q.ID != id {
		v.fail(q.ID, fmt.Sprintf("branch question must have id %q", id))
		return
	}
	if q.MultiSelect {
		v.fail(q.ID, "branch question must be single-select")
	}
	v.question("branches", q)
}

func (v *validator) question(section string, q domain.Question) {
	if q.ID == "" {
		v.fail("", fmt.Sprintf("question without id in %s", section))
		return
	}
	if owner, dup := v.seen[q.ID]; dup {
		v.fail(q.ID, fmt.Sprintf("duplicate id (already defined in %s)", owner))
		return
	}
	v.seen[q.ID] = section

	if q.Text == "" {
		v.fail(q.ID, "missing text")
	}
	if len(q.Options) == 0 {
		v.fail(q.ID, "no options")
	}

	options := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if o.ID == "" {
			v.fail(q.ID, "option without id")
			continue
		}
		if options[o.ID] {
			v.fail(q.ID, fmt.Sprintf("duplicate option %q", o.ID))
		}
		options[o.ID] = true
	}

	if q.MultiSelect && !options[domain.SentinelAll] {
		v.fail(q.ID, fmt.Sprintf("multi-select question must define option %q", domain.SentinelAll))
	}
}
