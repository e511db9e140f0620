package catalog

import "github.com/aretw0/incorporate/pkg/domain"

// Definition is the serializable form of a catalog.
type Definition struct {
	Seed     []domain.Question              `json:"seed,omitempty" yaml:"seed,omitempty" mapstructure:"seed"`
	Branches Branches                       `json:"branches" yaml:"branches" mapstructure:"branches"`
	Flows    map[domain.Flow]FlowDefinition `json:"flows" yaml:"flows" mapstructure:"flows"`
}

// Branches holds the two flow decision questions.
type Branches struct {
	CompanyStatus        domain.Question `json:"company_status" yaml:"company_status" mapstructure:"company_status"`
	IncorporationCountry domain.Question `json:"incorporation_country" yaml:"incorporation_country" mapstructure:"incorporation_country"`
}

// FlowDefinition is one terminal sequence and the services recommended on completion.
type FlowDefinition struct {
	Questions []domain.Question `json:"questions" yaml:"questions" mapstructure:"questions"`
	Services  []domain.Service  `json:"services" yaml:"services" mapstructure:"services"`
}

func (d Definition) clone() Definition {
	out := Definition{
		Seed:  cloneQuestions(d.Seed),
		Flows: make(map[domain.Flow]FlowDefinition, len(d.Flows)),
	}
	out.Branches.CompanyStatus = d.Branches.CompanyStatus.Clone()
	out.Branches.IncorporationCountry = d.Branches.IncorporationCountry.Clone()
	for f, fd := range d.Flows {
		out.Flows[f] = FlowDefinition{
			Questions: cloneQuestions(fd.Questions),
			Services:  append([]domain.Service(nil), fd.Services...),
		}
	}
	return out
}

func cloneQuestions(qs []domain.Question) []domain.Question {
	if qs == nil {
		return nil
	}
	out := make([]domain.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
