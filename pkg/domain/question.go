package domain

// SentinelAll is the multi-select option id meaning "every other option".
// It is mutually exclusive with all other options of the same question.
const SentinelAll = "all"

// Branch question ids. Answering them selects a Flow instead of advancing
// within one, so they never belong to a terminal sequence.
const (
	CompanyStatusID        = "company_status"
	IncorporationCountryID = "incorporation_country"
)

// Option is one selectable answer of a Question.
type Option struct {
	ID   string `json:"id" yaml:"id" mapstructure:"id"`
	Text string `json:"text" yaml:"text" mapstructure:"text"`
}

// Question is an immutable catalog entry.
type Question struct {
	ID          string   `json:"id" yaml:"id" mapstructure:"id"`
	Text        string   `json:"text" yaml:"text" mapstructure:"text"`
	Subtext     string   `json:"subtext,omitempty" yaml:"subtext,omitempty" mapstructure:"subtext"`
	Options     []Option `json:"options" yaml:"options" mapstructure:"options"`
	MultiSelect bool     `json:"multi_select,omitempty" yaml:"multi_select,omitempty" mapstructure:"multi_select"`
}

// Option returns the option with the given id.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// HasSentinel reports whether the question defines the "all" option.
func (q Question) HasSentinel() bool {
	_, ok := q.Option(SentinelAll)
	return ok
}

// Clone returns a deep copy so callers cannot mutate catalog data.
func (q Question) Clone() Question {
	out := q
	out.Options = append([]Option(nil), q.Options...)
	return out
}

// IsBranchQuestion reports whether id names one of the two flow decision points.
func IsBranchQuestion(id string) bool {
	return id == CompanyStatusID || id == IncorporationCountryID
}

// Service is one entry of a completion recommendation.
type Service struct {
	ID          string `json:"id" yaml:"id" mapstructure:"id"`
	Title       string `json:"title" yaml:"title" mapstructure:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}
