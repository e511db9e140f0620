package domain

// Flow identifies one of the terminal question sequences.
type Flow string

const (
	// FlowUnset means no terminal sequence has been selected yet.
	FlowUnset         Flow = ""
	FlowNew           Flow = "new"
	FlowExistingUAE   Flow = "existing_uae"
	FlowExistingOther Flow = "existing_other"
)

// Flows lists the terminal flows in a stable order.
func Flows() []Flow {
	return []Flow{FlowNew, FlowExistingUAE, FlowExistingOther}
}

// Valid reports whether f names a terminal flow.
func (f Flow) Valid() bool {
	switch f {
	case FlowNew, FlowExistingUAE, FlowExistingOther:
		return true
	}
	return false
}

func (f Flow) String() string {
	if f == FlowUnset {
		return "unset"
	}
	return string(f)
}
