package manager

// OutcomeKind classifies the overlay shown after an operation.
type OutcomeKind int

const (
	OutcomeInfo OutcomeKind = iota
	OutcomeSuccess
	OutcomeError
	OutcomeConfirm
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeInfo:
		return "info"
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	case OutcomeConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Outcome is the result overlay a screen renders until dismissed. A
// confirm Outcome blocks everything else until resolved.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}
