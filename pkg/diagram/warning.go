package diagram

// WarningCode classifies a non-fatal build problem.
type WarningCode string

const (
	WarnUnknownRankDir    WarningCode = "UNKNOWN_RANKDIR"
	WarnUnknownStyle      WarningCode = "UNKNOWN_STYLE"
	WarnUnknownDir        WarningCode = "UNKNOWN_DIR"
	WarnInvalidSize       WarningCode = "INVALID_SIZE"
	WarnMissingBackground WarningCode = "MISSING_BACKGROUND"
	WarnIgnoredColor      WarningCode = "IGNORED_COLOR"
)

// Warning is a non-fatal problem found while building a diagram. The
// offending attribute was skipped.
type Warning struct {
	Code    WarningCode
	Scope   string // node ID, "from->to" edge, or "diagram"
	Message string
}

func (w Warning) String() string { return w.Message }
