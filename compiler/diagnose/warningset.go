package diagnose

// WarningSet implements the `-W <kind>{=0,1}` CLI flag from spec §6: by
// default every warning category is enabled, individual categories can be
// disabled (or re-enabled), and `-W0` disables all of them at once.
type WarningSet struct {
	allDisabled bool
	overrides   map[string]bool // category name -> enabled
}

// NewWarningSet returns a WarningSet with every category enabled.
func NewWarningSet() *WarningSet {
	return &WarningSet{overrides: make(map[string]bool)}
}

// DisableAll implements the bare `-W0` flag.
func (w *WarningSet) DisableAll() {
	w.allDisabled = true
	w.overrides = make(map[string]bool)
}

// Set enables or disables a single warning category by its Kind string
// (e.g. "Deprecation(Dot)" or "UnusedVariable").
func (w *WarningSet) Set(category string, enabled bool) {
	w.overrides[category] = enabled
}

// IsEnabled reports whether a warning of the given category should be
// surfaced to the user.
func (w *WarningSet) IsEnabled(category string) bool {
	if enabled, ok := w.overrides[category]; ok {
		return enabled
	}
	return !w.allDisabled
}

// Filter returns the subset of diagnostics whose category is enabled. Only
// warnings are filtered; errors always pass through.
func (w *WarningSet) Filter(diagnostics []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		if d.Severity == SeverityWarning && !w.IsEnabled(d.Kind) {
			continue
		}
		out = append(out, d)
	}
	return out
}
