package diagnose

import (
	"encoding/json"
)

// jsonSpan is one labelled span inside a JSON diagnostic, matching spec §6's
// `{"start":N,"end":M,"label":"…"}` shape.
type jsonSpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

type jsonDiagnostic struct {
	Severity    string     `json:"severity"`
	Kind        string     `json:"kind"`
	Code        *string    `json:"code"`
	Spans       []jsonSpan `json:"spans"`
	Description string     `json:"description"`
	Help        *string    `json:"help"`
	Fixes       []string   `json:"fixes"`
}

type jsonTimings struct {
	All int64 `json:"all"`
}

// Result is the top-level JSON object emitted by `rulex --json`.
type Result struct {
	Version     int          `json:"version"`
	Success     bool         `json:"success"`
	Output      *string      `json:"output"`
	Diagnostics []Diagnostic `json:"-"`
	TimingsMics int64        `json:"-"`
}

// MarshalJSON renders the Result in the exact shape spec §6 documents.
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Version     int              `json:"version"`
		Success     bool             `json:"success"`
		Output      *string          `json:"output"`
		Diagnostics []jsonDiagnostic `json:"diagnostics"`
		Timings     jsonTimings      `json:"timings"`
	}{
		Version: 1,
		Success: r.Success,
		Output:  r.Output,
		Timings: jsonTimings{All: r.TimingsMics},
	}

	out.Diagnostics = make([]jsonDiagnostic, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		jd := jsonDiagnostic{
			Severity:    d.Severity.String(),
			Kind:        d.Kind,
			Description: d.Description,
			Fixes:       d.Fixes,
		}
		if jd.Fixes == nil {
			jd.Fixes = []string{}
		}
		if d.Code != "" {
			code := d.Code
			jd.Code = &code
		}
		if d.Help != "" {
			help := d.Help
			jd.Help = &help
		}
		if !(d.Span.Start == 0 && d.Span.End == 0) {
			jd.Spans = []jsonSpan{{Start: d.Span.Start, End: d.Span.End, Label: ""}}
		} else {
			jd.Spans = []jsonSpan{}
		}
		out.Diagnostics = append(out.Diagnostics, jd)
	}

	return json.Marshal(out)
}

// NewSuccess builds a successful Result. success == (output != nil) is
// maintained by construction (spec §8's JSON output invariant).
func NewSuccess(output string, diagnostics []Diagnostic, timingMicros int64) Result {
	return Result{Success: true, Output: &output, Diagnostics: diagnostics, TimingsMics: timingMicros}
}

// NewFailure builds a failed Result. Output stays nil; at least one
// diagnostic in diagnostics must have SeverityError for the invariant to
// hold, which every caller in this repo guarantees by construction.
func NewFailure(diagnostics []Diagnostic, timingMicros int64) Result {
	return Result{Success: false, Diagnostics: diagnostics, TimingsMics: timingMicros}
}
