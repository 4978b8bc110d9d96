package report

import (
	"fmt"
	"strings"

	"github.com/docsync/docsync/analyzer"
	"github.com/docsync/docsync/oaserrors"
)

const unusedFeature = "You do not use this."

// FeatureReport is a report restricted to a set of requested features.
type FeatureReport struct {
	// Report is the rendered text
	Report string
	// HasUnusedFeature is true when at least one requested feature does not
	// occur in the document
	HasUnusedFeature bool
	// Unused lists the requested features that do not occur, in report order
	Unused []string
}

// SoftError returns an error matching oaserrors.ErrSoftFailure when a
// requested feature is unused, and nil otherwise. The report remains valid
// either way; callers print it and then exit non-zero on a soft error.
func (r *FeatureReport) SoftError() error {
	if r == nil || !r.HasUnusedFeature {
		return nil
	}
	return &oaserrors.SoftFailureError{
		Message: "requested features are not used: " + strings.Join(r.Unused, ", "),
	}
}

// BuildFeatureReport renders the locations of each requested feature.
// Keys are validated with analyzer.ValidateFeatureKeys first, so the
// catch-all analyzer.ReadMeKey expands to every platform extension and an
// unknown key fails with *oaserrors.UsageError before anything is rendered.
func BuildFeatureReport(result *analyzer.Result, keys []string, opts ...Option) (*FeatureReport, error) {
	if result == nil {
		return nil, fmt.Errorf("report: analysis result is nil")
	}
	expanded, err := analyzer.ValidateFeatureKeys(keys)
	if err != nil {
		return nil, err
	}

	r := newRenderer(opts)
	out := &FeatureReport{}
	for i, key := range expanded {
		rec, ok := result.Feature(key)
		if !ok {
			return nil, fmt.Errorf("report: feature %q missing from analysis result", key)
		}
		if i > 0 {
			r.line("")
		}
		r.heading(fmt.Sprintf("%s %s", r.glyph(rec.Present), key))
		if !rec.Present {
			out.HasUnusedFeature = true
			out.Unused = append(out.Unused, key)
			r.line(r.color.Yellow(unusedFeature).String())
			continue
		}
		for _, loc := range rec.Locations {
			r.line("· " + loc)
		}
	}
	out.Report = r.b.String()
	return out, nil
}
