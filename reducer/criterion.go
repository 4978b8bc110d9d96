package reducer

import (
	"strings"

	"github.com/docsync/docsync/internal/httputil"
	"github.com/docsync/docsync/oaserrors"
)

// Mode selects how a Criterion picks operations.
type Mode int

const (
	// ModeTags keeps operations sharing at least one tag with the criterion
	ModeTags Mode = iota
	// ModePaths keeps operations under selected path templates
	ModePaths
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	switch m {
	case ModeTags:
		return "tags"
	case ModePaths:
		return "paths"
	default:
		return "unknown"
	}
}

// PathSelection selects the operations of one path template. An empty
// Methods list selects every operation under the path.
type PathSelection struct {
	Path    string
	Methods []string
}

// Criterion describes which operations a reduction keeps. Build one with
// NewCriterion.
type Criterion struct {
	mode       Mode
	tags       []string
	selections []PathSelection
}

// Mode returns how the criterion selects operations.
func (c *Criterion) Mode() Mode { return c.mode }

// Tags returns the tags of a ModeTags criterion.
func (c *Criterion) Tags() []string { return append([]string(nil), c.tags...) }

// Selections returns the path selections of a ModePaths criterion.
func (c *Criterion) Selections() []PathSelection {
	return append([]PathSelection(nil), c.selections...)
}

// Option configures a Criterion.
type Option func(*criterionConfig) error

type criterionConfig struct {
	tags       []string
	selections []PathSelection
}

// WithTags selects operations tagged with any of tags. Matching ignores case.
func WithTags(tags ...string) Option {
	return func(cfg *criterionConfig) error {
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				return &oaserrors.UsageError{Option: "tag", Message: "tag must not be empty"}
			}
			cfg.tags = append(cfg.tags, tag)
		}
		return nil
	}
}

// WithPath selects the operations under path restricted to methods. With no
// methods every operation under the path is selected. It may be repeated.
func WithPath(path string, methods ...string) Option {
	return func(cfg *criterionConfig) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return &oaserrors.UsageError{Option: "path", Message: "path must not be empty"}
		}
		sel := PathSelection{Path: path}
		for _, m := range methods {
			method, ok := httputil.NormalizeMethod(m)
			if !ok {
				return &oaserrors.UsageError{Option: "method", Value: m, Message: "not an HTTP method"}
			}
			sel.Methods = append(sel.Methods, method)
		}
		cfg.selections = append(cfg.selections, sel)
		return nil
	}
}

// NewCriterion builds a criterion from exactly one kind of selection.
// Combining tags with paths, or supplying neither, is a usage error.
func NewCriterion(opts ...Option) (*Criterion, error) {
	cfg := &criterionConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	switch {
	case len(cfg.tags) > 0 && len(cfg.selections) > 0:
		return nil, &oaserrors.UsageError{
			Option:  "tag",
			Message: "tags and paths cannot be combined; reduce by one or the other",
		}
	case len(cfg.tags) > 0:
		return &Criterion{mode: ModeTags, tags: cfg.tags}, nil
	case len(cfg.selections) > 0:
		return &Criterion{mode: ModePaths, selections: cfg.selections}, nil
	default:
		return nil, &oaserrors.UsageError{Message: "at least one tag or path is required"}
	}
}
