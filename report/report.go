package report

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/docsync/docsync/analyzer"
)

const (
	glyphUsed   = "✅"
	glyphUnused = "❌"

	openAPIHeading  = "OpenAPI Features"
	platformHeading = "ReadMe-Specific Features and Extensions"
	generalHeading  = "General Statistics"
)

// Option configures report rendering.
type Option func(*renderer)

// WithColor enables ANSI colors in headings and glyphs. Reports are plain
// text by default.
func WithColor(enabled bool) Option {
	return func(r *renderer) {
		r.color = aurora.NewAurora(enabled)
	}
}

// nouns holds the singular and plural forms used in statistic sentences.
var nouns = map[string][2]string{
	analyzer.StatPaths:         {"path", "paths"},
	analyzer.StatOperations:    {"operation", "operations"},
	analyzer.StatServers:       {"server", "servers"},
	analyzer.StatMediaTypes:    {"media type", "media types"},
	analyzer.StatSecurityTypes: {"security type", "security types"},
	analyzer.StatSchemas:       {"schema", "schemas"},
}

type renderer struct {
	color   aurora.Aurora
	numbers *message.Printer
	b       strings.Builder
}

func newRenderer(opts []Option) *renderer {
	r := &renderer{
		color:   aurora.NewAurora(false),
		numbers: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BuildFullReport renders the general statistics followed by one table per
// feature catalog. Documentation links follow the minor version of the
// analyzed document.
func BuildFullReport(result *analyzer.Result, opts ...Option) string {
	r := newRenderer(opts)
	if result == nil {
		return ""
	}

	r.heading(generalHeading)
	if result.SpecVersion != "" {
		r.line(fmt.Sprintf("· Your API definition uses OpenAPI %s.", result.SpecVersion))
	}
	for _, key := range analyzer.GeneralStatisticKeys() {
		stat, ok := result.General[key]
		if !ok {
			continue
		}
		r.line("· " + r.statistic(key, stat))
	}

	r.line("")
	r.heading(openAPIHeading)
	r.table(result, analyzer.OpenAPIFeatureKeys(), result.OpenAPI)

	r.line("")
	r.heading(platformHeading)
	r.table(result, analyzer.PlatformFeatureKeys(), result.Platform)

	return r.b.String()
}

func (r *renderer) statistic(key string, stat analyzer.Statistic) string {
	forms, ok := nouns[key]
	if !ok {
		name := strings.ToLower(stat.Name)
		forms = [2]string{name, name}
	}
	if stat.IsCount() {
		return fmt.Sprintf("You have %s in your API.", r.quantity(*stat.Count, forms))
	}
	if len(stat.Values) == 0 {
		return fmt.Sprintf("You do not use any %s.", forms[1])
	}
	return fmt.Sprintf("You use %s: %s.", r.quantity(len(stat.Values), forms), strings.Join(stat.Values, ", "))
}

func (r *renderer) quantity(n int, forms [2]string) string {
	noun := forms[1]
	if n == 1 {
		noun = forms[0]
	}
	return r.numbers.Sprintf("%d %s", n, noun)
}

func (r *renderer) table(result *analyzer.Result, keys []string, records map[string]analyzer.FeatureRecord) {
	r.line("| Feature | Used? | Description |")
	r.line("| :--- | :---: | :--- |")
	minor := result.MinorVersion()
	for _, key := range keys {
		rec, ok := records[key]
		if !ok {
			continue
		}
		r.line(fmt.Sprintf("| %s | %s | %s |", key, r.glyph(rec.Present), describe(rec, minor)))
	}
}

func (r *renderer) glyph(present bool) string {
	if present {
		return r.color.Green(glyphUsed).String()
	}
	return r.color.Red(glyphUnused).String()
}

// describe returns the description of a feature followed by its
// documentation link for the given OpenAPI minor version.
func describe(rec analyzer.FeatureRecord, minor string) string {
	url, available := rec.DocsURL.For(minor)
	if !available {
		if minor == "" {
			return rec.Description
		}
		return fmt.Sprintf("This feature is not available on OpenAPI v%s.", minor)
	}
	if url == "" {
		return rec.Description
	}
	return rec.Description + " " + url
}

func (r *renderer) heading(text string) {
	r.line(r.color.Bold(text).String())
	r.line("")
}

func (r *renderer) line(s string) {
	r.b.WriteString(s)
	r.b.WriteByte('\n')
}
