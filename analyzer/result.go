package analyzer

import (
	"encoding/json"

	"github.com/docsync/docsync/document"
)

// General statistic keys.
const (
	StatPaths         = "paths"
	StatOperations    = "operations"
	StatServers       = "servers"
	StatMediaTypes    = "mediaTypes"
	StatSecurityTypes = "securityTypes"
	StatSchemas       = "schemas"
)

// generalStatistics lists the general statistics in report order.
var generalStatistics = []struct{ key, name string }{
	{StatPaths, "Paths"},
	{StatOperations, "Operations"},
	{StatServers, "Servers"},
	{StatMediaTypes, "Media Types"},
	{StatSecurityTypes, "Security Types"},
	{StatSchemas, "Schemas"},
}

// GeneralStatisticKeys returns the general statistic keys in report order.
func GeneralStatisticKeys() []string {
	keys := make([]string, len(generalStatistics))
	for i, s := range generalStatistics {
		keys[i] = s.key
	}
	return keys
}

// DocsURL links to the documentation of a feature. Either a single URL
// applies to every OpenAPI version, or Versions holds one URL per minor
// version ("3.0", "3.1") the feature exists in.
type DocsURL struct {
	URL      string            `json:"url,omitempty"`
	Versions map[string]string `json:"versions,omitempty"`
}

// For returns the link for an OpenAPI minor version. available is false
// when the feature does not exist in that version.
func (u DocsURL) For(minor string) (url string, available bool) {
	if len(u.Versions) == 0 {
		return u.URL, true
	}
	url, available = u.Versions[minor]
	return url, available
}

// FeatureRecord reports whether a feature is used and where.
type FeatureRecord struct {
	Key         string   `json:"key"`
	Present     bool     `json:"present"`
	Locations   []string `json:"locations"`
	Description string   `json:"description"`
	DocsURL     DocsURL  `json:"docsURL"`
}

// Statistic is a document-wide tally. Exactly one of Count and Values is set.
type Statistic struct {
	Name   string   `json:"name"`
	Count  *int     `json:"count,omitempty"`
	Values []string `json:"values,omitempty"`
}

// IsCount reports whether the statistic is a number rather than a list.
func (s Statistic) IsCount() bool {
	return s.Count != nil
}

// MarshalJSON writes either count or values, never both. An empty list is
// written as [] so that readers can still tell the two shapes apart.
func (s Statistic) MarshalJSON() ([]byte, error) {
	if s.IsCount() {
		return json.Marshal(struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}{s.Name, *s.Count})
	}
	values := s.Values
	if values == nil {
		values = []string{}
	}
	return json.Marshal(struct {
		Name   string   `json:"name"`
		Values []string `json:"values"`
	}{s.Name, values})
}

// Result is the outcome of analyzing a document.
type Result struct {
	// General holds document-wide statistics keyed by Stat* constants
	General map[string]Statistic `json:"general"`
	// OpenAPI holds one record per OpenAPI feature key
	OpenAPI map[string]FeatureRecord `json:"openapi"`
	// Platform holds one record per platform extension key
	Platform map[string]FeatureRecord `json:"platformExtensions"`
	// SpecVersion is the openapi field of the analyzed document
	SpecVersion string `json:"specVersion"`
}

// MinorVersion returns the "major.minor" series of SpecVersion.
func (r *Result) MinorVersion() string {
	return document.MinorSeries(r.SpecVersion)
}

// Feature looks up a record in either catalog.
func (r *Result) Feature(key string) (FeatureRecord, bool) {
	if rec, ok := r.OpenAPI[key]; ok {
		return rec, true
	}
	rec, ok := r.Platform[key]
	return rec, ok
}
