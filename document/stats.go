package document

import "github.com/docsync/docsync/internal/pathutil"

// Stats summarizes the size of an OpenAPI document.
type Stats struct {
	PathCount      int `json:"pathCount"`
	OperationCount int `json:"operationCount"`
	WebhookCount   int `json:"webhookCount"`
	SchemaCount    int `json:"schemaCount"`
	ComponentCount int `json:"componentCount"`
}

// ComputeStats counts paths, operations and components. Operations behind
// local path item references are counted. Sections that are not mappings
// count as empty.
func ComputeStats(d *Document) Stats {
	var s Stats
	if paths, err := d.Paths(); err == nil && paths != nil {
		s.PathCount = paths.Len()
		s.OperationCount = countOperations(d.Root, paths, "#/paths")
	}
	if hooks, err := d.Webhooks(); err == nil && hooks != nil {
		s.WebhookCount = countOperations(d.Root, hooks, "#/webhooks")
	}
	if comps, err := d.Components(); err == nil && comps != nil {
		comps.Range(func(section string, v any) bool {
			m, ok := v.(*Map)
			if !ok {
				return true
			}
			s.ComponentCount += m.Len()
			if section == "schemas" {
				s.SchemaCount = m.Len()
			}
			return true
		})
	}
	return s
}

func countOperations(root, items *Map, base string) int {
	var ops []Operation
	items.Range(func(key string, v any) bool {
		item, ok := v.(*Map)
		if !ok {
			return true
		}
		if resolved, err := ResolvePathItem(root, item, pathutil.Join(base, key)); err == nil {
			ops = appendOperations(ops, key, resolved)
		}
		return true
	})
	return len(ops)
}
