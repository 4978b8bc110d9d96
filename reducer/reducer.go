package reducer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/httputil"
	"github.com/docsync/docsync/oaserrors"
)

// Reduce returns a copy of doc holding only the operations c selects,
// followed by the components those operations can still reach. doc is not
// modified.
//
// Operation selection runs first and reachability pruning second, so a
// schema shared by a kept and a dropped operation survives. Reduce fails
// with *oaserrors.EmptyResultError rather than return an API without
// operations.
func Reduce(doc *document.Document, c *Criterion) (*document.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("reducer: document is nil")
	}
	if c == nil {
		return nil, &oaserrors.UsageError{Message: "a reduction criterion is required"}
	}
	if format, _ := doc.Classify(); format != document.FormatOpenAPI {
		return nil, &oaserrors.MalformedDocumentError{
			Pointer: "#",
			Message: "reduction requires an OpenAPI 3.x document",
		}
	}

	out := doc.Clone()
	paths, err := out.Paths()
	if err != nil {
		return nil, err
	}
	webhooks, err := out.Webhooks()
	if err != nil {
		return nil, err
	}
	// operations behind local path item refs are selected like inline ones
	if err := document.InlinePathItems(out.Root, paths, "#/paths"); err != nil {
		return nil, err
	}
	if err := document.InlinePathItems(out.Root, webhooks, "#/webhooks"); err != nil {
		return nil, err
	}

	var kept int
	switch c.mode {
	case ModeTags:
		wanted := lowerSet(c.tags)
		kept = filterOperations(paths, func(_, _ string, op *document.Map) bool {
			return hasTag(op, wanted)
		})
		kept += filterOperations(webhooks, func(_, _ string, op *document.Map) bool {
			return hasTag(op, wanted)
		})
		if kept == 0 {
			return nil, &oaserrors.EmptyResultError{
				Message: fmt.Sprintf("no operations are tagged %s", strings.Join(c.tags, ", ")),
			}
		}
	case ModePaths:
		kept, err = selectPaths(paths, c.selections)
		if err != nil {
			return nil, err
		}
		out.Root.Delete("webhooks")
		webhooks = nil
	default:
		return nil, &oaserrors.UsageError{Message: fmt.Sprintf("unsupported reduction mode %s", c.mode)}
	}

	prune(out, paths, webhooks)
	return out, nil
}

// filterOperations deletes every operation keep rejects and every path item
// left without operations. It returns the number of operations kept.
func filterOperations(items *document.Map, keep func(path, method string, op *document.Map) bool) int {
	var kept int
	for _, op := range document.Operations(items) {
		if keep(op.Path, op.Method, op.Node) {
			kept++
			continue
		}
		item, _ := items.Map(op.Path)
		item.Delete(op.Method)
	}
	dropEmptyItems(items)
	return kept
}

func dropEmptyItems(items *document.Map) {
	items.Range(func(path string, v any) bool {
		item, ok := v.(*document.Map)
		if !ok || item.Has(document.RefKey) {
			return true
		}
		if !slices.ContainsFunc(item.Keys(), httputil.IsMethod) {
			items.Delete(path)
		}
		return true
	})
}

// selectPaths keeps the selected operations of paths. When nothing is kept
// the error names the selections whose path is missing separately from
// those whose path exists without a matching method.
func selectPaths(paths *document.Map, selections []PathSelection) (int, error) {
	methodsByPath := make(map[string][]string)
	var (
		notFound  []string
		noMethods []string
	)
	for _, sel := range selections {
		key, ok := findPath(paths, sel.Path)
		if !ok {
			notFound = append(notFound, sel.Path)
			continue
		}
		if _, seen := methodsByPath[key]; seen && len(methodsByPath[key]) == 0 {
			continue
		}
		if len(sel.Methods) == 0 {
			methodsByPath[key] = []string{}
			continue
		}
		methodsByPath[key] = append(methodsByPath[key], sel.Methods...)

		item, _ := paths.Map(key)
		var matched bool
		for _, m := range sel.Methods {
			if item.Has(m) {
				matched = true
				break
			}
		}
		if !matched {
			noMethods = append(noMethods, fmt.Sprintf("%s (%s)", sel.Path, strings.Join(sel.Methods, ", ")))
		}
	}

	kept := filterOperations(paths, func(path, method string, _ *document.Map) bool {
		methods, ok := methodsByPath[path]
		return ok && (len(methods) == 0 || slices.Contains(methods, method))
	})
	// remote path item refs have no inline operations; keep selected ones
	paths.Range(func(path string, _ any) bool {
		if _, ok := methodsByPath[path]; !ok {
			paths.Delete(path)
		}
		return true
	})
	if kept > 0 {
		return kept, nil
	}

	var parts []string
	if len(notFound) > 0 {
		parts = append(parts, "path not found: "+strings.Join(notFound, ", "))
	}
	if len(noMethods) > 0 {
		parts = append(parts, "path found but no matching method: "+strings.Join(noMethods, ", "))
	}
	if len(parts) == 0 {
		parts = append(parts, "selected paths have no operations")
	}
	return 0, &oaserrors.EmptyResultError{Message: strings.Join(parts, "; ")}
}

// findPath looks up a path template ignoring case, preferring an exact match.
func findPath(paths *document.Map, path string) (string, bool) {
	if paths.Has(path) {
		return path, true
	}
	for _, key := range paths.Keys() {
		if strings.EqualFold(key, path) {
			return key, true
		}
	}
	return "", false
}

func hasTag(op *document.Map, wanted map[string]bool) bool {
	tags, _ := op.Slice("tags")
	for _, t := range tags {
		if s, ok := t.(string); ok && wanted[strings.ToLower(s)] {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

// prune removes components no retained content reaches and root tags no
// retained operation uses.
func prune(out *document.Document, paths, webhooks *document.Map) {
	used := make(map[string]bool)
	for _, items := range []*document.Map{paths, webhooks} {
		for _, op := range document.Operations(items) {
			tags, _ := op.Node.Slice("tags")
			for _, t := range tags {
				if s, ok := t.(string); ok {
					used[s] = true
				}
			}
		}
	}

	if components, ok := out.Root.Map("components"); ok {
		reach := newReachability(components)
		reach.seed(paths)
		reach.seed(webhooks)
		if security, ok := out.Root.Slice("security"); ok {
			reach.seedSecurity(security)
		}
		for _, items := range []*document.Map{paths, webhooks} {
			for _, op := range document.Operations(items) {
				if security, ok := op.Node.Slice("security"); ok {
					reach.seedSecurity(security)
				}
			}
		}
		reach.expand()
		reach.prune()
		if components.Len() == 0 {
			out.Root.Delete("components")
		}
	}

	if tags, ok := out.Root.Slice("tags"); ok {
		var keep []any
		for _, t := range tags {
			m, ok := t.(*document.Map)
			if !ok {
				continue
			}
			if name, _ := m.String("name"); used[name] {
				keep = append(keep, t)
			}
		}
		if len(keep) == 0 {
			out.Root.Delete("tags")
		} else {
			out.Root.Set("tags", keep)
		}
	}
}
