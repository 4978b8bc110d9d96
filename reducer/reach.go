package reducer

import (
	"strings"

	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/pathutil"
)

// componentKey identifies one entry of a components section.
type componentKey struct {
	section string
	name    string
}

// reachability collects the components reachable from retained content.
type reachability struct {
	components *document.Map
	marked     map[componentKey]bool
	queue      []componentKey
}

func newReachability(components *document.Map) *reachability {
	return &reachability{
		components: components,
		marked:     make(map[componentKey]bool),
	}
}

// seed marks every component referenced from v.
func (r *reachability) seed(v any) {
	collectRefs(v, r.addRef)
}

// seedSecurity marks the schemes named by a list of security requirements.
func (r *reachability) seedSecurity(requirements []any) {
	for _, req := range requirements {
		m, ok := req.(*document.Map)
		if !ok {
			continue
		}
		for _, name := range m.Keys() {
			r.mark(componentKey{section: pathutil.SectionSecuritySchemes, name: name})
		}
	}
}

func (r *reachability) addRef(ref string) {
	section, name, ok := pathutil.ParseComponentRef(ref)
	if !ok {
		return
	}
	r.mark(componentKey{section: section, name: name})
}

func (r *reachability) mark(key componentKey) {
	if r.marked[key] {
		return
	}
	r.marked[key] = true
	r.queue = append(r.queue, key)
}

// expand follows references out of marked components until no new
// component is found.
func (r *reachability) expand() {
	for len(r.queue) > 0 {
		key := r.queue[0]
		r.queue = r.queue[1:]

		section, ok := r.components.Map(key.section)
		if !ok {
			continue
		}
		entry, ok := section.Get(key.name)
		if !ok {
			continue
		}
		collectRefs(entry, r.addRef)
	}
}

// prune deletes unmarked entries of every known components section and
// drops sections left empty.
func (r *reachability) prune() {
	for _, section := range pathutil.ComponentSections {
		entries, ok := r.components.Map(section)
		if !ok {
			continue
		}
		for _, name := range entries.Keys() {
			if !r.marked[componentKey{section: section, name: name}] {
				entries.Delete(name)
			}
		}
		if entries.Len() == 0 {
			r.components.Delete(section)
		}
	}
}

// collectRefs calls fn for every $ref under v and for every discriminator
// mapping value, which are references too.
func collectRefs(v any, fn func(ref string)) {
	switch val := v.(type) {
	case *document.Map:
		if ref, ok := val.String(document.RefKey); ok {
			fn(ref)
		}
		if disc, ok := val.Map("discriminator"); ok {
			if mapping, ok := disc.Map("mapping"); ok {
				mapping.Range(func(_ string, target any) bool {
					ref, ok := target.(string)
					if !ok {
						return true
					}
					if !strings.Contains(ref, "/") {
						// bare schema name
						ref = pathutil.SchemaRef(ref)
					}
					fn(ref)
					return true
				})
			}
		}
		val.Range(func(_ string, child any) bool {
			collectRefs(child, fn)
			return true
		})
	case []any:
		for _, item := range val {
			collectRefs(item, fn)
		}
	}
}
