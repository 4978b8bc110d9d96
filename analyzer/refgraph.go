package analyzer

import (
	"github.com/docsync/docsync/document"
	"github.com/docsync/docsync/internal/pathutil"
)

// refGraph links components through the local references found in them.
// A reference into the middle of a component counts as a reference to
// the whole component.
type refGraph struct {
	order []string
	edges map[string][]refEdge
}

type refEdge struct {
	to string
	// at is the pointer of the object holding the $ref
	at string
}

func newRefGraph() *refGraph {
	return &refGraph{edges: make(map[string][]refEdge)}
}

// add records a reference found at pointer. References outside components
// and external references cannot take part in a cycle and are ignored.
func (g *refGraph) add(pointer, ref string) {
	if !document.IsLocalRef(ref) {
		return
	}
	from := componentOf(pointer)
	to := componentOf(ref)
	if from == "" || to == "" {
		return
	}
	if _, seen := g.edges[from]; !seen {
		g.order = append(g.order, from)
	}
	g.edges[from] = append(g.edges[from], refEdge{to: to, at: pointer})
}

// cycles returns the pointers of the references that close a cycle.
//
// This is a depth-first search where only components on the active path
// count as revisits: a component reached again through another branch (a
// diamond) has already been finished and is not a cycle.
func (g *refGraph) cycles() []string {
	const (
		unvisited = iota
		active
		finished
	)
	state := make(map[string]int, len(g.order))
	var found []string

	var visit func(node string)
	visit = func(node string) {
		state[node] = active
		for _, e := range g.edges[node] {
			switch state[e.to] {
			case active:
				found = append(found, e.at)
			case unvisited:
				visit(e.to)
			}
		}
		state[node] = finished
	}
	for _, node := range g.order {
		if state[node] == unvisited {
			visit(node)
		}
	}
	return found
}

// componentOf returns the pointer of the component containing pointer,
// such as "#/components/schemas/Pet", or "" outside components.
func componentOf(pointer string) string {
	tokens := pathutil.SplitPointer(pointer)
	if len(tokens) < 3 || tokens[0] != "components" {
		return ""
	}
	return pathutil.Join("#/components", tokens[1], tokens[2])
}
