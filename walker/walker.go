package walker

import (
	"fmt"

	"github.com/docsync/docsync/document"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Handler types for each OpenAPI 3.x node type.
// Each handler receives the walk context and the node, and returns an Action.
// wc.Pointer is the JSON pointer of the node.

// DocumentHandler is called for the root object.
type DocumentHandler func(wc *WalkContext, root *document.Map) Action

// ServerHandler is called for each Server, at the root, path item and operation level.
type ServerHandler func(wc *WalkContext, server *document.Map) Action

// PathItemHandler is called for each path item under paths, webhooks,
// callbacks and components.pathItems.
type PathItemHandler func(wc *WalkContext, item *document.Map) Action

// OperationHandler is called for each Operation. wc.Method is set.
type OperationHandler func(wc *WalkContext, op *document.Map) Action

// ParameterHandler is called for each Parameter.
type ParameterHandler func(wc *WalkContext, param *document.Map) Action

// RequestBodyHandler is called for each RequestBody.
type RequestBodyHandler func(wc *WalkContext, body *document.Map) Action

// ResponseHandler is called for each Response. wc.StatusCode is set for
// operation responses.
type ResponseHandler func(wc *WalkContext, resp *document.Map) Action

// MediaTypeHandler is called for each MediaType. wc.Name is the media type.
type MediaTypeHandler func(wc *WalkContext, mt *document.Map) Action

// HeaderHandler is called for each Header. wc.Name is the header name.
type HeaderHandler func(wc *WalkContext, header *document.Map) Action

// LinkHandler is called for each Link. wc.Name is the link name.
type LinkHandler func(wc *WalkContext, link *document.Map) Action

// CallbackHandler is called for each Callback. wc.Name is the callback name.
type CallbackHandler func(wc *WalkContext, callback *document.Map) Action

// ExampleHandler is called for each Example object. wc.Name is the example name.
type ExampleHandler func(wc *WalkContext, example *document.Map) Action

// SchemaHandler is called for each Schema, including nested schemas.
type SchemaHandler func(wc *WalkContext, schema *document.Map) Action

// SecuritySchemeHandler is called for each SecurityScheme. wc.Name is the scheme name.
type SecuritySchemeHandler func(wc *WalkContext, scheme *document.Map) Action

// ExtensionHandler is called for each x- key of a visited node. wc.Pointer
// is the pointer of the node that owns the extension.
type ExtensionHandler func(wc *WalkContext, key string, value any)

// SchemaSkippedHandler is called when a schema is skipped because it
// exceeds the maximum depth. The reason is always "depth".
type SchemaSkippedHandler func(wc *WalkContext, reason string, schema *document.Map)

// Walker traverses OpenAPI 3.x documents and calls handlers for each node type.
type Walker struct {
	// Handlers
	onDocument       DocumentHandler
	onServer         ServerHandler
	onPathItem       PathItemHandler
	onOperation      OperationHandler
	onParameter      ParameterHandler
	onRequestBody    RequestBodyHandler
	onResponse       ResponseHandler
	onMediaType      MediaTypeHandler
	onHeader         HeaderHandler
	onLink           LinkHandler
	onCallback       CallbackHandler
	onExample        ExampleHandler
	onSchema         SchemaHandler
	onSecurityScheme SecuritySchemeHandler
	onExtension      ExtensionHandler
	onRef            RefHandler
	onSchemaSkipped  SchemaSkippedHandler

	// Configuration
	maxDepth int

	// Internal state
	state   *walkState
	stopped bool
	err     error
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		maxDepth: 100,
		state:    &walkState{},
	}
}

// Walk traverses doc and calls registered handlers for each node.
//
// The walk does not follow $ref; register a RefHandler to see references.
// Sections that must be mappings (paths, webhooks, components and its
// sections, path items) yield an *oaserrors.MalformedDocumentError when
// they are not.
func Walk(doc *document.Document, opts ...Option) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("walker: nil document")
	}

	w := New()
	for _, opt := range opts {
		opt(w)
	}

	return w.walk(doc)
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}

// fail records err and stops the walk.
func (w *Walker) fail(err error) {
	if w.err == nil {
		w.err = err
	}
	w.stopped = true
}

// visit calls fn when registered and reports whether children should be walked.
func visit[T any](w *Walker, fn func(*WalkContext, T) Action, wc *WalkContext, node T) bool {
	if w.stopped {
		return false
	}
	if fn == nil {
		return true
	}
	return w.handleAction(fn(wc, node))
}
