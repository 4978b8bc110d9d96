package walker

import "context"

// WalkContext provides contextual information about the current node being visited.
// It follows the http.Request pattern for context access.
type WalkContext struct {
	// Pointer is the JSON pointer of the current node.
	// Always populated. Example: "#/paths/~1pets/get/responses/200"
	Pointer string

	// PathTemplate is the path template, webhook name or callback expression
	// of the enclosing path item. Empty outside path items.
	PathTemplate string

	// Method is the HTTP method when walking within an operation scope.
	// Empty when not in operation scope. Example: "get", "post"
	Method string

	// StatusCode is the HTTP status code when walking within a response scope.
	// Empty when not in response scope. Example: "200", "default"
	StatusCode string

	// Name is the map key for named items like headers, schemas, media types, etc.
	// Empty for array items. Example: "Pet", "X-Rate-Limit", "application/json"
	Name string

	// IsComponent is true when the current node is within the components section.
	IsComponent bool

	// IsWebhook is true when the current node is within the webhooks section.
	IsWebhook bool

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// InPathsScope returns true if currently walking within a path item.
func (wc *WalkContext) InPathsScope() bool {
	return wc.PathTemplate != ""
}

// InOperationScope returns true if currently walking within an operation.
func (wc *WalkContext) InOperationScope() bool {
	return wc.Method != ""
}

// InResponseScope returns true if currently walking within a response.
func (wc *WalkContext) InResponseScope() bool {
	return wc.StatusCode != ""
}

// walkState tracks context as we descend through the document.
// This is internal to the walker and used to build WalkContext instances.
type walkState struct {
	pathTemplate string
	method       string
	statusCode   string
	name         string
	isComponent  bool
	isWebhook    bool
	ctx          context.Context
}

// buildContext creates a WalkContext from the current walk state.
func (s *walkState) buildContext(pointer string) *WalkContext {
	return &WalkContext{
		Pointer:      pointer,
		PathTemplate: s.pathTemplate,
		Method:       s.method,
		StatusCode:   s.statusCode,
		Name:         s.name,
		IsComponent:  s.isComponent,
		IsWebhook:    s.isWebhook,
		ctx:          s.ctx,
	}
}

// clone creates a copy of the walk state for child traversal.
func (s *walkState) clone() *walkState {
	c := *s
	return &c
}

// named returns a copy of the state with name set.
func (s *walkState) named(name string) *walkState {
	c := s.clone()
	c.name = name
	return c
}
