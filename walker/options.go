package walker

import "context"

// Option configures the Walker.
type Option func(*Walker)

// WithDocumentHandler sets the handler for the root object.
func WithDocumentHandler(fn DocumentHandler) Option {
	return func(w *Walker) { w.onDocument = fn }
}

// WithServerHandler sets the handler for Server objects.
func WithServerHandler(fn ServerHandler) Option {
	return func(w *Walker) { w.onServer = fn }
}

// WithPathItemHandler sets the handler for PathItem objects.
func WithPathItemHandler(fn PathItemHandler) Option {
	return func(w *Walker) { w.onPathItem = fn }
}

// WithOperationHandler sets the handler for Operation objects.
func WithOperationHandler(fn OperationHandler) Option {
	return func(w *Walker) { w.onOperation = fn }
}

// WithParameterHandler sets the handler for Parameter objects.
func WithParameterHandler(fn ParameterHandler) Option {
	return func(w *Walker) { w.onParameter = fn }
}

// WithRequestBodyHandler sets the handler for RequestBody objects.
func WithRequestBodyHandler(fn RequestBodyHandler) Option {
	return func(w *Walker) { w.onRequestBody = fn }
}

// WithResponseHandler sets the handler for Response objects.
func WithResponseHandler(fn ResponseHandler) Option {
	return func(w *Walker) { w.onResponse = fn }
}

// WithMediaTypeHandler sets the handler for MediaType objects.
func WithMediaTypeHandler(fn MediaTypeHandler) Option {
	return func(w *Walker) { w.onMediaType = fn }
}

// WithHeaderHandler sets the handler for Header objects.
func WithHeaderHandler(fn HeaderHandler) Option {
	return func(w *Walker) { w.onHeader = fn }
}

// WithLinkHandler sets the handler for Link objects.
func WithLinkHandler(fn LinkHandler) Option {
	return func(w *Walker) { w.onLink = fn }
}

// WithCallbackHandler sets the handler for Callback objects.
func WithCallbackHandler(fn CallbackHandler) Option {
	return func(w *Walker) { w.onCallback = fn }
}

// WithExampleHandler sets the handler for Example objects.
func WithExampleHandler(fn ExampleHandler) Option {
	return func(w *Walker) { w.onExample = fn }
}

// WithSchemaHandler sets the handler for Schema objects.
func WithSchemaHandler(fn SchemaHandler) Option {
	return func(w *Walker) { w.onSchema = fn }
}

// WithSecuritySchemeHandler sets the handler for SecurityScheme objects.
func WithSecuritySchemeHandler(fn SecuritySchemeHandler) Option {
	return func(w *Walker) { w.onSecurityScheme = fn }
}

// WithExtensionHandler sets the handler for x- keys of visited nodes.
func WithExtensionHandler(fn ExtensionHandler) Option {
	return func(w *Walker) { w.onExtension = fn }
}

// WithRefHandler sets a handler called when a $ref is encountered.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) { w.onRef = fn }
}

// WithSchemaSkippedHandler sets the handler called when schemas are skipped.
func WithSchemaSkippedHandler(fn SchemaSkippedHandler) Option {
	return func(w *Walker) { w.onSchemaSkipped = fn }
}

// WithMaxSchemaDepth sets the maximum schema recursion depth.
// If depth is not positive, it is silently ignored and the default (100) is kept.
func WithMaxSchemaDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context(), and a canceled
// context ends the walk with its error.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.state.ctx = ctx
	}
}
