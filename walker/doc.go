// Package walker provides a document traversal API for OpenAPI 3.x documents.
//
// The walker visits every structural node of a document.Document once, in
// document order, and hands it to the handler registered for its type.
// Each handler receives a [WalkContext] whose Pointer is the JSON pointer of
// the node, along with the enclosing path template, method and status code.
//
// # Quick Start
//
// Collect every operationId:
//
//	var operationIDs []string
//	err := walker.Walk(doc,
//	    walker.WithOperationHandler(func(wc *walker.WalkContext, op *document.Map) walker.Action {
//	        if id, ok := op.String("operationId"); ok {
//	            operationIDs = append(operationIDs, id)
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # References
//
// The walker never follows $ref, so circular references cannot make it
// loop. A [RefHandler] sees every reference together with the pointer of
// the object holding it; callers that need the reference graph build it
// from there. Schema nesting is bounded by [WithMaxSchemaDepth].
//
// # Extensions
//
// An [ExtensionHandler] receives every x- key of every visited node, which
// is how vendor extensions are found without knowing where they may appear.
package walker
