// Package oaserrors provides the structured error types returned by the
// docsync pipeline.
//
// Every type implements Is against a package sentinel so callers can branch
// with errors.Is() without type assertions, and errors.As() when they need
// the details.
//
// # Error Categories
//
//   - LoadError: unreadable files, unreachable URLs, unparsable syntax
//   - AmbiguousDefinitionError / NoDefinitionFoundError: discovery outcomes
//   - ValidationError: the complete list of violations for a definition
//   - ConversionError: Swagger or Postman to OpenAPI failures
//   - BundleError: an external $ref that could not be inlined
//   - MalformedDocumentError: a document without the expected shape
//   - EmptyResultError: a reduction that retained no operations
//   - UsageError: conflicting options or unknown feature keys
//   - SoftFailureError: valid output, non-zero exit
//
// # Usage
//
//	res, err := normalizer.Prepare(ctx, src)
//	if err != nil {
//	    var vErr *oaserrors.ValidationError
//	    if errors.As(err, &vErr) {
//	        for _, issue := range vErr.Issues {
//	            fmt.Println(issue)
//	        }
//	    }
//	}
package oaserrors
