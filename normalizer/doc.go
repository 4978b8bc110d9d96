// Package normalizer prepares an API definition for analysis, reduction or
// upload.
//
// [Prepare] reads a definition described by a loader.SourceDescriptor and
// returns a validated OpenAPI 3.x document. Swagger 2.0 and Postman v2.x
// collections are converted to OpenAPI 3.0.3; OpenAPI input keeps its
// version so 3.0 and 3.1 documents can be told apart downstream.
//
// Each stage fails with its own error type from oaserrors, so callers can
// tell a missing file from an invalid definition:
//
//	result, err := normalizer.Prepare(ctx, src, normalizer.WithBundle(true))
//	var verr *oaserrors.ValidationError
//	if errors.As(err, &verr) {
//		for _, issue := range verr.Issues {
//			fmt.Println(issue)
//		}
//	}
package normalizer
