// Package docsync prepares API definitions before they are synchronized to
// a hosted documentation platform.
//
// The library is organized as a pipeline of small packages:
//
//   - loader: finds a definition on disk when none is given and fetches
//     files or URLs
//   - normalizer: load, classify, validate, convert and bundle a definition
//     into a canonical OpenAPI 3.x document
//   - validator: structural checks for OpenAPI 3.x, Swagger 2.0 and Postman
//     collections
//   - converter: Swagger 2.0 and Postman collection conversion to OpenAPI 3.0
//   - bundler: inlines external $ref targets into components
//   - analyzer: reports which OpenAPI and ReadMe features a document uses
//   - report: renders analyzer results for terminals
//   - reducer: trims a document down to selected operations
//
// # Quick Start
//
//	src, err := loader.Resolve(ctx, "openapi.yaml", ".")
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := normalizer.Prepare(ctx, src, normalizer.WithBundle(true))
//	if err != nil {
//		log.Fatal(err)
//	}
//	analysis, err := analyzer.Analyze(res.Document)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(report.BuildFullReport(analysis))
//
// Reduce a document to the operations tagged "pets":
//
//	crit, _ := reducer.NewCriterion(reducer.WithTags("pets"))
//	reduced, err := reducer.Reduce(res.Document, crit)
package docsync
