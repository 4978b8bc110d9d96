// Package validator checks API definitions against the structural rules of
// their format.
//
// The validator works on the generic document tree produced by
// [document.Parse], so it accepts any definition the loader can read:
//   - OpenAPI 3.0.x and 3.1.x: https://spec.openapis.org/oas/v3.1.0.html
//   - Swagger 2.0: https://spec.openapis.org/oas/v2.0.html
//   - Postman Collection v2.x
//
// # Validation Levels
//
// Issues carry one of two severities:
//
//   - SeverityError: violations that make the document invalid
//   - SeverityWarning: recommendations (optional)
//
// Warnings can be suppressed with [WithIncludeWarnings]. [WithStrictMode]
// adds checks beyond the format requirements.
//
// # Validation Rules
//
// Info Object:
//   - Required fields: title, version
//
// Paths:
//   - Keys must begin with "/"
//   - Path parameters must be declared with required: true
//   - Undeclared template parameters produce a warning
//
// Operations:
//   - responses is required (OpenAPI 3.0 and Swagger) and its keys must be
//     valid status codes
//   - operationId values are unique across the document
//
// References:
//   - Every local $ref must resolve inside the document
//
// Each issue carries a JSON pointer to the offending node and, for OpenAPI
// and Swagger, a link into the relevant section of the format description.
//
// # Example
//
//	doc, err := document.Parse(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := validator.Validate(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Valid {
//		for _, e := range result.Errors {
//			fmt.Println(e)
//		}
//	}
package validator
