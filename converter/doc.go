// Package converter turns Swagger 2.0 documents and Postman v2.x collections
// into OpenAPI 3.0.3.
//
// Conversion is best effort with detailed issue tracking. OpenAPI 3.x input
// passes through unchanged. The source document is never modified.
//
// # Quick Start
//
//	doc, _ := document.Parse(data)
//	result, err := converter.Convert(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
//
// # Swagger 2.0
//
// host, basePath and schemes become servers. definitions, parameters,
// responses and securityDefinitions move under components, and every local
// $ref is rewritten to match. body and formData parameters become a
// requestBody whose media types come from consumes; response schemas become
// content keyed by produces. x-nullable becomes nullable, type: file becomes
// a binary string, and collectionFormat maps to style and explode.
//
// # Postman Collections
//
// Folders become tags, and each request becomes an operation. ":id" and
// "{{id}}" path segments become path parameters. Query entries and headers
// become parameters. raw, urlencoded, formdata, file and graphql bodies
// become a requestBody. Saved responses become responses with examples.
// Request origins become servers, with collection variables substituted.
//
// # Conversion Issues
//
// Issues are Info (conversion choices) or Warning (lossy conversions).
// A construct that cannot be converted at all fails the conversion with an
// [oaserrors.ConversionError].
package converter
