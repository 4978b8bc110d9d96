// Package bundler inlines external $ref targets into a single
// self-contained OpenAPI document.
//
// Each external target is copied once into the matching components section
// and every reference to it is rewritten to the local component. The
// section comes from the target's own pointer (#/components/<section>,
// #/definitions, #/parameters or #/responses) or, failing that, from where
// it is referenced. Names combine the file name and the last pointer token
// and get a numeric suffix on collision.
//
// Internal references are never touched, so bundling an already bundled
// document is a no-op.
//
// # Limits
//
// External references are followed to a depth of DefaultMaxRefDepth and at
// most DefaultMaxDocuments documents are read. File references may not
// escape the directory of the root document. References to http(s) URLs
// can be disabled with WithHTTPRefs(false).
//
// Fetched URLs are cached for WithCacheTTL; files are cached for the whole
// run.
package bundler
