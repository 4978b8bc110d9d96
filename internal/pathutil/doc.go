// Package pathutil builds and parses the JSON pointers used to locate nodes
// in a definition.
//
// [PathBuilder] uses push/pop semantics so recursive traversal can track its
// position without allocating intermediate strings:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("paths")
//	path.Push("/pets")   // escaped to "~1pets"
//	path.PushIndex(0)
//	// Only call String() when needed
//	loc := path.String() // "#/paths/~1pets/0"
//
// Component references are built and parsed with [ComponentRef] and
// [ParseComponentRef]; [RewriteOAS2Ref] maps Swagger 2.0 prefixes to their
// OpenAPI 3 equivalents.
//
// [SanitizeOutputPath] validates output file paths for the CLI. It rejects
// symlinks.
package pathutil
