// Package loader finds and reads API definitions.
//
// [Resolve] picks the definition to work on: an explicit path or URL is
// used as is, otherwise [Discover] searches a directory for files carrying
// an openapi, swagger or Postman collection marker and the user is asked to
// choose when there are several. [Load] reads the bytes of a definition
// from disk or over HTTP.
//
// The filesystem, network, prompt and terminal are collaborators supplied
// through options ([WithFileSystem], [WithFetcher], [WithPrompter],
// [WithEnvironment]); the defaults use the operating system, resty, survey
// and x/term.
package loader
