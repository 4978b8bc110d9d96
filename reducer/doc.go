// Package reducer produces smaller OpenAPI documents that keep only a
// selection of operations.
//
// A [Criterion] selects operations either by tag or by path template and
// HTTP method. Both kinds match without regard to case:
//
//	byTag, _ := reducer.NewCriterion(reducer.WithTags("pets"))
//	byPath, _ := reducer.NewCriterion(reducer.WithPath("/pet", "get"))
//
// [Reduce] works in two phases. It first removes every operation the
// criterion does not select, then computes which components the remaining
// paths, webhooks, and security requirements still reach and drops the
// rest. Root tags no remaining operation uses are dropped too. Reducing by
// path drops webhooks entirely.
//
// A reduction that selects no operation fails with
// *oaserrors.EmptyResultError. For path criteria the message tells a
// missing path apart from a path without the requested methods.
package reducer
