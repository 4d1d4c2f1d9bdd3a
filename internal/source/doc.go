// Package source fetches the comment and user collections over HTTP.
//
// Both collections are retrieved whole, with no query parameters; all
// searching, sorting, and paging happens in the engine package. LoadAll runs
// the two fetches in parallel and returns only when both have finished, so a
// caller never sees a partial result. A fetch that fails is reported as
// ErrFetchFailed and is not retried.
package source
