// Package engine implements the comment list view: searching, three-state
// column sorting, and page-window pagination over a read-only record set.
//
// ListView holds the records and a ViewState and derives a DerivedView on
// demand. The derivation steps are exported as pure functions:
//   - ApplyFilter: case-insensitive substring match on name, email, and body
//   - ApplySort: stable sort by post ID, name, or email
//   - PageWindow: compact page labels with ellipsis gaps
//
// ViewState marshals to the JSON snapshot persisted between sessions.
package engine
