// Package pagination translates command-line flags into comment list view
// state and describes derived pages for structured output.
//
// This package contains the flag handling shared by the list and dashboard
// commands:
//   - ListParams: --search, --sort, --page and --page-size parsing and validation
//   - ParseSort: "column" or "column:order" sort expressions
//   - PaginationMeta: page metadata emitted with JSON and YAML output
package pagination
