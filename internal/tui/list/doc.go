// Package listview provides the selectable row list used by the dashboard.
//
// The list holds the records of the current page only. It renders the rows
// that fit in the terminal, keeps the highlighted row on screen, and supports
// up/down, pgup/pgdn, home/end, and j/k navigation. Paging through the record
// set is the dashboard's job; the list is handed a new slice on every page
// change.
package listview
