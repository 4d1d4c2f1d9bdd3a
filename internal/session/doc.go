// Package session connects the list engine to its collaborators for one run:
// it restores the ViewState at start, persists it after every mutation, and
// hands the selected comment to the detail view through the store.
package session
