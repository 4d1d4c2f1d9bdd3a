// Package detail renders the read-only view of one comment.
//
// The comment is loaded when the view opens:
//   - the selection stored by the dashboard is shown when present
//   - otherwise the comment list is fetched and its first comment is shown
//   - a failed load stays on screen with a retry key ('r') instead of exiting
//
// Render is shared with the non-interactive `show` command.
package detail
