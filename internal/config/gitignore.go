package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// gitignoreContent keeps per-user state out of a project's .commentdash/.
const gitignoreContent = `# commentdash project-local data (auto-generated)
# Config is tracked; view state and cached collections are not.
state.json
state.json.lock
state.json.tmp
state.db
cache/
*.log
`

// GitignoreContent returns the .gitignore written into project directories.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore writes a .gitignore into dir unless one exists. It reports
// whether a file was created and never overwrites.
func EnsureGitignore(dir string) (bool, error) {
	gitignorePath := filepath.Join(dir, ".gitignore")

	_, err := os.Stat(gitignorePath)
	if err == nil {
		return false, nil
	}

	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking .gitignore at %s: %w", gitignorePath, err)
	}

	if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, mkdirErr)
	}

	//nolint:gosec // .gitignore must be world-readable (0644).
	if writeErr := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644); writeErr != nil {
		return false, fmt.Errorf("writing .gitignore at %s: %w", gitignorePath, writeErr)
	}

	return true, nil
}
