package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/commentdash/internal/logging"
)

// ProjectDirName is the project-local config directory name.
const ProjectDirName = ".commentdash"

// ResolveProjectDir finds the project-local .commentdash directory. It checks,
// in order, flagValue, $COMMENTDASH_PROJECT_DIR, and then startDir and its
// parents for an existing .commentdash directory that is not the commentdash
// home. It returns "" when there is no project directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}
	if startDir == "" {
		return ""
	}

	home, _ := GetConfigDir()
	dir := toAbsProjectDir(ctx, startDir)
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() && dir != home {
			return dir
		}
		parent := filepath.Dir(filepath.Dir(dir))
		next := filepath.Join(parent, ProjectDirName)
		if next == dir {
			return ""
		}
		dir = next
	}
}

// NewWithProjectDir loads the global config and shallow-merges
// projectDir/config.yaml on top. A missing or unreadable overlay leaves the
// global config in effect.
func NewWithProjectDir(ctx context.Context, base *Config, projectDir string) *Config {
	if projectDir == "" {
		return base
	}

	overlayPath := filepath.Join(projectDir, ConfigFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return base
	}

	merged := *base
	merged.View.PageSizeOptions = append([]int(nil), base.View.PageSizeOptions...)
	if err := ShallowMergeYAML(&merged, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
		return base
	}
	merged.ApplyEnvOverrides()
	return &merged
}

// toAbsProjectDir resolves dir and appends .commentdash unless it already
// ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}
	return filepath.Join(abs, ProjectDirName)
}
