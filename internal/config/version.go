package config

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CurrentVersion is the config schema version written by config init.
const CurrentVersion = "1.0.0"

// supportedVersions is the schema range this build reads.
const supportedVersions = "^1"

// ErrUnsupportedVersion is returned for a config written by an incompatible schema.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// CheckVersion reports whether version is readable by this build. An empty
// version is treated as current.
func CheckVersion(version string) error {
	if version == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, version, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedVersion, version, supportedVersions)
	}
	return nil
}
