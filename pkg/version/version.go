package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
)

const Version = "0.1.0"

// Parse parses a "MAJOR.MINOR.PATCH" version with an optional "v" prefix.
// Pre-release and build suffixes are not accepted in config files.
func Parse(raw string) (*semver.Version, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, fmt.Errorf("version is empty")
	}

	v, err := semver.NewVersion(value)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version %q: %w", raw, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return nil, fmt.Errorf("invalid semantic version %q (pre-release and build metadata are not supported)", raw)
	}
	return v, nil
}

// EnsureCompatible checks that a config written for target can be read by
// this build: same major version and not newer than the running version.
// An empty target is accepted so hand-written configs may omit it.
func EnsureCompatible(target string) error {
	if strings.TrimSpace(target) == "" {
		return nil
	}

	current, err := Parse(Version)
	if err != nil {
		return fmt.Errorf("parse current version %q: %w", Version, err)
	}
	required, err := Parse(target)
	if err != nil {
		return err
	}

	if required.Major() != current.Major() {
		return fmt.Errorf("unsupported major version %d (current major is %d)", required.Major(), current.Major())
	}
	if current.LessThan(required) {
		return fmt.Errorf("requires followdiff >= %s (current %s)", required, current)
	}

	return nil
}
