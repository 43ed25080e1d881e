// Package version holds the tool version and checks version requirements
// written as semantic-version constraints (">= 0.3", "^1.0", "~0.4.1").
package version

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the release of the minic front end. The language revision it
// accepts moves with it.
const Version = "0.4.0"

var ErrUnsatisfied = errors.New("version requirement not satisfied")

// Current returns Version parsed.
func Current() *semver.Version {
	return semver.MustParse(Version)
}

// Check fails with ErrUnsatisfied when Version does not meet constraint.
// An empty constraint always passes.
func Check(constraint string) error {
	return CheckVersion(Version, constraint)
}

// CheckVersion is Check for an arbitrary version string.
func CheckVersion(v, constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", v, err)
	}
	if ok, reasons := c.Validate(sv); !ok {
		msg := constraint
		if len(reasons) > 0 {
			msg = reasons[0].Error()
		}
		return fmt.Errorf("%w: minic %s: %s", ErrUnsatisfied, sv, msg)
	}
	return nil
}
