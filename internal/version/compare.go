package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// devBuild marks an unreleased build; it is compatible with every version.
const devBuild = "main"

// CheckVersionCompatibility reports whether a strategy configuration written for
// requiredVersion can run on engineVersion. Major and minor must match; patch may differ.
// A "main" build on either side skips the check.
func CheckVersionCompatibility(engineVersion, requiredVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	requiredVersion = strings.TrimPrefix(requiredVersion, "v")

	if engineVersion == devBuild || requiredVersion == devBuild {
		return nil
	}

	engine, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid engine version '%s'", engineVersion)
	}

	required, err := semver.NewVersion(requiredVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid required version '%s'", requiredVersion)
	}

	if engine.Major() != required.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"major version mismatch: engine is %d.x.x but config requires %d.x.x", engine.Major(), required.Major())
	}

	if engine.Minor() != required.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"minor version mismatch: engine is %d.%d.x but config requires %d.%d.x",
			engine.Major(), engine.Minor(), required.Major(), required.Minor())
	}

	return nil
}
