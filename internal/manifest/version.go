package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedTemplateVersions is the range of template_version values this
// binary can run.
const SupportedTemplateVersions = ">= 1.0.0, < 2.0.0"

var supportedConstraint = mustConstraint(SupportedTemplateVersions)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// CheckTemplateVersion reports whether version falls in
// SupportedTemplateVersions. A leading "v" is tolerated.
func CheckTemplateVersion(version string) error {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing template_version %q: %w", version, err)
	}
	if !supportedConstraint.Check(v) {
		return fmt.Errorf("template_version %s is not supported (want %s)", v, SupportedTemplateVersions)
	}
	return nil
}
