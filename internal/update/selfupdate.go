package update

import (
	"fmt"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// SelfUpdate replaces the running binary with the latest release and
// returns the installed version. It reports the current version unchanged
// when already up to date.
func SelfUpdate(current string) (string, error) {
	v, err := semver.ParseTolerant(current)
	if err != nil {
		v = semver.MustParse("0.0.0")
	}
	// The selfupdate API predates semver/v4.
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(v.String()), Slug)
	if err != nil {
		return "", fmt.Errorf("self-update: %w", err)
	}
	return latest.Version.String(), nil
}
