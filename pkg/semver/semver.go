package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version represents a semantic version
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

var semverRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

// subVersionRegex matches the user agent a node advertises, such as
// "/Satoshi:27.0.0/" or "/LitecoinCore:0.21.3/"
var subVersionRegex = regexp.MustCompile(`:(\d+)\.(\d+)(?:\.(\d+))?`)

// Parse parses a semantic version string
func Parse(version string) (*Version, error) {
	matches := semverRegex.FindStringSubmatch(version)
	if matches == nil {
		return nil, fmt.Errorf("invalid semantic version: %s", version)
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	patch, _ := strconv.Atoi(matches[3])

	return &Version{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: matches[4],
		Build:      matches[5],
	}, nil
}

// ParseSubVersion extracts the release from a node user agent. A missing
// patch number is zero.
func ParseSubVersion(subVersion string) (*Version, error) {
	matches := subVersionRegex.FindStringSubmatch(subVersion)
	if matches == nil {
		return nil, fmt.Errorf("no version in subversion %q", subVersion)
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	patch := 0
	if matches[3] != "" {
		patch, _ = strconv.Atoi(matches[3])
	}
	return &Version{Major: major, Minor: minor, Patch: patch}, nil
}

// FromClientVersion decodes the numeric version of getnetworkinfo, where
// 270100 is 27.1.0 and 210000 is 0.21.0. The result is in the modern
// numbering, see Normalize.
func FromClientVersion(n int32) *Version {
	return &Version{
		Major: int(n / 10000),
		Minor: int(n / 100 % 100),
		Patch: int(n % 100),
	}
}

// Normalize maps the pre-22 "0.x.y" numbering onto "x.y.0" so releases
// from both schemes compare in order: 0.21.2 becomes 21.2.0.
func (v *Version) Normalize() *Version {
	if v.Major != 0 {
		return v
	}
	return &Version{Major: v.Minor, Minor: v.Patch, Prerelease: v.Prerelease, Build: v.Build}
}

// String returns the string representation of the version
func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// Compare compares two versions
// Returns -1 if v < other, 0 if v == other, 1 if v > other
func (v *Version) Compare(other *Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	// Handle prerelease comparison
	if v.Prerelease == "" && other.Prerelease != "" {
		return 1 // No prerelease > prerelease
	}
	if v.Prerelease != "" && other.Prerelease == "" {
		return -1 // Prerelease < no prerelease
	}
	if v.Prerelease != other.Prerelease {
		return strings.Compare(v.Prerelease, other.Prerelease)
	}

	return 0
}

// LessThan returns true if v < other
func (v *Version) LessThan(other *Version) bool {
	return v.Compare(other) < 0
}
