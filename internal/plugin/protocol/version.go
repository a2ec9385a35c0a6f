// Package protocol handles filter plugin discovery: parsing the metadata a
// plugin reports and checking its protocol version against the host's.
package protocol

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

// MinCompatibleVersion is the oldest plugin protocol version the host accepts.
const MinCompatibleVersion = "0.1.0"

// Version represents a parsed protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version string in "MAJOR.MINOR.PATCH" format.
func Parse(version string) (Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %s", part, version)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the string representation of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 as v is older than, equal to or newer than o.
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, o.Patch)
}

// IsCompatible checks a plugin's protocol version against the host's.
// The major version must match and the version must not be older than
// MinCompatibleVersion; newer minor and patch versions are accepted.
func IsCompatible(pluginVersion string) (bool, error) {
	v, err := Parse(pluginVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse plugin version: %w", err)
	}

	current := mustParse(plugin.ProtocolVersion)
	if v.Major != current.Major {
		return false, fmt.Errorf("incompatible major version: plugin is %s, swatch requires %d.x.x", v, current.Major)
	}

	minimum := mustParse(MinCompatibleVersion)
	if v.Compare(minimum) < 0 {
		return false, fmt.Errorf("plugin version %s is too old, minimum required is %s", v, minimum)
	}
	return true, nil
}

func mustParse(version string) Version {
	v, err := Parse(version)
	if err != nil {
		panic(fmt.Sprintf("invalid protocol version constant: %v", err))
	}
	return v
}
