package version

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrUnknownKind is returned for a bump kind other than major, minor or release.
	ErrUnknownKind = errors.New("unknown bump kind")

	// ErrOverflow is returned when a component cannot be incremented any further.
	ErrOverflow = errors.New("version component overflow")
)

// Version represents a version with major, minor, and release components.
type Version struct {
	Major   uint64
	Minor   uint64
	Release uint64
}

// Zero returns the zero version (v0.0.0).
func Zero() Version {
	return Version{Major: 0, Minor: 0, Release: 0}
}

// ParseError reports content that is not a canonical "vX.Y.Z" version.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Parse parses a version string in the canonical "vX.Y.Z" format.
// Surrounding whitespace is ignored. Leading zeros, pre-release tags and
// build metadata are rejected.
func Parse(s string) (Version, error) {
	input := strings.TrimSpace(s)

	if input == "" {
		return Version{}, &ParseError{Input: input, Reason: "empty"}
	}
	if !strings.HasPrefix(input, "v") {
		return Version{}, &ParseError{Input: input, Reason: "must start with 'v'"}
	}

	body := input[1:]
	if parts := strings.Split(body, "."); len(parts) != 3 {
		return Version{}, &ParseError{Input: input, Reason: "expected vMAJOR.MINOR.RELEASE"}
	}
	if strings.ContainsAny(body, "-+") {
		return Version{}, &ParseError{Input: input, Reason: "pre-release and build metadata are not supported"}
	}

	sv, err := semver.StrictNewVersion(body)
	if err != nil {
		return Version{}, &ParseError{Input: input, Reason: err.Error()}
	}

	return Version{Major: sv.Major(), Minor: sv.Minor(), Release: sv.Patch()}, nil
}

// String returns the version in canonical "vX.Y.Z" format.
func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Release)
}

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to
// or after o.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmp(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmp(v.Minor, o.Minor)
	default:
		return cmp(v.Release, o.Release)
	}
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func cmp(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Bump returns a new version with the specified bump applied.
// Components of lower significance than the bumped one reset to zero.
func (v Version) Bump(kind Kind) (Version, error) {
	switch kind {
	case Major:
		if v.Major == math.MaxUint64 {
			return v, fmt.Errorf("%w: major", ErrOverflow)
		}
		return Version{Major: v.Major + 1, Minor: 0, Release: 0}, nil
	case Minor:
		if v.Minor == math.MaxUint64 {
			return v, fmt.Errorf("%w: minor", ErrOverflow)
		}
		return Version{Major: v.Major, Minor: v.Minor + 1, Release: 0}, nil
	case Release:
		if v.Release == math.MaxUint64 {
			return v, fmt.Errorf("%w: release", ErrOverflow)
		}
		return Version{Major: v.Major, Minor: v.Minor, Release: v.Release + 1}, nil
	default:
		return v, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}
