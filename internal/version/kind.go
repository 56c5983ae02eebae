package version

import "fmt"

// Kind names the component a bump increments.
type Kind string

const (
	Major   Kind = "major"
	Minor   Kind = "minor"
	Release Kind = "release"
)

// Kinds lists the valid bump kinds from most to least significant.
func Kinds() []Kind {
	return []Kind{Major, Minor, Release}
}

// ParseKind matches s exactly against the known bump kinds.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected major, minor or release)", ErrUnknownKind, s)
}

func (k Kind) String() string {
	return string(k)
}
