// Package toolchain decides how javadoc links are formed for a given
// javadoc tool version.
package toolchain

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

const (
	// NewStdlibLayout is the first release whose API docs live under
	// docs.oracle.com/en/java/javase.
	NewStdlibLayout = 11

	// OnlineLinking is the first release whose javadoc accepts -link for
	// hosts that do not serve the index files itself.
	OnlineLinking = 10
)

// StdlibLink returns the Java SE API documentation URL for a major version.
func StdlibLink(major int) string {
	if major >= NewStdlibLayout {
		return fmt.Sprintf("https://docs.oracle.com/en/java/javase/%d/docs/api/", major)
	}
	return fmt.Sprintf("https://docs.oracle.com/javase/%d/docs/api/", major)
}

// UsesOfflineLinking reports whether third-party links must be generated
// against locally cached index files.
func UsesOfflineLinking(major int) bool {
	return major < OnlineLinking
}

// ParseMajor extracts the feature release from a Java version string.
// The legacy "1.8.0_292" scheme, "17.0.2" and patch releases with more
// than three numbers such as "17.0.4.1" are understood.
func ParseMajor(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, '_'); i >= 0 {
		s = s[:i]
	}
	if parts := strings.SplitN(s, ".", 4); len(parts) == 4 {
		s = strings.Join(parts[:3], ".")
	}
	v, err := mm.NewVersion(s)
	if err != nil {
		return 0, fmt.Errorf("toolchain: parse version %q: %w", raw, err)
	}
	major := int(v.Major())
	if major == 1 && v.Minor() > 0 {
		major = int(v.Minor())
	}
	if major < 1 {
		return 0, fmt.Errorf("toolchain: version %q has no feature release", raw)
	}
	return major, nil
}

// Policy bundles the two link decisions for one toolchain.
type Policy struct {
	Major int
}

// NewPolicy parses raw with ParseMajor.
func NewPolicy(raw string) (Policy, error) {
	major, err := ParseMajor(raw)
	if err != nil {
		return Policy{}, err
	}
	return Policy{Major: major}, nil
}

func (p Policy) StdlibLink() string {
	return StdlibLink(p.Major)
}

func (p Policy) UsesOfflineLinking() bool {
	return UsesOfflineLinking(p.Major)
}
