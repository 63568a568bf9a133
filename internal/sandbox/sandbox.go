// Package sandbox enforces the filesystem policy for agent tool runs.
//
// The guard centralizes path-confinement and write-permission checks so
// that individual tools do not reimplement them. Enforcement is advisory
// at the process level: tools are trusted to consult the guard before any
// side-effecting operation.
package sandbox

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrViolation is wrapped by every error the guard returns, so callers can
// distinguish policy denials from ordinary I/O failures.
var ErrViolation = errors.New("sandbox violation")

// Mode is the sandbox policy level.
type Mode string

const (
	// ModeFull makes the project directory visible but read-only.
	ModeFull Mode = "full"
	// ModeLimited permits writes, but only when the use case declares the
	// capability and the user has granted consent.
	ModeLimited Mode = "limited"
)

// ParseMode converts a configuration string into a Mode, defaulting to full.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(s)) == ModeLimited {
		return ModeLimited
	}
	return ModeFull
}

// Policy is the effective sandbox configuration for one run.
type Policy struct {
	Mode             Mode
	ProjectRoot      string
	AllowsWrites     bool
	UserWriteConsent bool
}

// Guard performs sandbox checks against a fixed policy.
type Guard struct {
	policy Policy
}

// NewGuard creates a guard for the given policy. The project root is
// cleaned so confinement checks are purely lexical.
func NewGuard(policy Policy) *Guard {
	policy.ProjectRoot = filepath.Clean(policy.ProjectRoot)
	return &Guard{policy: policy}
}

// Policy returns the guard's policy.
func (g *Guard) Policy() Policy {
	return g.policy
}

// Resolve joins a path relative to the project root and verifies it does
// not escape. It returns the cleaned absolute path.
func (g *Guard) Resolve(path string) (string, error) {
	joined := path
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(g.policy.ProjectRoot, joined)
	}
	joined = filepath.Clean(joined)

	rel, err := filepath.Rel(g.policy.ProjectRoot, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q escapes project root %q", ErrViolation, path, g.policy.ProjectRoot)
	}
	return joined, nil
}

// Rel returns the project-relative form of a path, for display and
// blacklist matching.
func (g *Guard) Rel(abs string) string {
	rel, err := filepath.Rel(g.policy.ProjectRoot, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

// AssertReadAllowed verifies a read of path is permitted. Both modes allow
// reads within the project.
func (g *Guard) AssertReadAllowed(path string) error {
	_, err := g.Resolve(path)
	return err
}

// AssertWriteAllowed verifies a write to path is permitted.
func (g *Guard) AssertWriteAllowed(path string) error {
	if _, err := g.Resolve(path); err != nil {
		return err
	}
	if g.policy.Mode == ModeFull {
		return fmt.Errorf("%w: writes are disallowed in full sandbox mode", ErrViolation)
	}
	if !g.policy.AllowsWrites {
		return fmt.Errorf("%w: this use case does not allow writes", ErrViolation)
	}
	if !g.policy.UserWriteConsent {
		return fmt.Errorf("%w: user has not granted write consent for this run", ErrViolation)
	}
	return nil
}

// AssertSubprocessAllowed always denies: no policy level permits spawning
// subprocesses.
func (g *Guard) AssertSubprocessAllowed() error {
	return fmt.Errorf("%w: subprocess execution is disallowed", ErrViolation)
}
