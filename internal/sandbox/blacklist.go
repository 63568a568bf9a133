package sandbox

import (
	"path"
	"strings"
)

// DefaultPatterns lists paths the agent must never read or surface:
// VCS internals, dependency trees, build output, secrets, and binary media.
var DefaultPatterns = []string{
	// VCS / tooling
	".git/", ".jj/", ".hg/", ".svn/", ".idea/", ".vscode/",
	// env / deps / builds
	".venv/", "venv/", "node_modules/", "dist/", "build/", "__pycache__/",
	// secrets and env
	".env", ".env.*", "*.pem", "*.key", "*.p12", "id_*",
	// large/binary-ish common patterns
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.mp4", "*.mov", "*.zip", "*.tar", "*.gz",
}

// Blacklist decides which project-relative paths are off limits.
//
// Pattern semantics: a pattern ending in "/" blocks that directory and
// everything beneath it; any other pattern is a glob matched against both
// the full slash-separated path and its base name. ExtraIgnores are
// targeted exceptions that win over a matching block pattern.
type Blacklist struct {
	Patterns     []string
	ExtraIgnores []string
}

// NewBlacklist returns a blacklist with the default pattern set plus any
// extra block patterns from configuration.
func NewBlacklist(extraPatterns ...string) *Blacklist {
	patterns := make([]string, 0, len(DefaultPatterns)+len(extraPatterns))
	patterns = append(patterns, DefaultPatterns...)
	patterns = append(patterns, extraPatterns...)
	return &Blacklist{Patterns: patterns}
}

// Blocked reports whether the given project-relative path is blocked.
func (b *Blacklist) Blocked(rel string) bool {
	normalized := normalize(rel)
	for _, pattern := range b.Patterns {
		if !match(normalized, pattern) {
			continue
		}
		for _, ignore := range b.ExtraIgnores {
			if match(normalized, ignore) {
				return false
			}
		}
		return true
	}
	return false
}

// FilterPaths returns the subset of paths that are not blocked.
func (b *Blacklist) FilterPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !b.Blocked(p) {
			out = append(out, p)
		}
	}
	return out
}

func normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return strings.Trim(p, "/")
}

func match(candidate, pattern string) bool {
	pattern = strings.TrimPrefix(pattern, "./")

	// Directory patterns block the directory itself and anything under it.
	if dir, ok := strings.CutSuffix(pattern, "/"); ok {
		for _, segment := range strings.Split(candidate, "/") {
			if matched, _ := path.Match(dir, segment); matched {
				return true
			}
		}
		return false
	}

	if matched, _ := path.Match(pattern, candidate); matched {
		return true
	}
	matched, _ := path.Match(pattern, path.Base(candidate))
	return matched
}
