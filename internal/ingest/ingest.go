// Package ingest collects readable text files from a project tree for
// inlining into a prompt, bounded by size caps and the sandbox blacklist.
package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/rgoyal8/surveyor/internal/sandbox"
)

// Caps bound how much content a single ingest may gather.
type Caps struct {
	MaxFiles      int
	MaxTotalBytes int64
	MaxFileBytes  int64
}

// DefaultCaps returns the standard ingest limits.
func DefaultCaps() Caps {
	return Caps{
		MaxFiles:      200,
		MaxTotalBytes: 5 * 1024 * 1024,
		MaxFileBytes:  512 * 1024,
	}
}

// textExtensions are file suffixes treated as ingestible text without
// sniffing.
var textExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".ts": true, ".rs": true,
	".java": true, ".c": true, ".h": true, ".cpp": true, ".hpp": true,
	".rb": true, ".sh": true, ".sql": true,
	".md": true, ".txt": true, ".rst": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".html": true, ".css": true, ".xml": true,
	".mod": true, ".sum": true, ".lock": true,
}

// LooksBinary reports whether content appears to be binary. A NUL byte in
// the first kilobyte is the tell.
func LooksBinary(content []byte) bool {
	head := content
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.IndexByte(head, 0) >= 0
}

// File is one ingested file.
type File struct {
	Path    string
	Content string
}

// Result is the outcome of a Collect call. Skipped lists paths that were
// seen but excluded, with a reason suffix.
type Result struct {
	Files      []File
	Skipped    []string
	TotalBytes int64
}

// Collect walks the given roots and gathers eligible text files until a cap
// is hit. Roots are project-relative; the blacklist is consulted for every
// candidate.
func Collect(fs afero.Fs, projectRoot string, roots []string, bl *sandbox.Blacklist, caps Caps) (*Result, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	res := &Result{}
	seen := make(map[string]bool)

	for _, root := range roots {
		abs := filepath.Join(projectRoot, root)
		err := afero.Walk(fs, abs, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			rel, relErr := filepath.Rel(projectRoot, path)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if info.IsDir() {
				if bl != nil && rel != "." && bl.Blocked(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if seen[rel] {
				return nil
			}
			seen[rel] = true

			if bl != nil && bl.Blocked(rel) {
				res.Skipped = append(res.Skipped, rel+" (blocked)")
				return nil
			}
			if !textExtensions[strings.ToLower(filepath.Ext(rel))] {
				res.Skipped = append(res.Skipped, rel+" (not a text file)")
				return nil
			}
			if info.Size() > caps.MaxFileBytes {
				res.Skipped = append(res.Skipped, rel+" (too large)")
				return nil
			}
			if len(res.Files) >= caps.MaxFiles || res.TotalBytes+info.Size() > caps.MaxTotalBytes {
				res.Skipped = append(res.Skipped, rel+" (cap reached)")
				return nil
			}

			content, readErr := afero.ReadFile(fs, path)
			if readErr != nil {
				res.Skipped = append(res.Skipped, rel+" (unreadable)")
				return nil
			}
			if LooksBinary(content) {
				res.Skipped = append(res.Skipped, rel+" (binary)")
				return nil
			}

			res.Files = append(res.Files, File{Path: rel, Content: string(content)})
			res.TotalBytes += int64(len(content))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(res.Files, func(i, j int) bool { return res.Files[i].Path < res.Files[j].Path })
	sort.Strings(res.Skipped)
	return res, nil
}
