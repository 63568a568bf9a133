package tools

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/rgoyal8/surveyor/internal/sandbox"
)

// maxReadBytes caps read_file payloads so a single file cannot blow up the
// conversation.
const maxReadBytes = 1024 * 1024

// hiddenAllowlist holds dotfiles worth surfacing in tree output.
var hiddenAllowlist = map[string]bool{
	".gitignore":   true,
	".env.example": true,
	".github":      true,
}

// sourceSuffixes get a "*" marker in tree output.
var sourceSuffixes = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".go": true, ".rs": true,
}

// TreeTool shows the project directory structure with configurable depth.
type TreeTool struct {
	fs        afero.Fs
	guard     *sandbox.Guard
	blacklist *sandbox.Blacklist
}

// NewTreeTool creates a tree tool rooted at the guard's project root.
func NewTreeTool(fs afero.Fs, guard *sandbox.Guard, blacklist *sandbox.Blacklist) *TreeTool {
	if blacklist == nil {
		blacklist = sandbox.NewBlacklist()
	}
	return &TreeTool{fs: fs, guard: guard, blacklist: blacklist}
}

func (t *TreeTool) Name() string {
	return "tree"
}

func (t *TreeTool) Description() string {
	return "Show directory tree structure with configurable depth. Helps explore project layout."
}

func (t *TreeTool) Schema() Schema {
	return ObjectSchema(map[string]Property{
		"path": {
			Type:        "string",
			Description: "Path to show tree for (relative to project root)",
			Default:     ".",
		},
		"depth": {
			Type:        "integer",
			Description: "Maximum depth to show (1-10)",
			Minimum:     IntPtr(1),
			Maximum:     IntPtr(10),
			Default:     3,
		},
	})
}

func (t *TreeTool) Execute(ctx context.Context, args map[string]any) ToolResult {
	relPath, ok := StringArg(args, "path")
	if !ok {
		relPath = "."
	}
	depth, ok := IntArg(args, "depth")
	if !ok {
		return Failf("parameter \"depth\" must be an integer")
	}

	target, err := t.guard.Resolve(relPath)
	if err != nil {
		return Failf("path %q is outside project root", relPath)
	}

	info, err := t.fs.Stat(target)
	if err != nil {
		return Failf("path %q does not exist", relPath)
	}
	if !info.IsDir() {
		return Failf("path %q is not a directory", relPath)
	}

	var sb strings.Builder
	if err := t.buildTree(&sb, target, depth, 0, ""); err != nil {
		return Failf("failed to build tree: %v", err)
	}

	return OK(map[string]any{
		"tree":  sb.String(),
		"path":  relPath,
		"depth": depth,
		"root":  t.guard.Rel(target),
	})
}

func (t *TreeTool) buildTree(sb *strings.Builder, dir string, maxDepth, currentDepth int, prefix string) error {
	if currentDepth >= maxDepth {
		return nil
	}

	entries, err := afero.ReadDir(t.fs, dir)
	if err != nil {
		fmt.Fprintf(sb, "%s[permission denied]\n", prefix)
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	type node struct {
		name  string
		isDir bool
		path  string
	}
	var items []node
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !hiddenAllowlist[name] {
			continue
		}
		full := filepath.Join(dir, name)
		if t.blacklist.Blocked(t.guard.Rel(full)) {
			continue
		}
		items = append(items, node{name: name, isDir: entry.IsDir(), path: full})
	}

	for i, item := range items {
		connector, childPrefix := "├── ", "│   "
		if i == len(items)-1 {
			connector, childPrefix = "└── ", "    "
		}

		display := item.name
		if item.isDir {
			display += "/"
		} else if sourceSuffixes[filepath.Ext(item.name)] {
			display += "*"
		}
		fmt.Fprintf(sb, "%s%s%s\n", prefix, connector, display)

		if item.isDir && currentDepth+1 < maxDepth {
			if err := t.buildTree(sb, item.path, maxDepth, currentDepth+1, prefix+childPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadFileTool reads file contents with blacklist and confinement checks.
type ReadFileTool struct {
	fs        afero.Fs
	guard     *sandbox.Guard
	blacklist *sandbox.Blacklist
}

// NewReadFileTool creates a read_file tool rooted at the guard's project root.
func NewReadFileTool(fs afero.Fs, guard *sandbox.Guard, blacklist *sandbox.Blacklist) *ReadFileTool {
	if blacklist == nil {
		blacklist = sandbox.NewBlacklist()
	}
	return &ReadFileTool{fs: fs, guard: guard, blacklist: blacklist}
}

func (t *ReadFileTool) Name() string {
	return "read_file"
}

func (t *ReadFileTool) Description() string {
	return "Read contents of a file. Some files may be blacklisted for security reasons. " +
		"Binary files and very large files will be rejected."
}

func (t *ReadFileTool) Schema() Schema {
	return ObjectSchema(map[string]Property{
		"path": {
			Type:        "string",
			Description: "Path to file to read (relative to project root)",
		},
	}, "path")
}

func (t *ReadFileTool) Execute(ctx context.Context, args map[string]any) ToolResult {
	relPath, ok := StringArg(args, "path")
	if !ok {
		return Failf("parameter \"path\" must be a string")
	}

	target, err := t.guard.Resolve(relPath)
	if err != nil {
		return Failf("path %q is outside project root", relPath)
	}
	if err := t.guard.AssertReadAllowed(relPath); err != nil {
		return Failf("read of %q denied: %v", relPath, err)
	}

	info, err := t.fs.Stat(target)
	if err != nil {
		return Failf("file %q does not exist", relPath)
	}
	if info.IsDir() {
		return Failf("%q is not a file", relPath)
	}

	if t.blacklist.Blocked(t.guard.Rel(target)) {
		return Failf("file %q is blacklisted and cannot be read for security reasons. "+
			"This may contain sensitive information like API keys, passwords, or private data.", relPath)
	}

	if info.Size() > maxReadBytes {
		return Failf("file %q is too large (%d bytes). Maximum size is 1MB.", relPath, info.Size())
	}

	data, err := afero.ReadFile(t.fs, target)
	if err != nil {
		return Failf("failed to read file %q: %v", relPath, err)
	}

	if bytes.IndexByte(data, 0) >= 0 {
		return Failf("file %q appears to be binary and cannot be read as text", relPath)
	}
	if !utf8.Valid(data) {
		return Failf("file %q contains non-UTF-8 content and cannot be decoded", relPath)
	}

	content := string(data)
	return OK(map[string]any{
		"path":       relPath,
		"size_bytes": len(data),
		"lines":      strings.Count(content, "\n") + 1,
		"content":    content,
	})
}
