// Package assetpath canonicalizes user-supplied asset paths. Controllers
// send paths in any slash style, with or without the asset-root prefix,
// sometimes with the prefix repeated; every handler works on the
// normalized logical form and the matching filesystem path.
package assetpath

import (
	"path/filepath"
	"strings"
)

// Normalizer maps user paths onto the project's asset root.
type Normalizer struct {
	rootName string // logical prefix, e.g. "Assets"
	rootDir  string // filesystem directory backing the root
}

// New creates a normalizer for the given logical root name and its
// filesystem location.
func New(rootName, rootDir string) *Normalizer {
	return &Normalizer{
		rootName: strings.Trim(strings.TrimSpace(rootName), "/"),
		rootDir:  filepath.Clean(rootDir),
	}
}

// RootName returns the canonical logical root prefix.
func (n *Normalizer) RootName() string { return n.rootName }

// RootDir returns the filesystem directory backing the asset root.
func (n *Normalizer) RootDir() string { return n.rootDir }

// Normalize canonicalizes a user path. Backslashes become forward
// slashes, surrounding slashes are trimmed, and the root prefix is
// guaranteed to appear exactly once (compared case-insensitively).
// Normalizing an already-normalized path returns it unchanged.
func (n *Normalizer) Normalize(userPath string) (logical, physical string) {
	rel := n.Rel(userPath)
	if rel == "" {
		return n.rootName, n.rootDir
	}
	return n.rootName + "/" + rel, filepath.Join(n.rootDir, filepath.FromSlash(rel))
}

// Rel returns the path portion after the root prefix, slash-separated,
// with any repeated root prefixes stripped.
func (n *Normalizer) Rel(userPath string) string {
	p := strings.ReplaceAll(userPath, "\\", "/")
	p = strings.Trim(p, "/")
	for {
		remainder, ok := n.stripRoot(p)
		if !ok {
			break
		}
		p = remainder
	}
	parts := make([]string, 0, 8)
	for _, part := range strings.Split(p, "/") {
		// Parent traversal is dropped so no normalized path can escape
		// the asset root.
		if part == "" || part == "." || part == ".." {
			continue
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "/")
}

// Join normalizes the concatenation of path segments.
func (n *Normalizer) Join(segments ...string) (logical, physical string) {
	return n.Normalize(strings.Join(segments, "/"))
}

func (n *Normalizer) stripRoot(p string) (string, bool) {
	if strings.EqualFold(p, n.rootName) {
		return "", true
	}
	if len(p) > len(n.rootName)+1 &&
		strings.EqualFold(p[:len(n.rootName)], n.rootName) &&
		p[len(n.rootName)] == '/' {
		return p[len(n.rootName)+1:], true
	}
	return p, false
}
