package asset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/forgebridge/forgebridge/pkg/assetpath"
	"github.com/forgebridge/forgebridge/pkg/command"
)

// textExtensions lists the suffixes List treats as text assets.
var textExtensions = map[string]bool{
	".cs":     true,
	".lua":    true,
	".txt":    true,
	".json":   true,
	".md":     true,
	".xml":    true,
	".yaml":   true,
	".yml":    true,
	".csv":    true,
	".shader": true,
	".mat":    true,
}

// FSStore persists assets under a filesystem asset root.
type FSStore struct {
	paths *assetpath.Normalizer
}

// NewFSStore creates a store rooted at rootDir, addressed logically by
// rootName (e.g. "Assets").
func NewFSStore(rootName, rootDir string) *FSStore {
	return &FSStore{paths: assetpath.New(rootName, rootDir)}
}

// PathRules returns the store's path normalizer.
func (s *FSStore) PathRules() *assetpath.Normalizer { return s.paths }

// Normalize canonicalizes a user path.
func (s *FSStore) Normalize(userPath string) (string, string) {
	return s.paths.Normalize(userPath)
}

// Exists reports whether a regular file backs the asset path.
func (s *FSStore) Exists(userPath string) bool {
	_, physical := s.paths.Normalize(userPath)
	info, err := os.Stat(physical)
	return err == nil && info.Mode().IsRegular()
}

// Load reads an asset's content.
func (s *FSStore) Load(userPath string) (string, string, error) {
	logical, physical := s.paths.Normalize(userPath)
	raw, err := os.ReadFile(physical)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", logical, command.Errorf(command.CodeNotFound, "asset not found: %s", logical)
		}
		return "", logical, command.Errorf(command.CodeUnknown, "reading asset %s", logical).
			WithDetail("%v", err)
	}
	return string(raw), logical, nil
}

// Save writes an asset. Collisions and directory-creation failures are
// classified immediately so callers can report which step failed.
func (s *FSStore) Save(userPath, content string, opts SaveOptions) (string, error) {
	logical, physical := s.paths.Normalize(userPath)
	if !opts.Overwrite {
		if _, err := os.Stat(physical); err == nil {
			return logical, command.Errorf(command.CodeAlreadyExists,
				"asset already exists: %s", logical)
		}
	}
	dir := filepath.Dir(physical)
	if _, err := os.Stat(dir); err != nil {
		if !opts.CreateDirs {
			return logical, command.Errorf(command.CodeDirectoryCreateFailed,
				"directory does not exist: %s", filepath.ToSlash(dir))
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return logical, command.Errorf(command.CodeDirectoryCreateFailed,
				"creating directory for %s", logical).WithDetail("%v", err)
		}
	}
	if err := os.WriteFile(physical, []byte(content), 0o644); err != nil {
		return logical, command.Errorf(command.CodeUnknown, "writing asset %s", logical).
			WithDetail("%v", err)
	}
	return logical, nil
}

// List walks the asset root collecting text assets, logical-sorted.
func (s *FSStore) List(folder string) ([]string, error) {
	logical, physical := s.paths.Normalize(folder)
	info, err := os.Stat(physical)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, command.Errorf(command.CodeNotFound, "folder not found: %s", logical)
		}
		return nil, command.Errorf(command.CodeUnknown, "listing %s", logical).WithDetail("%v", err)
	}
	if !info.IsDir() {
		return nil, command.Errorf(command.CodeNotFound, "not a folder: %s", logical)
	}
	var out []string
	err = filepath.WalkDir(physical, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !textExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(s.paths.RootDir(), path)
		if err != nil {
			return err
		}
		out = append(out, s.paths.RootName()+"/"+filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, command.Errorf(command.CodeUnknown, "walking %s", logical).WithDetail("%v", err)
	}
	sort.Strings(out)
	return out, nil
}
