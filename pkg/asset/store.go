// Package asset provides the persistence collaborator for path-addressed
// project assets. Handlers depend on the Store interface so the command
// core stays testable without a live editor.
package asset

import "github.com/forgebridge/forgebridge/pkg/assetpath"

// SaveOptions controls how Save treats missing targets.
type SaveOptions struct {
	// CreateDirs creates missing parent directories. When false a
	// missing directory fails with DirectoryCreateFailed.
	CreateDirs bool
	// Overwrite allows replacing an existing asset. When false a
	// collision fails with AlreadyExists.
	Overwrite bool
}

// Store is the asset persistence boundary. All paths are accepted in any
// slash style; implementations normalize before touching storage and
// report results in logical form.
type Store interface {
	// Normalize exposes the store's path canonicalization.
	Normalize(userPath string) (logical, physical string)
	// Exists reports whether an asset is present.
	Exists(userPath string) bool
	// Load returns an asset's content, failing with NotFound when the
	// asset is absent.
	Load(userPath string) (content string, logical string, err error)
	// Save writes an asset, failing with AlreadyExists or
	// DirectoryCreateFailed per SaveOptions.
	Save(userPath, content string, opts SaveOptions) (logical string, err error)
	// List returns the logical paths of text assets under folder
	// (the whole root when folder is empty), sorted.
	List(folder string) ([]string, error)
}

// Normalizer is implemented by stores that expose their path rules.
type Normalizer interface {
	PathRules() *assetpath.Normalizer
}
