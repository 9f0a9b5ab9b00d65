package material

import (
	"encoding/json"
	"strings"

	"github.com/forgebridge/forgebridge/pkg/asset"
	"github.com/forgebridge/forgebridge/pkg/command"
)

// Extension is the material asset suffix.
const Extension = ".mat"

// Store persists materials as JSON documents in the asset store.
type Store struct {
	assets asset.Store
}

// NewStore wraps the asset store for material persistence.
func NewStore(assets asset.Store) *Store {
	return &Store{assets: assets}
}

// WithExtension appends the material suffix when absent.
func WithExtension(path string) string {
	if strings.HasSuffix(strings.ToLower(path), Extension) {
		return path
	}
	return path + Extension
}

// Exists reports whether a material asset is present.
func (s *Store) Exists(path string) bool {
	return s.assets.Exists(WithExtension(path))
}

// Load reads and decodes a material, failing with NotFound when absent.
func (s *Store) Load(path string) (*Material, string, error) {
	content, logical, err := s.assets.Load(WithExtension(path))
	if err != nil {
		return nil, logical, err
	}
	var m Material
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return nil, logical, command.Errorf(command.CodeUnknown,
			"material asset is corrupt: %s", logical).WithDetail("%v", err)
	}
	return &m, logical, nil
}

// Save encodes and writes a material, creating parent folders.
func (s *Store) Save(path string, m *Material) (string, error) {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", command.Errorf(command.CodeUnknown, "encoding material %s", m.Name).
			WithDetail("%v", err)
	}
	return s.assets.Save(WithExtension(path), string(raw), asset.SaveOptions{
		CreateDirs: true,
		Overwrite:  true,
	})
}
