// Package material implements the render-pipeline-aware property
// resolution engine: backend classification, abstract-slot-to-concrete-
// key precedence tables, appearance templates, and material persistence.
package material

import (
	"strings"

	"github.com/forgebridge/forgebridge/pkg/command"
)

// Backend identifies the shading convention family a material uses. It
// is classified once per material and determines which concrete property
// names exist.
type Backend int

const (
	BackendLegacy Backend = iota
	BackendUniversal
	BackendHighDefinition
)

func (b Backend) String() string {
	switch b {
	case BackendUniversal:
		return "universal"
	case BackendHighDefinition:
		return "highdefinition"
	default:
		return "legacy"
	}
}

// ParseBackend parses a configured pipeline name.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy", "builtin", "standard":
		return BackendLegacy, nil
	case "universal", "urp":
		return BackendUniversal, nil
	case "highdefinition", "high-definition", "hdrp":
		return BackendHighDefinition, nil
	default:
		return BackendLegacy, command.Errorf(command.CodeUnknown, "unknown render pipeline: %s", s)
	}
}

// defaultShaders maps each backend to the lit shader new materials use.
var defaultShaders = map[Backend]string{
	BackendLegacy:         "Standard",
	BackendUniversal:      "Universal Render Pipeline/Lit",
	BackendHighDefinition: "HDRP/Lit",
}

// DefaultShader returns the lit shader name for a backend.
func DefaultShader(b Backend) string { return defaultShaders[b] }

// DetectBackend classifies a shader identity into its backend.
func DetectBackend(shaderName string) Backend {
	name := strings.ToLower(shaderName)
	switch {
	case strings.HasPrefix(name, "universal render pipeline/"), strings.HasPrefix(name, "urp/"):
		return BackendUniversal
	case strings.HasPrefix(name, "hdrp/"), strings.HasPrefix(name, "high definition render pipeline/"):
		return BackendHighDefinition
	default:
		return BackendLegacy
	}
}
