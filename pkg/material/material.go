package material

// CapabilitySet is the set of concrete property keys a material's shader
// declares. Resolution tries candidate keys against this set in order.
type CapabilitySet map[string]struct{}

// Has reports whether a concrete property key exists.
func (c CapabilitySet) Has(key string) bool {
	_, ok := c[key]
	return ok
}

func capabilitySet(keys ...string) CapabilitySet {
	set := make(CapabilitySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// shaderCapabilities declares the property surface of the known lit
// shaders. Unknown shaders fall back to the declared set of their
// detected backend's lit shader.
var shaderCapabilities = map[string]CapabilitySet{
	"Standard": capabilitySet(
		"_Color", "_MainTex", "_Metallic", "_Glossiness", "_BumpMap", "_BumpScale",
		"_MetallicGlossMap", "_OcclusionMap", "_OcclusionStrength", "_ParallaxMap",
		"_Parallax", "_EmissionMap", "_EmissionColor",
		"_Mode", "_SrcBlend", "_DstBlend", "_ZWrite",
	),
	"Universal Render Pipeline/Lit": capabilitySet(
		"_BaseColor", "_BaseMap", "_Metallic", "_Smoothness", "_BumpMap", "_BumpScale",
		"_MetallicGlossMap", "_OcclusionMap", "_OcclusionStrength", "_ParallaxMap",
		"_Parallax", "_EmissionMap", "_EmissionColor",
		"_Surface", "_Blend", "_ZWrite",
	),
	"HDRP/Lit": capabilitySet(
		"_BaseColor", "_BaseColorMap", "_Metallic", "_Smoothness", "_NormalMap",
		"_NormalScale", "_MaskMap", "_HeightMap", "_HeightAmount",
		"_EmissiveColorMap", "_EmissiveColor", "_EmissiveIntensity",
		"_SurfaceType", "_BlendMode",
	),
}

// TextureRef records a texture assignment on a material.
type TextureRef struct {
	Path   string    `json:"path"`
	Tiling []float64 `json:"tiling,omitempty"`
	Offset []float64 `json:"offset,omitempty"`
}

// Material is a persisted material asset: a shader identity plus the
// property values written so far.
type Material struct {
	Name     string                `json:"name"`
	Shader   string                `json:"shader"`
	Colors   map[string][]float64  `json:"colors,omitempty"`
	Floats   map[string]float64    `json:"floats,omitempty"`
	Textures map[string]TextureRef `json:"textures,omitempty"`
}

// New creates a material on the backend's default lit shader.
func New(name string, backend Backend) *Material {
	return &Material{Name: name, Shader: DefaultShader(backend)}
}

// Backend classifies the material's shader. Read-only for the duration
// of a command.
func (m *Material) Backend() Backend { return DetectBackend(m.Shader) }

// Capabilities returns the material's declared property set.
func (m *Material) Capabilities() CapabilitySet {
	if caps, ok := shaderCapabilities[m.Shader]; ok {
		return caps
	}
	return shaderCapabilities[DefaultShader(m.Backend())]
}

// SetColor writes a color property.
func (m *Material) SetColor(key string, value []float64) {
	if m.Colors == nil {
		m.Colors = make(map[string][]float64)
	}
	c := make([]float64, len(value))
	copy(c, value)
	m.Colors[key] = c
}

// SetFloat writes a scalar property.
func (m *Material) SetFloat(key string, value float64) {
	if m.Floats == nil {
		m.Floats = make(map[string]float64)
	}
	m.Floats[key] = value
}

// SetTexture writes a texture property.
func (m *Material) SetTexture(key string, ref TextureRef) {
	if m.Textures == nil {
		m.Textures = make(map[string]TextureRef)
	}
	m.Textures[key] = ref
}
