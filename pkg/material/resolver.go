package material

import "strings"

// Slot is a pipeline-independent name for a material texture input.
type Slot string

const (
	SlotAlbedo    Slot = "albedo"
	SlotNormal    Slot = "normal"
	SlotMetallic  Slot = "metallic"
	SlotOcclusion Slot = "occlusion"
	SlotEmission  Slot = "emission"
	SlotHeight    Slot = "height"
)

var slotAliases = map[string]Slot{
	"albedo":    SlotAlbedo,
	"base":      SlotAlbedo,
	"diffuse":   SlotAlbedo,
	"normal":    SlotNormal,
	"bump":      SlotNormal,
	"metallic":  SlotMetallic,
	"occlusion": SlotOcclusion,
	"ao":        SlotOcclusion,
	"emission":  SlotEmission,
	"emissive":  SlotEmission,
	"height":    SlotHeight,
	"parallax":  SlotHeight,
}

// ParseSlot maps a user-supplied slot name onto a Slot.
func ParseSlot(s string) (Slot, bool) {
	slot, ok := slotAliases[strings.ToLower(strings.TrimSpace(s))]
	return slot, ok
}

// textureCandidates is the authoritative slot precedence table: for each
// backend, the ordered concrete keys tried per abstract texture slot.
// First key present in the material's capability set wins.
var textureCandidates = map[Backend]map[Slot][]string{
	BackendLegacy: {
		SlotAlbedo:    {"_MainTex"},
		SlotNormal:    {"_BumpMap"},
		SlotMetallic:  {"_MetallicGlossMap"},
		SlotOcclusion: {"_OcclusionMap"},
		SlotEmission:  {"_EmissionMap"},
		SlotHeight:    {"_ParallaxMap"},
	},
	BackendUniversal: {
		SlotAlbedo:    {"_BaseMap", "_MainTex"},
		SlotNormal:    {"_BumpMap"},
		SlotMetallic:  {"_MetallicGlossMap"},
		SlotOcclusion: {"_OcclusionMap"},
		SlotEmission:  {"_EmissionMap"},
		SlotHeight:    {"_ParallaxMap"},
	},
	BackendHighDefinition: {
		SlotAlbedo:    {"_BaseColorMap", "_MainTex"},
		SlotNormal:    {"_NormalMap", "_BumpMap"},
		SlotMetallic:  {"_MaskMap", "_MetallicGlossMap"},
		SlotOcclusion: {"_MaskMap", "_OcclusionMap"},
		SlotEmission:  {"_EmissiveColorMap", "_EmissionMap"},
		SlotHeight:    {"_HeightMap", "_ParallaxMap"},
	},
}

// ResolveTexture returns the concrete texture property key for an
// abstract slot, or false when no candidate is present in the capability
// set. Callers must surface that as UnsupportedSlot; guessing a property
// name is incorrect behavior.
func ResolveTexture(slot Slot, backend Backend, caps CapabilitySet) (string, bool) {
	for _, key := range textureCandidates[backend][slot] {
		if caps.Has(key) {
			return key, true
		}
	}
	return "", false
}

// Abstract scalar/color property names used by set-material-properties
// and the template engine.
const (
	PropColor             = "color"
	PropMetallic          = "metallic"
	PropSmoothness        = "smoothness"
	PropNormalScale       = "normalScale"
	PropOcclusionStrength = "occlusionStrength"
	PropHeightScale       = "heightScale"
	PropEmissionColor     = "emissionColor"
	PropEmissionIntensity = "emissionIntensity"
)

// propertyCandidates maps abstract scalar/color names to ordered
// concrete keys per backend.
var propertyCandidates = map[Backend]map[string][]string{
	BackendLegacy: {
		PropColor:             {"_Color"},
		PropMetallic:          {"_Metallic"},
		PropSmoothness:        {"_Glossiness"},
		PropNormalScale:       {"_BumpScale"},
		PropOcclusionStrength: {"_OcclusionStrength"},
		PropHeightScale:       {"_Parallax"},
		PropEmissionColor:     {"_EmissionColor"},
	},
	BackendUniversal: {
		PropColor:             {"_BaseColor", "_Color"},
		PropMetallic:          {"_Metallic"},
		PropSmoothness:        {"_Smoothness", "_Glossiness"},
		PropNormalScale:       {"_BumpScale"},
		PropOcclusionStrength: {"_OcclusionStrength"},
		PropHeightScale:       {"_Parallax"},
		PropEmissionColor:     {"_EmissionColor"},
	},
	BackendHighDefinition: {
		PropColor:             {"_BaseColor", "_Color"},
		PropMetallic:          {"_Metallic"},
		PropSmoothness:        {"_Smoothness"},
		PropNormalScale:       {"_NormalScale", "_BumpScale"},
		PropOcclusionStrength: {"_OcclusionStrength"},
		PropHeightScale:       {"_HeightAmount", "_Parallax"},
		PropEmissionColor:     {"_EmissiveColor", "_EmissionColor"},
		PropEmissionIntensity: {"_EmissiveIntensity"},
	},
}

// ResolveProperty returns the concrete key for an abstract scalar/color
// property, or false when the backend has no matching capability.
func ResolveProperty(name string, backend Backend, caps CapabilitySet) (string, bool) {
	for _, key := range propertyCandidates[backend][name] {
		if caps.Has(key) {
			return key, true
		}
	}
	return "", false
}
