package material

import (
	"sort"

	"github.com/forgebridge/forgebridge/pkg/command"
)

// PropertyWrite is one resolved write produced by template
// instantiation. Writes apply in order; later writes for the same key
// win, which glass relies on to override its blend mode after the base
// appearance.
type PropertyWrite struct {
	Key     string
	IsColor bool
	Color   []float64
	Value   float64
}

// templateWrite is a template entry before resolution: either an
// abstract property (resolved through the property tables) or a raw
// backend-specific key sequence.
type templateWrite struct {
	abstract string
	isColor  bool
	color    []float64
	value    float64
}

type template struct {
	writes []templateWrite
	// transparent templates append the backend's blend-mode override
	// sequence after the base writes.
	transparent bool
}

func colorWrite(name string, c ...float64) templateWrite {
	return templateWrite{abstract: name, isColor: true, color: c}
}

func floatWrite(name string, v float64) templateWrite {
	return templateWrite{abstract: name, value: v}
}

// templates is the static preset table. Order within each preset is
// load-bearing.
var templates = map[string]template{
	"metal": {writes: []templateWrite{
		colorWrite(PropColor, 0.75, 0.75, 0.78, 1.0),
		floatWrite(PropMetallic, 1.0),
		floatWrite(PropSmoothness, 0.85),
	}},
	"plastic": {writes: []templateWrite{
		colorWrite(PropColor, 0.9, 0.9, 0.9, 1.0),
		floatWrite(PropMetallic, 0.0),
		floatWrite(PropSmoothness, 0.6),
	}},
	"wood": {writes: []templateWrite{
		colorWrite(PropColor, 0.52, 0.37, 0.26, 1.0),
		floatWrite(PropMetallic, 0.0),
		floatWrite(PropSmoothness, 0.3),
	}},
	"glass": {writes: []templateWrite{
		colorWrite(PropColor, 0.85, 0.92, 0.95, 0.25),
		floatWrite(PropMetallic, 0.0),
		floatWrite(PropSmoothness, 0.95),
	}, transparent: true},
	"emissive": {writes: []templateWrite{
		colorWrite(PropColor, 0.1, 0.1, 0.1, 1.0),
		colorWrite(PropEmissionColor, 1.0, 1.0, 1.0, 1.0),
		floatWrite(PropEmissionIntensity, 2.0),
	}},
	"fabric": {writes: []templateWrite{
		colorWrite(PropColor, 0.6, 0.55, 0.5, 1.0),
		floatWrite(PropMetallic, 0.0),
		floatWrite(PropSmoothness, 0.15),
	}},
	"skin": {writes: []templateWrite{
		colorWrite(PropColor, 0.8, 0.62, 0.52, 1.0),
		floatWrite(PropMetallic, 0.0),
		floatWrite(PropSmoothness, 0.35),
	}},
}

// blendOverrides is the per-backend transparent surface setup, applied
// after the base writes so it wins over anything a preset set earlier.
var blendOverrides = map[Backend][]PropertyWrite{
	BackendLegacy: {
		{Key: "_Mode", Value: 3},
		{Key: "_SrcBlend", Value: 5},
		{Key: "_DstBlend", Value: 10},
		{Key: "_ZWrite", Value: 0},
	},
	BackendUniversal: {
		{Key: "_Surface", Value: 1},
		{Key: "_Blend", Value: 0},
		{Key: "_ZWrite", Value: 0},
	},
	BackendHighDefinition: {
		{Key: "_SurfaceType", Value: 1},
		{Key: "_BlendMode", Value: 0},
	},
}

// TemplateNames returns the registered preset names, sorted.
func TemplateNames() []string {
	out := make([]string, 0, len(templates))
	for name := range templates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Instantiate resolves a named preset into concrete property writes for
// the given backend. Abstract properties without a concrete key on the
// backend are skipped; the blend-mode override sequence of transparent
// presets is always emitted after the base writes.
func Instantiate(templateName string, backend Backend) ([]PropertyWrite, error) {
	tpl, ok := templates[templateName]
	if !ok {
		return nil, command.Errorf(command.CodeUnknownTemplate,
			"unknown template: %s", templateName)
	}
	caps := shaderCapabilities[DefaultShader(backend)]
	out := make([]PropertyWrite, 0, len(tpl.writes)+4)
	for _, w := range tpl.writes {
		key, ok := ResolveProperty(w.abstract, backend, caps)
		if !ok {
			continue
		}
		if w.isColor {
			out = append(out, PropertyWrite{Key: key, IsColor: true, Color: w.color})
		} else {
			out = append(out, PropertyWrite{Key: key, Value: w.value})
		}
	}
	if tpl.transparent {
		out = append(out, blendOverrides[backend]...)
	}
	return out, nil
}

// Apply writes an instantiated sequence onto a material in order.
func Apply(m *Material, writes []PropertyWrite) {
	for _, w := range writes {
		if w.IsColor {
			m.SetColor(w.Key, w.Color)
		} else {
			m.SetFloat(w.Key, w.Value)
		}
	}
}
