package handlers

import (
	"context"
	"path"
	"strings"

	"github.com/forgebridge/forgebridge/pkg/asset"
	"github.com/forgebridge/forgebridge/pkg/command"
	"github.com/forgebridge/forgebridge/pkg/material"
	"github.com/forgebridge/forgebridge/pkg/scene"
)

// SetMaterial assigns a material to a scene object. With a materialName
// the material is a shared asset under Materials/; without one the
// object gets a private instance material.
type SetMaterial struct {
	Graph     scene.Graph
	Materials *material.Store
	Backend   material.Backend
}

func (h *SetMaterial) Name() string { return "set-material" }

func (h *SetMaterial) Description() string {
	return "Assign a shared or instance material to a scene object, optionally tinted."
}

func (h *SetMaterial) Parameters() command.ParameterSchema {
	return command.ParameterSchema{
		Type: "object",
		Properties: map[string]command.PropertySchema{
			"targetName": {Type: "string", Description: "Scene object to assign to"},
			"materialName": {Type: "string",
				Description: "Shared material asset name; omit for a per-object instance"},
			"color": {Type: "array", Items: &command.PropertySchema{Type: "number"},
				Description: "RGB or RGBA base color, components 0.0-1.0"},
			"createIfMissing": {Type: "boolean", Default: true,
				Description: "Create the shared material when absent"},
		},
		Required: []string{"targetName"},
	}
}

func (h *SetMaterial) Execute(ctx context.Context, p command.Params) (map[string]any, error) {
	targetName, err := p.String("targetName")
	if err != nil {
		return nil, err
	}
	materialName, err := p.OptionalString("materialName", "")
	if err != nil {
		return nil, err
	}
	color, hasColor, err := p.OptionalColor("color")
	if err != nil {
		return nil, err
	}
	createIfMissing, err := p.OptionalBool("createIfMissing", true)
	if err != nil {
		return nil, err
	}
	obj, ok := h.Graph.Find(targetName)
	if !ok {
		return nil, command.Errorf(command.CodeNotFound, "object not found: %s", targetName)
	}

	if materialName == "" {
		// Instance material: lives on the object, never persisted.
		name := obj.Name + "_Material"
		m := obj.InstanceMaterial
		if m == nil || m.Name != name {
			m = material.New(name, h.Backend)
		}
		if hasColor {
			if key, ok := material.ResolveProperty(material.PropColor, m.Backend(), m.Capabilities()); ok {
				m.SetColor(key, color)
			}
		}
		obj.MaterialName = name
		obj.MaterialPath = ""
		obj.InstanceMaterial = m
		return map[string]any{"targetName": obj.Name, "materialName": name, "shared": false}, nil
	}

	if err := validName(materialName); err != nil {
		return nil, err
	}
	assetPath := path.Join("Materials", materialName)
	var m *material.Material
	switch {
	case h.Materials.Exists(assetPath):
		m, _, err = h.Materials.Load(assetPath)
		if err != nil {
			return nil, err
		}
	case createIfMissing:
		m = material.New(materialName, h.Backend)
	default:
		return nil, command.Errorf(command.CodeNotFound, "material not found: %s", materialName)
	}
	if hasColor {
		if key, ok := material.ResolveProperty(material.PropColor, m.Backend(), m.Capabilities()); ok {
			m.SetColor(key, color)
		}
	}
	logical, err := h.Materials.Save(assetPath, m)
	if err != nil {
		return nil, err
	}
	obj.MaterialName = materialName
	obj.MaterialPath = logical
	obj.InstanceMaterial = nil
	return map[string]any{
		"targetName":   obj.Name,
		"materialName": materialName,
		"path":         logical,
		"shared":       true,
	}, nil
}

// SetMaterialProperties writes abstract scalar and color properties onto
// a material asset. Properties the material's pipeline cannot express
// are skipped and reported, not failed.
type SetMaterialProperties struct {
	Materials *material.Store
}

func (h *SetMaterialProperties) Name() string { return "set-material-properties" }

func (h *SetMaterialProperties) Description() string {
	return "Write standard lit properties onto a material, resolving per-pipeline keys."
}

func (h *SetMaterialProperties) Parameters() command.ParameterSchema {
	num := func(desc string) command.PropertySchema {
		return command.PropertySchema{Type: "number", Description: desc}
	}
	color := func(desc string) command.PropertySchema {
		return command.PropertySchema{Type: "array",
			Items: &command.PropertySchema{Type: "number"}, Description: desc}
	}
	return command.ParameterSchema{
		Type: "object",
		Properties: map[string]command.PropertySchema{
			"materialPath":      {Type: "string", Description: "Material asset path"},
			"color":             color("Base color, RGB or RGBA 0.0-1.0"),
			"metallic":          num("Metallic workflow value, 0.0-1.0"),
			"smoothness":        num("Surface smoothness, 0.0-1.0"),
			"normalScale":       num("Normal map strength"),
			"occlusionStrength": num("Ambient occlusion strength"),
			"heightScale":       num("Height/parallax amount"),
			"emissionColor":     color("Emission color, RGB or RGBA 0.0-1.0"),
			"emissionIntensity": num("Emission multiplier; folded into the color off HD"),
		},
		Required: []string{"materialPath"},
	}
}

// scalarProps are the pass-through numeric parameters, in report order.
var scalarProps = []string{
	material.PropMetallic,
	material.PropSmoothness,
	material.PropNormalScale,
	material.PropOcclusionStrength,
	material.PropHeightScale,
}

func (h *SetMaterialProperties) Execute(ctx context.Context, p command.Params) (map[string]any, error) {
	materialPath, err := p.String("materialPath")
	if err != nil {
		return nil, err
	}
	baseColor, hasBaseColor, err := p.OptionalColor("color")
	if err != nil {
		return nil, err
	}
	scalars := make(map[string]float64, len(scalarProps))
	for _, name := range scalarProps {
		v, present, err := p.OptionalFloat(name)
		if err != nil {
			return nil, err
		}
		if present {
			scalars[name] = v
		}
	}
	emissionColor, hasEmissionColor, err := p.OptionalColor("emissionColor")
	if err != nil {
		return nil, err
	}
	intensity, hasIntensity, err := p.OptionalFloat("emissionIntensity")
	if err != nil {
		return nil, err
	}

	m, logical, err := h.Materials.Load(materialPath)
	if err != nil {
		return nil, err
	}
	backend, caps := m.Backend(), m.Capabilities()

	var applied, skipped []string
	if hasBaseColor {
		if key, ok := material.ResolveProperty(material.PropColor, backend, caps); ok {
			m.SetColor(key, baseColor)
			applied = append(applied, material.PropColor)
		} else {
			skipped = append(skipped, material.PropColor)
		}
	}
	for _, name := range scalarProps {
		v, present := scalars[name]
		if !present {
			continue
		}
		if key, ok := material.ResolveProperty(name, backend, caps); ok {
			m.SetFloat(key, v)
			applied = append(applied, name)
		} else {
			skipped = append(skipped, name)
		}
	}

	// Emission intensity is a real property only on HD; elsewhere it
	// scales into the emission color so the visual result matches.
	intensityKey, intensityNative := material.ResolveProperty(material.PropEmissionIntensity, backend, caps)
	if hasEmissionColor {
		c := append([]float64(nil), emissionColor...)
		if hasIntensity && !intensityNative {
			for i := 0; i < len(c) && i < 3; i++ {
				c[i] *= intensity
			}
		}
		if key, ok := material.ResolveProperty(material.PropEmissionColor, backend, caps); ok {
			m.SetColor(key, c)
			applied = append(applied, material.PropEmissionColor)
		} else {
			skipped = append(skipped, material.PropEmissionColor)
		}
	}
	if hasIntensity {
		switch {
		case intensityNative:
			m.SetFloat(intensityKey, intensity)
			applied = append(applied, material.PropEmissionIntensity)
		case hasEmissionColor:
			applied = append(applied, material.PropEmissionIntensity)
		default:
			skipped = append(skipped, material.PropEmissionIntensity)
		}
	}

	if _, err := h.Materials.Save(materialPath, m); err != nil {
		return nil, err
	}
	return map[string]any{
		"materialName": m.Name,
		"path":         logical,
		"applied":      applied,
		"skipped":      skipped,
	}, nil
}

// SetMaterialTexture binds a texture asset to an abstract material slot.
// Unlike scalar properties, an unresolvable slot is a hard failure: the
// caller named a slot this material cannot accept.
type SetMaterialTexture struct {
	Materials *material.Store
	Assets    asset.Store
}

func (h *SetMaterialTexture) Name() string { return "set-material-texture" }

func (h *SetMaterialTexture) Description() string {
	return "Assign a texture to a material slot, resolving the per-pipeline property key."
}

func (h *SetMaterialTexture) Parameters() command.ParameterSchema {
	return command.ParameterSchema{
		Type: "object",
		Properties: map[string]command.PropertySchema{
			"materialPath": {Type: "string", Description: "Material asset path"},
			"slotType": {Type: "string",
				Enum:        []string{"albedo", "normal", "metallic", "occlusion", "emission", "height"},
				Description: "Abstract texture slot"},
			"texturePath": {Type: "string", Description: "Texture asset path"},
			"tiling": {Type: "array", Items: &command.PropertySchema{Type: "number"},
				Description: "UV tiling, two components"},
			"offset": {Type: "array", Items: &command.PropertySchema{Type: "number"},
				Description: "UV offset, two components"},
		},
		Required: []string{"materialPath", "slotType", "texturePath"},
	}
}

func (h *SetMaterialTexture) Execute(ctx context.Context, p command.Params) (map[string]any, error) {
	materialPath, err := p.String("materialPath")
	if err != nil {
		return nil, err
	}
	slotType, err := p.String("slotType")
	if err != nil {
		return nil, err
	}
	texturePath, err := p.String("texturePath")
	if err != nil {
		return nil, err
	}
	tiling, _, err := p.OptionalVec2("tiling")
	if err != nil {
		return nil, err
	}
	offset, _, err := p.OptionalVec2("offset")
	if err != nil {
		return nil, err
	}
	slot, ok := material.ParseSlot(slotType)
	if !ok {
		return nil, command.Errorf(command.CodeUnsupportedSlot, "unknown texture slot: %s", slotType)
	}

	m, logical, err := h.Materials.Load(materialPath)
	if err != nil {
		return nil, err
	}
	if !h.Assets.Exists(texturePath) {
		texLogical, _ := h.Assets.Normalize(texturePath)
		return nil, command.Errorf(command.CodeNotFound, "texture not found: %s", texLogical)
	}
	key, ok := material.ResolveTexture(slot, m.Backend(), m.Capabilities())
	if !ok {
		return nil, command.Errorf(command.CodeUnsupportedSlot,
			"shader %s has no %s texture slot", m.Shader, slot)
	}
	texLogical, _ := h.Assets.Normalize(texturePath)
	m.SetTexture(key, material.TextureRef{Path: texLogical, Tiling: tiling, Offset: offset})
	if _, err := h.Materials.Save(materialPath, m); err != nil {
		return nil, err
	}
	base := path.Base(texLogical)
	return map[string]any{
		"materialName": m.Name,
		"path":         logical,
		"property":     key,
		"textureName":  strings.TrimSuffix(base, path.Ext(base)),
	}, nil
}

// CreateMaterialFromTemplate creates a new material asset from a named
// surface preset, resolved for the project's render pipeline.
type CreateMaterialFromTemplate struct {
	Materials *material.Store
	Backend   material.Backend
}

func (h *CreateMaterialFromTemplate) Name() string { return "create-material-from-template" }

func (h *CreateMaterialFromTemplate) Description() string {
	return "Create a material asset from a surface preset such as metal or glass."
}

func (h *CreateMaterialFromTemplate) Parameters() command.ParameterSchema {
	return command.ParameterSchema{
		Type: "object",
		Properties: map[string]command.PropertySchema{
			"materialName": {Type: "string", Description: "Name of the new material asset"},
			"templateName": {Type: "string", Enum: material.TemplateNames(),
				Description: "Surface preset to instantiate"},
			"savePath": {Type: "string", Default: "Materials",
				Description: "Folder for the new asset"},
		},
		Required: []string{"materialName", "templateName"},
	}
}

func (h *CreateMaterialFromTemplate) Execute(ctx context.Context, p command.Params) (map[string]any, error) {
	materialName, err := p.String("materialName")
	if err != nil {
		return nil, err
	}
	templateName, err := p.String("templateName")
	if err != nil {
		return nil, err
	}
	savePath, err := p.OptionalString("savePath", "Materials")
	if err != nil {
		return nil, err
	}
	if err := validName(materialName); err != nil {
		return nil, err
	}
	templateName = strings.ToLower(strings.TrimSpace(templateName))
	writes, err := material.Instantiate(templateName, h.Backend)
	if err != nil {
		return nil, err
	}
	assetPath := path.Join(savePath, materialName)
	if h.Materials.Exists(assetPath) {
		return nil, command.Errorf(command.CodeAlreadyExists, "material already exists: %s", assetPath)
	}
	m := material.New(materialName, h.Backend)
	material.Apply(m, writes)
	logical, err := h.Materials.Save(assetPath, m)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"materialName": materialName,
		"path":         logical,
		"template":     templateName,
		"shader":       m.Shader,
	}, nil
}
