package handlers

import (
	"context"
	"path"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/forgebridge/forgebridge/pkg/asset"
	"github.com/forgebridge/forgebridge/pkg/command"
	"github.com/forgebridge/forgebridge/pkg/payload"
)

// ViewTextAsset returns the content of a text asset, base64-encoding
// bodies above the transport threshold.
type ViewTextAsset struct {
	Assets asset.Store
}

func (h *ViewTextAsset) Name() string { return "view-text-asset" }

func (h *ViewTextAsset) Description() string {
	return "Read a text asset and return its content, encoded when large."
}

func (h *ViewTextAsset) Parameters() command.ParameterSchema {
	return command.ParameterSchema{
		Type: "object",
		Properties: map[string]command.PropertySchema{
			"path": {Type: "string", Description: "Asset path, with or without the root prefix"},
			"requireExists": {Type: "boolean", Default: true,
				Description: "Fail with NotFound when the asset is absent; false reports absence as success"},
		},
		Required: []string{"path"},
	}
}

func (h *ViewTextAsset) Execute(ctx context.Context, p command.Params) (map[string]any, error) {
	userPath, err := p.String("path")
	if err != nil {
		return nil, err
	}
	requireExists, err := p.OptionalBool("requireExists", true)
	if err != nil {
		return nil, err
	}
	if !h.Assets.Exists(userPath) {
		logical, _ := h.Assets.Normalize(userPath)
		if requireExists {
			return nil, command.Errorf(command.CodeNotFound, "asset not found: %s", logical)
		}
		return map[string]any{"path": logical, "exists": false}, nil
	}
	content, logical, err := h.Assets.Load(userPath)
	if err != nil {
		return nil, err
	}
	body, encoded := payload.EncodeIfLarge(content)
	return map[string]any{
		"path":           logical,
		"exists":         true,
		"content":        body,
		"contentEncoded": encoded,
	}, nil
}

// assetKind describes a creatable text-asset flavor.
type assetKind struct {
	extension     string
	defaultFolder string
	stub          func(name, namespace string) string
}

var assetKinds = map[string]assetKind{
	"script": {
		extension:     ".cs",
		defaultFolder: "Scripts",
		stub:          scriptStub,
	},
	"shader": {
		extension:     ".shader",
		defaultFolder: "Shaders",
		stub:          shaderStub,
	},
	"json": {
		extension: ".json",
		stub:      func(string, string) string { return "{}\n" },
	},
	"markdown": {
		extension: ".md",
		stub:      func(name, _ string) string { return "# " + name + "\n" },
	},
	"text": {
		extension: ".txt",
		stub:      func(string, string) string { return "" },
	},
}

func scriptStub(name, namespace string) string {
	var b strings.Builder
	b.WriteString("using UnityEngine;\n\n")
	indent := ""
	if namespace != "" {
		b.WriteString("namespace " + namespace + "\n{\n")
		indent = "    "
	}
	b.WriteString(indent + "public class " + name + " : MonoBehaviour\n")
	b.WriteString(indent + "{\n")
	b.WriteString(indent + "    void Start()\n" + indent + "    {\n" + indent + "    }\n\n")
	b.WriteString(indent + "    void Update()\n" + indent + "    {\n" + indent + "    }\n")
	b.WriteString(indent + "}\n")
	if namespace != "" {
		b.WriteString("}\n")
	}
	return b.String()
}

func shaderStub(name, _ string) string {
	return "Shader \"Custom/" + name + "\"\n{\n    SubShader\n    {\n    }\n}\n"
}

// CreateTextAsset writes a new text asset, generating a kind-appropriate
// stub when no content is supplied.
type CreateTextAsset struct {
	Assets asset.Store
}

func (h *CreateTextAsset) Name() string { return "create-text-asset" }

func (h *CreateTextAsset) Description() string {
	return "Create a text asset from explicit content or a generated stub."
}

func (h *CreateTextAsset) Parameters() command.ParameterSchema {
	return command.ParameterSchema{
		Type: "object",
		Properties: map[string]command.PropertySchema{
			"name": {Type: "string", Description: "Asset name without extension"},
			"kind": {Type: "string", Default: "script",
				Enum:        kindNames(),
				Description: "Asset flavor, selects extension and stub"},
			"folder":    {Type: "string", Description: "Target folder, defaults per kind"},
			"namespace": {Type: "string", Description: "Wrapping namespace for script stubs"},
			"content":   {Type: "string", Description: "Explicit content, replaces the stub"},
			"overwrite": {Type: "boolean", Default: false, Description: "Replace an existing asset"},
		},
		Required: []string{"name"},
	}
}

func kindNames() []string {
	return []string{"script", "shader", "json", "markdown", "text"}
}

func (h *CreateTextAsset) Execute(ctx context.Context, p command.Params) (map[string]any, error) {
	name, err := p.String("name")
	if err != nil {
		return nil, err
	}
	if err := validName(name); err != nil {
		return nil, err
	}
	kindName, err := p.OptionalString("kind", "script")
	if err != nil {
		return nil, err
	}
	kind, ok := assetKinds[strings.ToLower(kindName)]
	if !ok {
		return nil, command.Errorf(command.CodeTypeMismatch,
			"parameter %q must be one of %s", "kind", strings.Join(kindNames(), ", "))
	}
	folder, err := p.OptionalString("folder", kind.defaultFolder)
	if err != nil {
		return nil, err
	}
	namespace, err := p.OptionalString("namespace", "")
	if err != nil {
		return nil, err
	}
	if namespace != "" {
		for _, part := range strings.Split(namespace, ".") {
			if err := validName(part); err != nil {
				return nil, err
			}
		}
	}
	content, err := p.OptionalString("content", "")
	if err != nil {
		return nil, err
	}
	overwrite, err := p.OptionalBool("overwrite", false)
	if err != nil {
		return nil, err
	}
	if content == "" {
		content = kind.stub(name, namespace)
	}
	target := path.Join(folder, name+kind.extension)
	logical, err := h.Assets.Save(target, content, asset.SaveOptions{
		CreateDirs: true,
		Overwrite:  overwrite,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"path": logical, "kind": strings.ToLower(kindName)}, nil
}

// UpdateTextAsset replaces an asset's content and reports a unified diff
// of the change.
type UpdateTextAsset struct {
	Assets asset.Store
}

func (h *UpdateTextAsset) Name() string { return "update-text-asset" }

func (h *UpdateTextAsset) Description() string {
	return "Overwrite a text asset with new content, returning a diff preview."
}

func (h *UpdateTextAsset) Parameters() command.ParameterSchema {
	return command.ParameterSchema{
		Type: "object",
		Properties: map[string]command.PropertySchema{
			"path":           {Type: "string", Description: "Asset path"},
			"content":        {Type: "string", Description: "Replacement content"},
			"contentEncoded": {Type: "boolean", Default: false, Description: "Content is base64-encoded"},
			"createIfMissing": {Type: "boolean", Default: false,
				Description: "Create the asset instead of failing with NotFound"},
			"createFolderIfMissing": {Type: "boolean", Default: false,
				Description: "Create missing parent folders"},
		},
		Required: []string{"path", "content"},
	}
}

func (h *UpdateTextAsset) Execute(ctx context.Context, p command.Params) (map[string]any, error) {
	userPath, err := p.String("path")
	if err != nil {
		return nil, err
	}
	content, err := p.String("content")
	if err != nil {
		return nil, err
	}
	encoded, err := p.OptionalBool("contentEncoded", false)
	if err != nil {
		return nil, err
	}
	createIfMissing, err := p.OptionalBool("createIfMissing", false)
	if err != nil {
		return nil, err
	}
	createFolder, err := p.OptionalBool("createFolderIfMissing", false)
	if err != nil {
		return nil, err
	}
	content, err = payload.Decode(content, encoded)
	if err != nil {
		return nil, command.Errorf(command.CodeTypeMismatch,
			"parameter %q is not valid base64", "content").WithDetail("%v", err)
	}

	exists := h.Assets.Exists(userPath)
	if !exists && !createIfMissing {
		logical, _ := h.Assets.Normalize(userPath)
		return nil, command.Errorf(command.CodeNotFound, "asset not found: %s", logical)
	}
	previous := ""
	if exists {
		previous, _, err = h.Assets.Load(userPath)
		if err != nil {
			return nil, err
		}
	}
	logical, err := h.Assets.Save(userPath, content, asset.SaveOptions{
		CreateDirs: createFolder,
		Overwrite:  true,
	})
	if err != nil {
		return nil, err
	}
	data := map[string]any{"path": logical, "created": !exists}
	if exists && previous != content {
		diff, added, removed := unifiedDiff(logical, previous, content)
		data["diff"] = diff
		data["linesAdded"] = added
		data["linesRemoved"] = removed
	}
	return data, nil
}

func unifiedDiff(name, before, after string) (text string, added, removed int) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	})
	if err != nil {
		return "", 0, 0
	}
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return text, added, removed
}

// ListTextAssets enumerates text assets under a folder.
type ListTextAssets struct {
	Assets asset.Store
}

func (h *ListTextAssets) Name() string { return "list-text-assets" }

func (h *ListTextAssets) Description() string {
	return "List text assets under a folder, sorted by logical path."
}

func (h *ListTextAssets) Parameters() command.ParameterSchema {
	return command.ParameterSchema{
		Type: "object",
		Properties: map[string]command.PropertySchema{
			"folderPath": {Type: "string", Description: "Folder to list, whole project when empty"},
		},
	}
}

func (h *ListTextAssets) Execute(ctx context.Context, p command.Params) (map[string]any, error) {
	folder, err := p.OptionalString("folderPath", "")
	if err != nil {
		return nil, err
	}
	paths, err := h.Assets.List(folder)
	if err != nil {
		return nil, err
	}
	return map[string]any{"paths": paths, "count": len(paths)}, nil
}
