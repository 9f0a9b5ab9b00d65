// Package handlers implements the bridge's command surface: text-asset
// management, behavior attachment, and material editing. Every handler
// validates its full parameter bag before touching the asset store or
// object graph so invalid input never leaves partial side effects.
package handlers

import (
	"regexp"

	"github.com/forgebridge/forgebridge/pkg/asset"
	"github.com/forgebridge/forgebridge/pkg/command"
	"github.com/forgebridge/forgebridge/pkg/material"
	"github.com/forgebridge/forgebridge/pkg/scene"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validName rejects names that cannot serve as asset or type
// identifiers (e.g. "1Bad").
func validName(name string) error {
	if !identifierPattern.MatchString(name) {
		return command.Errorf(command.CodeInvalidName,
			"name %q must start with a letter or underscore and contain only letters, digits, and underscores", name)
	}
	return nil
}

// Deps are the collaborators the command surface operates on.
type Deps struct {
	Assets    asset.Store
	Graph     scene.Graph
	Behaviors *scene.BehaviorRegistry
	Materials *material.Store
	// Backend is the project's render pipeline, used for every newly
	// created material.
	Backend material.Backend
}

// Register wires all bridge commands into the registry.
func Register(r *command.Registry, deps Deps) {
	r.Register(&ViewTextAsset{Assets: deps.Assets})
	r.Register(&CreateTextAsset{Assets: deps.Assets})
	r.Register(&UpdateTextAsset{Assets: deps.Assets})
	r.Register(&ListTextAssets{Assets: deps.Assets})
	r.Register(&AttachBehavior{Graph: deps.Graph, Behaviors: deps.Behaviors, Assets: deps.Assets})
	r.Register(&SetMaterial{Graph: deps.Graph, Materials: deps.Materials, Backend: deps.Backend})
	r.Register(&SetMaterialProperties{Materials: deps.Materials})
	r.Register(&SetMaterialTexture{Materials: deps.Materials, Assets: deps.Assets})
	r.Register(&CreateMaterialFromTemplate{Materials: deps.Materials, Backend: deps.Backend})
}
