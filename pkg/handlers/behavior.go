package handlers

import (
	"context"

	"github.com/forgebridge/forgebridge/pkg/asset"
	"github.com/forgebridge/forgebridge/pkg/command"
	"github.com/forgebridge/forgebridge/pkg/scene"
)

// AttachBehavior adds a component to a scene object. Built-in behaviors
// resolve through the registry; scripted ones require an existing script
// asset.
type AttachBehavior struct {
	Graph     scene.Graph
	Behaviors *scene.BehaviorRegistry
	Assets    asset.Store
}

func (h *AttachBehavior) Name() string { return "attach-behavior" }

func (h *AttachBehavior) Description() string {
	return "Attach a built-in or scripted behavior component to a scene object."
}

func (h *AttachBehavior) Parameters() command.ParameterSchema {
	return command.ParameterSchema{
		Type: "object",
		Properties: map[string]command.PropertySchema{
			"targetName":   {Type: "string", Description: "Scene object to attach to"},
			"behaviorName": {Type: "string", Description: "Component type name"},
			"behaviorPath": {Type: "string",
				Description: "Script asset backing the behavior when it is not built in"},
		},
		Required: []string{"targetName", "behaviorName"},
	}
}

func (h *AttachBehavior) Execute(ctx context.Context, p command.Params) (map[string]any, error) {
	targetName, err := p.String("targetName")
	if err != nil {
		return nil, err
	}
	behaviorName, err := p.String("behaviorName")
	if err != nil {
		return nil, err
	}
	behaviorPath, err := p.OptionalString("behaviorPath", "")
	if err != nil {
		return nil, err
	}
	if err := validName(behaviorName); err != nil {
		return nil, err
	}
	obj, ok := h.Graph.Find(targetName)
	if !ok {
		return nil, command.Errorf(command.CodeNotFound, "object not found: %s", targetName)
	}

	componentName := ""
	switch behavior, ok := h.Behaviors.Resolve(behaviorName); {
	case ok:
		componentName = behavior.ComponentName()
	case behaviorPath != "":
		if !h.Assets.Exists(behaviorPath) {
			logical, _ := h.Assets.Normalize(behaviorPath)
			return nil, command.Errorf(command.CodeNotFound, "behavior script not found: %s", logical)
		}
		componentName = behaviorName
	default:
		return nil, command.Errorf(command.CodeNotFound,
			"unknown behavior %q; pass behaviorPath for a scripted component", behaviorName)
	}

	if obj.HasComponent(componentName) {
		return nil, command.Errorf(command.CodeAlreadyExists,
			"%s already has component %s", obj.Name, componentName)
	}
	obj.Components = append(obj.Components, componentName)
	return map[string]any{
		"targetName":    obj.Name,
		"componentName": componentName,
		"components":    append([]string(nil), obj.Components...),
	}, nil
}
