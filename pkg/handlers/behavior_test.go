package handlers

import (
	"testing"

	"github.com/forgebridge/forgebridge/pkg/command"
	"github.com/forgebridge/forgebridge/pkg/scene"
)

func TestAttachBehavior(t *testing.T) {
	t.Run("built-in behavior", func(t *testing.T) {
		f := newFixture(t)
		f.graph.Add(&scene.Object{Name: "Cube"})
		res := f.mustSucceed(t, "attach-behavior", map[string]any{
			"targetName": "Cube", "behaviorName": "Rotator",
		})
		if res.Data["componentName"] != "Rotator" {
			t.Fatalf("data = %v", res.Data)
		}
		obj, _ := f.graph.Find("Cube")
		if !obj.HasComponent("Rotator") {
			t.Fatalf("components = %v", obj.Components)
		}
	})

	t.Run("duplicate attachment", func(t *testing.T) {
		f := newFixture(t)
		f.graph.Add(&scene.Object{Name: "Cube", Components: []string{"Rotator"}})
		res := f.dispatch(t, "attach-behavior", map[string]any{
			"targetName": "Cube", "behaviorName": "Rotator",
		})
		wantFailure(t, res, command.CodeAlreadyExists)
	})

	t.Run("missing object", func(t *testing.T) {
		f := newFixture(t)
		res := f.dispatch(t, "attach-behavior", map[string]any{
			"targetName": "Ghost", "behaviorName": "Rotator",
		})
		wantFailure(t, res, command.CodeNotFound)
	})

	t.Run("scripted behavior needs an existing script", func(t *testing.T) {
		f := newFixture(t)
		f.graph.Add(&scene.Object{Name: "Boss"})

		res := f.dispatch(t, "attach-behavior", map[string]any{
			"targetName":   "Boss",
			"behaviorName": "BossAI",
			"behaviorPath": "Scripts/BossAI.cs",
		})
		wantFailure(t, res, command.CodeNotFound)

		f.mustSucceed(t, "create-text-asset", map[string]any{"name": "BossAI"})
		res = f.mustSucceed(t, "attach-behavior", map[string]any{
			"targetName":   "Boss",
			"behaviorName": "BossAI",
			"behaviorPath": "Scripts/BossAI.cs",
		})
		if res.Data["componentName"] != "BossAI" {
			t.Fatalf("data = %v", res.Data)
		}
	})

	t.Run("unknown behavior without a path", func(t *testing.T) {
		f := newFixture(t)
		f.graph.Add(&scene.Object{Name: "Cube"})
		res := f.dispatch(t, "attach-behavior", map[string]any{
			"targetName": "Cube", "behaviorName": "Teleporter",
		})
		wantFailure(t, res, command.CodeNotFound)
	})

	t.Run("invalid behavior name", func(t *testing.T) {
		f := newFixture(t)
		f.graph.Add(&scene.Object{Name: "Cube"})
		res := f.dispatch(t, "attach-behavior", map[string]any{
			"targetName": "Cube", "behaviorName": "1Bad",
		})
		wantFailure(t, res, command.CodeInvalidName)
	})
}
