package material

import (
	"errors"
	"testing"

	"github.com/forgebridge/forgebridge/pkg/command"
)

func TestInstantiate(t *testing.T) {
	t.Run("unknown template", func(t *testing.T) {
		_, err := Instantiate("chrome", BackendLegacy)
		var cerr *command.Error
		if !errors.As(err, &cerr) || cerr.Code != command.CodeUnknownTemplate {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("metal resolves per backend", func(t *testing.T) {
		writes, err := Instantiate("metal", BackendUniversal)
		if err != nil {
			t.Fatalf("instantiate: %v", err)
		}
		if writes[0].Key != "_BaseColor" || !writes[0].IsColor {
			t.Errorf("first write = %+v", writes[0])
		}
		foundMetallic := false
		for _, w := range writes {
			if w.Key == "_Metallic" && w.Value == 1.0 {
				foundMetallic = true
			}
		}
		if !foundMetallic {
			t.Errorf("missing metallic write: %+v", writes)
		}
	})

	t.Run("glass blend override follows base color", func(t *testing.T) {
		for _, backend := range []Backend{BackendLegacy, BackendUniversal, BackendHighDefinition} {
			writes, err := Instantiate("glass", backend)
			if err != nil {
				t.Fatalf("backend %v: %v", backend, err)
			}
			colorIdx, blendIdx := -1, -1
			for i, w := range writes {
				if w.IsColor && colorIdx == -1 {
					colorIdx = i
				}
				for _, blendKey := range []string{"_Mode", "_Surface", "_SurfaceType"} {
					if w.Key == blendKey {
						blendIdx = i
					}
				}
			}
			if colorIdx == -1 || blendIdx == -1 {
				t.Fatalf("backend %v: missing writes: %+v", backend, writes)
			}
			if blendIdx < colorIdx {
				t.Errorf("backend %v: blend override at %d before base color at %d",
					backend, blendIdx, colorIdx)
			}
		}
	})

	t.Run("emissive skips intensity off hd", func(t *testing.T) {
		writes, err := Instantiate("emissive", BackendLegacy)
		if err != nil {
			t.Fatalf("instantiate: %v", err)
		}
		for _, w := range writes {
			if w.Key == "_EmissiveIntensity" {
				t.Errorf("legacy emissive should not write intensity: %+v", writes)
			}
		}
	})

	t.Run("all templates instantiate on all backends", func(t *testing.T) {
		for _, name := range TemplateNames() {
			for _, backend := range []Backend{BackendLegacy, BackendUniversal, BackendHighDefinition} {
				writes, err := Instantiate(name, backend)
				if err != nil {
					t.Errorf("%s/%v: %v", name, backend, err)
				}
				if len(writes) == 0 {
					t.Errorf("%s/%v: empty", name, backend)
				}
			}
		}
	})
}

func TestApplyLastWriteWins(t *testing.T) {
	m := New("Glass", BackendUniversal)
	writes, err := Instantiate("glass", BackendUniversal)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	Apply(m, writes)
	if m.Floats["_Surface"] != 1 {
		t.Errorf("surface = %v", m.Floats["_Surface"])
	}
	if len(m.Colors["_BaseColor"]) != 4 || m.Colors["_BaseColor"][3] != 0.25 {
		t.Errorf("base color = %v", m.Colors["_BaseColor"])
	}

	// A later write for the same key replaces the earlier value.
	Apply(m, []PropertyWrite{{Key: "_Surface", Value: 0}})
	if m.Floats["_Surface"] != 0 {
		t.Errorf("override lost: %v", m.Floats["_Surface"])
	}
}
