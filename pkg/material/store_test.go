package material

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/forgebridge/forgebridge/pkg/asset"
	"github.com/forgebridge/forgebridge/pkg/command"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Assets")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return NewStore(asset.NewFSStore("Assets", root))
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	m := New("Red", BackendUniversal)
	m.SetColor("_BaseColor", []float64{1, 0, 0, 1})
	m.SetFloat("_Metallic", 0.2)
	m.SetTexture("_BaseMap", TextureRef{Path: "Assets/Textures/red.png", Tiling: []float64{2, 2}})

	logical, err := store.Save("Materials/Red", m)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if logical != "Assets/Materials/Red.mat" {
		t.Errorf("logical = %q", logical)
	}

	loaded, _, err := store.Load("Materials/Red.mat")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Shader != m.Shader || loaded.Floats["_Metallic"] != 0.2 {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Textures["_BaseMap"].Path != "Assets/Textures/red.png" {
		t.Errorf("texture = %+v", loaded.Textures["_BaseMap"])
	}
	if loaded.Backend() != BackendUniversal {
		t.Errorf("backend = %v", loaded.Backend())
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.Load("Materials/Ghost")
	var cerr *command.Error
	if !errors.As(err, &cerr) || cerr.Code != command.CodeNotFound {
		t.Fatalf("err = %v", err)
	}
}

func TestWithExtension(t *testing.T) {
	if WithExtension("Materials/Red") != "Materials/Red.mat" {
		t.Error("missing extension not appended")
	}
	if WithExtension("Materials/Red.mat") != "Materials/Red.mat" {
		t.Error("extension duplicated")
	}
}
