package assetpath

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := New("Assets", "/project/Assets")

	cases := []struct {
		name    string
		in      string
		logical string
	}{
		{"bare relative", "Materials/Red.mat", "Assets/Materials/Red.mat"},
		{"already normalized", "Assets/Materials/Red.mat", "Assets/Materials/Red.mat"},
		{"backslashes", `Assets\Scripts\Player.cs`, "Assets/Scripts/Player.cs"},
		{"surrounding slashes", "/Scripts/Player.cs/", "Assets/Scripts/Player.cs"},
		{"case-insensitive root", "assets/Scripts/Player.cs", "Assets/Scripts/Player.cs"},
		{"repeated root", "Assets/Assets/Scripts/Player.cs", "Assets/Scripts/Player.cs"},
		{"root only", "Assets", "Assets"},
		{"empty", "", "Assets"},
		{"dot segments", "Assets/./Scripts/../Scripts/Player.cs", "Assets/Scripts/Scripts/Player.cs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logical, _ := n.Normalize(tc.in)
			if logical != tc.logical {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, logical, tc.logical)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New("Assets", "/project/Assets")
	inputs := []string{
		"Materials/Red.mat",
		`assets\Materials\Red.mat`,
		"Assets/Assets/assets/deep/file.txt",
		"",
		"Assets",
	}
	for _, in := range inputs {
		first, _ := n.Normalize(in)
		second, _ := n.Normalize(first)
		if first != second {
			t.Errorf("not idempotent: %q -> %q -> %q", in, first, second)
		}
		if !strings.HasPrefix(second, "Assets") {
			t.Errorf("missing root prefix: %q", second)
		}
		if strings.HasPrefix(strings.TrimPrefix(second, "Assets/"), "Assets/") {
			t.Errorf("root prefix repeated: %q", second)
		}
	}
}

func TestPhysicalPath(t *testing.T) {
	n := New("Assets", filepath.Join("proj", "Assets"))

	_, physical := n.Normalize("Assets/Scripts/Player.cs")
	want := filepath.Join("proj", "Assets", "Scripts", "Player.cs")
	if physical != want {
		t.Errorf("physical = %q, want %q", physical, want)
	}

	_, physical = n.Normalize("Assets")
	if physical != filepath.Join("proj", "Assets") {
		t.Errorf("root physical = %q", physical)
	}
}

func TestTraversalStripped(t *testing.T) {
	n := New("Assets", "/project/Assets")
	logical, physical := n.Normalize("../../etc/passwd")
	if logical != "Assets/etc/passwd" {
		t.Errorf("logical = %q", logical)
	}
	if strings.Contains(physical, "..") {
		t.Errorf("physical escapes root: %q", physical)
	}
}

func TestJoin(t *testing.T) {
	n := New("Assets", "/project/Assets")
	logical, _ := n.Join("Materials", "Red.mat")
	if logical != "Assets/Materials/Red.mat" {
		t.Errorf("Join = %q", logical)
	}
}
