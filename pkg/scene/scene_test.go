package scene

import "testing"

func TestMemoryGraph(t *testing.T) {
	g := NewMemoryGraph()
	g.Add(&Object{Name: "Cube"})
	g.Add(&Object{Name: "Sphere"})

	t.Run("find", func(t *testing.T) {
		obj, ok := g.Find("Cube")
		if !ok || obj.Name != "Cube" {
			t.Fatalf("got %v, %v", obj, ok)
		}
		if _, ok := g.Find("Missing"); ok {
			t.Error("unexpected find")
		}
	})

	t.Run("replace keeps order", func(t *testing.T) {
		g.Add(&Object{Name: "Cube", Components: []string{"Rotator"}})
		names := g.Names()
		if len(names) != 2 || names[0] != "Cube" {
			t.Errorf("names = %v", names)
		}
		obj, _ := g.Find("Cube")
		if !obj.HasComponent("Rotator") {
			t.Error("expected replaced object")
		}
	})
}

func TestBehaviorRegistry(t *testing.T) {
	r := DefaultBehaviors()

	t.Run("resolve builtin", func(t *testing.T) {
		b, ok := r.Resolve("Rotator")
		if !ok || b.ComponentName() != "Rotator" {
			t.Fatalf("got %v, %v", b, ok)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, ok := r.Resolve("Teleporter"); ok {
			t.Error("unexpected resolve")
		}
	})

	t.Run("custom registration", func(t *testing.T) {
		r.Register("Teleporter", func() Behavior { return BehaviorFunc("Teleporter") })
		b, ok := r.Resolve("Teleporter")
		if !ok || b.ComponentName() != "Teleporter" {
			t.Fatalf("got %v, %v", b, ok)
		}
	})
}
