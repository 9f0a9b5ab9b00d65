package command

import (
	"errors"
	"testing"
)

func wantCode(t *testing.T, err error, code Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *command.Error, got %T: %v", err, err)
	}
	if cerr.Code != code {
		t.Fatalf("code = %s, want %s (%v)", cerr.Code, code, err)
	}
}

func TestParamsString(t *testing.T) {
	p := Params{"name": "Cube", "count": 3}

	t.Run("required present", func(t *testing.T) {
		got, err := p.String("name")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Cube" {
			t.Errorf("got %q, want %q", got, "Cube")
		}
	})

	t.Run("required missing", func(t *testing.T) {
		_, err := p.String("missing")
		wantCode(t, err, CodeMissingParameter)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := p.String("count")
		wantCode(t, err, CodeTypeMismatch)
	})

	t.Run("optional default", func(t *testing.T) {
		got, err := p.OptionalString("missing", "fallback")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "fallback" {
			t.Errorf("got %q, want %q", got, "fallback")
		}
	})
}

func TestParamsBool(t *testing.T) {
	p := Params{"overwrite": true, "flag": "true"}

	t.Run("strict coercion", func(t *testing.T) {
		_, err := p.Bool("flag")
		wantCode(t, err, CodeTypeMismatch)
	})

	t.Run("optional absent", func(t *testing.T) {
		got, err := p.OptionalBool("missing", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got {
			t.Error("expected default true")
		}
	})

	t.Run("present", func(t *testing.T) {
		got, err := p.Bool("overwrite")
		if err != nil || !got {
			t.Fatalf("got %v, %v", got, err)
		}
	})
}

func TestParamsFloat(t *testing.T) {
	p := Params{"metallic": 0.5, "count": 3, "name": "x"}

	t.Run("float64", func(t *testing.T) {
		got, err := p.Float("metallic")
		if err != nil || got != 0.5 {
			t.Fatalf("got %v, %v", got, err)
		}
	})

	t.Run("int widens", func(t *testing.T) {
		got, err := p.Float("count")
		if err != nil || got != 3 {
			t.Fatalf("got %v, %v", got, err)
		}
	})

	t.Run("string rejected", func(t *testing.T) {
		_, err := p.Float("name")
		wantCode(t, err, CodeTypeMismatch)
	})

	t.Run("optional reports presence", func(t *testing.T) {
		_, present, err := p.OptionalFloat("missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if present {
			t.Error("expected absent")
		}
	})
}

func TestParamsColor(t *testing.T) {
	t.Run("rgb", func(t *testing.T) {
		p := Params{"color": []any{0.1, 0.2, 0.3}}
		got, present, err := p.OptionalColor("color")
		if err != nil || !present {
			t.Fatalf("got %v, %v, %v", got, present, err)
		}
		if len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})

	t.Run("rgba", func(t *testing.T) {
		p := Params{"color": []float64{0.1, 0.2, 0.3, 1.0}}
		got, _, err := p.OptionalColor("color")
		if err != nil || len(got) != 4 {
			t.Fatalf("got %v, %v", got, err)
		}
	})

	t.Run("bad arity", func(t *testing.T) {
		p := Params{"color": []any{0.1, 0.2}}
		_, _, err := p.OptionalColor("color")
		wantCode(t, err, CodeInvalidArity)
	})

	t.Run("out of range", func(t *testing.T) {
		p := Params{"color": []any{0.1, 0.2, 1.5}}
		_, _, err := p.OptionalColor("color")
		wantCode(t, err, CodeTypeMismatch)
	})

	t.Run("non-numeric element", func(t *testing.T) {
		p := Params{"color": []any{0.1, "red", 0.3}}
		_, _, err := p.OptionalColor("color")
		wantCode(t, err, CodeTypeMismatch)
	})

	t.Run("absent", func(t *testing.T) {
		p := Params{}
		_, present, err := p.OptionalColor("color")
		if err != nil || present {
			t.Fatalf("got present=%v, err=%v", present, err)
		}
	})
}

func TestParamsVec2(t *testing.T) {
	p := Params{"tiling": []any{2.0, 2.0}, "offset": []any{1.0}}

	if got, present, err := p.OptionalVec2("tiling"); err != nil || !present || len(got) != 2 {
		t.Fatalf("got %v, %v, %v", got, present, err)
	}
	_, _, err := p.OptionalVec2("offset")
	wantCode(t, err, CodeInvalidArity)
}
