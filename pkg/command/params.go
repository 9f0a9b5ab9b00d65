package command

// Params is the loosely typed parameter bag attached to a command.
// Accessors validate and coerce before any handler side effect runs;
// required lookups fail with MissingParameter, wrong types with
// TypeMismatch, malformed vectors with InvalidArity.
type Params map[string]any

// String returns a required string parameter.
func (p Params) String(key string) (string, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return "", Errorf(CodeMissingParameter, "parameter %q is required", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", Errorf(CodeTypeMismatch, "parameter %q must be a string", key)
	}
	return s, nil
}

// OptionalString returns a string parameter or the default when absent.
func (p Params) OptionalString(key, def string) (string, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", Errorf(CodeTypeMismatch, "parameter %q must be a string", key)
	}
	return s, nil
}

// Bool returns a required boolean parameter. Coercion is strict: only
// actual booleans are accepted.
func (p Params) Bool(key string) (bool, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return false, Errorf(CodeMissingParameter, "parameter %q is required", key)
	}
	b, ok := raw.(bool)
	if !ok {
		return false, Errorf(CodeTypeMismatch, "parameter %q must be a boolean", key)
	}
	return b, nil
}

// OptionalBool returns a boolean parameter or the default when absent.
func (p Params) OptionalBool(key string, def bool) (bool, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, Errorf(CodeTypeMismatch, "parameter %q must be a boolean", key)
	}
	return b, nil
}

// Float returns a required numeric parameter.
func (p Params) Float(key string) (float64, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return 0, Errorf(CodeMissingParameter, "parameter %q is required", key)
	}
	f, ok := asFloat(raw)
	if !ok {
		return 0, Errorf(CodeTypeMismatch, "parameter %q must be a number", key)
	}
	return f, nil
}

// OptionalFloat returns a numeric parameter when present. The second
// return reports presence so callers can distinguish "absent" from zero.
func (p Params) OptionalFloat(key string) (float64, bool, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	f, ok := asFloat(raw)
	if !ok {
		return 0, false, Errorf(CodeTypeMismatch, "parameter %q must be a number", key)
	}
	return f, true, nil
}

// OptionalColor returns an RGB or RGBA color parameter when present.
// Components must be numbers within 0.0-1.0; any other length than 3 or
// 4 is an arity failure.
func (p Params) OptionalColor(key string) ([]float64, bool, error) {
	values, present, err := p.optionalFloats(key)
	if err != nil || !present {
		return nil, present, err
	}
	if len(values) != 3 && len(values) != 4 {
		return nil, false, Errorf(CodeInvalidArity,
			"parameter %q must have 3 (RGB) or 4 (RGBA) components, got %d", key, len(values))
	}
	for i, v := range values {
		if v < 0.0 || v > 1.0 {
			return nil, false, Errorf(CodeTypeMismatch,
				"parameter %q component %c must be within 0.0-1.0, got %g", key, "RGBA"[i], v)
		}
	}
	return values, true, nil
}

// OptionalVec2 returns a two-component numeric parameter when present,
// used for texture tiling and offset.
func (p Params) OptionalVec2(key string) ([]float64, bool, error) {
	values, present, err := p.optionalFloats(key)
	if err != nil || !present {
		return nil, present, err
	}
	if len(values) != 2 {
		return nil, false, Errorf(CodeInvalidArity,
			"parameter %q must have exactly 2 components, got %d", key, len(values))
	}
	return values, true, nil
}

func (p Params) optionalFloats(key string) ([]float64, bool, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out, true, nil
	default:
		return nil, false, Errorf(CodeTypeMismatch, "parameter %q must be a numeric array", key)
	}
	out := make([]float64, 0, len(items))
	for i, item := range items {
		f, ok := asFloat(item)
		if !ok {
			return nil, false, Errorf(CodeTypeMismatch,
				"parameter %q element %d must be a number", key, i)
		}
		out = append(out, f)
	}
	return out, true, nil
}

// asFloat widens the numeric types JSON decoding and in-process callers
// produce. Booleans and strings never coerce.
func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Has reports whether a parameter is present and non-nil.
func (p Params) Has(key string) bool {
	raw, ok := p[key]
	return ok && raw != nil
}
