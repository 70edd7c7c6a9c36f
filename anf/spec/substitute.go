package spec

// Substitute resolves the template against the values table and returns
// plain JSON-ready data. The second return is false when the node itself
// could not be resolved and its slot must be dropped from the parent
// container, so no dangling placeholder ever reaches output.
//
// Pure and idempotent: resolving an already resolved tree with the same
// values changes nothing.
func Substitute(n Node, values map[string]any) (any, bool) {
	switch t := n.(type) {
	case Map:
		out := make(map[string]any, len(t))
		for k, v := range t {
			if rv, ok := Substitute(v, values); ok {
				out[k] = rv
			}
		}
		return out, true
	case Array:
		out := make([]any, 0, len(t))
		for _, v := range t {
			if rv, ok := Substitute(v, values); ok {
				out = append(out, rv)
			}
		}
		return out, true
	case Literal:
		return t.Value, true
	case Token:
		v, ok := values[t.Name]
		if !ok {
			return nil, false
		}
		return v, true
	case Interp:
		var b []byte
		for _, p := range t.Parts {
			switch pt := p.(type) {
			case Literal:
				s, _ := pt.Value.(string)
				b = append(b, s...)
			case Token:
				v, ok := values[pt.Name]
				if !ok {
					return nil, false
				}
				s, ok := v.(string)
				if !ok {
					return nil, false
				}
				b = append(b, s...)
			}
		}
		return string(b), true
	}
	return nil, false
}

// Execute resolves a template expected to be a JSON object, the usual shape
// of a component spec.
func Execute(n Node, values map[string]any) map[string]any {
	v, ok := Substitute(n, values)
	if !ok {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
