package component

import (
	"fmt"
)

// Registry is a document-scoped deduplicating name -> record store used for
// shared text styles, component styles and layouts. Scoped to one build and
// thrown away with it.
type Registry struct {
	kind    string
	entries map[string]any
	order   []string
}

func NewRegistry(kind string) *Registry {
	return &Registry{
		kind:    kind,
		entries: make(map[string]any),
	}
}

// Register stores value under name. Registering the same name with an equal
// value is a no-op returning the existing name. A different value under an
// existing name is refused: disambiguation (usually an alignment suffix) is
// the caller's decision, not the registry's.
func (r *Registry) Register(name string, value any) (string, error) {
	if existing, ok := r.entries[name]; ok {
		if equalJSON(existing, value) {
			return name, nil
		}
		return "", fmt.Errorf("%s %q is already registered with a different value", r.kind, name)
	}
	r.entries[name] = value
	r.order = append(r.order, name)
	return name, nil
}

// Len returns the number of distinct records registered.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Flatten returns the accumulated records for the document dictionaries.
func (r *Registry) Flatten() map[string]any {
	out := make(map[string]any, len(r.entries))
	for name, v := range r.entries {
		out[name] = v
	}
	return out
}

// equalJSON compares two JSON-shaped values structurally.
func equalJSON(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !equalJSON(v, bvv) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalJSON(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
