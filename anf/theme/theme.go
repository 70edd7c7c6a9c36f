package theme

import (
	"fmt"
	"regexp"
	"strings"
)

// State tracks profile lifecycle. A profile starts unloaded, becomes loaded
// when values are read from storage, validated after Validate passes and
// saved once persisted.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateValidated
	StateSaved
)

// colorRe accepts #rgb, #rrggbb and #rrggbbaa notations.
var colorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// rgbaRe accepts the functional rgba(r,g,b,a) notation.
var rgbaRe = regexp.MustCompile(`^rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(?:,\s*(?:0|1|0?\.\d+)\s*)?\)$`)

// Theme is a named configuration profile. Values not present fall back to
// the declared defaults, so a zero profile is fully usable.
type Theme struct {
	Name string

	values map[string]any
	// Overrides maps component name -> spec name -> raw template value.
	// Token subset validation happens against built-in specs at save time
	// (see ValidateOverrides) and again defensively at spec lookup.
	overrides map[string]map[string]any

	state   State
	lastErr error
}

// New creates an empty profile carrying only defaults.
func New(name string) *Theme {
	return &Theme{
		Name:      name,
		values:    make(map[string]any),
		overrides: make(map[string]map[string]any),
		state:     StateLoaded,
	}
}

func (t *Theme) State() State { return t.state }

// LastError returns the message recorded by the most recent failed
// validation.
func (t *Theme) LastError() error { return t.lastErr }

// Set validates and stores a single value. Invalid values are rejected and
// leave the profile untouched.
func (t *Theme) Set(key string, value any) error {
	opt, ok := LookupOption(key)
	if !ok {
		return fmt.Errorf("theme %q: unknown setting %q", t.Name, key)
	}
	norm, err := normalizeValue(opt, value)
	if err != nil {
		t.lastErr = fmt.Errorf("theme %q: %w", t.Name, err)
		return t.lastErr
	}
	t.values[key] = norm
	t.state = StateLoaded
	return nil
}

// Get returns the stored value for key, falling back to the declared
// default. Never fails, unknown keys produce nil.
func (t *Theme) Get(key string) any {
	if v, ok := t.values[key]; ok {
		return v
	}
	if opt, ok := LookupOption(key); ok {
		return opt.Default
	}
	return nil
}

func (t *Theme) GetString(key string) string {
	if s, ok := t.Get(key).(string); ok {
		return s
	}
	return ""
}

func (t *Theme) GetInt(key string) int {
	switch v := t.Get(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (t *Theme) GetFloat(key string) float64 {
	switch v := t.Get(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func (t *Theme) GetBool(key string) bool {
	if b, ok := t.Get(key).(bool); ok {
		return b
	}
	return false
}

func (t *Theme) GetStringSlice(key string) []string {
	switch v := t.Get(key).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// DarkVariant returns the dark mode companion of a color setting: for
// "body_color" it looks up "body_color_dark". Second return is false when
// the theme defines no dark value, in which case no conditional style
// branch must be produced.
func (t *Theme) DarkVariant(key string) (string, bool) {
	dark := t.GetString(key + "_dark")
	if len(dark) == 0 {
		return "", false
	}
	return dark, true
}

// MetaComponentOrder returns the configured header region composition.
func (t *Theme) MetaComponentOrder() []string {
	return t.GetStringSlice("meta_component_order")
}

// Override returns the raw spec override for a component spec, if any.
func (t *Theme) Override(component, specName string) (any, bool) {
	specs, ok := t.overrides[component]
	if !ok {
		return nil, false
	}
	v, ok := specs[specName]
	return v, ok
}

// SetOverride stores a raw spec override. Token validation against the
// built-in spec is the caller's job (the component registry owns defaults).
func (t *Theme) SetOverride(component, specName string, tmpl any) {
	if t.overrides == nil {
		t.overrides = make(map[string]map[string]any)
	}
	if t.overrides[component] == nil {
		t.overrides[component] = make(map[string]any)
	}
	t.overrides[component][specName] = tmpl
	t.state = StateLoaded
}

// Validate checks every stored value against its declared type and fails
// closed: the first invalid field stops validation, the error is retained
// for LastError and the profile does not reach the validated state.
func (t *Theme) Validate() error {
	for _, opt := range options {
		v, ok := t.values[opt.Key]
		if !ok {
			continue
		}
		norm, err := normalizeValue(&opt, v)
		if err != nil {
			t.lastErr = fmt.Errorf("theme %q: %w", t.Name, err)
			return t.lastErr
		}
		t.values[opt.Key] = norm
	}
	t.state = StateValidated
	t.lastErr = nil
	return nil
}

// ValidateOverrides checks the token subset law for every stored spec
// override. defaults resolves a component spec to its built-in token set,
// second return false means the spec does not exist at all.
func (t *Theme) ValidateOverrides(defaults func(component, specName string) ([]string, bool)) error {
	for comp, specs := range t.overrides {
		for name, raw := range specs {
			allowed, ok := defaults(comp, name)
			if !ok {
				t.lastErr = fmt.Errorf("theme %q: override for unknown spec %s/%s", t.Name, comp, name)
				return t.lastErr
			}
			if _, ok := raw.(map[string]any); !ok {
				t.lastErr = fmt.Errorf("theme %q: spec %s/%s: override template must be a JSON object, got %T", t.Name, comp, name, raw)
				return t.lastErr
			}
			if err := checkTokenSubset(raw, allowed); err != nil {
				t.lastErr = fmt.Errorf("theme %q: spec %s/%s: %w", t.Name, comp, name, err)
				return t.lastErr
			}
		}
	}
	return nil
}

// tokenProbe mirrors the template engine pattern, used only to vet override
// documents before they are parsed into typed trees.
var tokenProbe = regexp.MustCompile(`#([^#%]+)#`)

func checkTokenSubset(raw any, allowed []string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	var walk func(v any) error
	walk = func(v any) error {
		switch tv := v.(type) {
		case map[string]any:
			for _, vv := range tv {
				if err := walk(vv); err != nil {
					return err
				}
			}
		case []any:
			for _, vv := range tv {
				if err := walk(vv); err != nil {
					return err
				}
			}
		case string:
			for _, m := range tokenProbe.FindAllStringSubmatch(tv, -1) {
				if _, ok := set[m[1]]; !ok {
					return fmt.Errorf("token %q is not present in the default spec", "#"+m[1]+"#")
				}
			}
		}
		return nil
	}
	return walk(raw)
}

func normalizeValue(opt *Option, value any) (any, error) {
	switch opt.Type {
	case TypeInteger:
		n, ok := toInt(value)
		if !ok {
			return nil, fmt.Errorf("setting %q: expected integer, got %T", opt.Key, value)
		}
		if opt.Min != opt.Max && (float64(n) < opt.Min || float64(n) > opt.Max) {
			return nil, fmt.Errorf("setting %q: %d is out of range [%g, %g]", opt.Key, n, opt.Min, opt.Max)
		}
		return n, nil
	case TypeFloat:
		f, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("setting %q: expected number, got %T", opt.Key, value)
		}
		if opt.Min != opt.Max && (f < opt.Min || f > opt.Max) {
			return nil, fmt.Errorf("setting %q: %g is out of range [%g, %g]", opt.Key, f, opt.Min, opt.Max)
		}
		return f, nil
	case TypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("setting %q: expected boolean, got %T", opt.Key, value)
		}
		return b, nil
	case TypeColor:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("setting %q: expected color string, got %T", opt.Key, value)
		}
		// dark variants may be reset to "no dark value"
		if len(s) == 0 {
			return s, nil
		}
		if !colorRe.MatchString(s) && !rgbaRe.MatchString(strings.ToLower(s)) {
			return nil, fmt.Errorf("setting %q: %q is not a valid color", opt.Key, s)
		}
		return s, nil
	case TypeFont:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("setting %q: expected font name, got %T", opt.Key, value)
		}
		if !KnownFont(s) {
			return nil, fmt.Errorf("setting %q: font %q is not available", opt.Key, s)
		}
		return s, nil
	case TypeSelect:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("setting %q: expected string, got %T", opt.Key, value)
		}
		for _, c := range opt.Choices {
			if s == c {
				return s, nil
			}
		}
		return nil, fmt.Errorf("setting %q: %q is not one of %s", opt.Key, s, strings.Join(opt.Choices, ", "))
	case TypeText:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("setting %q: expected string, got %T", opt.Key, value)
		}
		return s, nil
	case TypeArray:
		items, err := toStringSlice(value)
		if err != nil {
			return nil, fmt.Errorf("setting %q: %w", opt.Key, err)
		}
		if len(opt.Choices) > 0 {
			for _, it := range items {
				known := false
				for _, c := range opt.Choices {
					if it == c {
						known = true
						break
					}
				}
				if !known {
					return nil, fmt.Errorf("setting %q: %q is not one of %s", opt.Key, it, strings.Join(opt.Choices, ", "))
				}
			}
		}
		return items, nil
	default:
		// this should never happen
		panic("unsupported option type")
	}
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t == float64(int(t)) {
			return int(t), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func toStringSlice(v any) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("expected array of strings, found %T", e)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected array of strings, got %T", v)
}
