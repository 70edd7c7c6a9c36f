package component

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"anfc/anf"
	"anfc/anf/spec"
	"anfc/anf/theme"
	"anfc/parser"
)

// Text format values accepted by News renderers.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Dark mode conditions require this spec version or later.
const darkMinSpecVersion = "1.14"

// PendingAnchor records a component that wants to attach to the body
// paragraph following it. The target is not known while the component is
// being built, resolution happens once the document order is final.
type PendingAnchor struct {
	Component map[string]any
	Position  string
	// Index is the component's position in the assembled list, set by the
	// assembler when it appends the component.
	Index int
}

// Builder carries everything component construction needs: the active theme,
// the shared style and layout registries, input policy flags and the logger.
// One Builder serves exactly one document.
type Builder struct {
	Theme       *theme.Theme
	Log         *zap.Logger
	Origin      string
	HTMLEnabled bool

	TextStyles      *Registry
	ComponentStyles *Registry
	Layouts         *Registry

	splitter *Splitter
	counters map[string]int
	anchors  []*PendingAnchor
	hadBody  bool
}

func NewBuilder(t *theme.Theme, log *zap.Logger, origin string, htmlEnabled bool) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		Theme:           t,
		Log:             log,
		Origin:          origin,
		HTMLEnabled:     htmlEnabled,
		TextStyles:      NewRegistry("text style"),
		ComponentStyles: NewRegistry("component style"),
		Layouts:         NewRegistry("layout"),
		splitter:        NewSplitter(log),
		counters:        make(map[string]int),
	}
}

func (b *Builder) parse(fragment string) []*html.Node {
	return parser.Fragment(fragment)
}

// Format reports the text format this document is built with.
func (b *Builder) Format() string {
	if b.HTMLEnabled {
		return FormatHTML
	}
	return FormatMarkdown
}

// FormatText cleans a fragment and renders it in the document's text format.
// Returns "" for fragments with no publishable content.
func (b *Builder) FormatText(fragment string) (string, error) {
	cleaned := parser.Clean(fragment, b.Origin)
	if b.HTMLEnabled {
		return parser.FormatHTML(cleaned), nil
	}
	return parser.FormatMarkdown(cleaned)
}

// Identifier mints a stable per-role identifier, "body-1", "body-2" and so
// on. Identifiers are what anchors target.
func (b *Builder) Identifier(role string) string {
	b.counters[role]++
	return fmt.Sprintf("%s-%d", role, b.counters[role])
}

// ExecuteSpec renders a component spec with the given token values. A theme
// override replaces the built-in template when its tokens are a subset of
// the default's; an override failing that check is logged and ignored.
func (b *Builder) ExecuteSpec(component, specName string, values map[string]any) (map[string]any, error) {
	def, ok := DefaultSpec(component, specName)
	if !ok {
		return nil, fmt.Errorf("component %q has no spec %q", component, specName)
	}
	node := spec.FromValue(def)
	if raw, ok := b.Theme.Override(component, specName); ok {
		override := spec.FromValue(raw)
		if err := spec.ValidateOverride(node, override); err != nil {
			b.Log.Warn("Ignoring invalid theme spec override",
				zap.String("component", component),
				zap.String("spec", specName),
				zap.Error(err))
		} else if m := spec.Execute(override, values); m != nil {
			return m, nil
		} else {
			b.Log.Warn("Ignoring theme spec override that does not produce an object",
				zap.String("component", component),
				zap.String("spec", specName))
		}
	}
	return spec.Execute(node, values), nil
}

// HasOverride reports whether the theme carries a non-empty override for the
// spec. Components that exist only through overrides (end of article slots)
// check this before emitting anything.
func (b *Builder) HasOverride(component, specName string) bool {
	raw, ok := b.Theme.Override(component, specName)
	if !ok {
		return false
	}
	if m, ok := raw.(map[string]any); ok {
		return len(m) > 0
	}
	return true
}

// RequestAnchor marks a component for attachment to the body paragraph that
// follows it in document order.
func (b *Builder) RequestAnchor(comp map[string]any, position string) {
	b.anchors = append(b.anchors, &PendingAnchor{Component: comp, Position: position})
}

// PendingAnchors returns anchor requests accumulated so far. The assembler
// resolves them after the component list is final.
func (b *Builder) PendingAnchors() []*PendingAnchor {
	return b.anchors
}

// ResolveAnchor fills in an anchor descriptor pointing at the target body
// component, ranging over its first sentence when one can be found.
func (b *Builder) ResolveAnchor(p *PendingAnchor, targetIdentifier, targetText string) {
	anchor := map[string]any{
		"targetComponentIdentifier": targetIdentifier,
		"targetAnchorPosition":      "top",
	}
	if start, length, ok := b.splitter.First(targetText); ok {
		anchor["rangeStart"] = start
		anchor["rangeLength"] = length
	}
	p.Component["anchor"] = anchor
	if p.Position == anf.AnchorPositionLeft || p.Position == anf.AnchorPositionRight {
		if layout, ok := p.Component["layout"].(string); ok && layout != "" {
			name, err := b.Layouts.Register(layout+"-"+p.Position, b.anchoredLayout())
			if err == nil {
				p.Component["layout"] = name
			}
		}
	}
}

// consumedFirstBody flips the dropcap flag, reporting whether this body
// component is the document's first.
func (b *Builder) consumedFirstBody() bool {
	if b.hadBody {
		return false
	}
	b.hadBody = true
	return true
}

// conditionalDark wraps dark mode property overrides in the conditional
// block News expects, or returns nil when props is empty.
func conditionalDark(props map[string]any) []any {
	if len(props) == 0 {
		return nil
	}
	cond := map[string]any{
		"conditions": []any{
			map[string]any{
				"preferredColorScheme": "dark",
				"minSpecVersion":       darkMinSpecVersion,
			},
		},
	}
	for k, v := range props {
		cond[k] = v
	}
	return []any{cond}
}

// StyleName appends an alignment suffix to a base style name. Alignment
// variants of the same logical style must not collide in the registry.
func StyleName(base, align string) string {
	if align == "" {
		return base
	}
	return base + "-" + align
}
