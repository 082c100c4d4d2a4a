// Package transform provides reversible text transformations and the
// immutable catalog the search engine walks. Each transform pairs a cheap
// applicability predicate with a pure apply operation that attempts to
// reverse one encoding or cipher step.
package transform

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Transform is a single reversible decoding step.
type Transform interface {
	// ID returns the stable identifier for this transform.
	ID() string

	// Name returns a human-readable name.
	Name() string

	// CostWeight returns the relative expansion cost used by the search
	// ordering. Cheap, high-yield transforms carry low weights.
	CostWeight() float64

	// Applicable reports whether Apply is worth calling on text. It must
	// be cheap and side-effect free.
	Applicable(text string) bool

	// Apply attempts the decoding and returns zero or more candidate
	// outputs. It must be pure and deterministic. Callers must not invoke
	// Apply when Applicable returned false.
	Apply(text string) ([]string, error)
}

type funcTransform struct {
	id         string
	name       string
	cost       float64
	applicable func(string) bool
	apply      func(string) ([]string, error)
}

// New builds a transform from an applicability predicate and an apply
// function.
func New(id, name string, cost float64, applicable func(string) bool, apply func(string) ([]string, error)) Transform {
	return &funcTransform{id: id, name: name, cost: cost, applicable: applicable, apply: apply}
}

func (t *funcTransform) ID() string                          { return t.id }
func (t *funcTransform) Name() string                        { return t.name }
func (t *funcTransform) CostWeight() float64                 { return t.cost }
func (t *funcTransform) Applicable(text string) bool         { return t.applicable(text) }
func (t *funcTransform) Apply(text string) ([]string, error) { return t.apply(text) }

// Catalog is an immutable lookup table of transforms, built once at startup
// and passed into the engine as explicit configuration.
type Catalog struct {
	list []Transform
	byID map[string]Transform
}

// NewCatalog builds a catalog from the given transforms. Identifiers must be
// unique and non-empty.
func NewCatalog(transforms ...Transform) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Transform, len(transforms))}
	for _, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("cannot register nil transform")
		}
		id := t.ID()
		if id == "" {
			return nil, fmt.Errorf("transform id cannot be empty")
		}
		if _, exists := c.byID[id]; exists {
			return nil, fmt.Errorf("transform %s is already registered", id)
		}
		c.byID[id] = t
		c.list = append(c.list, t)
	}
	sort.Slice(c.list, func(i, j int) bool { return c.list[i].ID() < c.list[j].ID() })
	return c, nil
}

// Lookup retrieves a transform by identifier.
func (c *Catalog) Lookup(id string) (Transform, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Transforms returns all transforms sorted by identifier.
func (c *Catalog) Transforms() []Transform {
	out := make([]Transform, len(c.list))
	copy(out, c.list)
	return out
}

// Len returns the number of registered transforms.
func (c *Catalog) Len() int { return len(c.list) }

// usable reports whether a decoded candidate is worth feeding back into the
// search: valid UTF-8, non-empty, and mostly printable.
func usable(text string) bool {
	if text == "" || !utf8.ValidString(text) {
		return false
	}
	printable, total := 0, 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			printable++
		}
	}
	return float64(printable)/float64(total) >= 0.85
}

// single wraps one decoded candidate, dropping unusable output.
func single(text string) []string {
	if !usable(text) {
		return nil
	}
	return []string{text}
}
