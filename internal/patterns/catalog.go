// Package patterns provides a global catalog of named Life shapes.
// Built-in shapes register themselves in init(); pattern files loaded at
// runtime can be added with Register or RegisterDir.
package patterns

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/framelife/internal/core"
)

// ErrUnknownPattern is returned when a pattern name is not registered.
var ErrUnknownPattern = errors.New("patterns: unknown pattern")

// Pattern is a named set of live cells relative to its top-left corner.
type Pattern struct {
	Name  string
	Title string
	Cells []core.Point
}

// Bounds returns the smallest rectangle at the origin that holds every cell.
func (p Pattern) Bounds() core.Rect {
	w, h := 0, 0
	for _, c := range p.Cells {
		w = max(w, c.X+1)
		h = max(h, c.Y+1)
	}
	return core.NewRect(0, 0, w, h)
}

var (
	catalog = make(map[string]Pattern)
	mu      sync.RWMutex
)

// Register adds a pattern to the catalog.
// Panics if the name is empty or already registered, like a duplicate init().
func Register(p Pattern) {
	if err := add(p); err != nil {
		panic(err.Error())
	}
}

func add(p Pattern) error {
	if p.Name == "" {
		return errors.New("patterns: pattern has no name")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := catalog[p.Name]; exists {
		return fmt.Errorf("patterns: pattern %q already registered", p.Name)
	}
	if p.Title == "" {
		p.Title = p.Name
	}
	catalog[p.Name] = p
	return nil
}

// List returns all registered patterns, sorted by name.
func List() []Pattern {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Pattern, 0, len(catalog))
	for _, p := range catalog {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Get returns the pattern registered under name.
func Get(name string) (Pattern, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := catalog[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w %q", ErrUnknownPattern, name)
	}
	return p, nil
}

// Exists checks if a pattern with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := catalog[name]
	return ok
}

// Select resolves names to patterns. An empty list selects the whole catalog.
func Select(names []string) ([]Pattern, error) {
	if len(names) == 0 {
		return List(), nil
	}
	out := make([]Pattern, 0, len(names))
	for _, name := range names {
		p, err := Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
