package commands

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	aliases map[string]string // alias -> name
}

func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Command),
		aliases: make(map[string]string),
	}
}

// Register adds c. A name or alias may only be claimed once across both
// namespaces.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range append([]string{c.Name()}, c.Aliases()...) {
		if r.taken(key) {
			return fmt.Errorf("command name or alias already registered: %s", key)
		}
	}

	r.byName[c.Name()] = c
	for _, alias := range c.Aliases() {
		r.aliases[alias] = c.Name()
	}
	return nil
}

func (r *Registry) taken(key string) bool {
	_, isName := r.byName[key]
	_, isAlias := r.aliases[key]
	return isName || isAlias
}

// Find looks up a command by name or alias.
func (r *Registry) Find(key string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name, ok := r.aliases[key]; ok {
		key = name
	}
	cmd, ok := r.byName[key]
	return cmd, ok
}

// All returns every command sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, 0, len(r.byName))
	for _, name := range slices.Sorted(maps.Keys(r.byName)) {
		result = append(result, r.byName[name])
	}
	return result
}

// InScope returns the commands runnable in scope, sorted by name.
// ScopeAny commands belong to every scope.
func (r *Registry) InScope(scope Scope) []Command {
	return slices.DeleteFunc(r.All(), func(c Command) bool {
		return c.Scope() != ScopeAny && c.Scope() != scope
	})
}

// DefaultRegistry holds the commands registered by this package's init functions.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
