package pass

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a fresh pass instance.
type Factory func() Pass

var (
	regMu    sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a factory under the name of the pass it builds.
// Registering the same name twice panics; registration happens from
// init functions where a duplicate is a programming error.
func Register(f Factory) {
	p := f()
	name := p.Name()
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("pass: duplicate registration of %q", name))
	}
	registry[name] = f
}

// Lookup returns the factory for name.
func Lookup(name string) (Factory, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names lists registered pass names, sorted.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
