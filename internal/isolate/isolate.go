// Package isolate defines the execution-environment capability that plugin
// libraries provide to the engine core.
//
// An Environment stands in for a private dependency namespace: duplicating it
// yields a new environment with the same contents but independent mutable
// state, so stages that demand isolation never share runtime state. The
// capability is a static interface every implementation must satisfy; when a
// library has no isolation mechanism, it supplies a Shared environment and
// the private-environment pool degrades to a no-op for it.
package isolate

import (
	"fmt"
	"sync"
)

// Environment is one independent loading/execution environment. Borrowers
// treat it as an opaque capability: it is identified, queried for privacy,
// and duplicated, never inspected.
type Environment interface {
	// Key identifies the isolation namespace the environment belongs to.
	// One plugin library owns exactly one key.
	Key() string

	// Private reports whether this environment is a pooled private duplicate
	// rather than a library's shared base environment.
	Private() bool

	// Duplicate returns a new environment with the same loaded contents but
	// independent mutable state. Implementations without an isolation
	// mechanism return the receiver itself.
	Duplicate() (Environment, error)
}

// Shared is the degenerate environment of a library that provides no
// isolation: every stage of the library executes against this single
// instance and duplication hands back the same one.
type Shared struct {
	key string
}

// NewShared returns the shared environment for the given namespace key.
func NewShared(key string) *Shared {
	return &Shared{key: key}
}

func (s *Shared) Key() string    { return s.key }
func (s *Shared) Private() bool  { return false }
func (s *Shared) String() string { return fmt.Sprintf("shared(%s)", s.key) }

// Duplicate returns the receiver: there is nothing to isolate.
func (s *Shared) Duplicate() (Environment, error) {
	return s, nil
}

// Namespace is a duplicable environment: a named, private copy of a
// library's mutable runtime state. The library's bundle owns the base
// (non-private) namespace; the pool seeds entries by duplicating it.
type Namespace struct {
	key     string
	private bool

	mu     sync.RWMutex
	values map[string]string
}

// NewNamespace returns the base namespace for a library, seeded with the
// given runtime state. A nil seed is allowed.
func NewNamespace(key string, values map[string]string) *Namespace {
	ns := &Namespace{key: key, values: make(map[string]string, len(values))}
	for k, v := range values {
		ns.values[k] = v
	}
	return ns
}

func (n *Namespace) Key() string   { return n.key }
func (n *Namespace) Private() bool { return n.private }

func (n *Namespace) String() string {
	if n.private {
		return fmt.Sprintf("private(%s)", n.key)
	}
	return fmt.Sprintf("base(%s)", n.key)
}

// Duplicate returns a new private namespace carrying a copy of the current
// state. Later mutations on either side are invisible to the other.
func (n *Namespace) Duplicate() (Environment, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	dup := &Namespace{
		key:     n.key,
		private: true,
		values:  make(map[string]string, len(n.values)),
	}
	for k, v := range n.values {
		dup.values[k] = v
	}
	return dup, nil
}

// Lookup returns the value stored under name in this namespace.
func (n *Namespace) Lookup(name string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.values[name]
	return v, ok
}

// Set stores a value in this namespace only.
func (n *Namespace) Set(name, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.values[name] = value
}
