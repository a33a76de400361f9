package envpool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vk/stagegridgo/internal/isolate"
)

// DefaultMaxTotal caps the total number of private environments a process
// creates unless configured otherwise.
const DefaultMaxTotal = 50

var (
	// ErrExhausted is returned by Borrow when creating one more private
	// environment would exceed the pool's capacity. Borrow never waits for
	// an entry to be returned.
	ErrExhausted = errors.New("private environment pool exhausted")

	// ErrClosed is returned once the pool has been shut down.
	ErrClosed = errors.New("private environment pool is closed")
)

// Pool lends out private execution environments, keyed by a plugin library's
// isolation namespace. Environments are expensive to create (a duplicate of
// the library's whole runtime namespace), so returned entries are kept idle
// and reused on the next borrow of the same key; nothing is evicted before
// shutdown. Total entries ever created are bounded by maxTotal, and
// exhaustion fails immediately instead of blocking.
type Pool struct {
	mu     sync.Mutex
	base   map[string]isolate.Environment
	idle   map[string][]isolate.Environment
	total  int
	max    int
	closed bool
}

// New constructs a pool over the given base environments, keyed by each
// environment's own key. maxTotal values below one fall back to
// DefaultMaxTotal.
func New(bases []isolate.Environment, maxTotal int) *Pool {
	if maxTotal < 1 {
		maxTotal = DefaultMaxTotal
	}
	p := &Pool{
		base: make(map[string]isolate.Environment, len(bases)),
		idle: make(map[string][]isolate.Environment),
		max:  maxTotal,
	}
	for _, env := range bases {
		p.base[env.Key()] = env
	}
	return p
}

// Borrow hands out a private environment for the given key. An idle entry is
// reused when available; otherwise a new one is created by duplicating the
// key's base environment, provided the pool is under capacity. A base
// environment that does not actually isolate (its duplicate is not private)
// is handed back untracked: there is nothing to pool.
func (p *Pool) Borrow(key string) (isolate.Environment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}

	if stack := p.idle[key]; len(stack) > 0 {
		env := stack[len(stack)-1]
		p.idle[key] = stack[:len(stack)-1]
		return env, nil
	}

	base, ok := p.base[key]
	if !ok {
		return nil, fmt.Errorf("no library environment registered for key %q", key)
	}

	if p.total >= p.max {
		return nil, fmt.Errorf("%w: %d environments live, key %q", ErrExhausted, p.total, key)
	}

	env, err := base.Duplicate()
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate environment for key %q: %w", key, err)
	}
	if !env.Private() {
		// The library provides no isolation mechanism; the pool degrades to
		// handing out the shared environment without accounting.
		return env, nil
	}

	p.total++
	return env, nil
}

// Return places a borrowed environment back into the idle set for its key.
// Environments not obtained from this pool, or returned under the wrong key,
// corrupt the pool's accounting; callers must track the borrow key.
func (p *Pool) Return(key string, env isolate.Environment) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	p.idle[key] = append(p.idle[key], env)
	return nil
}

// Active reports how many created environments are currently out on loan.
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	idle := 0
	for _, stack := range p.idle {
		idle += len(stack)
	}
	return p.total - idle
}

// Total reports how many private environments the pool has created.
func (p *Pool) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Close invalidates every entry, idle and outstanding, and rejects all
// further borrows and returns. Closing an already-closed pool is a no-op.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.idle = nil
	return nil
}
