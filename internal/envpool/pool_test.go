package envpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stagegridgo/internal/isolate"
	"pgregory.net/rapid"
)

func newTestPool(max int, keys ...string) *Pool {
	bases := make([]isolate.Environment, 0, len(keys))
	for _, key := range keys {
		bases = append(bases, isolate.NewNamespace(key, nil))
	}
	return New(bases, max)
}

func TestPool_BorrowCreatesPrivateDuplicate(t *testing.T) {
	t.Parallel()
	pool := newTestPool(5, "lib-a")

	env, err := pool.Borrow("lib-a")
	require.NoError(t, err)
	require.True(t, env.Private(), "borrowed environment must be private")
	require.Equal(t, "lib-a", env.Key())
	require.Equal(t, 1, pool.Active())
	require.Equal(t, 1, pool.Total())
}

func TestPool_ReturnedEnvironmentIsReused(t *testing.T) {
	t.Parallel()
	pool := newTestPool(5, "lib-a")

	env, err := pool.Borrow("lib-a")
	require.NoError(t, err)
	require.NoError(t, pool.Return("lib-a", env))
	require.Equal(t, 0, pool.Active())

	again, err := pool.Borrow("lib-a")
	require.NoError(t, err)
	require.Same(t, env, again, "idle environment should be reused, not recreated")
	require.Equal(t, 1, pool.Total(), "reuse must not create a new environment")
}

func TestPool_ExhaustionFailsImmediately(t *testing.T) {
	t.Parallel()
	pool := newTestPool(2, "lib-a")

	_, err := pool.Borrow("lib-a")
	require.NoError(t, err)
	_, err = pool.Borrow("lib-a")
	require.NoError(t, err)

	_, err = pool.Borrow("lib-a")
	require.ErrorIs(t, err, ErrExhausted, "borrow over capacity must fail, not block")
}

func TestPool_IdleReuseWorksAtCapacity(t *testing.T) {
	t.Parallel()
	pool := newTestPool(1, "lib-a")

	env, err := pool.Borrow("lib-a")
	require.NoError(t, err)
	require.NoError(t, pool.Return("lib-a", env))

	// The pool is at max total, but the idle entry is still borrowable.
	again, err := pool.Borrow("lib-a")
	require.NoError(t, err)
	require.Same(t, env, again)
}

func TestPool_UnknownKeyFails(t *testing.T) {
	t.Parallel()
	pool := newTestPool(5, "lib-a")

	_, err := pool.Borrow("no-such-lib")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no-such-lib")
}

func TestPool_SharedBaseDegradesToNoOp(t *testing.T) {
	t.Parallel()
	pool := New([]isolate.Environment{isolate.NewShared("flat-lib")}, 1)

	// Borrows beyond capacity still succeed: nothing is being pooled.
	for i := 0; i < 3; i++ {
		env, err := pool.Borrow("flat-lib")
		require.NoError(t, err)
		require.False(t, env.Private())
	}
	require.Equal(t, 0, pool.Total(), "shared environments must not be accounted")
}

func TestPool_CapacityIsSharedAcrossKeys(t *testing.T) {
	t.Parallel()
	pool := newTestPool(2, "lib-a", "lib-b")

	_, err := pool.Borrow("lib-a")
	require.NoError(t, err)
	_, err = pool.Borrow("lib-b")
	require.NoError(t, err)

	_, err = pool.Borrow("lib-a")
	require.ErrorIs(t, err, ErrExhausted)
}

func TestPool_Close(t *testing.T) {
	t.Parallel()
	pool := newTestPool(5, "lib-a")

	env, err := pool.Borrow("lib-a")
	require.NoError(t, err)

	require.NoError(t, pool.Close())
	require.NoError(t, pool.Close(), "closing twice must be a no-op")

	_, err = pool.Borrow("lib-a")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, pool.Return("lib-a", env), ErrClosed)
}

func TestPool_ConcurrentBorrowsGetDistinctEnvironments(t *testing.T) {
	t.Parallel()
	const n = 20
	pool := newTestPool(n, "lib-a")

	var mu sync.Mutex
	seen := make(map[isolate.Environment]struct{}, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env, err := pool.Borrow("lib-a")
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			seen[env] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, n, "concurrent borrowers must never share an environment")
	require.Equal(t, n, pool.Active())
}

// TestPool_Accounting drives the pool through random borrow/return sequences
// and checks the capacity and reuse bookkeeping after every step.
func TestPool_Accounting(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(1, 8).Draw(t, "max")
		pool := newTestPool(max, "lib-a")

		var out []isolate.Environment
		created := 0

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if len(out) > 0 && rapid.Bool().Draw(t, "doReturn") {
				env := out[len(out)-1]
				out = out[:len(out)-1]
				if err := pool.Return("lib-a", env); err != nil {
					t.Fatalf("return failed: %v", err)
				}
			} else {
				env, err := pool.Borrow("lib-a")
				if created == len(out) && created == max {
					// No idle entries and at capacity: must be exhausted.
					if err == nil {
						t.Fatalf("borrow succeeded past capacity %d", max)
					}
					continue
				}
				if err != nil {
					t.Fatalf("borrow failed: %v", err)
				}
				if !env.Private() {
					t.Fatalf("borrowed environment is not private")
				}
				out = append(out, env)
				if pool.Total() > created {
					created = pool.Total()
				}
			}

			if pool.Total() > max {
				t.Fatalf("total %d exceeds max %d", pool.Total(), max)
			}
			if pool.Active() != len(out) {
				t.Fatalf("active %d does not match outstanding %d", pool.Active(), len(out))
			}
		}
	})
}
