// Package envpool bounds and recycles the private execution environments
// handed to stages that require isolation. Exhaustion is a hard, immediate
// error: the pool never queues borrowers, and every created environment
// stays alive until shutdown.
package envpool
