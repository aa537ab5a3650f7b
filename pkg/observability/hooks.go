// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about perturbation runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPerturbHooks(&myHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks around every operator:
//
//	observability.Perturb().OnOperatorStart(ctx, "delete")
//	// ... apply operator ...
//	observability.Perturb().OnOperatorComplete(ctx, "delete", affected, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Perturbation Hooks
// =============================================================================

// PerturbHooks receives events from the perturbation pipeline.
type PerturbHooks interface {
	// OnOperatorStart is called before an operator runs.
	OnOperatorStart(ctx context.Context, op string)

	// OnOperatorComplete is called after an operator returns the number of
	// elements it affected.
	OnOperatorComplete(ctx context.Context, op string, affected int, duration time.Duration)

	// OnElementFailure is called for every element an operator skipped.
	OnElementFailure(ctx context.Context, op string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPerturbHooks is a no-op implementation of PerturbHooks.
type NoopPerturbHooks struct{}

func (NoopPerturbHooks) OnOperatorStart(context.Context, string)                        {}
func (NoopPerturbHooks) OnOperatorComplete(context.Context, string, int, time.Duration) {}
func (NoopPerturbHooks) OnElementFailure(context.Context, string, error)                {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	perturbHooks PerturbHooks = NoopPerturbHooks{}
	hooksMu      sync.RWMutex
)

// SetPerturbHooks registers custom perturbation hooks.
// This should be called once at application startup before any pipeline runs.
func SetPerturbHooks(h PerturbHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		perturbHooks = h
	}
}

// Perturb returns the registered perturbation hooks.
func Perturb() PerturbHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return perturbHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	perturbHooks = NoopPerturbHooks{}
}
