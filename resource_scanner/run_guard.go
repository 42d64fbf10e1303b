package resource_scanner

import (
	"context"
	"sync"
)

// runGuard implements cancel-and-restart for one scanner: starting a run
// cancels the run in flight, and only the newest run may publish.
type runGuard struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// begin registers a new run and cancels the previous one.
func (g *runGuard) begin(ctx context.Context) (context.Context, uint64, context.CancelFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	g.gen++
	runCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	return runCtx, g.gen, cancel
}

// current reports whether gen is still the newest run.
func (g *runGuard) current(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return gen == g.gen
}

// finish calls publish if gen is still the newest run and reports whether it did.
func (g *runGuard) finish(gen uint64, publish func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen != g.gen {
		return false
	}
	publish()
	g.cancel = nil
	return true
}

// invalidate cancels the run in flight, makes sure it can no longer publish
// and then calls clear.
func (g *runGuard) invalidate(clear func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.gen++
	clear()
}
