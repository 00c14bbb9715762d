// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package overlay

import (
	"context"
	"sync"
	"time"

	"github.com/GYCODES/manga-translate/internal/platform/constants"
)

// viewState tracks the newest generation of one reader view.
type viewState struct {
	generation uint64
	touchedAt  time.Time
}

// viewRegistry owns one monotonically increasing generation counter per
// reader view. A batch composed under an older generation than the view's
// current one is stale and must be discarded, because the reader has already
// navigated on.
type viewRegistry struct {
	mu    sync.Mutex
	views map[string]*viewState
}

// newViewRegistry constructs the registry and starts a background cleanup
// routine that drops idle views, bounded by the given context.
func newViewRegistry(ctx context.Context) *viewRegistry {
	registry := &viewRegistry{views: make(map[string]*viewState)}

	go func() {
		ticker := time.NewTicker(constants.OverlayViewCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				registry.mu.Lock()
				for viewID, state := range registry.views {
					if time.Since(state.touchedAt) > constants.OverlayViewTTL {
						delete(registry.views, viewID)
					}
				}
				registry.mu.Unlock()
			case <-ctx.Done():
				// Stop the goroutine when the application shuts down
				return
			}
		}
	}()

	return registry
}

// state returns the entry for viewID, creating it at generation zero.
// Callers must hold the mutex.
func (registry *viewRegistry) state(viewID string) *viewState {
	entry, exists := registry.views[viewID]
	if !exists {
		entry = &viewState{}
		registry.views[viewID] = entry
	}

	entry.touchedAt = time.Now()
	return entry
}

// Current returns the view's current generation, registering the view on
// first sight.
func (registry *viewRegistry) Current(viewID string) uint64 {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	return registry.state(viewID).generation
}

// Bump advances the view to a new generation and returns it. Every batch
// already in flight under an older generation becomes stale.
func (registry *viewRegistry) Bump(viewID string) uint64 {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	entry := registry.state(viewID)
	entry.generation++
	return entry.generation
}
