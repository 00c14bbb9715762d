// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package progress

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/GYCODES/manga-translate/internal/platform/apperr"
	"github.com/GYCODES/manga-translate/internal/platform/metrics"
)

// # Service Layer

// pendingWrite is one armed debounce bucket. The record inside is replaced
// by every collapsed event, so the eventual write carries the newest values.
type pendingWrite struct {
	timer  *time.Timer
	record Record
}

// Service debounces page-change events and persists reading positions.
type Service struct {
	store  ProgressRepository
	window time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]*pendingWrite
}

// NewService constructs the progress [Service]. The window is the quiet
// period a reader must hold before their position is written.
func NewService(store ProgressRepository, window time.Duration, logger *slog.Logger) *Service {
	if window <= 0 {
		window = 800 * time.Millisecond
	}

	return &Service{
		store:   store,
		window:  window,
		logger:  logger,
		pending: make(map[string]*pendingWrite),
	}
}

/*
RecordPageChange accepts a page-change event.

Description: Events for the same (user, manga) pair within the debounce
window collapse into a single upsert carrying the latest event's values.
The write happens after the window elapses; this method never blocks on
the store.

Parameters:
  - context: context.Context (validation only; the eventual write outlives
    the request)
  - record: Record (UserID and MangaID are required)

Returns:
  - error: Validation failure. Store failures are logged, never returned.
*/
func (service *Service) RecordPageChange(context context.Context, record Record) error {
	if record.UserID == "" || record.MangaID == "" {
		return apperr.ValidationError("User and manga identifiers are required")
	}

	key := record.key()

	service.mu.Lock()
	if entry, exists := service.pending[key]; exists {
		entry.record = record
		entry.timer.Reset(service.window)
		service.mu.Unlock()

		metrics.RecordProgressCollapsed()
		return nil
	}

	entry := &pendingWrite{record: record}
	entry.timer = time.AfterFunc(service.window, func() { service.flushKey(key) })
	service.pending[key] = entry
	service.mu.Unlock()

	return nil
}

// flushKey writes and clears one debounce bucket. A bucket already flushed
// by Flush is a no-op.
func (service *Service) flushKey(key string) {
	service.mu.Lock()
	entry, exists := service.pending[key]
	if !exists {
		service.mu.Unlock()
		return
	}
	delete(service.pending, key)
	record := entry.record
	service.mu.Unlock()

	service.write(context.Background(), record)
}

// Flush synchronously writes every pending position. Called on shutdown so
// in-window events are not lost with the process.
func (service *Service) Flush() {
	service.mu.Lock()
	records := make([]Record, 0, len(service.pending))
	for key, entry := range service.pending {
		entry.timer.Stop()
		records = append(records, entry.record)
		delete(service.pending, key)
	}
	service.mu.Unlock()

	for _, record := range records {
		service.write(context.Background(), record)
	}
}

// write performs the upsert. Store failures are logged and swallowed; a
// lost position write must never surface to the reading session.
func (service *Service) write(ctx context.Context, record Record) {
	record.UpdatedAt = time.Now().UTC()

	if err := service.store.Upsert(ctx, &record); err != nil {
		metrics.RecordProgressWrite("error")
		service.logger.WarnContext(ctx, "progress_write_failed",
			slog.String("user_id", record.UserID),
			slog.String("manga_id", record.MangaID),
			slog.String("error", err.Error()),
		)
		return
	}

	metrics.RecordProgressWrite("ok")
}

/*
GetProgress returns the stored position of one user in one manga.

Returns:
  - *Record: The stored position
  - error: apperr.NotFound when the user has no history for the manga
*/
func (service *Service) GetProgress(context context.Context, userID, mangaID string) (*Record, error) {
	return service.store.FindByUser(context, userID, mangaID)
}
