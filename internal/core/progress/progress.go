// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

/*
Package progress persists per-user reading positions.

Page-change events arrive at page-flip speed, far faster than anyone needs
them durable. The service collapses bursts per (user, manga) pair and writes
only the newest position once the reader settles; a write lost to a store
outage costs at most one page of progress and never blocks rendering.
*/
package progress

import "time"

// Record is one user's reading position within one manga. A single logical
// record exists per (UserID, MangaID) pair; every write overwrites the last.
type Record struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	MangaID       string    `json:"manga_id"`
	ChapterID     string    `json:"chapter_id"`
	ChapterNumber string    `json:"chapter_number"`
	PageIndex     int       `json:"page_index"`
	TotalPages    int       `json:"total_pages"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// key identifies the debounce bucket for a record.
func (record Record) key() string {
	return record.UserID + ":" + record.MangaID
}
