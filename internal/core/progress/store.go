// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package progress

import "context"

// # Progress Data Access

// ProgressRepository defines the data access contract for reading positions.
type ProgressRepository interface {

	/*
		Upsert writes a reading position, replacing any existing record for
		the same (UserID, MangaID) pair.

		Parameters:
		  - context: context.Context
		  - record: *Record (ID is assigned on first insert)

		Returns:
		  - error: Storage failure
	*/
	Upsert(context context.Context, record *Record) error

	/*
		FindByUser returns the stored position of one user in one manga.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)
		  - mangaID: string (UUID)

		Returns:
		  - *Record: Hydrated position
		  - error: ErrNotFound when the user has no history for the manga
	*/
	FindByUser(context context.Context, userID, mangaID string) (*Record, error)
}
