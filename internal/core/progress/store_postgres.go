// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GYCODES/manga-translate/internal/platform/database/schema"
	"github.com/GYCODES/manga-translate/internal/platform/dberr"
	"github.com/GYCODES/manga-translate/pkg/uuid"
)

// # PostgreSQL Repository

// DB is the subset of [pgxpool.Pool] the progress store touches, declared
// here so tests can substitute a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// progressRepository implements [ProgressRepository] using pgx.
type progressRepository struct {
	pool DB
}

// NewProgressRepository constructs a PostgreSQL backed progress store.
func NewProgressRepository(pool DB) ProgressRepository {
	return &progressRepository{pool: pool}
}

/*
Upsert persists a reading position.

Description: Inserts a fresh record or, when the (userid, mangaid) pair
already exists, overwrites the position columns in place. The row ID
assigned on first insert survives later overwrites.
*/
func (repository *progressRepository) Upsert(context context.Context, record *Record) error {
	if record.ID == "" {
		record.ID = uuid.New()
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s
	`,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.ID,
		schema.LibraryReadingProgress.UserID,
		schema.LibraryReadingProgress.MangaID,
		schema.LibraryReadingProgress.ChapterID,
		schema.LibraryReadingProgress.ChapterNumber,
		schema.LibraryReadingProgress.PageIndex,
		schema.LibraryReadingProgress.TotalPages,
		schema.LibraryReadingProgress.UpdatedAt,
		schema.LibraryReadingProgress.UserID,
		schema.LibraryReadingProgress.MangaID,
		schema.LibraryReadingProgress.ChapterID, schema.LibraryReadingProgress.ChapterID,
		schema.LibraryReadingProgress.ChapterNumber, schema.LibraryReadingProgress.ChapterNumber,
		schema.LibraryReadingProgress.PageIndex, schema.LibraryReadingProgress.PageIndex,
		schema.LibraryReadingProgress.TotalPages, schema.LibraryReadingProgress.TotalPages,
		schema.LibraryReadingProgress.UpdatedAt, schema.LibraryReadingProgress.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		record.ID,
		record.UserID,
		record.MangaID,
		record.ChapterID,
		record.ChapterNumber,
		record.PageIndex,
		record.TotalPages,
		record.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "upsert_reading_progress")
	}

	return nil
}

/*
FindByUser retrieves the stored position of one user in one manga.
*/
func (repository *progressRepository) FindByUser(context context.Context, userID, mangaID string) (*Record, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.LibraryReadingProgress.ID,
		schema.LibraryReadingProgress.UserID,
		schema.LibraryReadingProgress.MangaID,
		schema.LibraryReadingProgress.ChapterID,
		schema.LibraryReadingProgress.ChapterNumber,
		schema.LibraryReadingProgress.PageIndex,
		schema.LibraryReadingProgress.TotalPages,
		schema.LibraryReadingProgress.UpdatedAt,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.UserID,
		schema.LibraryReadingProgress.MangaID,
	)

	record := &Record{}
	err := repository.pool.QueryRow(context, query, userID, mangaID).Scan(
		&record.ID,
		&record.UserID,
		&record.MangaID,
		&record.ChapterID,
		&record.ChapterNumber,
		&record.PageIndex,
		&record.TotalPages,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_reading_progress")
	}

	return record, nil
}
