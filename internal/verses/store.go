// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verses reads books, chapters, and verses from the KJV-PCE SQLite
// database. The database is opened read-only; its schema is owned
// elsewhere:
//
//	Books(BookID, BookName)
//	Chapters(BookID, Chapter)
//	Verses(BookID, Chapter, Verse, VText)
//	Scrivener(BookID, Chapter, Verse)   -- one row per paragraph start
package verses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/metcalfeakj/KJV-PCE/pkg/types"
)

// Store is a read-only view of the scripture database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path in read-only mode. The file must exist.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening scripture database: %w", err)
	}

	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, fmt.Errorf("opening scripture database: %w", err)
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening scripture database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to scripture database %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// readOnlyDSN builds a file: URI for path with mode=ro. The path is made
// absolute and percent-encoded so that '#' and '?' in directory names stay
// part of the file name instead of starting a fragment or query.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// BookID resolves a book name to its identifier. An unknown name returns
// a *NotFoundError.
func (s *Store) BookID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT BookID FROM Books WHERE BookName = ?`, name,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, bookNotFound(name)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up book %q: %w", name, err)
	}
	return id, nil
}

// Books returns every book name in BookID order.
func (s *Store) Books(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT BookName FROM Books ORDER BY BookID`)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Chapters returns the chapter numbers of a book in ascending order.
func (s *Store) Chapters(ctx context.Context, bookID int64) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT Chapter FROM Chapters WHERE BookID = ? ORDER BY Chapter`, bookID)
	if err != nil {
		return nil, fmt.Errorf("listing chapters for book %d: %w", bookID, err)
	}
	defer rows.Close()

	var chapters []int
	for rows.Next() {
		var ch int
		if err := rows.Scan(&ch); err != nil {
			return nil, fmt.Errorf("scanning chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// Verses returns the verses of one chapter ordered by verse number. A
// verse starts a paragraph when a matching Scrivener row exists. An empty
// chapter yields an empty slice, not an error.
func (s *Store) Verses(ctx context.Context, bookID int64, chapter int) ([]types.Verse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT V.Verse, V.VText,
		       CASE WHEN S.BookID IS NOT NULL THEN 1 ELSE 0 END AS HasPilcrow
		FROM Verses V
		LEFT JOIN Scrivener S
		       ON V.BookID = S.BookID AND V.Chapter = S.Chapter AND V.Verse = S.Verse
		WHERE V.BookID = ? AND V.Chapter = ?
		ORDER BY V.Verse`, bookID, chapter)
	if err != nil {
		return nil, fmt.Errorf("querying verses for book %d chapter %d: %w", bookID, chapter, err)
	}
	defer rows.Close()

	var verses []types.Verse
	for rows.Next() {
		var (
			v       types.Verse
			pilcrow int
		)
		if err := rows.Scan(&v.Number, &v.Text, &pilcrow); err != nil {
			return nil, fmt.Errorf("scanning verse: %w", err)
		}
		v.ParagraphStart = pilcrow != 0
		verses = append(verses, v)
	}
	return verses, rows.Err()
}
