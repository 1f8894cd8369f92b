// Package store persists the result of a sync run into an embedded sqlite
// database, giving downstream consumers a queryable local snapshot. Each
// save replaces the previous snapshot in one transaction.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonesrussell/spacesync/internal/domain"
	"github.com/jonesrussell/spacesync/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	kind      TEXT NOT NULL,
	id        TEXT NOT NULL,
	remote_id TEXT NOT NULL,
	data      TEXT NOT NULL,
	PRIMARY KEY (kind, id)
);
CREATE TABLE IF NOT EXISTS sync_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Record kinds beyond the remote ones, used for store rows only.
const kindLocale = "Locale"

// Store is a sqlite-backed snapshot store.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

// Open opens (creating if needed) the snapshot database at path.
func Open(path string, log logger.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot schema: %w", err)
	}

	return &Store{db: db, logger: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with the given result. Resolved entry
// graphs may be cyclic, so entries and assets are persisted with their links
// re-stubbed into placeholders.
func (s *Store) Save(ctx context.Context, result *domain.Result) error {
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear previous snapshot: %w", err)
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO records (kind, id, remote_id, data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer insert.Close()

	snapshot := result.CurrentSyncData
	for _, e := range snapshot.Entries {
		stubbed := domain.Entry{Sys: e.Sys, Fields: domain.StubFields(e.Fields)}
		if err := insertRecord(ctx, insert, domain.KindEntry, e.Sys, stubbed); err != nil {
			return err
		}
	}
	for _, a := range snapshot.Assets {
		stubbed := domain.Asset{Sys: a.Sys, Fields: domain.StubFields(a.Fields)}
		if err := insertRecord(ctx, insert, domain.KindAsset, a.Sys, stubbed); err != nil {
			return err
		}
	}
	for _, ct := range result.ContentTypeItems {
		if err := insertRecord(ctx, insert, domain.KindContentType, ct.Sys, ct); err != nil {
			return err
		}
	}
	for _, l := range result.Locales {
		data, marshalErr := json.Marshal(l)
		if marshalErr != nil {
			return fmt.Errorf("marshal locale %s: %w", l.Code, marshalErr)
		}
		if _, err := insert.ExecContext(ctx, kindLocale, l.Code, l.Code, string(data)); err != nil {
			return fmt.Errorf("insert locale %s: %w", l.Code, err)
		}
	}

	if err := setMeta(ctx, tx, "default_locale", result.DefaultLocale); err != nil {
		return err
	}
	if err := setMeta(ctx, tx, "synced_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot save: %w", err)
	}

	s.logger.Info("Saved snapshot",
		logger.Int("entry_count", len(snapshot.Entries)),
		logger.Int("asset_count", len(snapshot.Assets)),
		logger.Int("content_type_count", len(result.ContentTypeItems)),
		logger.Duration("duration", time.Since(start)),
	)

	return nil
}

func insertRecord(ctx context.Context, insert *sql.Stmt, kind string, sys domain.Sys, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", kind, sys.ID, err)
	}
	if _, err := insert.ExecContext(ctx, kind, sys.ID, sys.RemoteIdentifier(), string(data)); err != nil {
		return fmt.Errorf("insert %s %s: %w", kind, sys.ID, err)
	}
	return nil
}

func setMeta(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO sync_meta (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("set meta %s: %w", key, err)
	}
	return nil
}

// Summary reports how many records of each kind the store holds.
func (s *Store) Summary(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM records GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("summarize snapshot: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan snapshot summary: %w", err)
		}
		counts[kind] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize snapshot: %w", err)
	}
	return counts, nil
}

// DefaultLocale returns the stored default locale, or empty when no snapshot
// has been saved.
func (s *Store) DefaultLocale(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM sync_meta WHERE key = 'default_locale'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read default locale: %w", err)
	}
	return value, nil
}
