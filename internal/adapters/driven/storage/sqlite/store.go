package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/wsimport/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/wsimport/internal/codec"
	"github.com/custodia-labs/wsimport/internal/core/domain"
	"github.com/custodia-labs/wsimport/internal/core/ports/driven"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// DatabaseFileName is the name of the database file in the data dir.
const DatabaseFileName = "workspace.db"

// WorkspaceStore is a SQLite-backed implementation of driven.WorkspaceStore.
// The workspace is loaded into memory on open; every successful Update
// writes the changed contributions back in one transaction.
type WorkspaceStore struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
	ws   *domain.Workspace

	// docs holds the encoded form of each persisted contribution.
	docs map[string][]byte
}

// Contribution describes one persisted folder row.
type Contribution struct {
	Folder     string
	RunID      string
	ImportedAt time.Time
}

// NewWorkspaceStore opens or creates the store in dataDir.
// If dataDir is empty, defaults to ~/.wsimport/data.
func NewWorkspaceStore(dataDir string) (*WorkspaceStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wsimport", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &WorkspaceStore{
		db:   db,
		path: dbPath,
		ws:   domain.NewWorkspace(),
		docs: make(map[string][]byte),
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if err := s.load(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading workspace: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *WorkspaceStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *WorkspaceStore) Path() string {
	return s.path
}

// Update runs fn on a copy of the workspace under the writer lock. When fn
// succeeds the changes are persisted and the copy becomes current.
func (s *WorkspaceStore) Update(ctx context.Context, fn func(ws *domain.Workspace) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	draft := s.ws.Clone()
	if err := fn(draft); err != nil {
		return err
	}

	docs, err := s.persist(ctx, draft)
	if err != nil {
		return err
	}

	s.ws = draft
	s.docs = docs
	return nil
}

// View runs fn under the reader lock.
func (s *WorkspaceStore) View(ctx context.Context, fn func(ws *domain.Workspace) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.ws)
}

// Contributions lists the persisted folder rows ordered by folder.
func (s *WorkspaceStore) Contributions(ctx context.Context) ([]Contribution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT folder, run_id, imported_at FROM contributions ORDER BY folder
	`)
	if err != nil {
		return nil, fmt.Errorf("querying contributions: %w", err)
	}
	defer rows.Close()

	var out []Contribution
	for rows.Next() {
		var c Contribution
		if err := rows.Scan(&c.Folder, &c.RunID, &c.ImportedAt); err != nil {
			return nil, fmt.Errorf("scanning contribution: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// load reads every contribution and the default SDK into memory.
func (s *WorkspaceStore) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "SELECT folder, document FROM contributions")
	if err != nil {
		return fmt.Errorf("querying contributions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var folder string
		var doc []byte
		if err := rows.Scan(&folder, &doc); err != nil {
			return fmt.Errorf("scanning contribution: %w", err)
		}
		g, err := codec.Decode(doc)
		if err != nil {
			return fmt.Errorf("decoding contribution %s: %w", folder, err)
		}
		s.ws.Contributions[folder] = g
		s.docs[folder] = doc
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var sdk domain.SDK
	err = s.db.QueryRowContext(ctx, `
		SELECT name, version, home_path FROM default_sdk WHERE id = 1
	`).Scan(&sdk.Name, &sdk.Version, &sdk.HomePath)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("querying default sdk: %w", err)
	default:
		s.ws.DefaultSDK = &sdk
	}
	return nil
}

// persist writes the difference between the stored workspace and ws.
// It returns the encoded contributions of ws.
func (s *WorkspaceStore) persist(ctx context.Context, ws *domain.Workspace) (map[string][]byte, error) {
	// 1. Encode the draft; unchanged folders keep their row
	docs := make(map[string][]byte, len(ws.Contributions))
	var changed []string
	for _, folder := range ws.Folders() {
		doc, err := codec.Encode(ws.Contributions[folder])
		if err != nil {
			return nil, fmt.Errorf("encoding contribution %s: %w", folder, err)
		}
		docs[folder] = doc
		if prev, ok := s.docs[folder]; !ok || !bytes.Equal(prev, doc) {
			changed = append(changed, folder)
		}
	}

	var removed []string
	for folder := range s.docs {
		if _, ok := docs[folder]; !ok {
			removed = append(removed, folder)
		}
	}
	sort.Strings(removed)

	sdkChanged := !sameSDK(s.ws.DefaultSDK, ws.DefaultSDK)
	if len(changed) == 0 && len(removed) == 0 && !sdkChanged {
		return docs, nil
	}

	// 2. Apply in one transaction
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	runID := uuid.NewString()
	now := time.Now().UTC()
	for _, folder := range changed {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO contributions (folder, run_id, document, imported_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(folder) DO UPDATE SET
				run_id = excluded.run_id,
				document = excluded.document,
				imported_at = excluded.imported_at
		`, folder, runID, docs[folder], now)
		if err != nil {
			return nil, fmt.Errorf("saving contribution %s: %w", folder, err)
		}
	}

	for _, folder := range removed {
		if _, err := tx.ExecContext(ctx, "DELETE FROM contributions WHERE folder = ?", folder); err != nil {
			return nil, fmt.Errorf("deleting contribution %s: %w", folder, err)
		}
	}

	if sdkChanged {
		if err := saveDefaultSDK(ctx, tx, ws.DefaultSDK); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return docs, nil
}

func saveDefaultSDK(ctx context.Context, tx *sql.Tx, sdk *domain.SDK) error {
	if sdk == nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM default_sdk"); err != nil {
			return fmt.Errorf("clearing default sdk: %w", err)
		}
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO default_sdk (id, name, version, home_path)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			home_path = excluded.home_path
	`, sdk.Name, sdk.Version, sdk.HomePath)
	if err != nil {
		return fmt.Errorf("saving default sdk: %w", err)
	}
	return nil
}

func sameSDK(a, b *domain.SDK) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// migrate applies every NNN_name.up.sql in fsys newer than the recorded
// schema version. Each file and its version row commit together.
func (s *WorkspaceStore) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			return fmt.Errorf("migration %s: missing version prefix", name)
		}
		if version <= current {
			continue
		}
		if err := s.applyMigration(fsys, name, version); err != nil {
			return err
		}
	}
	return nil
}

func (s *WorkspaceStore) applyMigration(fsys fs.FS, name string, version int) error {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading migration %s: %w", name, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("executing migration %s: %w", name, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("recording migration %s: %w", name, err)
	}
	return tx.Commit()
}
