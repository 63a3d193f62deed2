package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tgcore/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driven"
)

// Store owns the SQLite connection and hands out store interfaces backed by it.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.tgcore/data/peers.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tgcore", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "peers.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PeerStore returns a PeerStore interface backed by this store.
func (s *Store) PeerStore() driven.PeerStore {
	return &peerStore{store: s}
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_peers.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// apply executes one migration and records its version atomically.
func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Peer Store ====================

// peerStore implements driven.PeerStore.
type peerStore struct {
	store *Store
}

var _ driven.PeerStore = (*peerStore)(nil)

const peerColumns = `id, type, access_hash, username, phone, name, updated_at`

// Save stores or updates peer records in a single transaction.
func (s *peerStore) Save(ctx context.Context, records []domain.PeerRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO peers (`+peerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			access_hash = CASE WHEN excluded.access_hash = 0 THEN peers.access_hash ELSE excluded.access_hash END,
			username = excluded.username,
			phone = CASE WHEN excluded.phone = '' THEN peers.phone ELSE excluded.phone END,
			name = excluded.name,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing peer upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, rec := range records {
		updatedAt := rec.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, string(rec.Type), rec.AccessHash,
			rec.Username, rec.Phone, rec.Name, updatedAt.UTC()); err != nil {
			return fmt.Errorf("saving peer %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing peers: %w", err)
	}
	return nil
}

// Get retrieves a peer by ID.
func (s *peerStore) Get(ctx context.Context, id int64) (*domain.PeerRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+peerColumns+` FROM peers WHERE id = ?`, id)
	return scanPeer(row)
}

// GetByUsername retrieves a peer by username, ignoring case.
func (s *peerStore) GetByUsername(ctx context.Context, username string) (*domain.PeerRecord, error) {
	if username == "" {
		return nil, domain.ErrNotFound
	}
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+peerColumns+` FROM peers WHERE username = ? COLLATE NOCASE ORDER BY id LIMIT 1`, username)
	return scanPeer(row)
}

// GetByPhone retrieves a user by phone number.
func (s *peerStore) GetByPhone(ctx context.Context, phone string) (*domain.PeerRecord, error) {
	if phone == "" {
		return nil, domain.ErrNotFound
	}
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+peerColumns+` FROM peers WHERE phone = ? ORDER BY id LIMIT 1`, phone)
	return scanPeer(row)
}

// List returns all stored peers ordered by ID.
func (s *peerStore) List(ctx context.Context) ([]domain.PeerRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+peerColumns+` FROM peers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying peers: %w", err)
	}
	defer rows.Close()

	var peers []domain.PeerRecord
	for rows.Next() {
		rec, err := scanPeer(rows)
		if err != nil {
			return nil, err
		}
		peers = append(peers, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating peers: %w", err)
	}
	return peers, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPeer(row scanner) (*domain.PeerRecord, error) {
	var rec domain.PeerRecord
	var chatType string
	var updatedAt sql.NullTime
	if err := row.Scan(&rec.ID, &chatType, &rec.AccessHash, &rec.Username,
		&rec.Phone, &rec.Name, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning peer: %w", err)
	}
	rec.Type = domain.ChatType(chatType)
	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	}
	return &rec, nil
}
