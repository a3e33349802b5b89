// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeebo/blake3"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/hearth/lib/clock"
	"github.com/bureau-foundation/hearth/lib/codec"
	"github.com/bureau-foundation/hearth/lib/layout"
	"github.com/bureau-foundation/hearth/lib/sqlitepool"
)

// DefaultRevisionLimit is the number of revisions kept per profile
// when Config.RevisionLimit is zero.
const DefaultRevisionLimit = 50

var (
	// ErrProfileName is returned for an empty profile name.
	ErrProfileName = errors.New("profile name is required")

	// ErrRevisionNotFound is returned when a revision sequence does
	// not exist for the profile.
	ErrRevisionNotFound = errors.New("revision not found")
)

const schema = `
	CREATE TABLE IF NOT EXISTS layouts (
		profile    TEXT PRIMARY KEY,
		document   TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS layout_revisions (
		profile     TEXT NOT NULL,
		sequence    INTEGER NOT NULL,
		hash        TEXT NOT NULL,
		compression TEXT NOT NULL,
		size        INTEGER NOT NULL,
		blob        BLOB NOT NULL,
		created_at  INTEGER NOT NULL,
		PRIMARY KEY (profile, sequence)
	);
`

// Config holds the parameters for opening a Store.
type Config struct {
	// Path is the SQLite database file. The parent directory must
	// exist.
	Path string

	// PoolSize defaults to 2. The store is used by one CLI process at
	// a time; a second connection lets a read overlap a save.
	PoolSize int

	// MinFlex is the flex floor loaded documents are validated
	// against. Zero means layout.MinFlex.
	MinFlex float64

	// RevisionLimit caps stored revisions per profile. Zero means
	// DefaultRevisionLimit; negative keeps every revision.
	RevisionLimit int

	// Compression is the preferred algorithm for revision blobs. The
	// empty value selects zstd.
	Compression Compression

	Clock  clock.Clock
	Logger *slog.Logger
}

// Store persists layout documents per profile, with a bounded history
// of revisions. The current layout of a profile is stored as its JSON
// document, the same form `layout export` prints. Revisions are
// deterministic CBOR, compressed, and deduplicated by blake3 hash
// against the latest revision.
//
// Store is safe for concurrent use.
type Store struct {
	pool          *sqlitepool.Pool
	clock         clock.Clock
	logger        *slog.Logger
	minFlex       float64
	revisionLimit int
	compression   Compression
}

// Open opens (creating if needed) the settings database.
func Open(cfg Config) (*Store, error) {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 2
	}
	if cfg.MinFlex <= 0 {
		cfg.MinFlex = layout.MinFlex
	}
	if cfg.RevisionLimit == 0 {
		cfg.RevisionLimit = DefaultRevisionLimit
	}
	compression, err := ParseCompression(string(cfg.Compression))
	if err != nil {
		return nil, fmt.Errorf("settings store: %w", err)
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: cfg.PoolSize,
		Logger:   logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("settings store: %w", err)
	}

	return &Store{
		pool:          pool,
		clock:         cfg.Clock,
		logger:        logger,
		minFlex:       cfg.MinFlex,
		revisionLimit: cfg.RevisionLimit,
		compression:   compression,
	}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// Layout is a profile's current layout as loaded from the store.
type Layout struct {
	Profile string
	Tree    *layout.Section

	// Stored is false when the profile has never been saved and Tree
	// is the default layout.
	Stored bool

	// Recovered is true when the stored document was malformed and
	// Tree is the default layout in its place. The stored document
	// is left untouched until the next save.
	Recovered bool

	UpdatedAt time.Time
}

// LoadLayout returns the current layout for profile. A profile that
// was never saved, or whose document is malformed, yields the default
// tree; neither is an error. A stored child whose flex is below the
// store's MinFlex, saved before the floor was raised, is raised to the
// floor rather than discarding the layout.
func (s *Store) LoadLayout(ctx context.Context, profile string) (Layout, error) {
	if profile == "" {
		return Layout{}, ErrProfileName
	}
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return Layout{}, fmt.Errorf("settings store: load layout: %w", err)
	}
	defer s.pool.Put(conn)

	result := Layout{Profile: profile}
	var document []byte
	err = sqlitex.Execute(conn,
		"SELECT document, updated_at FROM layouts WHERE profile = ?",
		&sqlitex.ExecOptions{
			Args: []any{profile},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				document = []byte(stmt.ColumnText(0))
				result.UpdatedAt = time.Unix(0, stmt.ColumnInt64(1)).UTC()
				result.Stored = true
				return nil
			},
		})
	if err != nil {
		return Layout{}, fmt.Errorf("settings store: load layout %q: %w", profile, err)
	}

	if !result.Stored {
		result.Tree = layout.Default()
		return result, nil
	}
	result.Tree, result.Recovered = layout.Load(document, s.minFlex, s.logger.With("profile", profile))
	return result, nil
}

// SaveResult describes the outcome of a save.
type SaveResult struct {
	// Sequence is the profile's latest revision after the save.
	Sequence int64

	// NewRevision is false when the tree matched the latest revision
	// and no revision was recorded.
	NewRevision bool

	// Trimmed counts revisions dropped to honor the revision limit.
	Trimmed int
}

// SaveLayout validates tree and makes it the current layout for
// profile. A new revision is recorded unless the tree is identical to
// the latest one; history beyond the revision limit is deleted
// oldest first.
func (s *Store) SaveLayout(ctx context.Context, profile string, tree *layout.Section) (result SaveResult, err error) {
	if profile == "" {
		return SaveResult{}, ErrProfileName
	}
	if err := layout.Validate(tree, s.minFlex); err != nil {
		return SaveResult{}, fmt.Errorf("settings store: refusing to save profile %q: %w", profile, err)
	}

	document, err := layout.Marshal(tree)
	if err != nil {
		return SaveResult{}, fmt.Errorf("settings store: encoding document: %w", err)
	}
	snapshot, err := codec.Marshal(tree)
	if err != nil {
		return SaveResult{}, fmt.Errorf("settings store: encoding revision: %w", err)
	}
	sum := blake3.Sum256(snapshot)
	hash := hex.EncodeToString(sum[:])

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return SaveResult{}, fmt.Errorf("settings store: save layout: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return SaveResult{}, fmt.Errorf("settings store: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	now := s.clock.Now().UnixNano()
	err = sqlitex.Execute(conn, `
		INSERT INTO layouts (profile, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (profile) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		&sqlitex.ExecOptions{Args: []any{profile, string(document), now}})
	if err != nil {
		return SaveResult{}, fmt.Errorf("settings store: writing layout %q: %w", profile, err)
	}

	latestSequence, latestHash, err := latestRevision(conn, profile)
	if err != nil {
		return SaveResult{}, err
	}
	if latestHash == hash {
		s.logger.Debug("layout unchanged since last revision", "profile", profile, "sequence", latestSequence)
		return SaveResult{Sequence: latestSequence}, nil
	}

	blob, algorithm, err := compress(snapshot, s.compression)
	if err != nil {
		return SaveResult{}, fmt.Errorf("settings store: compressing revision: %w", err)
	}
	sequence := latestSequence + 1
	err = sqlitex.Execute(conn, `
		INSERT INTO layout_revisions (profile, sequence, hash, compression, size, blob, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{profile, sequence, hash, string(algorithm), len(snapshot), blob, now}})
	if err != nil {
		return SaveResult{}, fmt.Errorf("settings store: writing revision: %w", err)
	}

	trimmed := 0
	if s.revisionLimit > 0 {
		err = sqlitex.Execute(conn,
			"DELETE FROM layout_revisions WHERE profile = ? AND sequence <= ?",
			&sqlitex.ExecOptions{Args: []any{profile, sequence - int64(s.revisionLimit)}})
		if err != nil {
			return SaveResult{}, fmt.Errorf("settings store: trimming revisions: %w", err)
		}
		trimmed = conn.Changes()
	}

	s.logger.Info("layout saved",
		"profile", profile,
		"sequence", sequence,
		"panes", tree.CountPanes(),
		"compression", string(algorithm),
		"size", len(snapshot),
		"stored_size", len(blob),
		"trimmed", trimmed,
	)
	return SaveResult{Sequence: sequence, NewRevision: true, Trimmed: trimmed}, nil
}

func latestRevision(conn *sqlite.Conn, profile string) (sequence int64, hash string, err error) {
	err = sqlitex.Execute(conn,
		"SELECT sequence, hash FROM layout_revisions WHERE profile = ? ORDER BY sequence DESC LIMIT 1",
		&sqlitex.ExecOptions{
			Args: []any{profile},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				sequence = stmt.ColumnInt64(0)
				hash = stmt.ColumnText(1)
				return nil
			},
		})
	if err != nil {
		return 0, "", fmt.Errorf("settings store: reading latest revision: %w", err)
	}
	return sequence, hash, nil
}

// Profile summarizes a stored profile.
type Profile struct {
	Name      string
	UpdatedAt time.Time
	Revisions int
}

// ListProfiles returns every stored profile, sorted by name.
func (s *Store) ListProfiles(ctx context.Context) ([]Profile, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings store: list profiles: %w", err)
	}
	defer s.pool.Put(conn)

	var profiles []Profile
	err = sqlitex.Execute(conn, `
		SELECT l.profile, l.updated_at,
			(SELECT COUNT(*) FROM layout_revisions r WHERE r.profile = l.profile)
		FROM layouts l ORDER BY l.profile`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				profiles = append(profiles, Profile{
					Name:      stmt.ColumnText(0),
					UpdatedAt: time.Unix(0, stmt.ColumnInt64(1)).UTC(),
					Revisions: stmt.ColumnInt(2),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("settings store: list profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a profile's layout and history. Loading it
// afterwards yields the default tree. Returns false when the profile
// did not exist.
func (s *Store) DeleteProfile(ctx context.Context, profile string) (deleted bool, err error) {
	if profile == "" {
		return false, ErrProfileName
	}
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return false, fmt.Errorf("settings store: delete profile: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return false, fmt.Errorf("settings store: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	if err = sqlitex.Execute(conn, "DELETE FROM layouts WHERE profile = ?",
		&sqlitex.ExecOptions{Args: []any{profile}}); err != nil {
		return false, fmt.Errorf("settings store: deleting layout %q: %w", profile, err)
	}
	deleted = conn.Changes() > 0
	if err = sqlitex.Execute(conn, "DELETE FROM layout_revisions WHERE profile = ?",
		&sqlitex.ExecOptions{Args: []any{profile}}); err != nil {
		return false, fmt.Errorf("settings store: deleting revisions of %q: %w", profile, err)
	}
	if deleted {
		s.logger.Info("profile deleted", "profile", profile)
	}
	return deleted, nil
}

// Revision describes one stored revision.
type Revision struct {
	Sequence    int64
	Hash        string
	Compression Compression
	Size        int // Uncompressed CBOR length.
	StoredSize  int
	CreatedAt   time.Time
}

// Revisions lists a profile's revisions, newest first.
func (s *Store) Revisions(ctx context.Context, profile string) ([]Revision, error) {
	if profile == "" {
		return nil, ErrProfileName
	}
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings store: list revisions: %w", err)
	}
	defer s.pool.Put(conn)

	var revisions []Revision
	err = sqlitex.Execute(conn, `
		SELECT sequence, hash, compression, size, length(blob), created_at
		FROM layout_revisions WHERE profile = ? ORDER BY sequence DESC`,
		&sqlitex.ExecOptions{
			Args: []any{profile},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				revisions = append(revisions, Revision{
					Sequence:    stmt.ColumnInt64(0),
					Hash:        stmt.ColumnText(1),
					Compression: Compression(stmt.ColumnText(2)),
					Size:        stmt.ColumnInt(3),
					StoredSize:  stmt.ColumnInt(4),
					CreatedAt:   time.Unix(0, stmt.ColumnInt64(5)).UTC(),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("settings store: list revisions of %q: %w", profile, err)
	}
	return revisions, nil
}

// RevisionSnapshot returns the decompressed CBOR encoding of one
// revision.
func (s *Store) RevisionSnapshot(ctx context.Context, profile string, sequence int64) ([]byte, error) {
	if profile == "" {
		return nil, ErrProfileName
	}
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings store: load revision: %w", err)
	}
	defer s.pool.Put(conn)

	var (
		found     bool
		algorithm Compression
		size      int
		blob      []byte
	)
	err = sqlitex.Execute(conn,
		"SELECT compression, size, blob FROM layout_revisions WHERE profile = ? AND sequence = ?",
		&sqlitex.ExecOptions{
			Args: []any{profile, sequence},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				algorithm = Compression(stmt.ColumnText(0))
				size = stmt.ColumnInt(1)
				blob = make([]byte, stmt.ColumnLen(2))
				stmt.ColumnBytes(2, blob)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("settings store: load revision %d of %q: %w", sequence, profile, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q sequence %d", ErrRevisionNotFound, profile, sequence)
	}

	snapshot, err := decompress(blob, algorithm, size)
	if err != nil {
		return nil, fmt.Errorf("settings store: revision %d of %q: %w", sequence, profile, err)
	}
	return snapshot, nil
}

// LoadRevision decodes one revision's tree.
func (s *Store) LoadRevision(ctx context.Context, profile string, sequence int64) (*layout.Section, error) {
	snapshot, err := s.RevisionSnapshot(ctx, profile, sequence)
	if err != nil {
		return nil, err
	}
	var tree layout.Section
	if err := codec.Unmarshal(snapshot, &tree); err != nil {
		return nil, fmt.Errorf("settings store: decoding revision %d of %q: %w", sequence, profile, err)
	}
	// Revisions may predate a raised floor: check shape, then raise.
	if err := layout.Validate(&tree, 0); err != nil {
		return nil, fmt.Errorf("settings store: revision %d of %q: %w", sequence, profile, err)
	}
	raised, _ := layout.RaiseToFloor(&tree, s.minFlex)
	return raised, nil
}

// RestoreRevision makes an earlier revision the current layout. The
// restore is itself saved, so it appears as the newest revision.
func (s *Store) RestoreRevision(ctx context.Context, profile string, sequence int64) (*layout.Section, SaveResult, error) {
	tree, err := s.LoadRevision(ctx, profile, sequence)
	if err != nil {
		return nil, SaveResult{}, err
	}
	result, err := s.SaveLayout(ctx, profile, tree)
	if err != nil {
		return nil, SaveResult{}, err
	}
	s.logger.Info("revision restored", "profile", profile, "from", sequence, "sequence", result.Sequence)
	return tree, result, nil
}
