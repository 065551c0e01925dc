// Package gallery keeps a SQLite catalog of every piece the studio
// renders, with thumbnail generation for the PNG entries.
package gallery

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when no piece carries the requested id.
	ErrNotFound = errors.New("gallery: piece not found")

	// ErrUnsupported is returned for operations on formats the gallery
	// cannot process, like thumbnailing an SVG.
	ErrUnsupported = errors.New("gallery: unsupported format")
)

// Piece is one catalog entry: a rendered graph, score, or sketch on
// disk.
type Piece struct {
	ID        string
	Kind      string // "graph", "score", or "sketch"
	Title     string
	Path      string
	Format    string // "png", "svg", "ly", "dot"
	Seed      int64
	Width     int
	Height    int
	CreatedAt time.Time
	Meta      map[string]string
}

// Store is the SQLite-backed catalog.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// Open creates the catalog database at path, making parent directories
// as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("gallery: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("gallery: open database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("gallery: pragma: %w", err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS pieces (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		title TEXT,
		path TEXT NOT NULL,
		format TEXT NOT NULL,
		seed INTEGER DEFAULT 0,
		width INTEGER DEFAULT 0,
		height INTEGER DEFAULT 0,
		created_at DATETIME NOT NULL,
		meta TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_pieces_kind ON pieces(kind);
	CREATE INDEX IF NOT EXISTS idx_pieces_created ON pieces(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("gallery: create schema: %w", err)
	}
	return nil
}

// Add inserts a piece, assigning an id and creation time when empty.
func (s *Store) Add(ctx context.Context, p *Piece) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	meta, err := json.Marshal(p.Meta)
	if err != nil {
		return fmt.Errorf("gallery: marshal meta: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pieces (id, kind, title, path, format, seed, width, height, created_at, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Kind, p.Title, p.Path, p.Format, p.Seed, p.Width, p.Height,
		p.CreatedAt.Format(time.RFC3339Nano), string(meta))
	if err != nil {
		return fmt.Errorf("gallery: insert piece: %w", err)
	}
	return nil
}

// Get returns the piece with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Piece, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, title, path, format, seed, width, height, created_at, meta
		FROM pieces WHERE id = ?`, id)
	return scanPiece(row)
}

// Filter narrows List results. A zero Filter lists everything.
type Filter struct {
	Kind  string
	Limit int // <= 0 means no limit
}

// List returns pieces newest-first.
func (s *Store) List(ctx context.Context, f Filter) ([]*Piece, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, kind, title, path, format, seed, width, height, created_at, meta
		FROM pieces`
	var args []any
	if f.Kind != "" {
		query += " WHERE kind = ?"
		args = append(args, f.Kind)
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("gallery: list pieces: %w", err)
	}
	defer rows.Close()

	var pieces []*Piece
	for rows.Next() {
		p, err := scanPiece(rows)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, p)
	}
	return pieces, rows.Err()
}

// Delete removes a piece record. The rendered file stays on disk.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM pieces WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("gallery: delete piece: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Thumbnail scales the piece's PNG so its longest edge is maxEdge and
// writes it next to the original as <path>.thumb.png, returning the
// thumbnail path. Non-PNG pieces return ErrUnsupported.
func (s *Store) Thumbnail(ctx context.Context, id string, maxEdge int) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if p.Format != "png" {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, p.Format)
	}
	if maxEdge < 1 {
		return "", fmt.Errorf("gallery: max edge %d", maxEdge)
	}

	f, err := os.Open(p.Path)
	if err != nil {
		return "", fmt.Errorf("gallery: open piece file: %w", err)
	}
	defer f.Close()
	src, err := png.Decode(f)
	if err != nil {
		return "", fmt.Errorf("gallery: decode piece: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	thumbPath := p.Path + ".thumb.png"
	out, err := os.Create(thumbPath)
	if err != nil {
		return "", fmt.Errorf("gallery: create thumbnail: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, dst); err != nil {
		return "", fmt.Errorf("gallery: encode thumbnail: %w", err)
	}
	return thumbPath, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPiece(row scanner) (*Piece, error) {
	var p Piece
	var created, meta string
	err := row.Scan(&p.ID, &p.Kind, &p.Title, &p.Path, &p.Format,
		&p.Seed, &p.Width, &p.Height, &created, &meta)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gallery: scan piece: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("gallery: parse created_at: %w", err)
	}
	if meta != "" && meta != "null" {
		if err := json.Unmarshal([]byte(meta), &p.Meta); err != nil {
			return nil, fmt.Errorf("gallery: parse meta: %w", err)
		}
	}
	return &p, nil
}
