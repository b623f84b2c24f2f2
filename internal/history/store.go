// Package history keeps design runs in a SQLite database so that a design
// can be listed and shown again later.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

// ErrNotFound is returned when no record matches an id.
var ErrNotFound = errors.New("design record not found")

// ErrAmbiguous is returned when an id prefix matches several records.
var ErrAmbiguous = errors.New("design id prefix is ambiguous")

// Record is one saved design.
type Record struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Member    design.Member   `json:"member"`
	Code      code.ID         `json:"code"`
	Pass      bool            `json:"pass"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
}

// Store is a SQLite backed design history.
type Store struct {
	db     *sql.DB
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open creates or opens the database at path, creating its directory.
func Open(path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("history %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("set history version: %w", err)
	}

	s := &Store{
		db:     db,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores an input and its result under a new time-ordered id.
func (s *Store) Save(ctx context.Context, in design.Input, r *design.Result) (Record, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Record{}, fmt.Errorf("save design: %w", err)
	}
	input, err := json.Marshal(in)
	if err != nil {
		return Record{}, fmt.Errorf("save design input: %w", err)
	}
	result, err := r.JSON()
	if err != nil {
		return Record{}, fmt.Errorf("save design result: %w", err)
	}

	rec := Record{
		ID:        id.String(),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Member:    r.Member,
		Code:      r.Code,
		Pass:      r.Pass,
		Input:     input,
		Result:    result,
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO designs (id, created_at, member, code, pass, input, result)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.CreatedAt.Format(time.RFC3339Nano),
		string(rec.Member),
		string(rec.Code),
		rec.Pass,
		string(rec.Input),
		string(rec.Result),
	)
	if err != nil {
		return Record{}, fmt.Errorf("save design: %w", err)
	}
	s.logger.Debug("design saved", "id", rec.ID, "member", rec.Member, "code", rec.Code, "pass", rec.Pass)
	return rec, nil
}

// List returns the newest records first. An empty member lists every type;
// limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, member design.Member, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, member, code, pass, input, result
		FROM designs
		WHERE ? = '' OR member = ?
		ORDER BY id DESC
		LIMIT ?
	`, string(member), string(member), limit)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("list designs: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	return records, nil
}

// Get returns the record whose id equals or starts with id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return Record{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, member, code, pass, input, result
		FROM designs
		WHERE id = ? OR substr(id, 1, length(?)) = ?
		ORDER BY id
		LIMIT 2
	`, id, id, id)
	if err != nil {
		return Record{}, fmt.Errorf("get design %s: %w", id, err)
	}
	defer rows.Close()

	var found []Record
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return Record{}, fmt.Errorf("get design %s: %w", id, err)
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("get design %s: %w", id, err)
	}
	switch len(found) {
	case 0:
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return found[0], nil
	}
	return Record{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
}

func scan(rows *sql.Rows) (Record, error) {
	var (
		rec                     Record
		created, member, family string
		input, result           string
	)
	if err := rows.Scan(&rec.ID, &created, &member, &family, &rec.Pass, &input, &result); err != nil {
		return Record{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rec.CreatedAt = t
	rec.Member = design.Member(member)
	rec.Code = code.ID(family)
	rec.Input = json.RawMessage(input)
	rec.Result = json.RawMessage(result)
	return rec, nil
}
