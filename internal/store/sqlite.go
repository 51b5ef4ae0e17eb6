package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"moviecat/internal/catalog"
	"moviecat/internal/services"
	"moviecat/internal/textutil"
)

// SQLiteStore persists movies in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode             = 5
	sqliteConstraintUniqueCode = 2067
	busyRetryAttempts          = 5
	busyRetryInitialBackoff    = 10 * time.Millisecond
	busyRetryMaxBackoff        = 200 * time.Millisecond
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteConstraintUniqueCode {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *SQLiteStore) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// OpenSQLite initializes or connects to the movie database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// A single connection keeps the per-connection pragmas in force.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// List returns every movie in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]catalog.Movie, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []catalog.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

// Exists reports whether a movie with title is stored.
func (s *SQLiteStore) Exists(ctx context.Context, title string) (bool, error) {
	ctx = ensureContext(ctx)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM movies WHERE title_key = ?", textutil.TitleKey(title)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check movie exists: %w", err)
	}
	return count > 0, nil
}

// Get returns the movie matching title.
func (s *SQLiteStore) Get(ctx context.Context, title string) (catalog.Movie, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE title_key = ?", textutil.TitleKey(title))
	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Movie{}, notFound("get", title)
	}
	if err != nil {
		return catalog.Movie{}, fmt.Errorf("get movie: %w", err)
	}
	return movie, nil
}

// Insert stores a new movie. Titles that fold to an existing key are
// rejected with services.ErrDuplicate.
func (s *SQLiteStore) Insert(ctx context.Context, movie catalog.Movie) error {
	if err := validateForInsert(movie); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(ctx,
		`INSERT INTO movies (title, title_key, year, rating, poster_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		movie.Title,
		movie.Key(),
		movie.Year,
		movie.Rating,
		nullableString(movie.PosterURL),
		now,
		now,
	)
	if isUniqueViolation(err) {
		return duplicate(movie.Title)
	}
	if err != nil {
		return services.Wrap(services.ErrTransient, component, "insert", "write movie", err)
	}
	return nil
}

// Delete removes the movie matching title.
func (s *SQLiteStore) Delete(ctx context.Context, title string) error {
	res, err := s.execWithRetry(ctx, "DELETE FROM movies WHERE title_key = ?", textutil.TitleKey(title))
	if err != nil {
		return services.Wrap(services.ErrTransient, component, "delete", "remove movie", err)
	}
	return requireAffected(res, "delete", title)
}

// UpdateRating replaces the rating of the movie matching title.
func (s *SQLiteStore) UpdateRating(ctx context.Context, title string, rating float64) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	res, err := s.execWithRetry(ctx,
		"UPDATE movies SET rating = ?, updated_at = ? WHERE title_key = ?",
		rating,
		time.Now().UTC().Format(time.RFC3339Nano),
		textutil.TitleKey(title),
	)
	if err != nil {
		return services.Wrap(services.ErrTransient, component, "update rating", "write rating", err)
	}
	return requireAffected(res, "update rating", title)
}

func requireAffected(res sql.Result, operation, title string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return notFound(operation, title)
	}
	return nil
}
