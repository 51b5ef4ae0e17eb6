package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"moviecat/internal/catalog"
	"moviecat/internal/fileutil"
	"moviecat/internal/services"
)

const lockRetryDelay = 25 * time.Millisecond

// JSONStore keeps the catalog in a single JSON array on disk. Every
// operation reads the file under an advisory lock on path+".lock"; writes
// replace the file atomically while holding the exclusive lock.
type JSONStore struct {
	path string
	lock *flock.Flock
}

// OpenJSON prepares a JSON-backed store at path. A missing file is treated
// as an empty catalog and created on the first write.
func OpenJSON(path string) (*JSONStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	s := &JSONStore{path: path, lock: flock.New(path + ".lock")}
	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the JSON document location.
func (s *JSONStore) Path() string {
	return s.path
}

// Close releases any lock still held.
func (s *JSONStore) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Close()
}

func (s *JSONStore) List(ctx context.Context) ([]catalog.Movie, error) {
	var movies []catalog.Movie
	err := s.withReadLock(ctx, func(c *catalog.Collection) error {
		movies = c.Movies()
		return nil
	})
	return movies, err
}

func (s *JSONStore) Exists(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := s.withReadLock(ctx, func(c *catalog.Collection) error {
		exists = c.Contains(title)
		return nil
	})
	return exists, err
}

func (s *JSONStore) Get(ctx context.Context, title string) (catalog.Movie, error) {
	var movie catalog.Movie
	err := s.withReadLock(ctx, func(c *catalog.Collection) error {
		found, ok := c.Get(title)
		if !ok {
			return notFound("get", title)
		}
		movie = found
		return nil
	})
	return movie, err
}

func (s *JSONStore) Insert(ctx context.Context, movie catalog.Movie) error {
	if err := validateForInsert(movie); err != nil {
		return err
	}
	return s.withWriteLock(ctx, func(c *catalog.Collection) error {
		if err := c.Add(movie); err != nil {
			return duplicate(movie.Title)
		}
		return nil
	})
}

func (s *JSONStore) Delete(ctx context.Context, title string) error {
	return s.withWriteLock(ctx, func(c *catalog.Collection) error {
		if !c.Remove(title) {
			return notFound("delete", title)
		}
		return nil
	})
}

func (s *JSONStore) UpdateRating(ctx context.Context, title string, rating float64) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	return s.withWriteLock(ctx, func(c *catalog.Collection) error {
		if !c.SetRating(title, rating) {
			return notFound("update rating", title)
		}
		return nil
	})
}

func (s *JSONStore) withReadLock(ctx context.Context, fn func(*catalog.Collection) error) error {
	ctx = ensureContext(ctx)
	locked, err := s.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return services.Wrap(services.ErrTransient, component, "lock", s.lock.Path(), err)
	}
	defer func() { _ = s.lock.Unlock() }()

	c, err := s.read()
	if err != nil {
		return err
	}
	return fn(c)
}

func (s *JSONStore) withWriteLock(ctx context.Context, fn func(*catalog.Collection) error) error {
	ctx = ensureContext(ctx)
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return services.Wrap(services.ErrTransient, component, "lock", s.lock.Path(), err)
	}
	defer func() { _ = s.lock.Unlock() }()

	c, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return s.write(c.Movies())
}

func (s *JSONStore) read() (*catalog.Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return catalog.NewCollection(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var records []jsonRecord
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, services.Wrap(services.ErrValidation, component, "read", "decode "+s.path, err)
		}
	}
	movies := make([]catalog.Movie, 0, len(records))
	for i, rec := range records {
		movie := rec.movie()
		if err := catalog.ValidateTitle(movie.Title); err != nil {
			return nil, services.Wrap(services.ErrValidation, component, "read",
				fmt.Sprintf("%s entry %d has no name", s.path, i), err)
		}
		movies = append(movies, movie)
	}
	c, err := catalog.NewCollection(movies)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, component, "read", s.path+" holds duplicate titles", err)
	}
	return c, nil
}

func (s *JSONStore) write(movies []catalog.Movie) error {
	records := make([]jsonRecord, 0, len(movies))
	for _, movie := range movies {
		records = append(records, newJSONRecord(movie))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode movies: %w", err)
	}
	data = append(data, '\n')

	return fileutil.WriteFileAtomic(s.path, data, 0o644)
}

// jsonRecord is one entry of the movies file. The title is written under
// "name", the key the file has always used; "title" is accepted on read.
// Older files may hold the year or rating as a quoted number.
type jsonRecord struct {
	Name      string     `json:"name"`
	Title     string     `json:"title,omitempty"`
	Year      looseInt   `json:"year"`
	Rating    looseFloat `json:"rating"`
	PosterURL string     `json:"poster_url,omitempty"`
}

type looseInt int

func (v *looseInt) UnmarshalJSON(data []byte) error {
	n, err := looseNumber(data)
	if err != nil {
		return err
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("year %s is not a whole number", n)
	}
	*v = looseInt(i)
	return nil
}

type looseFloat float64

func (v *looseFloat) UnmarshalJSON(data []byte) error {
	n, err := looseNumber(data)
	if err != nil {
		return err
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("rating %s is not a number", n)
	}
	*v = looseFloat(f)
	return nil
}

// looseNumber accepts a JSON number or a string holding one. Null and the
// empty string read as zero.
func looseNumber(data []byte) (json.Number, error) {
	if string(data) == "null" {
		return "0", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return "0", nil
		}
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return "", fmt.Errorf("%q is not a number", text)
		}
		return json.Number(text), nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n, nil
}

func newJSONRecord(movie catalog.Movie) jsonRecord {
	return jsonRecord{
		Name:      movie.Title,
		Year:      looseInt(movie.Year),
		Rating:    looseFloat(movie.Rating),
		PosterURL: movie.PosterURL,
	}
}

func (r jsonRecord) movie() catalog.Movie {
	title := r.Name
	if title == "" {
		title = r.Title
	}
	return catalog.Movie{
		Title:     title,
		Year:      int(r.Year),
		Rating:    float64(r.Rating),
		PosterURL: r.PosterURL,
	}
}
