package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/su2708/studyplan/internal/logger"
	"github.com/su2708/studyplan/internal/migration"
	"github.com/su2708/studyplan/internal/storage"
	"github.com/su2708/studyplan/migrations"
)

const timeLayout = time.RFC3339Nano

// Store keeps every plan in a single SQLite file
type Store struct {
	path string
	db   *sql.DB
}

var _ storage.Provider = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) dsn() string {
	return s.path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Init creates the database file if needed and applies pending migrations
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	if err := s.Migrate(context.Background(), func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Load opens an existing database and checks its schema version
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'studyplan init' first")
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.runner().Validate(context.Background())
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// one writer keeps toggles serialized
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// the embedded directory is fixed at build time
		panic(err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverSQLite)
}

// Migrate applies pending migrations, reporting each step to progress
func (s *Store) Migrate(ctx context.Context, progress func(string)) error {
	if err := s.open(); err != nil {
		return err
	}
	_, err := s.runner().Apply(ctx, progress)
	return err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		logger.Warn("unreadable timestamp in database", "value", v, "err", err)
		return time.Time{}
	}
	return t
}
