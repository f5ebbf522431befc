package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/su2708/studyplan/internal/constants"
	"github.com/su2708/studyplan/internal/logger"
	"github.com/su2708/studyplan/internal/migration"
	"github.com/su2708/studyplan/internal/storage"
	"github.com/su2708/studyplan/migrations"
)

// Store keeps plans in a studyplan schema on a PostgreSQL server
type Store struct {
	connStr string
	db      *sql.DB
}

var _ storage.Provider = (*Store)(nil)

func New(connStr string) *Store {
	return &Store{connStr: withSearchPath(connStr)}
}

func (s *Store) Init() error {
	ctx := context.Background()
	if err := s.connect(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+constants.AppName); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if err := s.Migrate(ctx, func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	ctx := context.Background()
	if err := s.connect(ctx); err != nil {
		return err
	}
	return s.runner().Validate(ctx)
}

func (s *Store) connect(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("connecting to database: %w (hint: add sslmode=disable to the connection string)", err)
		}
		return fmt.Errorf("connecting to database: %w", err)
	}
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		panic(err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverPostgres)
}

func (s *Store) Migrate(ctx context.Context, progress func(string)) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	_, err := s.runner().Apply(ctx, progress)
	return err
}

// GetConfigPath returns a label rather than the connection string
func (s *Store) GetConfigPath() string {
	return "postgresql"
}
