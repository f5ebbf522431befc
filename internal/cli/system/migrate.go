package system

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/su2708/studyplan/internal/backup"
	"github.com/su2708/studyplan/internal/cli"
)

type migrator interface {
	Migrate(ctx context.Context, progress func(string)) error
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend %s does not support migrations", ctx.Store.GetConfigPath())
	}

	if mgr, err := cli.BackupManager(ctx); err == nil {
		saved, err := mgr.Create(context.Background())
		switch {
		case errors.Is(err, backup.ErrNoDatabase):
		case err != nil:
			return fmt.Errorf("failed to back up database before migrating: %w", err)
		default:
			ctx.Printf("Backed up database to: %s\n", filepath.Base(saved))
		}
	}

	steps := 0
	err := m.Migrate(context.Background(), func(msg string) {
		steps++
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if steps == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	}
	return nil
}
