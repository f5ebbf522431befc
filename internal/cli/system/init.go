package system

import (
	"context"
	"fmt"
	"os"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete the existing SQLite database before initializing."`
	Yes   bool `short:"y" help:"Do not ask for confirmation with --force."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized studyplan storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return fmt.Errorf("--force only supports SQLite storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	_, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	ok, err := cli.Confirm(fmt.Sprintf("Delete every plan and draft in %s?", dbPath), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("init cancelled")
	}

	mgr, err := cli.BackupManager(ctx)
	if err != nil {
		return err
	}
	saved, err := mgr.Create(context.Background())
	if err != nil {
		return fmt.Errorf("failed to back up existing database: %w", err)
	}
	ctx.Printf("Backed up existing database to: %s\n", saved)

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}
