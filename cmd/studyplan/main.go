package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/cli/backups"
	"github.com/su2708/studyplan/internal/cli/drafts"
	"github.com/su2708/studyplan/internal/cli/plans"
	"github.com/su2708/studyplan/internal/cli/reminders"
	"github.com/su2708/studyplan/internal/cli/system"
	"github.com/su2708/studyplan/internal/cli/track"
	"github.com/su2708/studyplan/internal/constants"
	apperrors "github.com/su2708/studyplan/internal/errors"
	"github.com/su2708/studyplan/internal/keyring"
	"github.com/su2708/studyplan/internal/logger"
	"github.com/su2708/studyplan/internal/storage"
	"github.com/su2708/studyplan/internal/storage/postgres"
	"github.com/su2708/studyplan/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords belong in the OS keyring, the ${db_env} variable or .pgpass, never in the connection string." env:"STUDYPLAN_DB" default:"${default_db}"`
	Debug   bool   `help:"Log at debug level and mirror logs to stderr." env:"STUDYPLAN_DEBUG"`

	Init    system.InitCmd    `cmd:"" help:"Initialize studyplan storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`

	Draft struct {
		Import  drafts.ImportCmd  `cmd:"" help:"Create a draft from a generated plan file."`
		List    drafts.ListCmd    `cmd:"" help:"List drafts."`
		Show    drafts.ShowCmd    `cmd:"" help:"Show a draft with item IDs."`
		Move    drafts.MoveCmd    `cmd:"" help:"Move a week or task within a draft."`
		Submit  drafts.SubmitCmd  `cmd:"" help:"Submit a draft as a tracked plan."`
		Discard drafts.DiscardCmd `cmd:"" help:"Discard a draft."`
	} `cmd:"" help:"Review and reorder generated plans."`

	Plan struct {
		List   plans.ListCmd   `cmd:"" help:"List tracked plans." default:"1"`
		Show   plans.ShowCmd   `cmd:"" help:"Show a plan and its progress."`
		Delete plans.DeleteCmd `cmd:"" help:"Delete a plan."`
	} `cmd:"" help:"Manage tracked plans."`

	Track struct {
		Show    track.ShowCmd    `cmd:"" help:"Show the current task."`
		Next    track.NextCmd    `cmd:"" help:"Move to the next task."`
		Prev    track.PrevCmd    `cmd:"" help:"Move to the previous task."`
		Week    track.WeekCmd    `cmd:"" help:"Jump to the next or previous week."`
		Done    track.DoneCmd    `cmd:"" help:"Toggle completion of the current task."`
		Refresh track.RefreshCmd `cmd:"" help:"Reload the plan and fix up the saved position."`
	} `cmd:"" help:"Walk through a plan task by task."`

	Finish       plans.FinishCmd       `cmd:"" help:"Record a fully completed plan as an achievement."`
	Achievements plans.AchievementsCmd `cmd:"" help:"List achievements."`

	Reminder struct {
		Show reminders.ShowCmd `cmd:"" help:"Show reminder settings of a plan."`
		Set  reminders.SetCmd  `cmd:"" help:"Update reminder settings of a plan."`
	} `cmd:"" help:"Manage study reminders."`

	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore the database from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly study plan tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"default_db": constants.DefaultConfigPath,
			"db_env":     constants.DBConnectionEnv,
		},
	)

	target, explicit, source := resolveTarget(ctx.Command(), CLI.DB)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir(target)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	defer logger.Close()
	if source != "" {
		logger.Debug("using PostgreSQL connection string", "source", source)
	}

	store, err := openStore(target, explicit)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		logger.Close()
		apperrors.Fatal(err)
	}
}

// resolveTarget picks the database. An explicit --db wins; otherwise a
// connection string from the environment or keyring selects PostgreSQL.
// source is empty unless such a connection string was used.
func resolveTarget(command, db string) (target string, explicit bool, source keyring.Source) {
	if db != constants.DefaultConfigPath {
		return db, true, ""
	}
	if strings.HasPrefix(command, "keyring") {
		return db, false, ""
	}
	connStr, source, err := keyring.ResolveConnectionString()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Warning: %v, using SQLite\n", err)
		}
		return db, false, ""
	}
	return connStr, false, source
}

func openStore(target string, explicit bool) (storage.Provider, error) {
	if postgres.IsConnString(target) || strings.Contains(target, "host=") {
		err := postgres.ValidateConnString(target)
		// passwords are only refused on the command line
		if err != nil && (explicit || !errors.Is(err, postgres.ErrEmbeddedCredentials)) {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w. Store it with 'studyplan keyring set', export %s or use .pgpass", err, constants.DBConnectionEnv)
			}
			return nil, err
		}
		return postgres.New(target), nil
	}
	return sqlite.NewStore(kong.ExpandPath(target)), nil
}

func logDir(target string) string {
	if postgres.IsConnString(target) || strings.Contains(target, "host=") {
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, constants.AppName)
		}
		return os.TempDir()
	}
	return filepath.Dir(kong.ExpandPath(target))
}

// needsLoad reports whether a command works on an initialized, current schema
func needsLoad(command string) bool {
	for _, prefix := range []string{"init", "migrate", "keyring", "backup restore"} {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}
