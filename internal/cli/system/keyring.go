package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/su2708/studyplan/internal/cli"
	"github.com/su2708/studyplan/internal/constants"
	"github.com/su2708/studyplan/internal/keyring"
	"github.com/su2708/studyplan/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	connStr := strings.TrimSpace(cmd.ConnectionString)
	if !postgres.IsConnString(connStr) && !strings.Contains(connStr, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := postgres.ValidateConnString(connStr); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// the keyring is encrypted, so a password may live here
		ctx.Println("Warning: connection string contains a password. It will be stored in the OS keyring as-is.")
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return err
	}
	ctx.Println("Connection string stored in OS keyring")
	ctx.Println("studyplan will use it when --db is not set")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring. Use 'studyplan keyring set' to store one")
	}
	if err != nil {
		return err
	}
	ctx.Println(MaskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring")
	}
	if err != nil {
		return err
	}
	ctx.Println("Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd reports whether the keyring works and where credentials come from
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("OS keyring is available")

	_, source, err := keyring.ResolveConnectionString()
	switch {
	case err == nil && source == keyring.SourceEnv:
		ctx.Printf("Connection string is taken from $%s\n", constants.DBConnectionEnv)
	case err == nil:
		ctx.Println("Connection string is stored in keyring")
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("No connection string stored in keyring")
	default:
		return err
	}
	return nil
}

// MaskPassword hides the password of a URL or key=value connection string
func MaskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		if _, set := u.User.Password(); set {
			u.User = url.UserPassword(u.User.Username(), "****")
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, field := range fields {
		if k, _, ok := strings.Cut(field, "="); ok && strings.EqualFold(k, "password") {
			fields[i] = k + "=****"
		}
	}
	return strings.Join(fields, " ")
}
