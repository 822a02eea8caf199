package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/streakguard/internal/cli"
	"github.com/julianstephens/streakguard/internal/keyring"
	"github.com/julianstephens/streakguard/internal/storage/postgres"
	"github.com/julianstephens/streakguard/internal/utils"
)

var errNoKeyringEntry = errors.New("no connection string found in keyring, use 'streakguard keyring set' to store one")

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	connStr := strings.TrimSpace(cmd.ConnectionString)
	if !utils.IsPostgresConnString(connStr) && !strings.Contains(connStr, "host=") {
		return errors.New("connection string must be a PostgreSQL URL or a key=value DSN with host=")
	}

	if _, err := postgres.ValidateConnString(connStr); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		fmt.Println(cli.WarningStyle.Render("⚠ The connection string contains a password; it is kept only in the encrypted OS keyring."))
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Printf("✓ Stored %s in the OS keyring\n", keyring.MaskPassword(connStr))
	if !usesKeyring(ctx) {
		fmt.Printf("  Set 'storage: %s' in config.yaml or pass --config %s to use it\n", cli.KeyringStorage, cli.KeyringStorage)
	}
	return nil
}

// KeyringGetCmd prints the stored connection string with its password masked.
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		return keyringError("read", err)
	}
	fmt.Println(keyring.MaskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes the stored connection string.
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return keyringError("delete", err)
	}

	fmt.Println("✓ Connection string deleted from the OS keyring")
	if usesKeyring(ctx) {
		fmt.Println(cli.WarningStyle.Render("⚠ storage is still set to 'keyring'; streakguard will not start until it is changed or a new string is stored."))
	}
	return nil
}

// KeyringStatusCmd reports whether the keyring works and what it holds.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring: UNAVAILABLE")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring: available")

	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		fmt.Printf("✓ Connection string: %s\n", keyring.MaskPassword(connStr))
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Println("⊘ Connection string: none stored")
	default:
		return err
	}

	if usesKeyring(ctx) {
		fmt.Println("✓ Storage: reads the keyring")
	} else {
		fmt.Println("⊘ Storage: does not use the keyring")
	}
	return nil
}

func usesKeyring(ctx *cli.Context) bool {
	return ctx != nil && ctx.Config != nil && strings.TrimSpace(ctx.Config.Storage) == cli.KeyringStorage
}

func keyringError(op string, err error) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return errNoKeyringEntry
	}
	return fmt.Errorf("failed to %s connection string in keyring: %w", op, err)
}
