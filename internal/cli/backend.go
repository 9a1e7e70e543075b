package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/dailybloom/internal/constants"
	"github.com/julianstephens/dailybloom/internal/keyring"
	"github.com/julianstephens/dailybloom/internal/kv"
	"github.com/julianstephens/dailybloom/internal/kv/postgres"
	"github.com/julianstephens/dailybloom/internal/kv/sqlite"
	"github.com/julianstephens/dailybloom/internal/logger"
)

// Store kinds accepted by --store
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// ErrEmbeddedCredentials is returned when --config carries a password.
var ErrEmbeddedCredentials = errors.New("PostgreSQL connection strings with embedded credentials are not allowed; " +
	"use the OS keyring (bloom keyring set), " + constants.EnvDBConnection + ", or .pgpass instead")

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// DetectStore infers the store kind from config when kind is empty.
func DetectStore(config, kind string) string {
	if kind != "" {
		return kind
	}
	if postgres.IsConnectionString(config) {
		return StorePostgres
	}
	return StoreSQLite
}

// OpenBackend builds the backend named by kind for config. It does not
// connect; callers Init or Load it.
func OpenBackend(config, kind string) (kv.Backend, error) {
	switch DetectStore(config, kind) {
	case StoreMemory:
		return kv.NewMemory(), nil
	case StorePostgres:
		if postgres.IsConnectionString(config) {
			if err := postgres.ValidateConnString(config); errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, ErrEmbeddedCredentials
			}
		}
		connStr, source := keyring.ResolveConnectionString(config)
		if !postgres.IsConnectionString(connStr) && !strings.Contains(connStr, "host=") {
			return nil, fmt.Errorf("no PostgreSQL connection string: pass one with --config, set %s, or store one with 'bloom keyring set'", constants.EnvDBConnection)
		}
		logger.Debug("using postgres connection", "source", source)
		return postgres.New(connStr), nil
	case StoreSQLite:
		path, err := ExpandPath(config)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	default:
		return nil, fmt.Errorf("unknown store %q (expected sqlite, postgres or memory)", kind)
	}
}

// ConfigDir returns the directory holding logs, backups and the lockfile.
// SQLite keeps them next to the database file.
func ConfigDir(config, kind string) (string, error) {
	if DetectStore(config, kind) == StoreSQLite {
		path, err := ExpandPath(config)
		if err != nil {
			return "", err
		}
		return filepath.Dir(path), nil
	}
	return ExpandPath(filepath.Dir(constants.DefaultConfigPath))
}
