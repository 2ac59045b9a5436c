package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"strconv"

	"github.com/pressly/goose/v3"
)

// DefaultDir is the on-disk migrations root used by create/validate.
const DefaultDir = "pkg/migrate/migrations"

// Embedded selects the migrations compiled into the binary.
const Embedded = ""

//go:embed migrations/*/*.sql
var embedded embed.FS

// Run executes a standard goose command that requires a DB connection. The
// dialect picks the migrations subdirectory; an Embedded dir reads them from
// the binary.
func Run(ctx context.Context, db *sql.DB, dialect, dir, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	migrationsDir, err := prepare(dialect, dir)
	if err != nil {
		return err
	}

	// RunContext prints status output to stdout (goose internal)
	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, dialect, dir, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	migrationsDir, err := prepare(dialect, dir)
	if err != nil {
		return err
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil

	case current < target:
		if err := goose.UpToContext(ctx, db, migrationsDir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
		return nil

	default:
		if err := goose.DownToContext(ctx, db, migrationsDir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
		return nil
	}
}

// DialectDir returns the migrations directory for dialect under root.
func DialectDir(root, dialect string) string {
	return path.Join(root, dialect)
}

func prepare(dialect, dir string) (string, error) {
	switch dialect {
	case "postgres", "sqlite3":
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("set goose dialect: %w", err)
	}
	if dir == Embedded {
		goose.SetBaseFS(embedded)
		return DialectDir("migrations", dialect), nil
	}
	goose.SetBaseFS(nil)
	return DialectDir(dir, dialect), nil
}
