package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strconv"

	"github.com/pressly/goose/v3"

	"github.com/angelmondragon/plu-backend/pkg/config"
)

// DefaultDir is the on-disk root of the migration sets, one subdirectory per driver.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations
var embedded embed.FS

// Embedded returns the migration sets compiled into the binary.
func Embedded() fs.FS {
	return embedded
}

// Dialect maps a configured driver onto its goose dialect.
func Dialect(driver string) (goose.Dialect, error) {
	switch driver {
	case config.DriverMySQL:
		return goose.DialectMySQL, nil
	case config.DriverPostgres:
		return goose.DialectPostgres, nil
	case config.DriverSQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Dir is the directory of the driver's migration set inside Embedded or under DefaultDir.
func Dir(driver string) string {
	return path.Join("migrations", driver)
}

func prepare(driver string) (string, error) {
	dialect, err := Dialect(driver)
	if err != nil {
		return "", err
	}
	if err := goose.SetDialect(string(dialect)); err != nil {
		return "", fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(embedded)
	return Dir(driver), nil
}

// Run executes a standard goose command against the embedded set for driver.
func Run(ctx context.Context, db *sql.DB, driver string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	dir, err := prepare(driver)
	if err != nil {
		return err
	}

	// RunContext prints status output to stdout (goose internal)
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver string, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	dir, err := prepare(driver)
	if err != nil {
		return err
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil

	case current < target:
		if err := goose.UpToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
		return nil

	default:
		if err := goose.DownToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
		return nil
	}
}
