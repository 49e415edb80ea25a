package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jdevries/easyenergy-go/hours"
	sqlite "modernc.org/sqlite"
)

//go:embed migrations
var migrationsDir embed.FS

// Applied on every new connection. WAL lets the readers run while the
// single writer holds its lock.
// See https://theitsolutions.io/blog/modernc.org-sqlite-with-go
const connInitSQL = `
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = NORMAL;
	PRAGMA temp_store = MEMORY;
	PRAGMA busy_timeout = 5000;
	PRAGMA automatic_index = true;
	PRAGMA foreign_keys = ON;
	PRAGMA analysis_limit = 1000;
	PRAGMA trusted_schema = OFF;
`

// Database wraps the sqlite file holding tariffs, log entries and the
// schema version. Reads and writes go through separate pools so a slow
// query never starves the writer.
type Database struct {
	logger *slog.Logger
	read   *sql.DB
	write  *sql.DB
	path   string
}

func New(ctx context.Context, path string) (*Database, error) {
	sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, _ string) error {
		_, err := conn.ExecContext(ctx, connInitSQL, nil)
		return err
	})

	write, err := openPool(path, 1)
	if err != nil {
		return nil, fmt.Errorf("opening database (write): %w", err)
	}

	read, err := openPool(path, 10)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("opening database (read): %w", err)
	}

	d := &Database{
		logger: slog.Default().With(slog.String("module", "database")),
		read:   read,
		write:  write,
		path:   path,
	}

	if err := d.migrate(ctx); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return d, nil
}

func openPool(path string, maxConns int) (*sql.DB, error) {
	pool, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(maxConns)
	pool.SetConnMaxIdleTime(time.Minute)
	return pool, nil
}

func (d *Database) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

func (d *Database) Close() {
	d.read.Close()
	d.write.Close()
}

// migrate brings the schema up to the highest embedded migration,
// tracked through PRAGMA user_version. Before the first migration that
// actually applies, an existing database is backed up; a fresh file
// has nothing worth saving.
func (d *Database) migrate(ctx context.Context) error {
	var currVer int
	if err := d.read.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currVer); err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	entries, err := migrationsDir.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	backedUp := false
	for _, name := range names {
		ver, err := migrationVersion(name)
		if err != nil {
			return err
		}
		if ver <= currVer {
			continue
		}

		if currVer > 0 && !backedUp {
			backedUp = true
			if err := d.Backup(ctx); err != nil {
				return fmt.Errorf("backup database before migration: %w", err)
			}
		}

		data, err := migrationsDir.ReadFile(path.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", name, err)
		}

		d.logger.Debug(fmt.Sprintf("applying migration %d", ver))
		if err := d.applyMigration(ctx, ver, string(data)); err != nil {
			return err
		}
	}

	return nil
}

// Migration files are named like 0001_init.sql, the number before the
// first separator is the schema version they migrate to.
func migrationVersion(name string) (int, error) {
	sep := strings.IndexAny(name, "-_")
	if sep < 1 {
		return 0, fmt.Errorf("parse version from migration file: %s", name)
	}
	ver, err := strconv.Atoi(name[:sep])
	if err != nil {
		return 0, fmt.Errorf("convert migration version from file %s: %w", name, err)
	}
	return ver, nil
}

func (d *Database) applyMigration(ctx context.Context, ver int, script string) error {
	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction for migration %d: %w", ver, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("apply migration %d: %w", ver, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d;", ver)); err != nil {
		return fmt.Errorf("update database version for migration %d: %w", ver, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", ver, err)
	}
	return nil
}

// purgeTable drops rows older than the retention window from a table
// keyed by (date, hour).
func (d *Database) purgeTable(ctx context.Context, table string, retentionDays int) error {
	before := hours.FromTime(time.Now().Add(-24 * time.Hour * time.Duration(retentionDays)))
	res, err := d.write.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s
		WHERE (date = ? AND hour < ?) OR date < ?`, table),
		before.Date, before.Hour, before.Date)
	if err != nil {
		return fmt.Errorf("purging %s: %w", table, err)
	}

	if rows, err := res.RowsAffected(); err != nil {
		d.logger.Warn("can't get rows affected by purge", slog.String("table", table), slog.Any("error", err))
	} else {
		d.logger.Debug(fmt.Sprintf("purged %d rows from %s", rows, table))
	}

	return nil
}
