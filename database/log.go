package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// LogEntryRow is one record in the log table, fed by the sqlite slog
// handler and read back by the dashboard.
type LogEntryRow struct {
	Timestamp time.Time
	Level     int
	Message   string
	Attrs     string
}

func (d *Database) SaveLogEntry(ctx context.Context, r LogEntryRow) error {
	stamp := r.Timestamp.UTC().Format(time.RFC3339)
	_, err := d.write.ExecContext(ctx,
		`INSERT INTO log (timestamp, level, message, attrs) VALUES (?, ?, ?, ?)`,
		stamp, r.Level, r.Message, r.Attrs)
	if err != nil {
		return fmt.Errorf("saving log entry: %w", err)
	}
	return nil
}

// GetLogEntries returns one page of log entries at or above minLvl,
// newest first. Pages start at 1.
func (d *Database) GetLogEntries(ctx context.Context, minLvl slog.Level, page, pageSize int) ([]LogEntryRow, error) {
	page = max(page, 1)
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	rows, err := d.read.QueryContext(ctx,
		`SELECT timestamp, level, message, attrs FROM log
		 WHERE level >= ? ORDER BY id DESC LIMIT ? OFFSET ?`,
		minLvl, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("fetching log entries: %w", err)
	}
	defer rows.Close()

	var entries []LogEntryRow
	for rows.Next() {
		entry, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading log rows: %w", err)
	}
	return entries, nil
}

func scanLogEntry(rows *sql.Rows) (LogEntryRow, error) {
	var r LogEntryRow
	var ts string
	if err := rows.Scan(&ts, &r.Level, &r.Message, &r.Attrs); err != nil {
		return r, fmt.Errorf("scanning log row: %w", err)
	}
	var err error
	if r.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
		return r, fmt.Errorf("parsing log timestamp: %w", err)
	}
	return r, nil
}

// PurgeLog trims the log table down to the newest maxLogEntries rows.
func (d *Database) PurgeLog(ctx context.Context, maxLogEntries int) error {
	d.logger.Debug("purging log")
	_, err := d.write.ExecContext(ctx,
		`DELETE FROM log WHERE id NOT IN (SELECT id FROM log ORDER BY id DESC LIMIT ?)`,
		maxLogEntries)
	if err != nil {
		return fmt.Errorf("purging log: %w", err)
	}
	return nil
}
