package database

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const backupStampLayout = "20060102_150405"

func (d *Database) backupDir() string {
	return filepath.Join(filepath.Dir(d.path), "backups")
}

// Backup writes a consistent snapshot of the database into the backups
// directory next to the database file, compressed to a zip. VACUUM INTO
// produces the snapshot without blocking readers.
func (d *Database) Backup(ctx context.Context) error {
	dir := d.backupDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	snapshot := filepath.Join(dir, fmt.Sprintf("%s_easyenergy.db", time.Now().Format(backupStampLayout)))
	if _, err := d.write.ExecContext(ctx, "VACUUM INTO ?", snapshot); err != nil {
		return fmt.Errorf("vacuuming database into '%s': %w", snapshot, err)
	}

	zipPath := snapshot + ".zip"
	if err := d.compress(snapshot, zipPath); err != nil {
		return err
	}

	if err := os.Remove(snapshot); err != nil {
		d.logger.Warn("could not remove snapshot after compression", slog.String("error", err.Error()))
	}

	d.logger.Info("database backup complete", slog.String("filename", zipPath))
	return nil
}

func (d *Database) compress(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open snapshot for compression: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat snapshot: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create zip file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("create zip header: %w", err)
	}
	header.Name = filepath.Base(d.path)
	header.Method = zip.Deflate

	entry, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create zip file entry: %w", err)
	}
	if _, err := io.Copy(entry, in); err != nil {
		return fmt.Errorf("write snapshot to zip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip file: %w", err)
	}

	return nil
}

// PurgeBackups removes backups older than the retention window. Files
// are aged by the timestamp prefix in their name, anything without one
// is left alone.
func (d *Database) PurgeBackups(ctx context.Context, retentionDays int) error {
	if retentionDays < 1 {
		return nil
	}
	maxAge := time.Duration(retentionDays) * 24 * time.Hour

	dir := d.backupDir()
	d.logger.Debug("purging old backups", slog.String("dir", dir))

	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read backup directory: %w", err)
	}

	for _, file := range files {
		taken, ok := backupTime(file.Name())
		if !ok {
			d.logger.Debug("this is not a backup file", slog.String("filename", file.Name()))
			continue
		}
		if time.Since(taken) <= maxAge {
			continue
		}
		path := filepath.Join(dir, file.Name())
		d.logger.Debug("deleting old backup", slog.String("path", path))
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old backup '%s': %w", path, err)
		}
	}

	d.logger.Info("backup purge complete")
	return nil
}

func backupTime(name string) (time.Time, bool) {
	if len(name) < len(backupStampLayout) {
		return time.Time{}, false
	}
	stamp := name[:len(backupStampLayout)]
	if strings.IndexByte(stamp, '_') != 8 {
		return time.Time{}, false
	}
	t, err := time.Parse(backupStampLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
