package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jdevries/easyenergy-go/config"
	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
	"github.com/jdevries/easyenergy-go/types"
)

type stubSource struct {
	electricity []types.ElectricityRate
	gas         []types.GasRate
	err         error
}

func (s *stubSource) ElectricityRates(_ context.Context, _, _ time.Time) ([]types.ElectricityRate, error) {
	return s.electricity, s.err
}

func (s *stubSource) GasRates(_ context.Context, _, _ time.Time) ([]types.GasRate, error) {
	return s.gas, s.err
}

func testTaskDb(t *testing.T) (*database.Database, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.New(context.Background(), path)
	if err != nil {
		t.Fatalf("database.New() error: %v", err)
	}
	t.Cleanup(db.Close)
	return db, path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestElectricityTariffTaskFetchesOnStart(t *testing.T) {
	db, _ := testTaskDb(t)
	now := hours.FromNow()

	src := &stubSource{electricity: []types.ElectricityRate{
		{Hour: now, Usage: 0.25, Return: 0.15},
		{Hour: now.Add(1), Usage: 0.3, Return: 0.2},
	}}

	// The coming hour is missing from a fresh database, so construction
	// alone should fetch and store the rates.
	NewElectricityTariffTask(discardLogger(), db, src)

	row, err := db.GetElectricityTariff(context.Background(), now.Add(1))
	if err != nil {
		t.Fatalf("GetElectricityTariff() after startup fetch: %v", err)
	}
	if row.Usage != 0.3 || row.Return != 0.2 {
		t.Errorf("stored tariff = %+v, want usage 0.3 and return 0.2", row)
	}
}

func TestElectricityTariffTaskKeepsDataOnFetchError(t *testing.T) {
	db, _ := testTaskDb(t)
	now := hours.FromNow()

	src := &stubSource{electricity: []types.ElectricityRate{
		{Hour: now, Usage: 0.25, Return: 0.15},
	}}
	task := NewElectricityTariffTask(discardLogger(), db, src)

	src.err = errors.New("api down")
	task()

	row, err := db.GetElectricityTariff(context.Background(), now)
	if err != nil {
		t.Fatalf("GetElectricityTariff() error: %v", err)
	}
	if row.Usage != 0.25 {
		t.Errorf("usage = %v, want 0.25 from before the failed fetch", row.Usage)
	}
}

func TestGasTariffTaskUpsertsOnRefresh(t *testing.T) {
	db, _ := testTaskDb(t)
	now := hours.FromNow()

	src := &stubSource{gas: []types.GasRate{
		{Hour: now, Price: 1.1},
		{Hour: now.Add(1), Price: 1.2},
	}}
	task := NewGasTariffTask(discardLogger(), db, src)

	row, err := db.GetGasTariff(context.Background(), now.Add(1))
	if err != nil {
		t.Fatalf("GetGasTariff() after startup fetch: %v", err)
	}
	if row.Price != 1.2 {
		t.Errorf("price = %v, want 1.2", row.Price)
	}

	// A later run overwrites the same hours with fresher prices.
	src.gas[1].Price = 1.35
	task()

	row, err = db.GetGasTariff(context.Background(), now.Add(1))
	if err != nil {
		t.Fatalf("GetGasTariff() after refresh: %v", err)
	}
	if row.Price != 1.35 {
		t.Errorf("price after refresh = %v, want 1.35", row.Price)
	}
}

func TestMaintenanceTask(t *testing.T) {
	db, dbPath := testTaskDb(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := db.SaveLogEntry(ctx, database.LogEntryRow{
			Timestamp: time.Now(),
			Level:     int(slog.LevelInfo),
			Message:   "entry",
		})
		if err != nil {
			t.Fatalf("SaveLogEntry() error: %v", err)
		}
	}

	maxEntries := 3
	cnfg := &config.AppConfig{
		Logging: config.AppConfigLogging{DbMaxEntries: &maxEntries},
	}

	NewMaintenanceTask(discardLogger(), db, cnfg)()

	entries, err := db.GetLogEntries(ctx, slog.LevelDebug, 1, 10)
	if err != nil {
		t.Fatalf("GetLogEntries() error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("log has %d entries after maintenance, want 3", len(entries))
	}

	files, err := os.ReadDir(filepath.Join(filepath.Dir(dbPath), "backups"))
	if err != nil {
		t.Fatalf("reading backup directory: %v", err)
	}
	var zips int
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".zip") {
			zips++
		}
	}
	if zips != 1 {
		t.Errorf("backup directory holds %d zip files, want 1", zips)
	}
}
