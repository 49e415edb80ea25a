package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/jdevries/easyenergy-go/config"
	"github.com/jdevries/easyenergy-go/database"
)

// NewMaintenanceTask returns the nightly housekeeping job: a database
// backup followed by purging old backups, log entries and tariff rows.
// A failing step is logged and the remaining steps still run.
func NewMaintenanceTask(logger *slog.Logger, db *database.Database, cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running maintenance task...")

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		steps := []struct {
			name string
			run  func(context.Context) error
		}{
			{"backup", db.Backup},
			{"purge backups", func(ctx context.Context) error {
				return db.PurgeBackups(ctx, cnfg.Database.GetBackupRetentionDays())
			}},
			{"purge log", func(ctx context.Context) error {
				return db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries())
			}},
			{"purge electricity tariffs", func(ctx context.Context) error {
				return db.PurgeElectricityTariff(ctx, cnfg.Database.GetDataRetentionDays())
			}},
			{"purge gas tariffs", func(ctx context.Context) error {
				return db.PurgeGasTariff(ctx, cnfg.Database.GetDataRetentionDays())
			}},
		}

		for _, step := range steps {
			if err := step.run(ctx); err != nil {
				logger.Error("maintenance step failed",
					slog.String("step", step.name),
					slog.Any("error", err))
			}
		}

		logger.Info("maintenance task done")
	}
}
