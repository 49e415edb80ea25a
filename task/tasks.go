package task

import (
	"context"
	"log/slog"

	"github.com/jdevries/easyenergy-go/announce"
	"github.com/jdevries/easyenergy-go/config"
	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/types"
	"github.com/robfig/cron/v3"
)

// maintenanceRunAt schedules the nightly housekeeping, well clear of
// the tariff fetch windows.
const maintenanceRunAt = "30 2 * * *"

// Tasks bundles the scheduled jobs. The task funcs are exported so the
// dashboard can trigger a fetch on demand, outside the cron schedule.
type Tasks struct {
	cron                  *cron.Cron
	cnfg                  *config.AppConfig
	ElectricityTariffTask func()
	GasTariffTask         func()
	AnnounceTask          func()
	MaintenanceTask       func()
}

func NewTasks(
	db *database.Database,
	src types.TariffSource,
	annc *announce.Announcer,
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")
	t := &Tasks{
		cron:                  cron.New(),
		cnfg:                  cnfg,
		ElectricityTariffTask: NewElectricityTariffTask(logger.With(slog.String("task", "electricity_tariff")), db, src),
		GasTariffTask:         NewGasTariffTask(logger.With(slog.String("task", "gas_tariff")), db, src),
		MaintenanceTask:       NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
	if annc != nil {
		t.AnnounceTask = NewAnnounceTask(logger.With(slog.String("task", "announce")), db, annc)
	}
	return t
}

// Run registers the jobs with the cron scheduler and starts it. An
// invalid cron spec is a configuration error and panics.
func (t *Tasks) Run() {
	schedule := func(spec string, job func()) {
		if _, err := t.cron.AddFunc(spec, job); err != nil {
			panic(err)
		}
	}

	schedule(t.cnfg.Tariffs.GetElectricityRunAt(), t.ElectricityTariffTask)
	schedule(t.cnfg.Tariffs.GetGasRunAt(), t.GasTariffTask)
	if t.AnnounceTask != nil {
		schedule("@hourly", t.AnnounceTask)
	}
	schedule(maintenanceRunAt, t.MaintenanceTask)

	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
