package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
	"github.com/jdevries/easyenergy-go/types"
)

func NewElectricityTariffTask(logger *slog.Logger, db *database.Database, src types.TariffSource) func() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if needImmediateElectricityUpdate(ctx, db) {
		logger.Info("need an immediate update of electricity tariffs")
		runElectricityTariffTask(logger, db, src)
	} else {
		logger.Debug("no need for immediate update of electricity tariffs")
	}

	return func() { runElectricityTariffTask(logger, db, src) }
}

func runElectricityTariffTask(logger *slog.Logger, db *database.Database, src types.TariffSource) {
	logger.Debug("running electricity tariff task...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Tomorrow's prices are published in the afternoon, asking for one day
	// ahead picks them up as soon as they are available.
	now := time.Now()
	rates, err := src.ElectricityRates(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		logger.Error("electricity tariff task error, fetching tariffs", slog.Any("error", err))
		return
	}

	rows := make([]database.ElectricityTariffRow, len(rates))
	for i, r := range rates {
		logger.Debug("electricity tariff",
			slog.String("hour", r.Hour.String()),
			slog.Float64("usage", r.Usage),
			slog.Float64("return", r.Return))
		rows[i] = database.ElectricityTariffRow{When: r.Hour, Usage: r.Usage, Return: r.Return}
	}

	if err := db.SaveElectricityTariffs(ctx, rows); err != nil {
		logger.Error("electricity tariff task error", slog.Any("error", err))
		return
	}

	logger.Info("electricity tariff task done", slog.Int("noOfHoursUpdated", len(rows)))
}

func needImmediateElectricityUpdate(ctx context.Context, db *database.Database) bool {
	dh := hours.FromNow().Add(1)
	if _, err := db.GetElectricityTariff(ctx, dh); err != nil {
		return true
	}
	return false
}
