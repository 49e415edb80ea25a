package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
	"github.com/jdevries/easyenergy-go/types"
)

func NewGasTariffTask(logger *slog.Logger, db *database.Database, src types.TariffSource) func() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if needImmediateGasUpdate(ctx, db) {
		logger.Info("need an immediate update of gas tariffs")
		runGasTariffTask(logger, db, src)
	} else {
		logger.Debug("no need for immediate update of gas tariffs")
	}

	return func() { runGasTariffTask(logger, db, src) }
}

func runGasTariffTask(logger *slog.Logger, db *database.Database, src types.TariffSource) {
	logger.Debug("running gas tariff task...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	rates, err := src.GasRates(ctx, now, now)
	if err != nil {
		logger.Error("gas tariff task error, fetching tariffs", slog.Any("error", err))
		return
	}

	rows := make([]database.GasTariffRow, len(rates))
	for i, r := range rates {
		logger.Debug("gas tariff", slog.String("hour", r.Hour.String()), slog.Float64("price", r.Price))
		rows[i] = database.GasTariffRow{When: r.Hour, Price: r.Price}
	}

	if err := db.SaveGasTariffs(ctx, rows); err != nil {
		logger.Error("gas tariff task error", slog.Any("error", err))
		return
	}

	logger.Info("gas tariff task done", slog.Int("noOfHoursUpdated", len(rows)))
}

func needImmediateGasUpdate(ctx context.Context, db *database.Database) bool {
	dh := hours.FromNow().Add(1)
	if _, err := db.GetGasTariff(ctx, dh); err != nil {
		return true
	}
	return false
}
