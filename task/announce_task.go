package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/jdevries/easyenergy-go/announce"
	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
)

// NewAnnounceTask publishes the tariffs for the running hour over MQTT.
// Scheduled on the hour so subscribers always hold the active price.
func NewAnnounceTask(logger *slog.Logger, db *database.Database, annc *announce.Announcer) func() {
	return func() {
		logger.Debug("running announce task...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		dh := hours.FromNow()

		if row, err := db.GetElectricityTariff(ctx, dh); err != nil {
			logger.Warn("no electricity tariff to announce", slog.String("hour", dh.String()))
		} else if err := annc.PublishElectricity(row); err != nil {
			logger.Error("announce task error, publishing electricity tariff", slog.Any("error", err))
		}

		if row, err := db.GetGasTariff(ctx, dh); err != nil {
			logger.Warn("no gas tariff to announce", slog.String("hour", dh.String()))
		} else if err := annc.PublishGas(row); err != nil {
			logger.Error("announce task error, publishing gas tariff", slog.Any("error", err))
		}

		logger.Debug("announce task done")
	}
}
