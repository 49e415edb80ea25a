package www

import (
	"context"
	"log/slog"

	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
	"github.com/jdevries/easyenergy-go/types/maybe"
)

type RealTimeData struct {
	Hour              string
	ElectricityUsage  maybe.Maybe[float64]
	ElectricityReturn maybe.Maybe[float64]
	GasPrice          maybe.Maybe[float64]
}

// RealTimeManager serves the tariffs for the running hour. The rows from
// midnight onwards are cached so the periodic broadcast does not hit the
// database every tick.
type RealTimeManager struct {
	db          *database.Database
	logger      *slog.Logger
	electricity map[hours.DateHour]database.ElectricityTariffRow
	gas         map[hours.DateHour]database.GasTariffRow
}

func NewRealTimeManager(db *database.Database) *RealTimeManager {
	return &RealTimeManager{
		db:     db,
		logger: slog.Default().With("module", "real_time_manager"),
	}
}

func (m *RealTimeManager) Get(ctx context.Context) RealTimeData {
	thisHour := hours.FromNow()
	rtd := RealTimeData{Hour: thisHour.LocalizedString()}

	row, ok := m.electricity[thisHour]
	if !ok {
		if rows, err := m.db.GetElectricityTariffsFrom(ctx, hours.FromMidnight()); err != nil {
			m.logger.Error("error getting electricity tariffs", slog.Any("error", err))
		} else {
			m.electricity = make(map[hours.DateHour]database.ElectricityTariffRow, len(rows))
			for _, r := range rows {
				m.electricity[r.When] = r
			}
			row, ok = m.electricity[thisHour]
		}
	}
	if ok {
		rtd.ElectricityUsage = maybe.Some(row.Usage)
		rtd.ElectricityReturn = maybe.Some(row.Return)
	}

	gasRow, ok := m.gas[thisHour]
	if !ok {
		if rows, err := m.db.GetGasTariffsFrom(ctx, hours.FromMidnight()); err != nil {
			m.logger.Error("error getting gas tariffs", slog.Any("error", err))
		} else {
			m.gas = make(map[hours.DateHour]database.GasTariffRow, len(rows))
			for _, r := range rows {
				m.gas[r.When] = r
			}
			gasRow, ok = m.gas[thisHour]
		}
	}
	if ok {
		rtd.GasPrice = maybe.Some(gasRow.Price)
	}

	return rtd
}
