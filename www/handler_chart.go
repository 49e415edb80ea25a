package www

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
	"github.com/jdevries/easyenergy-go/slice"
	"github.com/jdevries/easyenergy-go/www/chartjs"
)

func NewChartHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		midnight := hours.FromMidnight()

		electricity, err := db.GetElectricityTariffsFrom(r.Context(), midnight)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		gas, err := db.GetGasTariffsFrom(r.Context(), midnight)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Chart 1: Electricity usage and return prices
		chart1 := chartjs.NewChart("")
		for i := 0; i < chartjs.NoOfHours; i++ {
			dh := midnight.Add(i)
			row, ok := slice.Find(electricity, func(row database.ElectricityTariffRow) bool {
				return row.When == dh
			})
			if !ok {
				continue
			}
			chart1.Data.Datasets[0].Data[i] = chartjs.FixedFloat64(row.Usage, 5)
			chart1.Data.Datasets[1].Data[i] = chartjs.FixedFloat64(row.Return, 5)
		}
		chart1.Options.Scales["YAxis1"] = chart1.Options.Scales["YAxis1"].
			WithTitle("Usage (EUR/kWh)")
		chart1.Options.Scales["YAxis2"] = chart1.Options.Scales["YAxis2"].
			WithTitle("Return (EUR/kWh)")

		// Chart 2: Gas price, drawn as a filled area since there is
		// only the one series.
		chart2 := chartjs.NewChart("")
		chart2.Data.Datasets = chart2.Data.Datasets[:1]
		chart2.Data.Datasets[0].Fill = true
		chart2.Data.Datasets[0].BackgroundColor = chartjs.ColorGreenArea
		chart2.Data.Datasets[0].BorderColor = chartjs.ColorGreen
		for i := 0; i < chartjs.NoOfHours; i++ {
			dh := midnight.Add(i)
			row, ok := slice.Find(gas, func(row database.GasTariffRow) bool {
				return row.When == dh
			})
			if !ok {
				continue
			}
			chart2.Data.Datasets[0].Data[i] = chartjs.FixedFloat64(row.Price, 5)
		}
		chart2.Options.Scales["YAxis1"] = chart2.Options.Scales["YAxis1"].
			WithTitle("Gas (EUR/m3)")
		chart2.Options.Scales["YAxis2"] = chart2.Options.Scales["YAxis2"].
			WithDisplay(false)

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode([]chartjs.Chart{chart1, chart2})
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode data points", http.StatusInternalServerError)
			return
		}
	}
}
