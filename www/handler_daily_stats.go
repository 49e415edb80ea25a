package www

import (
	"log/slog"
	"net/http"

	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
	"github.com/jdevries/easyenergy-go/types/maybe"
)

type dailyStatsTemplRow struct {
	Date      string
	MinUsage  maybe.Maybe[float64]
	AvgUsage  maybe.Maybe[float64]
	MaxUsage  maybe.Maybe[float64]
	AvgReturn maybe.Maybe[float64]
	AvgGas    maybe.Maybe[float64]
	IsToday   bool
}

func NewDailyStatsHandler(logger *slog.Logger, db *database.Database, tm *TemplateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		rows, err := db.GetDailyTariffs(r.Context(), intOrDefault(r.URL, "days", 14))
		if err != nil {
			logger.Error("handling daily_stats request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		thisHour := hours.FromNow()
		templRows := make([]dailyStatsTemplRow, len(rows))
		for i, row := range rows {
			templRows[i] = dailyStatsTemplRow{
				Date:      row.Date,
				MinUsage:  maybe.Some(row.MinUsage),
				AvgUsage:  maybe.Some(row.AvgUsage),
				MaxUsage:  maybe.Some(row.MaxUsage),
				AvgReturn: maybe.Some(row.AvgReturn),
				AvgGas:    maybe.SqlNull(row.AvgGas.Float64, row.AvgGas.Valid),
				IsToday:   row.Date == thisHour.Date,
			}
		}

		if err := tm.ExecuteToWriter("daily_stats.html", templRows, &w); err != nil {
			logger.Error("handling daily_stats request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}
