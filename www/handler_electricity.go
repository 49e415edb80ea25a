package www

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
)

type electricityTemplRow struct {
	Hour   string
	Usage  float64
	Return float64
	IsNow  bool
}

func NewElectricityHandler(logger *slog.Logger, db *database.Database, tm *TemplateManager, store sessions.Store, task func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "text/html")
			from := hours.FromNow().Sub(intOrDefault(r.URL, "hours", 12))

			rows, err := db.GetElectricityTariffsFrom(r.Context(), from)
			if err != nil {
				logger.Error("handling electricity request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			loc := displayLocation(store, r)
			now := hours.FromNow()
			templRows := make([]electricityTemplRow, len(rows))
			for i, row := range rows {
				templRows[i] = electricityTemplRow{
					Hour:   row.When.Time().In(loc).Format("2006-01-02 15:04"),
					Usage:  row.Usage,
					Return: row.Return,
					IsNow:  row.When == now,
				}
			}

			if err := tm.ExecuteToWriter("electricity.html", templRows, &w); err != nil {
				logger.Error("handling electricity request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}

		case http.MethodPost:
			task()
			w.WriteHeader(http.StatusAccepted)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
