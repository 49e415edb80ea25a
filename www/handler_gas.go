package www

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
)

type gasTemplRow struct {
	Hour  string
	Price float64
	IsNow bool
}

func NewGasHandler(logger *slog.Logger, db *database.Database, tm *TemplateManager, store sessions.Store, task func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "text/html")
			from := hours.FromNow().Sub(intOrDefault(r.URL, "hours", 12))

			rows, err := db.GetGasTariffsFrom(r.Context(), from)
			if err != nil {
				logger.Error("handling gas request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			loc := displayLocation(store, r)
			now := hours.FromNow()
			templRows := make([]gasTemplRow, len(rows))
			for i, row := range rows {
				templRows[i] = gasTemplRow{
					Hour:  row.When.Time().In(loc).Format("2006-01-02 15:04"),
					Price: row.Price,
					IsNow: row.When == now,
				}
			}

			if err := tm.ExecuteToWriter("gas.html", templRows, &w); err != nil {
				logger.Error("handling gas request", slog.Any("error", err))
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
