package www

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jdevries/easyenergy-go/hours"
)

const prefsSessionName = "easyenergy_prefs"

// displayLocation resolves the timezone the tables are rendered in. A
// per-browser choice stored in the session wins over the configured default.
func displayLocation(store sessions.Store, r *http.Request) *time.Location {
	session, err := store.Get(r, prefsSessionName)
	if err == nil {
		if tz, ok := session.Values["timezone"].(string); ok {
			if loc, err := time.LoadLocation(tz); err == nil {
				return loc
			}
		}
	}
	return hours.DisplayLocation()
}

func NewPrefsHandler(logger *slog.Logger, store sessions.Store, tm *TemplateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "text/html")

			data := struct {
				Timezone string
			}{
				Timezone: displayLocation(store, r).String(),
			}

			if err := tm.ExecuteToWriter("prefs.html", data, &w); err != nil {
				logger.Error("handling prefs request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}

		case http.MethodPost:
			tz := r.FormValue("timezone")
			if _, err := time.LoadLocation(tz); err != nil {
				http.Error(w, "Unknown timezone", http.StatusBadRequest)
				return
			}

			session, _ := store.Get(r, prefsSessionName)
			session.Values["timezone"] = tz
			if err := session.Save(r, w); err != nil {
				logger.Error("handling prefs request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			http.Redirect(w, r, "/prefs", http.StatusSeeOther)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
