package www

import (
	"log/slog"
	"net/http"

	"github.com/jdevries/easyenergy-go/database"
)

// NewLogHandler serves the log viewer. Without a page parameter it
// renders the shell, which the browser then fills by requesting page 1.
func NewLogHandler(logger *slog.Logger, db *database.Database, tm *TemplateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		fail := func(err error) {
			logger.Error("handling log request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		page := intOrDefault(r.URL, "page", 0)
		if page < 1 {
			if err := tm.ExecuteToWriter("log.html", nil, &w); err != nil {
				fail(err)
			}
			return
		}

		pageSize := intOrDefault(r.URL, "pageSize", 25)
		if pageSize < 1 {
			pageSize = 25
		}

		entries, err := db.GetLogEntries(r.Context(), slog.LevelDebug, page, pageSize)
		if err != nil {
			fail(err)
			return
		}

		data := struct {
			Page     int
			PageSize int
			Entries  []database.LogEntryRow
		}{
			// The template links to the next page.
			Page:     page + 1,
			PageSize: pageSize,
			Entries:  entries,
		}
		if err := tm.ExecuteToWriter("log_entries.html", data, &w); err != nil {
			fail(err)
		}
	}
}
