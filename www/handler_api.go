package www

import (
	"log/slog"
	"net/http"

	"github.com/jdevries/easyenergy-go/convert"
	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/hours"
)

type apiElectricityHour struct {
	Hour   string  `json:"hour"`
	Usage  float64 `json:"usage"`
	Return float64 `json:"return"`
}

type apiElectricityStats struct {
	CurrentHour   string   `json:"current_hour"`
	CurrentUsage  *float64 `json:"current_usage"`
	CurrentReturn *float64 `json:"current_return"`
	MinUsage      float64  `json:"min_usage"`
	MaxUsage      float64  `json:"max_usage"`
	AvgUsage      float64  `json:"avg_usage"`
	MinUsageHour  string   `json:"min_usage_hour"`
	MaxUsageHour  string   `json:"max_usage_hour"`
	AvgReturn     float64  `json:"avg_return"`
	PctOfMaxUsage float64  `json:"pct_of_max_usage"`

	Hours []apiElectricityHour `json:"hours"`
}

type apiGasHour struct {
	Hour  string  `json:"hour"`
	Price float64 `json:"price"`
}

type apiGasStats struct {
	CurrentHour  string   `json:"current_hour"`
	CurrentPrice *float64 `json:"current_price"`
	MinPrice     float64  `json:"min_price"`
	MaxPrice     float64  `json:"max_price"`
	AvgPrice     float64  `json:"avg_price"`
	MinPriceHour string   `json:"min_price_hour"`
	MaxPriceHour string   `json:"max_price_hour"`

	Hours []apiGasHour `json:"hours"`
}

// NewApiElectricityHandler serves today's electricity tariffs with derived
// statistics as JSON. A POST forces an immediate fetch, like the panel
// handlers do.
func NewApiElectricityHandler(logger *slog.Logger, db *database.Database, task func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			rows, err := db.GetElectricityTariffsFrom(r.Context(), hours.FromMidnight())
			if err != nil {
				logger.Error("handling api electricity request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if len(rows) == 0 {
				http.Error(w, "No electricity tariffs for today", http.StatusNotFound)
				return
			}

			now := hours.FromNow()
			stats := apiElectricityStats{
				CurrentHour:  now.IsoString(),
				MinUsage:     rows[0].Usage,
				MaxUsage:     rows[0].Usage,
				MinUsageHour: rows[0].When.IsoString(),
				MaxUsageHour: rows[0].When.IsoString(),
				Hours:        make([]apiElectricityHour, len(rows)),
			}

			var sumUsage, sumReturn float64
			for i, row := range rows {
				if row.Usage < stats.MinUsage {
					stats.MinUsage = row.Usage
					stats.MinUsageHour = row.When.IsoString()
				}
				if row.Usage > stats.MaxUsage {
					stats.MaxUsage = row.Usage
					stats.MaxUsageHour = row.When.IsoString()
				}
				sumUsage += row.Usage
				sumReturn += row.Return
				if row.When == now {
					stats.CurrentUsage = &rows[i].Usage
					stats.CurrentReturn = &rows[i].Return
				}
				stats.Hours[i] = apiElectricityHour{
					Hour:   row.When.IsoString(),
					Usage:  row.Usage,
					Return: row.Return,
				}
			}

			stats.AvgUsage = convert.FiveDecimals(sumUsage / float64(len(rows)))
			stats.AvgReturn = convert.FiveDecimals(sumReturn / float64(len(rows)))
			if stats.CurrentUsage != nil && stats.MaxUsage != 0 {
				stats.PctOfMaxUsage = convert.TwoDecimals(*stats.CurrentUsage / stats.MaxUsage * 100)
			}

			writeJson(logger, w, stats)

		case http.MethodPost:
			task()
			w.WriteHeader(http.StatusAccepted)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// NewApiGasHandler serves today's gas tariffs with derived statistics as JSON.
func NewApiGasHandler(logger *slog.Logger, db *database.Database, task func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			rows, err := db.GetGasTariffsFrom(r.Context(), hours.FromMidnight())
			if err != nil {
				logger.Error("handling api gas request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if len(rows) == 0 {
				http.Error(w, "No gas tariffs for today", http.StatusNotFound)
				return
			}

			now := hours.FromNow()
			stats := apiGasStats{
				CurrentHour:  now.IsoString(),
				MinPrice:     rows[0].Price,
				MaxPrice:     rows[0].Price,
				MinPriceHour: rows[0].When.IsoString(),
				MaxPriceHour: rows[0].When.IsoString(),
				Hours:        make([]apiGasHour, len(rows)),
			}

			var sum float64
			for i, row := range rows {
				if row.Price < stats.MinPrice {
					stats.MinPrice = row.Price
					stats.MinPriceHour = row.When.IsoString()
				}
				if row.Price > stats.MaxPrice {
					stats.MaxPrice = row.Price
					stats.MaxPriceHour = row.When.IsoString()
				}
				sum += row.Price
				if row.When == now {
					stats.CurrentPrice = &rows[i].Price
				}
				stats.Hours[i] = apiGasHour{
					Hour:  row.When.IsoString(),
					Price: row.Price,
				}
			}

			stats.AvgPrice = convert.FiveDecimals(sum / float64(len(rows)))

			writeJson(logger, w, stats)

		case http.MethodPost:
			task()
			w.WriteHeader(http.StatusAccepted)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// NewApiDailyHandler serves per-day aggregates as JSON.
func NewApiDailyHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	type day struct {
		Date      string   `json:"date"`
		MinUsage  float64  `json:"min_usage"`
		AvgUsage  float64  `json:"avg_usage"`
		MaxUsage  float64  `json:"max_usage"`
		AvgReturn float64  `json:"avg_return"`
		AvgGas    *float64 `json:"avg_gas"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		rows, err := db.GetDailyTariffs(r.Context(), intOrDefault(r.URL, "days", 14))
		if err != nil {
			logger.Error("handling api daily request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		days := make([]day, len(rows))
		for i, row := range rows {
			days[i] = day{
				Date:      row.Date,
				MinUsage:  row.MinUsage,
				AvgUsage:  convert.FiveDecimals(row.AvgUsage),
				MaxUsage:  row.MaxUsage,
				AvgReturn: convert.FiveDecimals(row.AvgReturn),
			}
			if row.AvgGas.Valid {
				avgGas := convert.FiveDecimals(row.AvgGas.Float64)
				days[i].AvgGas = &avgGas
			}
		}

		writeJson(logger, w, days)
	}
}
