package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jdevries/easyenergy-go/convert"
	"github.com/jdevries/easyenergy-go/hours"
)

type ElectricityTariffRow struct {
	When   hours.DateHour
	Usage  float64
	Return float64
}

type GasTariffRow struct {
	When  hours.DateHour
	Price float64
}

// DailyTariffRow aggregates one calendar day of stored tariffs.
// Gas columns are null for days where no gas tariff was fetched.
type DailyTariffRow struct {
	Date      string
	MinUsage  float64
	AvgUsage  float64
	MaxUsage  float64
	AvgReturn float64
	AvgGas    sql.NullFloat64
}

func (d *Database) SaveElectricityTariffs(ctx context.Context, rows []ElectricityTariffRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO electricity_tariff (date, hour, usage_price, return_price) VALUES (?, ?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET
				usage_price = excluded.usage_price,
				return_price = excluded.return_price`,
			row.When.Date,
			row.When.Hour,
			convert.FiveDecimals(row.Usage),
			convert.FiveDecimals(row.Return))
		if err != nil {
			return fmt.Errorf("saving electricity tariff for %s: %w", row.When, err)
		}
	}
	return nil
}

func (d *Database) GetElectricityTariff(ctx context.Context, dh hours.DateHour) (ElectricityTariffRow, error) {
	row := d.read.QueryRowContext(ctx, `SELECT
		date, hour, usage_price, return_price
		FROM electricity_tariff
		WHERE date = ? AND hour = ?`,
		dh.Date, dh.Hour)

	var et ElectricityTariffRow
	err := row.Scan(&et.When.Date, &et.When.Hour, &et.Usage, &et.Return)
	if err != nil {
		return ElectricityTariffRow{}, fmt.Errorf("fetching electricity tariff for %s: %w", dh, err)
	}

	return et, nil
}

func (d *Database) GetElectricityTariffsFrom(ctx context.Context, dh hours.DateHour) ([]ElectricityTariffRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, hour, usage_price, return_price
		FROM electricity_tariff
		WHERE (date = ? AND hour >= ?) OR date > ?
		ORDER BY date, hour ASC`,
		dh.Date, dh.Hour, dh.Date)
	if err != nil {
		return nil, fmt.Errorf("fetching electricity tariffs from %s: %w", dh, err)
	}

	defer rows.Close()

	var tariffs []ElectricityTariffRow
	for rows.Next() {
		var et ElectricityTariffRow
		err := rows.Scan(&et.When.Date, &et.When.Hour, &et.Usage, &et.Return)
		if err != nil {
			return nil, fmt.Errorf("scanning electricity tariff row: %w", err)
		}
		tariffs = append(tariffs, et)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading electricity tariff rows: %w", err)
	}

	return tariffs, nil
}

func (d *Database) SaveGasTariffs(ctx context.Context, rows []GasTariffRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO gas_tariff (date, hour, price) VALUES (?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET price = excluded.price`,
			row.When.Date,
			row.When.Hour,
			convert.FiveDecimals(row.Price))
		if err != nil {
			return fmt.Errorf("saving gas tariff for %s: %w", row.When, err)
		}
	}
	return nil
}

func (d *Database) GetGasTariff(ctx context.Context, dh hours.DateHour) (GasTariffRow, error) {
	row := d.read.QueryRowContext(ctx, `SELECT
		date, hour, price
		FROM gas_tariff
		WHERE date = ? AND hour = ?`,
		dh.Date, dh.Hour)

	var gt GasTariffRow
	err := row.Scan(&gt.When.Date, &gt.When.Hour, &gt.Price)
	if err != nil {
		return GasTariffRow{}, fmt.Errorf("fetching gas tariff for %s: %w", dh, err)
	}

	return gt, nil
}

func (d *Database) GetGasTariffsFrom(ctx context.Context, dh hours.DateHour) ([]GasTariffRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, hour, price
		FROM gas_tariff
		WHERE (date = ? AND hour >= ?) OR date > ?
		ORDER BY date, hour ASC`,
		dh.Date, dh.Hour, dh.Date)
	if err != nil {
		return nil, fmt.Errorf("fetching gas tariffs from %s: %w", dh, err)
	}

	defer rows.Close()

	var tariffs []GasTariffRow
	for rows.Next() {
		var gt GasTariffRow
		err := rows.Scan(&gt.When.Date, &gt.When.Hour, &gt.Price)
		if err != nil {
			return nil, fmt.Errorf("scanning gas tariff row: %w", err)
		}
		tariffs = append(tariffs, gt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading gas tariff rows: %w", err)
	}

	return tariffs, nil
}

func (d *Database) GetDailyTariffs(ctx context.Context, days int) ([]DailyTariffRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		e.date,
		MIN(e.usage_price),
		AVG(e.usage_price),
		MAX(e.usage_price),
		AVG(e.return_price),
		(SELECT AVG(g.price) FROM gas_tariff g WHERE g.date = e.date)
		FROM electricity_tariff e
		GROUP BY e.date
		ORDER BY e.date DESC
		LIMIT ?`,
		days)
	if err != nil {
		return nil, fmt.Errorf("fetching daily tariffs: %w", err)
	}

	defer rows.Close()

	var daily []DailyTariffRow
	for rows.Next() {
		var dt DailyTariffRow
		err := rows.Scan(&dt.Date, &dt.MinUsage, &dt.AvgUsage, &dt.MaxUsage, &dt.AvgReturn, &dt.AvgGas)
		if err != nil {
			return nil, fmt.Errorf("scanning daily tariff row: %w", err)
		}
		daily = append(daily, dt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading daily tariff rows: %w", err)
	}

	return daily, nil
}

func (d *Database) PurgeElectricityTariff(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "electricity_tariff", retentionDays)
}

func (d *Database) PurgeGasTariff(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "gas_tariff", retentionDays)
}
