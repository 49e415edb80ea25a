package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jdevries/easyenergy-go/announce"
	"github.com/jdevries/easyenergy-go/config"
	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/easyenergy"
	"github.com/jdevries/easyenergy-go/hours"
	"github.com/jdevries/easyenergy-go/logging"
	"github.com/jdevries/easyenergy-go/tariff"
	"github.com/jdevries/easyenergy-go/task"
	"github.com/jdevries/easyenergy-go/www"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	// A .env file is optional, environment variables feed the config loader.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	if err := hours.SetDisplayTimezone(cnfg.Gui.GetTimezone()); err != nil {
		panic(fmt.Sprintf("failed to set display timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	console := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(console).Debug("easyenergy is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		console,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// From here on database operations log into the database itself.
	db.SetLogger(logger.With("module", "database"))

	src := newTariffSource(cnfg.Tariffs)

	var annc *announce.Announcer
	if cnfg.Mqtt.Enabled() {
		annc = announce.New(cnfg.Mqtt)
		if isDevMode() {
			logger.Info("dev mode, skipping mqtt connection")
		} else if err := annc.Connect(); err != nil {
			logger.Error("mqtt connection error", slog.Any("error", err))
		} else {
			defer annc.Disconnect()
		}
	}

	tasks := task.NewTasks(db, src, annc, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		tasks.Run()
		defer tasks.Stop()
	}

	go cancelOnSignal(ctx, cancel, logger)

	www.StartServer(db, tasks, cnfg, Version).Run(ctx)
}

// newTariffSource builds the EasyEnergy API client from the tariffs
// section of the config.
func newTariffSource(cnfg config.AppConfigTariffs) *tariff.EasyEnergy {
	loc, err := time.LoadLocation(cnfg.GetTimezone())
	if err != nil {
		panic(fmt.Sprintf("failed to load tariff timezone: %v", err))
	}

	vat := easyenergy.VatInclude
	if !cnfg.GetIncludeVat() {
		vat = easyenergy.VatExclude
	}

	return tariff.NewEasyEnergy(easyenergy.New(
		easyenergy.WithLocation(loc),
		easyenergy.WithVat(vat)))
}

func cancelOnSignal(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case sig := <-sigCh:
		logger.Info("received signal", slog.Any("signal", sig))
		cancel()
	}
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	logger.Error("application exiting with error", slog.Any("error", err))

	// Give the database log handler a moment to flush before the
	// process goes away.
	if syncer, ok := logger.Handler().(interface{ Sync() error }); ok {
		if syncErr := syncer.Sync(); syncErr != nil {
			logger.Error("failed to flush logger", slog.Any("error", syncErr))
		}
	}
	time.Sleep(2 * time.Second)
	os.Exit(1)
}
