package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jdevries/easyenergy-go/config"
	"github.com/jdevries/easyenergy-go/database"
	"github.com/jdevries/easyenergy-go/task"
)

//go:embed static
var embeddedStaticDir embed.FS

// realTimePushInterval is how often the current tariff snapshot is
// pushed to connected websocket clients.
const realTimePushInterval = 10 * time.Second

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	db     *database.Database
	rtm    *RealTimeManager
	hub    *Hub
	tm     *TemplateManager
	mux    *http.ServeMux
}

// StartServer wires up the dashboard routes and the websocket hub. The
// listener itself is started by Run.
func StartServer(db *database.Database, tasks *task.Tasks, cnfg *config.AppConfig, version string) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.Api.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger: logger,
		config: cnfg.Api,
		db:     db,
		rtm:    NewRealTimeManager(db),
		hub:    NewHub(logger),
		tm:     tm,
		mux:    http.NewServeMux(),
	}

	go s.hub.Run()

	store := sessions.NewCookieStore([]byte(cnfg.Api.GetSessionKey()))
	sysInfo := SysInfo{
		Version:      version,
		StartedAt:    time.Now(),
		DatabasePath: cnfg.Database.Path,
		GoVersion:    runtime.Version(),
	}
	s.routes(tasks, store, sysInfo)

	return s
}

func (s *Server) routes(tasks *task.Tasks, store sessions.Store, sysInfo SysInfo) {
	hl := func(name string) *slog.Logger {
		return s.logger.With(slog.String("handler", name))
	}

	s.mux.Handle("/", s.staticFiles())
	s.mux.Handle("/electricity", s.logRequests(NewElectricityHandler(
		hl("electricity"), s.db, s.tm, store, tasks.ElectricityTariffTask)))
	s.mux.Handle("/gas", s.logRequests(NewGasHandler(
		hl("gas"), s.db, s.tm, store, tasks.GasTariffTask)))
	s.mux.Handle("/daily_stats", s.logRequests(NewDailyStatsHandler(
		hl("daily_stats"), s.db, s.tm)))
	s.mux.Handle("/log", s.logRequests(NewLogHandler(
		hl("log"), s.db, s.tm)))
	s.mux.Handle("/chart", s.logRequests(NewChartHandler(
		hl("chart"), s.db)))
	s.mux.Handle("/prefs", s.logRequests(NewPrefsHandler(
		hl("prefs"), store, s.tm)))
	s.mux.Handle("/sys_info", s.logRequests(NewSysInfoHandler(
		hl("sys_info"), s.tm, sysInfo)))

	s.mux.Handle("/api/electricity", s.logRequests(NewApiElectricityHandler(
		hl("api_electricity"), s.db, tasks.ElectricityTariffTask)))
	s.mux.Handle("/api/gas", s.logRequests(NewApiGasHandler(
		hl("api_gas"), s.db, tasks.GasTariffTask)))
	s.mux.Handle("/api/daily", s.logRequests(NewApiDailyHandler(
		hl("api_daily"), s.db)))

	s.mux.HandleFunc("/ws", s.serveWs)
}

// logRequests logs every request at debug level, including how long
// the handler took.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("url", r.URL.String()),
			slog.String("remoteAddr", r.RemoteAddr),
			slog.Duration("took", time.Since(start)))
	})
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	client, err := NewClient(s.hub, w, r, r.Header.Get("User-Agent"))
	if err != nil {
		s.logger.Error("new websocket client failed", slog.Any("error", err))
		return
	}
	s.hub.Register <- client
	go client.WritePump()
}

// staticFiles serves from the configured www directory when it exists,
// falling back to the files embedded at build time.
func (s *Server) staticFiles() http.Handler {
	if dir := s.config.WwwDir; dir != nil && *dir != "" {
		ext := path.Join(*dir, "static")
		if _, err := os.Stat(ext); err == nil {
			s.logger.Info("serving static files from disk", slog.String("dir", ext))
			return http.FileServer(http.Dir(ext))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(fsys))
}

// Run serves HTTP until ctx is cancelled, pushing real time data to
// websocket clients while it runs.
func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "address", s.config.Address, "port", s.config.Port)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
		Handler: s.mux,
	}

	srvErrors := make(chan error, 1)
	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(realTimePushInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ticker.C:
			s.pushRealTimeData(ctx)

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return
		}
	}
}

func (s *Server) pushRealTimeData(ctx context.Context) {
	data := s.rtm.Get(ctx)
	buf, err := s.tm.Execute("real_time_data.html", data)
	if err != nil {
		s.logger.Error("template execution failed", slog.Any("error", err))
		return
	}
	s.hub.Broadcast <- buf.Bytes()
}
