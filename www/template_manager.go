package www

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jdevries/easyenergy-go/hours"
	"github.com/jdevries/easyenergy-go/types/maybe"
)

//go:embed templates
var templatesDirEmbed embed.FS

func formatDecimals(places int) func(float64) string {
	format := "%." + strconv.Itoa(places) + "f"
	return func(n float64) string {
		return fmt.Sprintf(format, n)
	}
}

var funcMap = template.FuncMap{
	"TwoDecimals":  formatDecimals(2),
	"FiveDecimals": formatDecimals(5),
	"MaybePrice": func(m maybe.Maybe[float64]) string {
		if !m.IsValid() {
			return "-"
		}
		return fmt.Sprintf("%.5f", m.Value())
	},
	"DisplayTime": func(t time.Time) string {
		return hours.FormatTimeInDisplayTimezone(t)
	},
	"LevelName": func(level int) string {
		return slog.Level(level).String()
	},
	"Subtract": func(a, b int) int { return a - b },
}

// TemplateManager renders the dashboard templates. By default it
// serves the embedded set; pointing it at an external directory
// switches to that set and reloads it on file changes.
type TemplateManager struct {
	templates *template.Template
	mutex     sync.RWMutex
	logger    *slog.Logger
}

func NewTemplateManager(logger *slog.Logger, extDir *string) (*TemplateManager, error) {
	tm := &TemplateManager{logger: logger}

	if extDir != nil {
		if err := tm.watchExternalTemplates(filepath.Join(*extDir, "templates")); err != nil {
			return nil, err
		}
		return tm, nil
	}

	tm.logger.Debug("loading embedded templates...")
	sub, err := fs.Sub(templatesDirEmbed, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded templates: %w", err)
	}
	if err := tm.parse(sub); err != nil {
		return nil, err
	}
	return tm, nil
}

func (tm *TemplateManager) parse(fsys fs.FS) error {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(fsys, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	tm.mutex.Lock()
	tm.templates = tmpl
	tm.mutex.Unlock()
	return nil
}

func (tm *TemplateManager) watchExternalTemplates(dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create template watcher: %w", err)
	}
	go tm.watchLoop(watcher, dir)

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch templates: %w", err)
	}

	tm.logger.Debug("loading external templates...", slog.String("dir", dir))
	if err := tm.parse(os.DirFS(dir)); err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	return nil
}

func (tm *TemplateManager) watchLoop(watcher *fsnotify.Watcher, dir string) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) {
				tm.logger.Debug("reloading external templates...", slog.String("file", event.Name))
				if err := tm.parse(os.DirFS(dir)); err != nil {
					tm.logger.Error("error reloading templates", slog.Any("error", err))
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			tm.logger.Debug("error watching templates", slog.Any("error", err))
		}
	}
}

func (tm *TemplateManager) render(wr io.Writer, name string, data any) error {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	if err := tm.templates.ExecuteTemplate(wr, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return nil
}

func (tm *TemplateManager) Execute(name string, data any) (bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := tm.render(&buf, name, data); err != nil {
		return bytes.Buffer{}, err
	}
	return buf, nil
}

func (tm *TemplateManager) ExecuteToWriter(name string, data any, wr *http.ResponseWriter) error {
	return tm.render(*wr, name, data)
}
