package daemon

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/notishift/notishift/internal/config"
	"github.com/notishift/notishift/internal/geometry"
)

// ConfigWatcher watches the config file and applies anchor and log-level
// changes to a running daemon without a restart. Poll interval and process
// changes still require a restart.
type ConfigWatcher struct {
	watcher    *fsnotify.Watcher
	daemon     *Daemon
	configPath string
	logLevel   *slog.LevelVar
	logger     *slog.Logger

	mu      sync.Mutex
	done    chan struct{}
	running bool
}

// NewConfigWatcher creates a watcher for the given config file.
func NewConfigWatcher(d *Daemon, configPath string, logLevel *slog.LevelVar, logger *slog.Logger) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigWatcher{
		watcher:    watcher,
		daemon:     d,
		configPath: configPath,
		logLevel:   logLevel,
		logger:     logger,
		done:       make(chan struct{}),
	}, nil
}

// Start begins watching. The containing directory is watched rather than
// the file itself, which survives editors that replace the file on save.
func (w *ConfigWatcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.configPath)); err != nil {
		return err
	}

	go w.watch()
	w.logger.Debug("config watcher started", "path", w.configPath)
	return nil
}

// Stop stops the watcher.
func (w *ConfigWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.done)
	return w.watcher.Close()
}

func (w *ConfigWatcher) watch() {
	filename := filepath.Base(w.configPath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := config.Load(w.configPath)
	if err != nil {
		w.logger.Warn("config reload failed", "error", err)
		return
	}

	if cfg.Log.Debug {
		w.logLevel.Set(slog.LevelDebug)
	} else {
		w.logLevel.Set(slog.LevelInfo)
	}

	anchor, err := geometry.ParseAnchor(cfg.Engine.Anchor)
	if err != nil {
		w.logger.Warn("config reload: invalid anchor", "error", err)
		return
	}
	w.daemon.do(func() { w.daemon.applyAnchor(anchor) })

	w.logger.Info("config reloaded", "path", w.configPath)
}
