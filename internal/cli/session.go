package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"hackclock/internal/core/countdown"
	"hackclock/internal/platform"
	"hackclock/internal/storage"

	"fyne.io/fyne/v2"
)

// session owns one open state location and the store reading it.
type session struct {
	store        *countdown.Store
	mainTime     *storage.MainTime
	guard        *platform.InstanceGuard
	closeStorage func() error
	location     string
}

// openStorage opens the configured backend. prefs may be nil outside the GUI.
func (app *App) openStorage(prefs fyne.Preferences) (storage.KeyValue, func() error, string, error) {
	options := app.cfg.StorageOptions(app.dir)
	options.Preferences = prefs

	kv, closeFn, err := storage.Open(options)
	if err != nil {
		return nil, nil, "", fmt.Errorf("open state: %w", err)
	}
	return kv, closeFn, describeLocation(options), nil
}

// openSession opens storage, takes the single-instance lock and builds the
// store on top.
func (app *App) openSession(prefs fyne.Preferences) (*session, error) {
	kv, closeFn, location, err := app.openStorage(prefs)
	if err != nil {
		return nil, err
	}

	guard, err := app.Lock(location)
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("lock %s: %w", location, err)
	}

	mainTime := storage.NewMainTime(kv)
	return &session{
		store:        countdown.New(mainTime, countdown.Config{}),
		mainTime:     mainTime,
		guard:        guard,
		closeStorage: closeFn,
		location:     location,
	}, nil
}

// Close stops the store and releases storage and the lock.
func (s *session) Close() error {
	s.store.Close()
	return errors.Join(s.closeStorage(), s.guard.Release())
}

func describeLocation(options storage.Options) string {
	switch options.Backend {
	case storage.BackendSQLite:
		if options.Path != "" {
			return "sqlite:" + options.Path
		}
		return "sqlite:" + filepath.Join(options.Dir, "state.db")
	case storage.BackendYAML, "":
		if options.Path != "" {
			return "yaml:" + options.Path
		}
		return "yaml:" + filepath.Join(options.Dir, "state.yaml")
	default:
		return string(options.Backend)
	}
}
