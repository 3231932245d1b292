package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
)

// KeyValue is a durable string map.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Backend names a KeyValue implementation.
type Backend string

const (
	BackendMemory      Backend = "memory"
	BackendYAML        Backend = "yaml"
	BackendSQLite      Backend = "sqlite"
	BackendPreferences Backend = "preferences"
)

// ErrUnknownBackend indicates an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Options selects and locates a backend.
type Options struct {
	Backend Backend
	// Path is the state file. Empty means <Dir>/state.yaml or <Dir>/state.db.
	Path string
	Dir  string
	// Preferences is required by BackendPreferences.
	Preferences fyne.Preferences
}

// Open returns the configured backend and a close function.
func Open(options Options) (KeyValue, func() error, error) {
	noop := func() error { return nil }

	switch options.Backend {
	case BackendMemory:
		return NewMemory(), noop, nil
	case BackendYAML, "":
		path := options.Path
		if path == "" {
			path = filepath.Join(options.Dir, stateFileName)
		}
		return NewYAMLFile(path), noop, nil
	case BackendSQLite:
		path := options.Path
		if path == "" {
			path = filepath.Join(options.Dir, databaseFileName)
		}
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case BackendPreferences:
		if options.Preferences == nil {
			return nil, nil, fmt.Errorf("open %s storage: no fyne app preferences available", options.Backend)
		}
		return NewPreferences(options.Preferences), noop, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, options.Backend)
	}
}
