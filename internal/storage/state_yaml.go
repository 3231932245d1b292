package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const stateFileName = "state.yaml"

// YAMLFile keeps key-value pairs in a single YAML mapping on disk.
// Every Set rewrites the whole file.
type YAMLFile struct {
	mu   sync.Mutex
	path string
}

// NewYAMLFile returns a store backed by path. The file is created on the
// first Set.
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

// Path returns the backing file.
func (file *YAMLFile) Path() string {
	return file.path
}

func (file *YAMLFile) Get(key string) (string, bool, error) {
	file.mu.Lock()
	defer file.mu.Unlock()

	values, err := file.readLocked()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (file *YAMLFile) Set(key, value string) error {
	file.mu.Lock()
	defer file.mu.Unlock()

	values, err := file.readLocked()
	if err != nil {
		// A corrupt file is replaced rather than blocking every save.
		values = map[string]string{}
	}
	values[key] = value

	if err := os.MkdirAll(filepath.Dir(file.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	serialized, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal state yaml: %w", err)
	}

	tmpPath := file.path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmpPath, file.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (file *YAMLFile) readLocked() (map[string]string, error) {
	rawData, err := os.ReadFile(file.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(rawData, &values); err != nil {
		return nil, fmt.Errorf("parse state yaml: %w", err)
	}
	return values, nil
}
