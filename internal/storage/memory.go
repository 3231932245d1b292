package storage

import "sync"

// Memory is an in-process KeyValue for tests and environments without
// durable storage.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (memory *Memory) Get(key string) (string, bool, error) {
	memory.mu.RLock()
	defer memory.mu.RUnlock()
	value, ok := memory.values[key]
	return value, ok, nil
}

func (memory *Memory) Set(key, value string) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	memory.values[key] = value
	return nil
}
