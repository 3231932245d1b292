package storage

import (
	"strconv"
	"strings"
)

// MainTimeKey is the persisted entry for the main countdown.
const MainTimeKey = "mainTime"

// MainTime persists the main countdown as a decimal string under
// MainTimeKey. It satisfies countdown.Persister.
type MainTime struct {
	kv KeyValue
}

// NewMainTime adapts kv.
func NewMainTime(kv KeyValue) *MainTime {
	return &MainTime{kv: kv}
}

// Load returns the stored seconds. Missing, unreadable, non-integer and
// negative values all report false.
func (mainTime *MainTime) Load() (int, bool) {
	raw, ok, err := mainTime.kv.Get(MainTimeKey)
	if err != nil || !ok {
		return 0, false
	}
	return ParseSeconds(raw)
}

// Save writes seconds.
func (mainTime *MainTime) Save(seconds int) error {
	return mainTime.kv.Set(MainTimeKey, strconv.Itoa(seconds))
}

// ParseSeconds parses a stored decimal seconds value.
func ParseSeconds(raw string) (int, bool) {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seconds < 0 {
		return 0, false
	}
	return seconds, true
}
