package storage

import "fyne.io/fyne/v2"

// Preferences stores values in the fyne application preferences, which the
// driver persists per app ID.
type Preferences struct {
	prefs fyne.Preferences
}

// NewPreferences wraps app preferences.
func NewPreferences(prefs fyne.Preferences) *Preferences {
	return &Preferences{prefs: prefs}
}

func (store *Preferences) Get(key string) (string, bool, error) {
	value := store.prefs.String(key)
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (store *Preferences) Set(key, value string) error {
	store.prefs.SetString(key, value)
	return nil
}
