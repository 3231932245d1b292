package storage

import (
	"path/filepath"
	"testing"
	"time"

	"hackclock/internal/core/countdown"
	"hackclock/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainTime_RestartReproducesValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	clock := testutil.NewFakeClock()

	first := countdown.New(NewMainTime(NewYAMLFile(path)), countdown.Config{Clock: clock})
	first.ToggleMain()
	clock.Advance(90 * time.Second)
	want := first.Snapshot().MainRemaining
	first.Close()
	require.Equal(t, 86310, want)

	second := countdown.New(NewMainTime(NewYAMLFile(path)), countdown.Config{Clock: clock})
	defer second.Close()
	assert.Equal(t, want, second.Snapshot().MainRemaining)

	second.Reset()
	raw, ok, err := NewYAMLFile(path).Get(MainTimeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "86400", raw)
}
