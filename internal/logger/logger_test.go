package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dues.log")

	log, closer, err := New("debug", path)
	require.NoError(t, err)
	log.WithField("key", "courses").Debug("loaded")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "loaded", entry["message"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "dues", entry["app"])
	assert.Equal(t, "courses", entry["key"])
	assert.Contains(t, entry, "ts")
}

func TestNewLevelFallback(t *testing.T) {
	log, closer, err := New("chatty", "")
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.InfoLevel, log.Logger.GetLevel())
}
