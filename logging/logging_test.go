package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNewDefaultLevel(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.Equal(t, os.Stderr, l.Out)
}

func TestNewFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "inky.log")
	l, err := New(Options{Level: "DEBUG", File: file})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("task", "t1").Debug("operations executed")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "operations executed", entry["message"])
	assert.Equal(t, "t1", entry["task"])
	assert.Equal(t, "debug", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewRotatingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "inky.log")
	l, err := New(Options{File: file, MaxAge: 7})
	require.NoError(t, err)
	l.Info("started")
	assert.FileExists(t, file)
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
