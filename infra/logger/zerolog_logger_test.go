package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/garage/config"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewWithConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.log")
	l := NewWithConfig("garage", config.LoggingConfig{Level: "debug", File: path, MaxSizeMB: 1})
	l.Infof("hello %s", "world")
	l.Debugf("visible at debug")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"component":"garage"`)
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "visible at debug")
}

func TestNewWithConfigLevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.log")
	l := NewWithConfig("garage", config.LoggingConfig{Level: "warn", File: path, MaxSizeMB: 1})
	l.Infof("filtered")
	l.Warnf("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "filtered")
	assert.Contains(t, out, "kept")
}
