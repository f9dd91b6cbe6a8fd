package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "path> ", cfg.Prompt)
	assert.Equal(t, 0, cfg.MaxSuggestions)
	assert.Equal(t, filepath.Join(home, ".pathcomplete", "pathcomplete.log"), cfg.LogFile)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `logLevel: debug
prompt: "> "
maxSuggestions: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, 20, cfg.MaxSuggestions)
	assert.Equal(t, filepath.Join(home, ".pathcomplete", "pathcomplete.log"), cfg.LogFile, "unset keys keep their defaults")
}

func TestLoadFromBytesExpandsLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PATHCOMPLETE_LOGS", "/var/log/pc")

	cfg, err := LoadFromBytes([]byte("logFile: ~/logs/pc.log\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "pc.log"), cfg.LogFile)

	cfg, err = LoadFromBytes([]byte("logFile: $PATHCOMPLETE_LOGS/pc.log\n"))
	require.NoError(t, err)
	assert.Equal(t, "/var/log/pc/pc.log", cfg.LogFile)
}

func TestLoadFromBytesErrors(t *testing.T) {
	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadFromBytes([]byte("logLevel: [unterminated\n"))
		assert.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := LoadFromBytes([]byte("maxSuggestions: many\n"))
		assert.Error(t, err)
	})

	t.Run("negative cap", func(t *testing.T) {
		_, err := LoadFromBytes([]byte("maxSuggestions: -1\n"))
		assert.ErrorContains(t, err, "maxSuggestions")
	})
}

func TestLoadFromFileUnreadable(t *testing.T) {
	// A directory cannot be read as a file.
	_, err := LoadFromFile(t.TempDir())
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestZapLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			assert.Equal(t, tt.expected, cfg.ZapLevel().Level())
		})
	}
}
