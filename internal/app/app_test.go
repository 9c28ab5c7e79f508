package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/law-makers/motorreg/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)
}

func TestNew_WiresDependencies(t *testing.T) {
	cfg := config.Default()
	cfg.ChromePath = "/opt/chrome"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.NotNil(t, a.Extractor)
	assert.NotNil(t, a.Limiter)
	assert.NotNil(t, a.Logger)

	opts := a.BrowserOptions()
	assert.Equal(t, "/opt/chrome", opts.ChromePath)
	assert.Equal(t, cfg.BrowserHeadless, opts.Headless)
	assert.Equal(t, cfg.ScreenshotQuality, opts.ScreenshotQuality)
	assert.Same(t, a.Limiter, opts.Limiter)
}

func TestNewLogger_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	cfg := config.Default()
	cfg.JSONLog = true
	cfg.LogLevel = "debug"

	var buf bytes.Buffer
	logger := NewLogger(cfg, &buf)
	logger.Debug().Str("tab", "vehicle").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "vehicle", line["tab"])
	assert.Equal(t, "hello", line["message"])
}

func TestNewLogger_DefaultHidesInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	cfg := config.Default()
	cfg.JSONLog = true

	var buf bytes.Buffer
	logger := NewLogger(cfg, &buf)
	logger.Info().Msg("quiet")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewLogger_Levels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		level   string
		want    zerolog.Level
		infoOut bool
	}{
		{"debug", zerolog.DebugLevel, true},
		{"info", zerolog.InfoLevel, true},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"bogus", zerolog.WarnLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := config.Default()
			cfg.JSONLog = true
			cfg.LogLevel = tt.level

			var buf bytes.Buffer
			logger := NewLogger(cfg, &buf)
			assert.Equal(t, tt.want, logger.GetLevel())

			logger.Info().Msg("hello")
			assert.Equal(t, tt.infoOut, bytes.Contains(buf.Bytes(), []byte("hello")))
		})
	}
}

func TestNewLogger_Console(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	cfg := config.Default()
	cfg.LogLevel = "debug"

	var buf bytes.Buffer
	logger := NewLogger(cfg, &buf)
	logger.Debug().Msg("console line")

	assert.Contains(t, buf.String(), "console line")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestClose_Idempotent(t *testing.T) {
	a, err := New(context.Background(), config.Default())
	require.NoError(t, err)

	assert.NoError(t, a.Close(context.Background()))
	assert.NoError(t, a.Close(context.Background()))
}
