package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupEmitsRenamedKeysAndMasksSecrets(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	logger := Setup("sawtk", "test", WithWriter(&buf), WithLevel("debug"))
	logger.Debug("key loaded", "public_key", "02abc", "private_key", "deadbeef")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "key loaded", line["message"])
	require.Equal(t, "DEBUG", line["severity"])
	require.Equal(t, "sawtk", line["service"])
	require.Equal(t, "test", line["env"])
	require.Equal(t, "02abc", line["public_key"])
	require.Equal(t, RedactedValue, line["private_key"])
	require.Contains(t, line, "timestamp")
}

func TestSetupLevelFilters(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	logger := Setup("sawtk", "", WithWriter(&buf), WithLevel("warn"))
	logger.Info("dropped")
	require.Zero(t, buf.Len())
	logger.Warn("kept")
	require.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel(" error "))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestMaskField(t *testing.T) {
	require.Equal(t, "abc", MaskField("family", "abc").Value.String())
	require.Equal(t, RedactedValue, MaskField("nonce", "abc").Value.String())
	require.Equal(t, "", MaskField("nonce", "").Value.String())
	require.True(t, IsSensitive("Private_Key"))
	require.Contains(t, RedactionAllowlist(), "public_key")
}
