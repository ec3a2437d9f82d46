package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helpdesk.log")
	logger, closer, err := New(path, "debug")
	require.NoError(t, err)

	logger.Debug().Str("path", "/chat").Msg("backend call")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(raw)
	require.True(t, strings.Contains(line, `"message":"backend call"`), line)
	require.True(t, strings.Contains(line, `"app":"campus-helpdesk"`), line)
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helpdesk.log")
	logger, closer, err := New(path, "warn")
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "hidden")
	require.Contains(t, string(raw), "shown")
}

func TestNewDisabledDoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helpdesk.log")
	_, closer, err := New(path, "disabled")
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel(" ERROR ")
	require.NoError(t, err)
	require.Equal(t, zerolog.ErrorLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
