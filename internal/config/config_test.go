package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("helpdesk", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	fs := newFlags(t, "--log-file", filepath.Join(dir, "logs", "h.log"), "--upload-dir", dir)

	cfg, err := Load(fs)
	require.NoError(t, err)
	require.Equal(t, DefaultBackendURL, cfg.BackendURL)
	require.Equal(t, DefaultReplyDelay, cfg.ReplyDelay)
	require.Zero(t, cfg.RequestTimeout)
	require.Equal(t, DefaultGlamourStyle, cfg.GlamourStyle)
	require.Equal(t, dir, cfg.UploadDir)

	st, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	require.True(t, st.IsDir())
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "helpdesk.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"backend_url: http://file.example:9000/\n"+
			"reply_delay: 1s\n"+
			"request_timeout: 30s\n"+
			"export_dir: from-file\n"+
			"log_level: debug\n",
	), 0o644))

	t.Setenv("HELPDESK_EXPORT_DIR", "from-env")
	t.Setenv("HELPDESK_REPLY_DELAY", "250ms")

	fs := newFlags(t,
		"--config", file,
		"--log-file", filepath.Join(dir, "h.log"),
		"--reply-delay", "0s",
	)

	cfg, err := Load(fs)
	require.NoError(t, err)
	require.Equal(t, "http://file.example:9000", cfg.BackendURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "from-env", cfg.ExportDir)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Zero(t, cfg.ReplyDelay, "explicit flag should beat env and file")
}

func TestLoadUnsetFlagsKeepEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HELPDESK_BACKEND_URL", "https://helpdesk.example.edu")
	fs := newFlags(t, "--log-file", filepath.Join(dir, "h.log"))

	cfg, err := Load(fs)
	require.NoError(t, err)
	require.Equal(t, "https://helpdesk.example.edu", cfg.BackendURL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]AppConfig{
		"relative url":     {BackendURL: "localhost:8000"},
		"ftp scheme":       {BackendURL: "ftp://example.com"},
		"negative delay":   {BackendURL: DefaultBackendURL, ReplyDelay: -time.Second},
		"negative timeout": {BackendURL: DefaultBackendURL, RequestTimeout: -time.Second},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsBadFileDuration(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "helpdesk.yaml")
	require.NoError(t, os.WriteFile(file, []byte("reply_delay: soon\n"), 0o644))

	_, err := Load(newFlags(t, "--config", file, "--log-file", filepath.Join(dir, "h.log")))
	require.ErrorContains(t, err, "reply_delay")
}

func TestDetectUploadDirPrefersExplicit(t *testing.T) {
	got, err := DetectUploadDir("/tmp/docs/../docs")
	require.NoError(t, err)
	require.Equal(t, "/tmp/docs", got)
}

func TestLoadMissingFileKeepsCause(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(newFlags(t, "--config", filepath.Join(dir, "absent.yaml"), "--log-file", filepath.Join(dir, "h.log")))

	require.ErrorContains(t, err, "read config file")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDisabledLoggingSkipsLogDir(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	fs := newFlags(t, "--log-level", "disabled", "--log-file", filepath.Join(logDir, "h.log"), "--upload-dir", dir)

	_, err := Load(fs)
	require.NoError(t, err)

	_, err = os.Stat(logDir)
	require.ErrorIs(t, err, os.ErrNotExist)
}
