package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGlamourStyle = "dark"
	DefaultBackendURL   = "http://localhost:8000"
	DefaultReplyDelay   = 500 * time.Millisecond
	DefaultLogLevel     = "info"
	DefaultExportDir    = "helpdesk-transcripts"
)

// AppConfig is resolved from defaults, an optional YAML file, HELPDESK_*
// environment variables and command-line flags, in that order.
type AppConfig struct {
	BackendURL     string        `env:"HELPDESK_BACKEND_URL"`
	ReplyDelay     time.Duration `env:"HELPDESK_REPLY_DELAY"`
	RequestTimeout time.Duration `env:"HELPDESK_REQUEST_TIMEOUT"`
	UploadDir      string        `env:"HELPDESK_UPLOAD_DIR"`
	ExportDir      string        `env:"HELPDESK_EXPORT_DIR"`
	LogFile        string        `env:"HELPDESK_LOG_FILE"`
	LogLevel       string        `env:"HELPDESK_LOG_LEVEL"`
	GlamourStyle   string        `env:"HELPDESK_GLAMOUR_STYLE"`
}

// fileConfig mirrors AppConfig for YAML; durations stay strings until parsed.
type fileConfig struct {
	BackendURL     string `yaml:"backend_url"`
	ReplyDelay     string `yaml:"reply_delay"`
	RequestTimeout string `yaml:"request_timeout"`
	UploadDir      string `yaml:"upload_dir"`
	ExportDir      string `yaml:"export_dir"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
	GlamourStyle   string `yaml:"glamour_style"`
}

const (
	flagConfig         = "config"
	flagBackendURL     = "backend-url"
	flagReplyDelay     = "reply-delay"
	flagRequestTimeout = "request-timeout"
	flagUploadDir      = "upload-dir"
	flagExportDir      = "export-dir"
	flagLogFile        = "log-file"
	flagLogLevel       = "log-level"
	flagGlamourStyle   = "glamour-style"
)

func Defaults() AppConfig {
	return AppConfig{
		BackendURL:   DefaultBackendURL,
		ReplyDelay:   DefaultReplyDelay,
		ExportDir:    DefaultExportDir,
		LogLevel:     DefaultLogLevel,
		GlamourStyle: DefaultGlamourStyle,
	}
}

func AddFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String(flagConfig, "", "path to a YAML config file")
	fs.String(flagBackendURL, d.BackendURL, "base URL of the helpdesk backend")
	fs.Duration(flagReplyDelay, d.ReplyDelay, "delay before a chat reply is shown")
	fs.Duration(flagRequestTimeout, 0, "backend request timeout (0 waits forever)")
	fs.String(flagUploadDir, "", "directory the file picker starts in")
	fs.String(flagExportDir, d.ExportDir, "directory for exported chat transcripts")
	fs.String(flagLogFile, "", "path to the log file")
	fs.String(flagLogLevel, d.LogLevel, "log level (debug, info, warn, error, disabled)")
	fs.String(flagGlamourStyle, d.GlamourStyle, "glamour style for rendered markdown")
}

func Load(fs *pflag.FlagSet) (AppConfig, error) {
	cfg := Defaults()

	path, err := fs.GetString(flagConfig)
	if err != nil {
		return cfg, errors.Wrapf(err, "read --%s", flagConfig)
	}
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parse environment")
	}

	if err := applyFlags(&cfg, fs); err != nil {
		return cfg, err
	}

	cfg.UploadDir, err = DetectUploadDir(cfg.UploadDir)
	if err != nil {
		return cfg, err
	}
	if cfg.LogFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, errors.Wrap(err, "resolve home directory")
		}
		cfg.LogFile = filepath.Join(home, ".local", "state", "campus-helpdesk", "helpdesk.log")
	}
	if !strings.EqualFold(strings.TrimSpace(cfg.LogLevel), "disabled") {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return cfg, errors.Wrap(err, "create log dir")
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFile(cfg *AppConfig, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}

	setString(&cfg.BackendURL, fc.BackendURL)
	setString(&cfg.UploadDir, fc.UploadDir)
	setString(&cfg.ExportDir, fc.ExportDir)
	setString(&cfg.LogFile, fc.LogFile)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.GlamourStyle, fc.GlamourStyle)

	if fc.ReplyDelay != "" {
		d, err := time.ParseDuration(fc.ReplyDelay)
		if err != nil {
			return errors.Wrapf(err, "invalid reply_delay %q", fc.ReplyDelay)
		}
		cfg.ReplyDelay = d
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return errors.Wrapf(err, "invalid request_timeout %q", fc.RequestTimeout)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// applyFlags only copies flags the user set, so file and env values survive
// the flag defaults.
func applyFlags(cfg *AppConfig, fs *pflag.FlagSet) error {
	strs := map[string]*string{
		flagBackendURL:   &cfg.BackendURL,
		flagUploadDir:    &cfg.UploadDir,
		flagExportDir:    &cfg.ExportDir,
		flagLogFile:      &cfg.LogFile,
		flagLogLevel:     &cfg.LogLevel,
		flagGlamourStyle: &cfg.GlamourStyle,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return errors.Wrapf(err, "read --%s", name)
		}
		*dst = v
	}

	durs := map[string]*time.Duration{
		flagReplyDelay:     &cfg.ReplyDelay,
		flagRequestTimeout: &cfg.RequestTimeout,
	}
	for name, dst := range durs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetDuration(name)
		if err != nil {
			return errors.Wrapf(err, "read --%s", name)
		}
		*dst = v
	}
	return nil
}

func (c *AppConfig) Validate() error {
	c.BackendURL = strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.Errorf("backend url must be an absolute http(s) URL, got %q", c.BackendURL)
	}
	if c.ReplyDelay < 0 {
		return errors.Errorf("reply delay must not be negative, got %s", c.ReplyDelay)
	}
	if c.RequestTimeout < 0 {
		return errors.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	if strings.TrimSpace(c.GlamourStyle) == "" {
		c.GlamourStyle = DefaultGlamourStyle
	}
	return nil
}

func DetectUploadDir(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Clean(explicit), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return home, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
