package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envListenAddr      = "SPLITCLASS_LISTEN_ADDR"
	envPort            = "PORT"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envIdentityMode    = "SPLITCLASS_IDENTITY_MODE"
	envAllowedOrigins  = "ALLOWED_ORIGINS"
	envSendQueueSize   = "SPLITCLASS_SEND_QUEUE"
	envShutdownTimeout = "SPLITCLASS_SHUTDOWN_TIMEOUT"
)

// Default configuration values.
const (
	DefaultListenAddr      = ":3000"
	DefaultSendQueueSize   = 256
	DefaultShutdownTimeout = 15 * time.Second
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// IdentityMode selects how student identities are minted.
type IdentityMode string

const (
	// IdentityModeSequential mints "student1", "student2", ... per room.
	IdentityModeSequential IdentityMode = "sequential"

	// IdentityModeRandom mints UUID-backed identities.
	IdentityModeRandom IdentityMode = "random"
)

// Config holds the server configuration.
type Config struct {
	// ListenAddr is the address the HTTP/websocket listener binds to.
	ListenAddr string

	LogLevel  slog.Level
	LogFormat LogFormat

	IdentityMode IdentityMode

	// AllowedOrigins restricts websocket upgrades to the listed Origin
	// header values. Empty means allow all (development).
	AllowedOrigins []string

	// SendQueueSize bounds each client's outbound queue; messages to a
	// client whose queue is full are dropped.
	SendQueueSize int

	ShutdownTimeout time.Duration
}

// Load reads configuration with the following priority:
// 1. CLI flags - highest priority
// 2. Environment variables
// 3. Hardcoded defaults - lowest priority
func Load(args []string) (Config, error) {
	return load(os.LookupEnv, args)
}

func load(lookup func(string) (string, bool), args []string) (Config, error) {
	cfg := Config{
		ListenAddr:      DefaultListenAddr,
		LogLevel:        slog.LevelInfo,
		LogFormat:       LogFormatText,
		IdentityMode:    IdentityModeSequential,
		SendQueueSize:   DefaultSendQueueSize,
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	// PORT alone is enough on platforms that inject it; the explicit
	// listen address wins when both are set.
	if v, ok := lookup(envPort); ok && v != "" {
		cfg.ListenAddr = ":" + v
	}
	if v, ok := lookup(envListenAddr); ok && v != "" {
		cfg.ListenAddr = v
	}

	if v, ok := lookup(envLogLevel); ok && v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}

	if v, ok := lookup(envLogFormat); ok && v != "" {
		switch LogFormat(v) {
		case LogFormatText, LogFormatJSON:
			cfg.LogFormat = LogFormat(v)
		default:
			return Config{}, fmt.Errorf("%s: unknown log format %q", envLogFormat, v)
		}
	}

	if v, ok := lookup(envIdentityMode); ok && v != "" {
		mode, err := parseIdentityMode(v)
		if err != nil {
			return Config{}, err
		}
		cfg.IdentityMode = mode
	}

	if v, ok := lookup(envAllowedOrigins); ok && v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if v, ok := lookup(envSendQueueSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: invalid queue size %q", envSendQueueSize, v)
		}
		cfg.SendQueueSize = n
	}

	if v, ok := lookup(envShutdownTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envShutdownTimeout, err)
		}
		cfg.ShutdownTimeout = d
	}

	fs := flag.NewFlagSet("splitclass-server", flag.ContinueOnError)
	listen := fs.String("listen", cfg.ListenAddr, "address to listen on")
	identity := fs.String("identity-mode", string(cfg.IdentityMode),
		"student identity mode: sequential or random")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = *listen
	mode, err := parseIdentityMode(*identity)
	if err != nil {
		return Config{}, err
	}
	cfg.IdentityMode = mode

	return cfg, nil
}

func parseLogLevel(v string) (slog.Level, error) {
	switch strings.ToLower(v) {
	case "dev", "development", "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "production", "prod":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%s: unknown log level %q", envLogLevel, v)
}

func parseIdentityMode(v string) (IdentityMode, error) {
	switch IdentityMode(v) {
	case IdentityModeSequential, IdentityModeRandom:
		return IdentityMode(v), nil
	}
	return "", fmt.Errorf("unknown identity mode %q", v)
}
