package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func noEnv(string) (string, bool) { return "", false }

func TestDefaults(t *testing.T) {
	cfg, err := load(noEnv, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Fatalf("ListenAddr=%q, want %q", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel=%v, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != LogFormatText {
		t.Fatalf("LogFormat=%q, want %q", cfg.LogFormat, LogFormatText)
	}
	if cfg.IdentityMode != IdentityModeSequential {
		t.Fatalf("IdentityMode=%q, want %q", cfg.IdentityMode, IdentityModeSequential)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Fatalf("AllowedOrigins=%v, want empty", cfg.AllowedOrigins)
	}
	if cfg.SendQueueSize != DefaultSendQueueSize {
		t.Fatalf("SendQueueSize=%d, want %d", cfg.SendQueueSize, DefaultSendQueueSize)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Fatalf("ShutdownTimeout=%v, want %v", cfg.ShutdownTimeout, DefaultShutdownTimeout)
	}
}

func TestPortEnv(t *testing.T) {
	cfg, err := load(lookupMap(map[string]string{"PORT": "9000"}), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("ListenAddr=%q, want :9000", cfg.ListenAddr)
	}
}

func TestListenAddrEnv_WinsOverPort(t *testing.T) {
	cfg, err := load(lookupMap(map[string]string{
		"PORT":                   "9000",
		"SPLITCLASS_LISTEN_ADDR": "127.0.0.1:3000",
	}), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:3000" {
		t.Fatalf("ListenAddr=%q, want 127.0.0.1:3000", cfg.ListenAddr)
	}
}

func TestFlags_WinOverEnv(t *testing.T) {
	cfg, err := load(lookupMap(map[string]string{
		"SPLITCLASS_LISTEN_ADDR":   ":9000",
		"SPLITCLASS_IDENTITY_MODE": "random",
	}), []string{"-listen", ":7000", "-identity-mode", "sequential"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":7000" {
		t.Fatalf("ListenAddr=%q, want :7000", cfg.ListenAddr)
	}
	if cfg.IdentityMode != IdentityModeSequential {
		t.Fatalf("IdentityMode=%q, want sequential", cfg.IdentityMode)
	}
}

func TestLogLevelParsing(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":      slog.LevelDebug,
		"dev":        slog.LevelDebug,
		"info":       slog.LevelInfo,
		"warn":       slog.LevelWarn,
		"error":      slog.LevelError,
		"production": slog.LevelError,
	}
	for in, want := range cases {
		cfg, err := load(lookupMap(map[string]string{"LOG_LEVEL": in}), nil)
		if err != nil {
			t.Fatalf("LOG_LEVEL=%q: %v", in, err)
		}
		if cfg.LogLevel != want {
			t.Fatalf("LOG_LEVEL=%q: got %v, want %v", in, cfg.LogLevel, want)
		}
	}

	if _, err := load(lookupMap(map[string]string{"LOG_LEVEL": "loud"}), nil); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLogFormat(t *testing.T) {
	cfg, err := load(lookupMap(map[string]string{"LOG_FORMAT": "json"}), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogFormat != LogFormatJSON {
		t.Fatalf("LogFormat=%q, want json", cfg.LogFormat)
	}

	if _, err := load(lookupMap(map[string]string{"LOG_FORMAT": "xml"}), nil); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg, err := load(lookupMap(map[string]string{
		"ALLOWED_ORIGINS": "https://class.example.com, https://staging.example.com ,",
	}), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"https://class.example.com", "https://staging.example.com"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("AllowedOrigins=%v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestSendQueueSize(t *testing.T) {
	cfg, err := load(lookupMap(map[string]string{"SPLITCLASS_SEND_QUEUE": "64"}), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SendQueueSize != 64 {
		t.Fatalf("SendQueueSize=%d, want 64", cfg.SendQueueSize)
	}

	for _, bad := range []string{"0", "-1", "many"} {
		if _, err := load(lookupMap(map[string]string{"SPLITCLASS_SEND_QUEUE": bad}), nil); err == nil {
			t.Fatalf("expected error for queue size %q", bad)
		}
	}
}

func TestShutdownTimeout(t *testing.T) {
	cfg, err := load(lookupMap(map[string]string{"SPLITCLASS_SHUTDOWN_TIMEOUT": "30s"}), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("ShutdownTimeout=%v, want 30s", cfg.ShutdownTimeout)
	}
}

func TestIdentityMode_Invalid(t *testing.T) {
	if _, err := load(lookupMap(map[string]string{"SPLITCLASS_IDENTITY_MODE": "guid"}), nil); err == nil {
		t.Fatal("expected error for unknown identity mode via env")
	}
	if _, err := load(noEnv, []string{"-identity-mode", "guid"}); err == nil {
		t.Fatal("expected error for unknown identity mode via flag")
	}
}
