package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CLOSURES_CONFIG", "")
	t.Setenv("TZ", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GRPCAddr != "0.0.0.0:50061" {
		t.Fatalf("grpc addr = %q", cfg.GRPCAddr)
	}
	if !cfg.MigrateOnStart {
		t.Fatalf("migrate_on_start should default to true")
	}
	if cfg.GRPCRequestTimeout != 10*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("timeouts = %v / %v", cfg.GRPCRequestTimeout, cfg.ShutdownTimeout)
	}
	if cfg.Location != time.Local {
		t.Fatalf("location = %v, want Local", cfg.Location)
	}
}

func TestLoad_EnvOverridesAndAddrSplit(t *testing.T) {
	t.Setenv("CLOSURES_CONFIG", "")
	t.Setenv("CLOSURES_GRPC_ADDR", "127.0.0.1:6000")
	t.Setenv("CLOSURES_TIMEZONE", "Europe/Warsaw")
	t.Setenv("CLOSURES_DATABASE_MIGRATE_ON_START", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GRPCHost != "127.0.0.1" || cfg.GRPCPort != 6000 || cfg.GRPCAddr != "127.0.0.1:6000" {
		t.Fatalf("grpc = %q %d %q", cfg.GRPCHost, cfg.GRPCPort, cfg.GRPCAddr)
	}
	if cfg.Location.String() != "Europe/Warsaw" {
		t.Fatalf("location = %v", cfg.Location)
	}
	if cfg.MigrateOnStart {
		t.Fatalf("migrate_on_start not overridden")
	}
}

func TestLoadFile_YAMLLayerUnderEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "closures.yaml")
	body := "timezone: UTC\nlog:\n  level: debug\ngrpc:\n  port: 7000\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	t.Setenv("CLOSURES_GRPC_PORT", "7100")
	t.Setenv("TZ", "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("location = %v, want UTC", cfg.Location)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q, want debug", cfg.LogLevel)
	}
	if cfg.GRPCPort != 7100 {
		t.Fatalf("grpc port = %d, want env value 7100", cfg.GRPCPort)
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("CLOSURES_CONFIG", "")
	t.Setenv("CLOSURES_TIMEZONE", "Mars/Olympus")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}
