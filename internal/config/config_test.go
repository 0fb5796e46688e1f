// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var envVars = []string{
	"PROMPTCARD_HOST", "PROMPTCARD_PORT", "PROMPTCARD_ENV",
	"PROMPTCARD_DATA_DIR", "PROMPTCARD_LOG_LEVEL", "PROMPTCARD_PRESETS",
}

// clearEnv sets every variable Load reads to empty, which envOrDefault
// treats the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

// TestFromEnv_Defaults verifies the development defaults.
func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}
	check("Host", cfg.Host, "127.0.0.1")
	check("Port", cfg.Port, "17321")
	check("Env", cfg.Env, "development")
	check("LogLevelName", cfg.LogLevelName, "info")
	check("PresetsFile", cfg.PresetsFile, "")
	check("Addr", cfg.Addr(), "127.0.0.1:17321")

	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	check("DataDir", cfg.DataDir, filepath.Join(filepath.Dir(exe), "data"))

	if !cfg.IsDev() {
		t.Error("IsDev() should be true by default")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("PROMPTCARD_HOST", "::1")
	t.Setenv("PROMPTCARD_PORT", "9000")
	t.Setenv("PROMPTCARD_ENV", "production")
	t.Setenv("PROMPTCARD_DATA_DIR", dir)
	t.Setenv("PROMPTCARD_LOG_LEVEL", "DEBUG")
	t.Setenv("PROMPTCARD_PRESETS", "/etc/promptcard/presets.yaml")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Addr() != "[::1]:9000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if cfg.IsDev() {
		t.Error("IsDev() should be false in production")
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
	if cfg.PresetsFile != "/etc/promptcard/presets.yaml" {
		t.Errorf("PresetsFile = %q", cfg.PresetsFile)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{"public host", "PROMPTCARD_HOST", "0.0.0.0", "loopback"},
		{"lan host", "PROMPTCARD_HOST", "192.168.1.10", "loopback"},
		{"hostname", "PROMPTCARD_HOST", "example.com", "loopback"},
		{"port not a number", "PROMPTCARD_PORT", "http", "port"},
		{"port out of range", "PROMPTCARD_PORT", "70000", "port"},
		{"port zero", "PROMPTCARD_PORT", "0", "port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevelName: tt.name}
			if got := cfg.LogLevel(); got != tt.want {
				t.Errorf("LogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables already present, so the one
	// under test must be truly unset.
	os.Unsetenv("PROMPTCARD_PORT")
	t.Cleanup(func() { os.Unsetenv("PROMPTCARD_PORT") })

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PROMPTCARD_PORT=18000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "18000" {
		t.Errorf("Port = %q, want value from .env", cfg.Port)
	}
}

func TestLoad_NoDotEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	if _, err := Load(); err != nil {
		t.Fatalf("a missing .env should not fail: %v", err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for older Go).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
