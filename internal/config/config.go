// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// API server settings. The server only ever binds a loopback address.
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// DataDir holds cards.json, images and thumbnails.
	DataDir string

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevelName string

	// PresetsFile optionally replaces the built-in model/platform catalogue.
	PresetsFile string
}

// Load reads an optional .env file from the working directory and then the
// environment, applying defaults where appropriate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Host:         envOrDefault("PROMPTCARD_HOST", "127.0.0.1"),
		Port:         envOrDefault("PROMPTCARD_PORT", "17321"),
		Env:          envOrDefault("PROMPTCARD_ENV", "development"),
		DataDir:      os.Getenv("PROMPTCARD_DATA_DIR"),
		LogLevelName: strings.ToLower(envOrDefault("PROMPTCARD_LOG_LEVEL", "info")),
		PresetsFile:  os.Getenv("PROMPTCARD_PRESETS"),
	}

	if !isLoopbackHost(cfg.Host) {
		return nil, fmt.Errorf("PROMPTCARD_HOST must be a loopback address, got %q", cfg.Host)
	}
	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("PROMPTCARD_PORT must be a port number, got %q", cfg.Port)
	}
	if cfg.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// LogLevel maps LogLevelName to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch c.LogLevelName {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// defaultDataDir is the data directory next to the executable.
func defaultDataDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "data"), nil
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
