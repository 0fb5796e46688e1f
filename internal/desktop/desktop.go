// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package desktop defines the contracts of the native collaborators the
// core calls out to (dialogs, screen capture, file writes, the OS shell)
// and a Service that combines them with the store to implement the
// desktop-only features: screenshots, backups and image import.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnavailable is returned by collaborators that have no native
// implementation in the current process, e.g. when running headless.
var ErrUnavailable = errors.New("desktop service unavailable")

// FileFilter restricts a file dialog to the given extensions.
type FileFilter struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// SaveOptions configures a save dialog.
type SaveOptions struct {
	Title       string       `json:"title"`
	DefaultPath string       `json:"defaultPath"`
	Filters     []FileFilter `json:"filters"`
}

// Bounds is a screen region in window coordinates.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether b covers no pixels.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Dialogs opens native file dialogs. ok is false when the user cancels.
type Dialogs interface {
	SelectDirectory(ctx context.Context) (path string, ok bool, err error)
	SelectFiles(ctx context.Context, filters []FileFilter) ([]string, error)
	ShowSaveDialog(ctx context.Context, opts SaveOptions) (path string, ok bool, err error)
}

// Capturer grabs a region of the application window as PNG bytes.
type Capturer interface {
	CaptureRegion(ctx context.Context, b Bounds) ([]byte, error)
}

// FileWriter writes a file, creating its directory if needed.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// Shell hands paths and URLs to the operating system.
type Shell interface {
	ShowItemInFolder(path string) error
	OpenExternal(url string) error
}

// Headless satisfies Dialogs, Capturer and Shell for processes without a
// window. Every call fails with ErrUnavailable.
type Headless struct{}

func (Headless) SelectDirectory(context.Context) (string, bool, error) {
	return "", false, ErrUnavailable
}

func (Headless) SelectFiles(context.Context, []FileFilter) ([]string, error) {
	return nil, ErrUnavailable
}

func (Headless) ShowSaveDialog(context.Context, SaveOptions) (string, bool, error) {
	return "", false, ErrUnavailable
}

func (Headless) CaptureRegion(context.Context, Bounds) ([]byte, error) {
	return nil, ErrUnavailable
}

func (Headless) ShowItemInFolder(string) error { return ErrUnavailable }

func (Headless) OpenExternal(string) error { return ErrUnavailable }

// OSFiles writes files to the local file system.
type OSFiles struct{}

// WriteFile creates the parent directory and writes data to path.
func (OSFiles) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
