// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package desktop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"promptcard/internal/models"
	"promptcard/internal/persist"
	"promptcard/internal/slug"
)

var (
	// ErrNoScreenshotDir means a capture was requested before a screenshot
	// directory was chosen.
	ErrNoScreenshotDir = errors.New("screenshot directory not set")

	// ErrCardNotFound means the card id passed to the service is unknown.
	ErrCardNotFound = errors.New("card not found")

	// ErrBadURL means OpenURL was given something other than an http(s) URL.
	ErrBadURL = errors.New("only http and https URLs can be opened")
)

// Store is the part of the card store the desktop features need.
type Store interface {
	Card(id string) (models.Card, bool)
	AddImages(id string, images ...models.Image) (*models.Card, error)
	Settings() models.Settings
	SetScreenshotPath(path string) error
	ExportSnapshot() *models.Document
	ImportSnapshot(raw []byte) error
}

// ImageImporter copies image files into the data directory and removes
// copies that could not be attached.
type ImageImporter interface {
	Import(src string) (models.Image, error)
	Remove(img models.Image) error
}

// Service implements the desktop features on top of the collaborators.
type Service struct {
	store    Store
	images   ImageImporter
	dialogs  Dialogs
	capturer Capturer
	files    FileWriter
	shell    Shell
	now      func() time.Time
}

// Deps groups the collaborators of a Service. Nil Dialogs, Capturer and
// Shell default to Headless; a nil FileWriter defaults to OSFiles.
type Deps struct {
	Store    Store
	Images   ImageImporter
	Dialogs  Dialogs
	Capturer Capturer
	Files    FileWriter
	Shell    Shell
}

// NewService wires a Service.
func NewService(d Deps) *Service {
	s := &Service{
		store:    d.Store,
		images:   d.Images,
		dialogs:  d.Dialogs,
		capturer: d.Capturer,
		files:    d.Files,
		shell:    d.Shell,
		now:      time.Now,
	}
	if s.dialogs == nil {
		s.dialogs = Headless{}
	}
	if s.capturer == nil {
		s.capturer = Headless{}
	}
	if s.shell == nil {
		s.shell = Headless{}
	}
	if s.files == nil {
		s.files = OSFiles{}
	}
	return s
}

var (
	backupFilters = []FileFilter{{Name: "JSON", Extensions: []string{"json"}}}
	imageFilters  = []FileFilter{{Name: "Images", Extensions: []string{"jpg", "jpeg", "png", "gif", "webp"}}}
)

// ChooseScreenshotDir lets the user pick the directory card captures are
// saved to and stores it in the settings. ok is false on cancel.
func (s *Service) ChooseScreenshotDir(ctx context.Context) (string, bool, error) {
	dir, ok, err := s.dialogs.SelectDirectory(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	if err := s.store.SetScreenshotPath(dir); err != nil {
		return dir, true, err
	}
	slog.Info("screenshot directory set", "path", dir)
	return dir, true, nil
}

// ScreenshotName returns the file name a capture of c is saved under.
func ScreenshotName(c models.Card, at time.Time) string {
	id := c.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s-%s.png", slug.OrDefault(c.Title, "card"), id, at.Format("20060102-150405"))
}

// CaptureCard captures the window region showing a card and saves it as
// PNG in the screenshot directory. It returns the written path.
func (s *Service) CaptureCard(ctx context.Context, cardID string, b Bounds) (string, error) {
	c, ok := s.store.Card(cardID)
	if !ok {
		return "", ErrCardNotFound
	}
	dir := s.store.Settings().ScreenshotPath
	if dir == "" {
		return "", ErrNoScreenshotDir
	}
	if b.Empty() {
		return "", fmt.Errorf("capture card %s: empty region %+v", cardID, b)
	}

	png, err := s.capturer.CaptureRegion(ctx, b)
	if err != nil {
		return "", fmt.Errorf("capture card %s: %w", cardID, err)
	}
	path := filepath.Join(dir, ScreenshotName(c, s.now()))
	if err := s.files.WriteFile(path, png); err != nil {
		return "", fmt.Errorf("save screenshot: %w", err)
	}
	slog.Info("card captured", "card", cardID, "path", path, "bytes", len(png))
	return path, nil
}

// BackupName returns the default file name of a backup taken at t.
func BackupName(t time.Time) string {
	return "promptcard-backup-" + t.Format("2006-01-02") + ".json"
}

// ExportBackup asks where to save a backup and writes the full document
// there. ok is false on cancel.
func (s *Service) ExportBackup(ctx context.Context) (string, bool, error) {
	path, ok, err := s.dialogs.ShowSaveDialog(ctx, SaveOptions{
		Title:       "Export backup",
		DefaultPath: BackupName(s.now()),
		Filters:     backupFilters,
	})
	if err != nil || !ok {
		return "", false, err
	}

	data, err := persist.Encode(s.store.ExportSnapshot())
	if err != nil {
		return "", true, err
	}
	if err := s.files.WriteFile(path, data); err != nil {
		return "", true, fmt.Errorf("export backup: %w", err)
	}
	slog.Info("backup exported", "path", path, "bytes", len(data))
	return path, true, nil
}

// ImportBackup asks for a backup file and replaces the store with it.
// ok is false on cancel.
func (s *Service) ImportBackup(ctx context.Context) (bool, error) {
	paths, err := s.dialogs.SelectFiles(ctx, backupFilters)
	if err != nil {
		return false, err
	}
	if len(paths) == 0 {
		return false, nil
	}

	raw, err := os.ReadFile(paths[0])
	if err != nil {
		return true, fmt.Errorf("import backup: %w", err)
	}
	if err := s.store.ImportSnapshot(raw); err != nil {
		return true, err
	}
	slog.Info("backup imported", "path", paths[0])
	return true, nil
}

// ImportImages asks for image files and attaches them to a card. Files
// that fail to import are skipped and reported in the joined error; the
// rest are still attached.
func (s *Service) ImportImages(ctx context.Context, cardID string) (*models.Card, error) {
	if _, ok := s.store.Card(cardID); !ok {
		return nil, ErrCardNotFound
	}
	paths, err := s.dialogs.SelectFiles(ctx, imageFilters)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	var (
		images []models.Image
		errs   []error
	)
	for _, p := range paths {
		img, err := s.images.Import(p)
		if err != nil {
			slog.Warn("image import failed", "path", p, "error", err)
			errs = append(errs, err)
			continue
		}
		images = append(images, img)
	}
	if len(images) == 0 {
		return nil, errors.Join(errs...)
	}

	c, err := s.store.AddImages(cardID, images...)
	if err != nil && c == nil {
		for _, img := range images {
			if rmErr := s.images.Remove(img); rmErr != nil {
				slog.Warn("removing unattached image failed", "path", img.Path, "error", rmErr)
			}
		}
	}
	return c, errors.Join(append(errs, err)...)
}

// SaveImageAs asks where to save a copy of one of a card's images.
// ok is false on cancel.
func (s *Service) SaveImageAs(ctx context.Context, cardID, imagePath string) (string, bool, error) {
	c, ok := s.store.Card(cardID)
	if !ok {
		return "", false, ErrCardNotFound
	}
	var img *models.Image
	for i := range c.Images {
		if c.Images[i].Path == imagePath {
			img = &c.Images[i]
		}
	}
	if img == nil {
		return "", false, ErrCardNotFound
	}

	dst, ok, err := s.dialogs.ShowSaveDialog(ctx, SaveOptions{
		Title:       "Save image",
		DefaultPath: img.Name,
		Filters:     imageFilters,
	})
	if err != nil || !ok {
		return "", false, err
	}
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return "", true, fmt.Errorf("read image: %w", err)
	}
	if err := s.files.WriteFile(dst, data); err != nil {
		return "", true, err
	}
	return dst, true, nil
}

// OpenURL opens a platform link in the user's browser.
func (s *Service) OpenURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrBadURL
	}
	return s.shell.OpenExternal(u.String())
}

// RevealDataDir shows the data directory in the file manager.
func (s *Service) RevealDataDir() error {
	return s.shell.ShowItemInFolder(s.store.Settings().DataDirectory)
}
