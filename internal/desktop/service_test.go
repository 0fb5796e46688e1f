package desktop

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"promptcard/internal/models"
	"promptcard/internal/persist"
	"promptcard/internal/store"
)

type fakeDialogs struct {
	dir       string
	files     []string
	savePath  string
	cancel    bool
	lastSave  SaveOptions
	lastFiles []FileFilter
	onSelect  func()
}

func (d *fakeDialogs) SelectDirectory(context.Context) (string, bool, error) {
	return d.dir, !d.cancel, nil
}

func (d *fakeDialogs) SelectFiles(_ context.Context, f []FileFilter) ([]string, error) {
	d.lastFiles = f
	if d.onSelect != nil {
		d.onSelect()
	}
	if d.cancel {
		return nil, nil
	}
	return d.files, nil
}

func (d *fakeDialogs) ShowSaveDialog(_ context.Context, o SaveOptions) (string, bool, error) {
	d.lastSave = o
	return d.savePath, !d.cancel, nil
}

type fakeCapturer struct{ got Bounds }

func (c *fakeCapturer) CaptureRegion(_ context.Context, b Bounds) ([]byte, error) {
	c.got = b
	return []byte("\x89PNG fake"), nil
}

type fakeShell struct{ opened, shown string }

func (s *fakeShell) ShowItemInFolder(p string) error { s.shown = p; return nil }
func (s *fakeShell) OpenExternal(u string) error     { s.opened = u; return nil }

type fakeImporter struct {
	fail    map[string]bool
	removed map[string]bool
}

func (f fakeImporter) Import(src string) (models.Image, error) {
	if f.fail[src] {
		return models.Image{}, errors.New("bad image")
	}
	return models.Image{Path: "/data/images/" + filepath.Base(src), Name: filepath.Base(src)}, nil
}

func (f fakeImporter) Remove(img models.Image) error {
	if f.removed != nil {
		f.removed[img.Path] = true
	}
	return nil
}

var fixedNow = time.Date(2026, 7, 14, 10, 30, 0, 0, time.UTC)

func newService(t *testing.T, d Deps) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(persist.New(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	d.Store = st
	if d.Images == nil {
		d.Images = fakeImporter{}
	}
	svc := NewService(d)
	svc.now = func() time.Time { return fixedNow }
	return svc, st
}

func TestScreenshotName(t *testing.T) {
	c := models.Card{ID: "0192f3a4-aaaa-bbbb", Title: "Write a Haiku!"}
	got := ScreenshotName(c, fixedNow)
	want := "write-a-haiku-0192f3a4-20260714-103000.png"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	c.Title = "!!!"
	if got := ScreenshotName(c, fixedNow); !strings.HasPrefix(got, "card-") {
		t.Errorf("untitled card: got %q", got)
	}
}

func TestBackupName(t *testing.T) {
	if got := BackupName(fixedNow); got != "promptcard-backup-2026-07-14.json" {
		t.Errorf("got %q", got)
	}
}

func TestChooseScreenshotDir(t *testing.T) {
	dlg := &fakeDialogs{dir: "/home/me/shots"}
	svc, st := newService(t, Deps{Dialogs: dlg})

	dir, ok, err := svc.ChooseScreenshotDir(context.Background())
	if err != nil || !ok || dir != "/home/me/shots" {
		t.Fatalf("got %q %v %v", dir, ok, err)
	}
	if st.Settings().ScreenshotPath != "/home/me/shots" {
		t.Error("setting not stored")
	}

	dlg.cancel = true
	if _, ok, err := svc.ChooseScreenshotDir(context.Background()); ok || err != nil {
		t.Errorf("cancel: got %v %v", ok, err)
	}
}

func TestCaptureCard(t *testing.T) {
	capt := &fakeCapturer{}
	svc, st := newService(t, Deps{Capturer: capt})
	c, err := st.AddCard(models.CardDraft{Title: "Sunset"})
	if err != nil {
		t.Fatal(err)
	}
	region := Bounds{X: 10, Y: 20, Width: 300, Height: 200}

	if _, err := svc.CaptureCard(context.Background(), c.ID, region); !errors.Is(err, ErrNoScreenshotDir) {
		t.Fatalf("no dir: got %v", err)
	}

	dir := t.TempDir()
	if err := st.SetScreenshotPath(dir); err != nil {
		t.Fatal(err)
	}
	path, err := svc.CaptureCard(context.Background(), c.ID, region)
	if err != nil {
		t.Fatalf("CaptureCard: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "sunset-") {
		t.Errorf("path: got %q", path)
	}
	if capt.got != region {
		t.Errorf("region: got %+v", capt.got)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(data), "\x89PNG") {
		t.Errorf("written file: %q %v", data, err)
	}

	if _, err := svc.CaptureCard(context.Background(), "missing", region); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("missing card: got %v", err)
	}
	if _, err := svc.CaptureCard(context.Background(), c.ID, Bounds{}); err == nil {
		t.Error("empty region should fail")
	}
}

func TestBackupRoundTrip(t *testing.T) {
	backup := filepath.Join(t.TempDir(), "backup.json")
	dlg := &fakeDialogs{savePath: backup, files: []string{backup}}
	svc, st := newService(t, Deps{Dialogs: dlg})

	if _, err := st.AddCard(models.CardDraft{Title: "keep me"}); err != nil {
		t.Fatal(err)
	}
	path, ok, err := svc.ExportBackup(context.Background())
	if err != nil || !ok || path != backup {
		t.Fatalf("export: %q %v %v", path, ok, err)
	}
	if dlg.lastSave.DefaultPath != "promptcard-backup-2026-07-14.json" {
		t.Errorf("default name: got %q", dlg.lastSave.DefaultPath)
	}

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	ok, err = svc.ImportBackup(context.Background())
	if err != nil || !ok {
		t.Fatalf("import: %v %v", ok, err)
	}
	cards := st.Cards()
	if len(cards) != 1 || cards[0].Title != "keep me" {
		t.Errorf("restored cards: %+v", cards)
	}
}

func TestImportBackup_Malformed(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	svc, _ := newService(t, Deps{Dialogs: &fakeDialogs{files: []string{bad}}})

	_, err := svc.ImportBackup(context.Background())
	if !errors.Is(err, store.ErrValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestImportImages(t *testing.T) {
	dlg := &fakeDialogs{files: []string{"/pics/a.png", "/pics/broken.png", "/pics/b.png"}}
	svc, st := newService(t, Deps{
		Dialogs: dlg,
		Images:  fakeImporter{fail: map[string]bool{"/pics/broken.png": true}},
	})
	c, err := st.AddCard(models.CardDraft{Title: "gallery"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.ImportImages(context.Background(), c.ID)
	if err == nil {
		t.Error("the failed file should be reported")
	}
	if got == nil || len(got.Images) != 2 || got.Type != models.CardTypeImage {
		t.Fatalf("card: %+v", got)
	}
	if got.Cover().Name != "a.png" {
		t.Errorf("cover: got %q", got.Cover().Name)
	}
	if len(dlg.lastFiles) != 1 || dlg.lastFiles[0].Name != "Images" {
		t.Errorf("filters: %+v", dlg.lastFiles)
	}
}

func TestImportImages_CardDeletedDuringDialog(t *testing.T) {
	imp := fakeImporter{removed: map[string]bool{}}
	dlg := &fakeDialogs{files: []string{"/pics/a.png", "/pics/b.png"}}
	svc, st := newService(t, Deps{Dialogs: dlg, Images: imp})
	c, err := st.AddCard(models.CardDraft{Title: "short-lived"})
	if err != nil {
		t.Fatal(err)
	}
	dlg.onSelect = func() {
		if _, err := st.DeleteCard(c.ID); err != nil {
			t.Errorf("DeleteCard: %v", err)
		}
	}

	got, err := svc.ImportImages(context.Background(), c.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error: got %v, want ErrNotFound", err)
	}
	if got != nil {
		t.Errorf("card: got %+v, want nil", got)
	}
	for _, p := range []string{"/data/images/a.png", "/data/images/b.png"} {
		if !imp.removed[p] {
			t.Errorf("%s should have been removed", p)
		}
	}
}

func TestOpenURL(t *testing.T) {
	sh := &fakeShell{}
	svc, _ := newService(t, Deps{Shell: sh})

	if err := svc.OpenURL("https://chatgpt.com"); err != nil || sh.opened != "https://chatgpt.com" {
		t.Errorf("got %q %v", sh.opened, err)
	}
	for _, bad := range []string{"file:///etc/passwd", "javascript:alert(1)", "not a url", ""} {
		if err := svc.OpenURL(bad); !errors.Is(err, ErrBadURL) {
			t.Errorf("%q: got %v", bad, err)
		}
	}
}

func TestRevealDataDir(t *testing.T) {
	sh := &fakeShell{}
	svc, st := newService(t, Deps{Shell: sh})
	if err := svc.RevealDataDir(); err != nil {
		t.Fatal(err)
	}
	if sh.shown != st.Settings().DataDirectory {
		t.Errorf("got %q", sh.shown)
	}
}

func TestHeadless(t *testing.T) {
	svc, st := newService(t, Deps{})
	ctx := context.Background()
	c, _ := st.AddCard(models.CardDraft{Title: "x"})
	_ = st.SetScreenshotPath(t.TempDir())

	if _, _, err := svc.ChooseScreenshotDir(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("dialogs: got %v", err)
	}
	if _, err := svc.CaptureCard(ctx, c.ID, Bounds{Width: 1, Height: 1}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("capture: got %v", err)
	}
	if err := svc.OpenURL("https://example.com"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("shell: got %v", err)
	}
}
