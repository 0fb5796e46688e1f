// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store is the single source of truth for cards, folders, custom
// tags and settings. Every mutation updates memory first and then writes
// the whole document through the Backend. A failed write is reported but
// never rolled back: the in-memory state stays authoritative and the next
// successful write brings the disk back in line.
package store

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"promptcard/internal/models"
	"promptcard/internal/persist"
	"promptcard/internal/presets"
)

// Backend loads and saves the full document.
type Backend interface {
	Load() (*models.Document, error)
	Save(doc *models.Document) error
}

// Notifier is told about every committed mutation, e.g. to push a change
// event to the presentation layer. Notify must not block.
type Notifier interface {
	Notify(entity, action, id string)
}

// Entities and actions passed to the Notifier.
const (
	EntityCard     = "card"
	EntityFolder   = "folder"
	EntityTag      = "tag"
	EntitySettings = "settings"
	EntityStore    = "store"

	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionReplaced = "replaced"
)

// Store holds the working copy of the document. It is safe for concurrent
// use; mutations are serialised so there is at most one write in flight.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	notify  Notifier
	presets *presets.Catalogue
	now     func() time.Time
	newID   func() string

	cards      []*models.Card // most recent first
	folders    map[string]*models.Folder
	folderSeq  []string // insertion order, used for listing and saving
	customTags models.CustomTags
	settings   models.Settings
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier registers a change listener.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notify = n }
}

// WithPresets replaces the embedded preset catalogue.
func WithPresets(c *presets.Catalogue) Option {
	return func(s *Store) { s.presets = c }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the document from the backend and builds a Store around it.
// A malformed document or a failed initial save is logged and the store
// starts from the defaults Load returned; any other load error is fatal.
func Open(backend Backend, opts ...Option) (*Store, error) {
	doc, err := backend.Load()
	switch {
	case err == nil:
	case errors.Is(err, persist.ErrMalformed):
		slog.Warn("data document is malformed, starting from defaults", "error", err)
	case doc != nil:
		slog.Error("failed to write initial data document", "error", err)
	default:
		return nil, err
	}
	return New(backend, doc, opts...), nil
}

// New builds a Store from an already loaded document.
func New(backend Backend, doc *models.Document, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		newID:   func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presets == nil {
		s.presets = presets.Default()
	}
	persist.Migrate(doc)
	s.replaceLocked(doc)

	slog.Info("store loaded",
		"cards", len(s.cards),
		"folders", len(s.folders),
	)
	return s
}

// replaceLocked swaps the whole working copy for doc. The caller must hold
// the write lock (or own s exclusively).
func (s *Store) replaceLocked(doc *models.Document) {
	s.cards = make([]*models.Card, 0, len(doc.Cards))
	for i := range doc.Cards {
		c := doc.Cards[i].Clone()
		s.cards = append(s.cards, &c)
	}

	s.folders = make(map[string]*models.Folder, len(doc.Folders))
	s.folderSeq = make([]string, 0, len(doc.Folders))
	for i := range doc.Folders {
		f := doc.Folders[i].Clone()
		s.folders[f.ID] = &f
		s.folderSeq = append(s.folderSeq, f.ID)
	}

	s.customTags = doc.CustomTags.Clone()
	s.settings = doc.Settings
}

// snapshotLocked returns a deep copy of the working copy as a document.
func (s *Store) snapshotLocked() *models.Document {
	doc := &models.Document{
		Cards:      make([]models.Card, 0, len(s.cards)),
		Folders:    make([]models.Folder, 0, len(s.folderSeq)),
		CustomTags: s.customTags.Clone(),
		Settings:   s.settings,
		Version:    models.DocumentVersion,
	}
	for _, c := range s.cards {
		doc.Cards = append(doc.Cards, c.Clone())
	}
	for _, id := range s.folderSeq {
		doc.Folders = append(doc.Folders, s.folders[id].Clone())
	}
	return doc
}

// commitLocked writes the working copy and notifies listeners. It returns
// a *PersistError when the write fails; the mutation is kept either way.
func (s *Store) commitLocked(entity, action, id string) error {
	var result error
	if err := s.backend.Save(s.snapshotLocked()); err != nil {
		slog.Error("failed to persist store",
			"entity", entity,
			"action", action,
			"id", id,
			"error", err,
		)
		result = &PersistError{Op: entity + " " + action, Err: err}
	} else {
		slog.Debug("store persisted", "entity", entity, "action", action, "id", id)
	}

	if s.notify != nil {
		s.notify.Notify(entity, action, id)
	}
	return result
}

// freshIDLocked draws ids until one is unused by both cards and folders.
func (s *Store) freshIDLocked() string {
	for {
		id := s.newID()
		if _, taken := s.folders[id]; taken {
			continue
		}
		if s.cardIndexLocked(id) >= 0 {
			continue
		}
		return id
	}
}
