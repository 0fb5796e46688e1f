// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"strings"

	"promptcard/internal/models"
	"promptcard/internal/query"
)

// Cards returns a copy of every card, most recently created first.
func (s *Store) Cards() []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cardsLocked()
}

func (s *Store) cardsLocked() []models.Card {
	out := make([]models.Card, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c.Clone())
	}
	return out
}

// Card returns a copy of the card with the given id.
func (s *Store) Card(id string) (models.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.cardIndexLocked(id)
	if i < 0 {
		return models.Card{}, false
	}
	return s.cards[i].Clone(), true
}

// FilteredCards returns the cards matching f, in display order.
func (s *Store) FilteredCards(f query.Filter) []models.Card {
	s.mu.RLock()
	cards := s.cardsLocked()
	s.mu.RUnlock()
	return query.Apply(cards, f)
}

// AddCard creates a card from a draft and inserts it at the front.
// An empty draft category resolves to the configured default folder, or
// to "uncategorized" if that folder no longer exists.
func (s *Store) AddCard(d models.CardDraft) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	typ := d.Type
	if typ == "" {
		typ = models.CardTypeText
		if len(d.Images) > 0 {
			typ = models.CardTypeImage
		}
	}
	if !typ.Valid() {
		return nil, invalid("type", CodeUnknownType)
	}
	if err := validateCardText(d.Title, d.Description, d.Author); err != nil {
		return nil, err
	}
	if err := validateImages(d.Images); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(d.Category)
	switch {
	case category == "":
		category = s.settings.DefaultCategory
		if _, ok := s.folders[category]; !ok {
			category = models.FolderUncategorized
		}
	case s.folders[category] == nil:
		return nil, invalid("category", CodeUnknownFolder)
	}

	now := s.now()
	card := &models.Card{
		ID:          s.freshIDLocked(),
		Type:        typ,
		Title:       d.Title,
		Description: d.Description,
		Author:      d.Author,
		Category:    category,
		Tags: models.CardTags{
			Models:   append([]string{}, d.Tags.Models...),
			Websites: append([]models.Website{}, d.Tags.Websites...),
		},
		Images:    append([]models.Image{}, d.Images...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	card.Normalize()

	s.cards = append([]*models.Card{card}, s.cards...)
	out := card.Clone()
	return &out, s.commitLocked(EntityCard, ActionCreated, card.ID)
}

// UpdateCard applies a shallow patch and touches UpdatedAt.
func (s *Store) UpdateCard(id string, p models.CardPatch) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cardIndexLocked(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	if p.Type != nil && !p.Type.Valid() {
		return nil, invalid("type", CodeUnknownType)
	}
	if p.Category != nil {
		if _, ok := s.folders[*p.Category]; !ok {
			return nil, invalid("category", CodeUnknownFolder)
		}
	}

	next := s.cards[i].Clone()
	if p.Type != nil {
		next.Type = *p.Type
	}
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Author != nil {
		next.Author = *p.Author
	}
	if p.Category != nil {
		next.Category = *p.Category
	}
	if p.Tags != nil {
		next.Tags = models.CardTags{
			Models:   append([]string{}, p.Tags.Models...),
			Websites: append([]models.Website{}, p.Tags.Websites...),
		}
	}
	if p.Images != nil {
		if err := validateImages(*p.Images); err != nil {
			return nil, err
		}
		next.Images = append([]models.Image{}, (*p.Images)...)
	}
	if p.Favorite != nil {
		next.Favorite = *p.Favorite
	}
	if err := validateCardText(next.Title, next.Description, next.Author); err != nil {
		return nil, err
	}

	next.UpdatedAt = s.now()
	next.Normalize()
	*s.cards[i] = next

	out := next.Clone()
	return &out, s.commitLocked(EntityCard, ActionUpdated, id)
}

// DeleteCard removes a card and returns it as it was at removal, images
// included. The card is returned even when only the save failed.
func (s *Store) DeleteCard(id string) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cardIndexLocked(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	removed := s.cards[i].Clone()
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	return &removed, s.commitLocked(EntityCard, ActionDeleted, id)
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cardIndexLocked(id)
	if i < 0 {
		return false, ErrNotFound
	}
	c := s.cards[i]
	c.Favorite = !c.Favorite
	c.UpdatedAt = s.now()
	c.Normalize()
	return c.Favorite, s.commitLocked(EntityCard, ActionUpdated, id)
}

// AddImages appends images to a card and turns it into an image card.
// The first image of a card without images becomes its cover. Images whose
// path is already on the card are skipped.
func (s *Store) AddImages(id string, images ...models.Image) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cardIndexLocked(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	c := s.cards[i]
	for _, img := range images {
		img.IsCover = false
		c.Images = append(c.Images, img)
	}
	c.Type = models.CardTypeImage
	c.UpdatedAt = s.now()
	c.Normalize()

	out := c.Clone()
	return &out, s.commitLocked(EntityCard, ActionUpdated, id)
}

// SetCoverImage makes the image with the given path the card's cover.
func (s *Store) SetCoverImage(id, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cardIndexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	c := s.cards[i]
	found := false
	for j := range c.Images {
		if c.Images[j].Path == path {
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}
	set := false
	for j := range c.Images {
		c.Images[j].IsCover = !set && c.Images[j].Path == path
		set = set || c.Images[j].IsCover
	}
	c.UpdatedAt = s.now()
	return s.commitLocked(EntityCard, ActionUpdated, id)
}

// RemoveImage detaches an image from a card and returns it. If it was the
// cover, the first remaining image takes over.
func (s *Store) RemoveImage(id, path string) (models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cardIndexLocked(id)
	if i < 0 {
		return models.Image{}, ErrNotFound
	}
	c := s.cards[i]
	for j := range c.Images {
		if c.Images[j].Path != path {
			continue
		}
		removed := c.Images[j]
		c.Images = append(c.Images[:j], c.Images[j+1:]...)
		c.UpdatedAt = s.now()
		c.Normalize()
		return removed, s.commitLocked(EntityCard, ActionUpdated, id)
	}
	return models.Image{}, ErrNotFound
}

func (s *Store) cardIndexLocked(id string) int {
	for i, c := range s.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
