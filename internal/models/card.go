// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// CardType distinguishes plain prompt cards from cards that carry images.
type CardType string

const (
	CardTypeText  CardType = "text"
	CardTypeImage CardType = "image"
)

// Valid reports whether t is one of the known card types.
func (t CardType) Valid() bool {
	switch t {
	case CardTypeText, CardTypeImage:
		return true
	default:
		return false
	}
}

// Website is a platform tag attached to a card, e.g. {"ChatGPT", "https://chatgpt.com/"}.
type Website struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CardTags groups the model and platform tags of a card.
type CardTags struct {
	Models   []string  `json:"models"`
	Websites []Website `json:"websites"`
}

// HasModel reports whether the card is tagged with the given model.
func (t CardTags) HasModel(name string) bool {
	for _, m := range t.Models {
		if m == name {
			return true
		}
	}
	return false
}

// HasWebsite reports whether the card is tagged with a platform of the given name.
func (t CardTags) HasWebsite(name string) bool {
	for _, w := range t.Websites {
		if w.Name == name {
			return true
		}
	}
	return false
}

// Image is a picture attached to an image card. Path points at the copy
// kept under the data directory.
type Image struct {
	Path       string    `json:"path"`
	IsCover    bool      `json:"isCover"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
}

// HumanSize formats a byte count for display.
func HumanSize(n int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.0f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Card is a single prompt record.
type Card struct {
	ID          string    `json:"id"`
	Type        CardType  `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Tags        CardTags  `json:"tags"`
	Images      []Image   `json:"images"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UnmarshalJSON accepts both the current layout and the older one where
// "models" and "websites" sat at the top level and "tags" was a plain array.
func (c *Card) UnmarshalJSON(data []byte) error {
	type cardAlias Card
	var raw struct {
		cardAlias
		Tags     json.RawMessage `json:"tags"`
		Models   []string        `json:"models"`
		Websites []Website       `json:"websites"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Card(raw.cardAlias)
	c.Tags = CardTags{}
	if len(raw.Tags) > 0 && raw.Tags[0] == '{' {
		if err := json.Unmarshal(raw.Tags, &c.Tags); err != nil {
			return fmt.Errorf("card %s tags: %w", c.ID, err)
		}
	}
	if len(c.Tags.Models) == 0 {
		c.Tags.Models = raw.Models
	}
	if len(c.Tags.Websites) == 0 {
		c.Tags.Websites = raw.Websites
	}
	return nil
}

// Cover returns the cover image, or nil when the card has no images.
func (c *Card) Cover() *Image {
	for i := range c.Images {
		if c.Images[i].IsCover {
			return &c.Images[i]
		}
	}
	return nil
}

// Normalize fills nil collections, defaults the type, drops images that
// repeat an earlier path, keeps exactly one cover image and makes sure
// UpdatedAt is not before CreatedAt.
func (c *Card) Normalize() {
	if c.Type == "" {
		c.Type = CardTypeText
	}
	if c.Tags.Models == nil {
		c.Tags.Models = []string{}
	}
	if c.Tags.Websites == nil {
		c.Tags.Websites = []Website{}
	}
	if c.Images == nil {
		c.Images = []Image{}
	}
	c.Images = DedupeImages(c.Images)
	NormalizeCover(c.Images)
	if c.UpdatedAt.Before(c.CreatedAt) {
		c.UpdatedAt = c.CreatedAt
	}
}

// NormalizeCover enforces the single-cover rule in place: the first image
// flagged as cover keeps the flag, and the first image becomes the cover
// when none is flagged.
func NormalizeCover(images []Image) {
	found := false
	for i := range images {
		if images[i].IsCover && !found {
			found = true
			continue
		}
		images[i].IsCover = false
	}
	if !found && len(images) > 0 {
		images[0].IsCover = true
	}
}

// DedupeImages keeps the first image for each path. A dropped duplicate
// passes its cover flag to the kept image.
func DedupeImages(images []Image) []Image {
	index := make(map[string]int, len(images))
	out := images[:0]
	for _, img := range images {
		if i, ok := index[img.Path]; ok {
			out[i].IsCover = out[i].IsCover || img.IsCover
			continue
		}
		index[img.Path] = len(out)
		out = append(out, img)
	}
	return out
}

// Clone returns a deep copy so callers can't mutate store-owned slices.
func (c *Card) Clone() Card {
	out := *c
	out.Tags.Models = append([]string{}, c.Tags.Models...)
	out.Tags.Websites = append([]Website{}, c.Tags.Websites...)
	out.Images = append([]Image{}, c.Images...)
	return out
}

// CardDraft is the input for creating a card. Category may be empty while
// the card is being composed; the store resolves it on creation, so a
// draft never reaches the persisted document.
type CardDraft struct {
	Type        CardType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Tags        CardTags `json:"tags"`
	Images      []Image  `json:"images"`
}

// CardPatch is a shallow partial update. Nil fields are left untouched.
type CardPatch struct {
	Type        *CardType `json:"type,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Author      *string   `json:"author,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *CardTags `json:"tags,omitempty"`
	Images      *[]Image  `json:"images,omitempty"`
	Favorite    *bool     `json:"favorite,omitempty"`
}
