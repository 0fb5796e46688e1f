// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package query computes the filtered, sorted view of cards shown in the
// card grid. Apply is a pure function: it never modifies its input.
package query

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"promptcard/internal/models"
)

// Virtual categories that don't correspond to a folder.
const (
	CategoryAll       = "all"
	CategoryRecent    = "recent"
	CategoryFavorites = "favorites"
)

// RecentLimit is the number of cards shown in the "recent" category.
const RecentLimit = 20

// SortField selects the sort key.
type SortField string

const (
	SortByDate  SortField = "date"
	SortByTitle SortField = "title"
)

// SortOrder selects the sort direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Filter is the active view state of the card grid.
type Filter struct {
	Category  string    `json:"category"`
	Search    string    `json:"search"`
	Models    []string  `json:"models"`
	Platforms []string  `json:"platforms"`
	SortBy    SortField `json:"sortBy"`
	Order     SortOrder `json:"sortOrder"`
}

// DefaultFilter shows every card, newest first.
func DefaultFilter() Filter {
	return Filter{Category: CategoryAll, SortBy: SortByDate, Order: Desc}
}

// ParseFilter builds a Filter from request parameters. Unknown or missing
// values fall back to the defaults. Tag lists accept repeated parameters
// as well as comma-separated values.
func ParseFilter(v url.Values) Filter {
	f := DefaultFilter()
	if c := strings.TrimSpace(v.Get("category")); c != "" {
		f.Category = c
	}
	f.Search = strings.TrimSpace(v.Get("q"))
	f.Models = splitList(v["models"])
	f.Platforms = splitList(v["platforms"])
	if s := SortField(v.Get("sort")); s == SortByDate || s == SortByTitle {
		f.SortBy = s
	}
	if o := SortOrder(v.Get("order")); o == Asc || o == Desc {
		f.Order = o
	}
	return f
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Apply runs the category, search, tag and sort stages in that order and
// returns a new slice. The "recent" category sorts by update time itself
// and skips the sort stage. Sorting is stable.
func Apply(cards []models.Card, f Filter) []models.Card {
	out := byCategory(cards, f.Category)
	out = bySearch(out, f.Search)
	out = byTags(out, f.Models, f.Platforms)
	if f.Category != CategoryRecent {
		sortCards(out, f.SortBy, f.Order)
	}
	return out
}

func byCategory(cards []models.Card, category string) []models.Card {
	switch category {
	case "", CategoryAll:
		return slices.Clone(cards)
	case CategoryRecent:
		out := slices.Clone(cards)
		slices.SortStableFunc(out, func(a, b models.Card) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
		if len(out) > RecentLimit {
			out = out[:RecentLimit]
		}
		return out
	case CategoryFavorites:
		return keep(cards, func(c *models.Card) bool { return c.Favorite })
	default:
		return keep(cards, func(c *models.Card) bool { return c.Category == category })
	}
}

func bySearch(cards []models.Card, search string) []models.Card {
	if search == "" {
		return cards
	}
	fold := cases.Fold()
	q := fold.String(search)
	match := func(s string) bool { return strings.Contains(fold.String(s), q) }

	return keep(cards, func(c *models.Card) bool {
		if match(c.Title) || match(c.Description) || match(c.Author) {
			return true
		}
		for _, m := range c.Tags.Models {
			if match(m) {
				return true
			}
		}
		for _, w := range c.Tags.Websites {
			if match(w.Name) {
				return true
			}
		}
		return false
	})
}

func byTags(cards []models.Card, modelTags, platformTags []string) []models.Card {
	if len(modelTags) > 0 {
		cards = keep(cards, func(c *models.Card) bool {
			for _, t := range modelTags {
				if !c.Tags.HasModel(t) {
					return false
				}
			}
			return true
		})
	}
	if len(platformTags) > 0 {
		cards = keep(cards, func(c *models.Card) bool {
			for _, t := range platformTags {
				if !c.Tags.HasWebsite(t) {
					return false
				}
			}
			return true
		})
	}
	return cards
}

func sortCards(cards []models.Card, by SortField, order SortOrder) {
	var cmp func(a, b *models.Card) int
	switch by {
	case SortByTitle:
		col := collate.New(language.Und, collate.IgnoreCase)
		cmp = func(a, b *models.Card) int { return col.CompareString(a.Title, b.Title) }
	default:
		cmp = func(a, b *models.Card) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}

	slices.SortStableFunc(cards, func(a, b models.Card) int {
		if order == Asc {
			return cmp(&a, &b)
		}
		return cmp(&b, &a)
	})
}

func keep(cards []models.Card, pred func(*models.Card) bool) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for i := range cards {
		if pred(&cards[i]) {
			out = append(out, cards[i])
		}
	}
	return out
}
