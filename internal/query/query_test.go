package query

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"promptcard/internal/models"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func card(id, title, category string, created int) models.Card {
	at := base.Add(time.Duration(created) * time.Hour)
	return models.Card{
		ID:        id,
		Type:      models.CardTypeText,
		Title:     title,
		Category:  category,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func ids(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Card, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range g {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestApply_CategoryStage(t *testing.T) {
	a := card("a", "A", models.FolderAIChat, 1)
	b := card("b", "B", models.FolderAIArt, 2)
	b.Favorite = true
	c := card("c", "C", models.FolderAIChat, 3)
	cards := []models.Card{c, b, a}

	tests := []struct {
		category string
		want     []string
	}{
		{CategoryAll, []string{"c", "b", "a"}},
		{"", []string{"c", "b", "a"}},
		{CategoryFavorites, []string{"b"}},
		{models.FolderAIChat, []string{"c", "a"}},
		{"no-such-folder", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			f := DefaultFilter()
			f.Category = tt.category
			assertIDs(t, Apply(cards, f), tt.want...)
		})
	}
}

func TestApply_RecentIgnoresSortSettings(t *testing.T) {
	var cards []models.Card
	for i := 0; i < 30; i++ {
		c := card(fmt.Sprintf("c%02d", i), fmt.Sprintf("T%02d", i), models.FolderAIChat, i)
		// Update times run opposite to creation times.
		c.UpdatedAt = base.Add(time.Duration(100-i) * time.Hour)
		cards = append(cards, c)
	}

	for _, f := range []Filter{
		{Category: CategoryRecent, SortBy: SortByDate, Order: Asc},
		{Category: CategoryRecent, SortBy: SortByTitle, Order: Desc},
	} {
		got := Apply(cards, f)
		if len(got) != RecentLimit {
			t.Fatalf("recent: got %d cards, want %d", len(got), RecentLimit)
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].UpdatedAt.Before(got[i].UpdatedAt) {
				t.Fatalf("recent not sorted by updatedAt desc at %d", i)
			}
		}
		if got[0].ID != "c00" {
			t.Errorf("most recently updated first: got %s", got[0].ID)
		}
	}
}

func TestApply_RecentFewerThanLimit(t *testing.T) {
	cards := []models.Card{card("a", "A", "x", 1), card("b", "B", "x", 2)}
	got := Apply(cards, Filter{Category: CategoryRecent})
	assertIDs(t, got, "b", "a")
}

func TestApply_Search(t *testing.T) {
	byTitle := card("title", "Write a Haiku", "x", 1)
	byDesc := card("desc", "", "x", 2)
	byDesc.Description = "summarise the HAIKU"
	byAuthor := card("author", "", "x", 3)
	byAuthor.Author = "Haiku Master"
	byModel := card("model", "", "x", 4)
	byModel.Tags.Models = []string{"haiku-model"}
	bySite := card("site", "", "x", 5)
	bySite.Tags.Websites = []models.Website{{Name: "HaikuHub", URL: "https://haiku.test"}}
	bySiteURL := card("url-only", "", "x", 6)
	bySiteURL.Tags.Websites = []models.Website{{Name: "Other", URL: "https://haiku.test"}}
	none := card("none", "Nothing", "x", 7)

	cards := []models.Card{byTitle, byDesc, byAuthor, byModel, bySite, bySiteURL, none}
	f := Filter{Category: CategoryAll, Search: "haiku", SortBy: SortByDate, Order: Asc}
	assertIDs(t, Apply(cards, f), "title", "desc", "author", "model", "site")
}

func TestApply_SearchMissingTags(t *testing.T) {
	c := card("a", "alpha", "x", 1)
	c.Tags = models.CardTags{} // nil collections
	got := Apply([]models.Card{c}, Filter{Search: "beta"})
	if len(got) != 0 {
		t.Errorf("got %v, want none", ids(got))
	}
}

func TestApply_TagsAreConjunctive(t *testing.T) {
	both := card("both", "", "x", 1)
	both.Tags.Models = []string{"GPT-5", "K2", "Other"}
	one := card("one", "", "x", 2)
	one.Tags.Models = []string{"GPT-5"}
	neither := card("neither", "", "x", 3)
	cards := []models.Card{both, one, neither}

	f := Filter{Category: CategoryAll, Models: []string{"GPT-5", "K2"}, SortBy: SortByDate, Order: Asc}
	assertIDs(t, Apply(cards, f), "both")

	f.Models = nil
	assertIDs(t, Apply(cards, f), "both", "one", "neither")
}

func TestApply_PlatformTags(t *testing.T) {
	a := card("a", "", "x", 1)
	a.Tags.Websites = []models.Website{{Name: "ChatGPT"}, {Name: "Gemini"}}
	b := card("b", "", "x", 2)
	b.Tags.Websites = []models.Website{{Name: "ChatGPT"}}

	f := Filter{Platforms: []string{"ChatGPT", "Gemini"}, SortBy: SortByDate, Order: Asc}
	assertIDs(t, Apply([]models.Card{a, b}, f), "a")

	f.Platforms = []string{"ChatGPT"}
	assertIDs(t, Apply([]models.Card{a, b}, f), "a", "b")
}

func TestApply_SortByDate(t *testing.T) {
	cards := []models.Card{card("mid", "", "x", 2), card("old", "", "x", 1), card("new", "", "x", 3)}

	assertIDs(t, Apply(cards, Filter{SortBy: SortByDate, Order: Asc}), "old", "mid", "new")
	assertIDs(t, Apply(cards, Filter{SortBy: SortByDate, Order: Desc}), "new", "mid", "old")
}

func TestApply_SortByTitle(t *testing.T) {
	cards := []models.Card{
		card("b", "banana", "x", 1),
		card("A", "Apple", "x", 2),
		card("c", "cherry", "x", 3),
	}
	assertIDs(t, Apply(cards, Filter{SortBy: SortByTitle, Order: Asc}), "A", "b", "c")
	assertIDs(t, Apply(cards, Filter{SortBy: SortByTitle, Order: Desc}), "c", "b", "A")
}

func TestApply_SortIsStable(t *testing.T) {
	cards := []models.Card{
		card("first", "same", "x", 1),
		card("second", "SAME", "x", 1),
		card("third", "Same", "x", 1),
	}
	for _, f := range []Filter{
		{SortBy: SortByTitle, Order: Asc},
		{SortBy: SortByTitle, Order: Desc},
		{SortBy: SortByDate, Order: Asc},
		{SortBy: SortByDate, Order: Desc},
	} {
		assertIDs(t, Apply(cards, f), "first", "second", "third")
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	cards := []models.Card{card("b", "b", "x", 2), card("a", "a", "x", 1)}
	Apply(cards, Filter{SortBy: SortByTitle, Order: Asc})
	assertIDs(t, cards, "b", "a")
}

func TestParseFilter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := ParseFilter(url.Values{})
		if f.Category != CategoryAll || f.SortBy != SortByDate || f.Order != Desc {
			t.Errorf("got %+v", f)
		}
	})

	t.Run("explicit values", func(t *testing.T) {
		v := url.Values{
			"category":  {"favorites"},
			"q":         {"  haiku "},
			"models":    {"GPT-5,K2", "Gemini 2.5 Pro"},
			"platforms": {"ChatGPT"},
			"sort":      {"title"},
			"order":     {"asc"},
		}
		f := ParseFilter(v)
		if f.Category != CategoryFavorites || f.Search != "haiku" || f.SortBy != SortByTitle || f.Order != Asc {
			t.Errorf("got %+v", f)
		}
		if len(f.Models) != 3 || f.Models[2] != "Gemini 2.5 Pro" {
			t.Errorf("models: got %v", f.Models)
		}
		if len(f.Platforms) != 1 {
			t.Errorf("platforms: got %v", f.Platforms)
		}
	})

	t.Run("invalid sort falls back", func(t *testing.T) {
		f := ParseFilter(url.Values{"sort": {"random"}, "order": {"sideways"}})
		if f.SortBy != SortByDate || f.Order != Desc {
			t.Errorf("got %+v", f)
		}
	})
}
