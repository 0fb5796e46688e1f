package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCardTypeValid(t *testing.T) {
	tests := []struct {
		typ  CardType
		want bool
	}{
		{CardTypeText, true},
		{CardTypeImage, true},
		{"", false},
		{"video", false},
		{"TEXT", false},
	}
	for _, tt := range tests {
		if got := tt.typ.Valid(); got != tt.want {
			t.Errorf("CardType(%q).Valid() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

// TestCardUnmarshal_LegacyLayout verifies that documents written by older
// versions, with models/websites at the top level, still load.
func TestCardUnmarshal_LegacyLayout(t *testing.T) {
	raw := `{
		"id": "1712345678901",
		"type": "text",
		"title": "Translate",
		"description": "Translate the following",
		"author": "",
		"category": "ai-chat",
		"tags": [],
		"models": ["GPT-5", "K2"],
		"websites": [{"name": "ChatGPT", "url": "https://chatgpt.com/"}],
		"images": [],
		"favorite": true,
		"createdAt": "2025-08-01T10:00:00.000Z",
		"updatedAt": "2025-08-02T10:00:00.000Z"
	}`

	var c Card
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.ID != "1712345678901" || c.Title != "Translate" || !c.Favorite {
		t.Errorf("scalar fields not decoded: %+v", c)
	}
	if len(c.Tags.Models) != 2 || c.Tags.Models[1] != "K2" {
		t.Errorf("models: got %v", c.Tags.Models)
	}
	if !c.Tags.HasWebsite("ChatGPT") {
		t.Errorf("websites: got %v", c.Tags.Websites)
	}
	want := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	if !c.CreatedAt.Equal(want) {
		t.Errorf("createdAt: got %v, want %v", c.CreatedAt, want)
	}
}

func TestCardUnmarshal_CurrentLayout(t *testing.T) {
	raw := `{"id":"a","type":"image","tags":{"models":["GPT-5"],"websites":[{"name":"Civitai","url":"https://civitai.com/"}]}}`

	var c Card
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !c.Tags.HasModel("GPT-5") || !c.Tags.HasWebsite("Civitai") {
		t.Errorf("tags: got %+v", c.Tags)
	}
	if c.Type != CardTypeImage {
		t.Errorf("type: got %q", c.Type)
	}
}

func TestNormalizeCover(t *testing.T) {
	tests := []struct {
		name  string
		cover []bool
		want  []bool
	}{
		{"empty", nil, nil},
		{"none flagged promotes first", []bool{false, false}, []bool{true, false}},
		{"single flagged kept", []bool{false, true, false}, []bool{false, true, false}},
		{"multiple flagged keeps first", []bool{false, true, true}, []bool{false, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := make([]Image, len(tt.cover))
			for i, c := range tt.cover {
				images[i].IsCover = c
			}
			NormalizeCover(images)
			for i := range images {
				if images[i].IsCover != tt.want[i] {
					t.Errorf("image %d: isCover = %v, want %v", i, images[i].IsCover, tt.want[i])
				}
			}
		})
	}
}

func TestDedupeImages(t *testing.T) {
	images := []Image{{Path: "a"}, {Path: "b"}, {Path: "a", IsCover: true}, {Path: "c"}, {Path: "b"}}
	got := DedupeImages(images)

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i, p := range want {
		if got[i].Path != p {
			t.Errorf("image %d: path %q, want %q", i, got[i].Path, p)
		}
	}
	if !got[0].IsCover {
		t.Error("cover flag of a dropped duplicate should carry over")
	}
}

func TestCardNormalize_DuplicateImages(t *testing.T) {
	c := Card{ID: "x", Images: []Image{{Path: "a"}, {Path: "a", IsCover: true}, {Path: "b", IsCover: true}}}
	c.Normalize()

	if len(c.Images) != 2 {
		t.Fatalf("images: %+v", c.Images)
	}
	if !c.Images[0].IsCover || c.Images[1].IsCover {
		t.Errorf("exactly the first image should be cover: %+v", c.Images)
	}
}

func TestCardNormalize(t *testing.T) {
	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	c := Card{ID: "x", CreatedAt: created, UpdatedAt: created.Add(-time.Hour)}
	c.Normalize()

	if c.Type != CardTypeText {
		t.Errorf("type: got %q, want text", c.Type)
	}
	if c.Tags.Models == nil || c.Tags.Websites == nil || c.Images == nil {
		t.Error("nil collections should be replaced with empty ones")
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		t.Error("updatedAt must not precede createdAt")
	}
}

func TestCardClone_IsDeep(t *testing.T) {
	c := Card{Tags: CardTags{Models: []string{"GPT-5"}}, Images: []Image{{Path: "a.png"}}}
	cp := c.Clone()
	cp.Tags.Models[0] = "changed"
	cp.Images[0].Path = "changed"

	if c.Tags.Models[0] != "GPT-5" || c.Images[0].Path != "a.png" {
		t.Error("mutating the clone changed the original")
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := HumanSize(tt.size); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
