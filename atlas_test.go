package engine2000

import (
	"errors"
	"slices"
	"testing"
)

const hashAtlasJSON = `{
  "frames": {
    "ship.png":  {"frame": {"x": 0, "y": 0, "w": 448, "h": 192}, "rotated": false},
    "loner.png": {"frame": {"x": 448, "y": 0, "w": 256, "h": 256}, "rotated": true}
  },
  "meta": {"image": "sheets.png", "size": {"w": 1024, "h": 512}}
}`

const arrayAtlasJSON = `{
  "frames": [
    {"filename": "missile.png", "frame": {"x": 8, "y": 16, "w": 32, "h": 48}},
    {"filename": "", "frame": {"x": 0, "y": 0, "w": 1, "h": 1}}
  ],
  "meta": {"image": "shots.png"}
}`

const multipackAtlasJSON = `{
  "textures": [
    {"image": "page-0.png", "frames": {"background.png": {"frame": {"x": 0, "y": 0, "w": 640, "h": 480}}}},
    {"image": "page-1.png", "frames": [{"filename": "life.png", "frame": {"x": 4, "y": 4, "w": 32, "h": 16}}]}
  ]
}`

func TestLoadAtlasLayouts(t *testing.T) {
	p0 := NewSolidTexture("p0", 1024, 512, ColorWhite)
	p1 := NewSolidTexture("p1", 64, 64, ColorWhite)

	tests := []struct {
		name   string
		json   string
		pages  []Texture
		region string
		want   TextureRegion
		count  int
	}{
		{"hash", hashAtlasJSON, []Texture{p0}, "loner.png",
			TextureRegion{Texture: p0, Page: 0, Frame: Rect{448, 0, 256, 256}, Rotated: true}, 2},
		{"array", arrayAtlasJSON, []Texture{p0}, "missile.png",
			TextureRegion{Texture: p0, Page: 0, Frame: Rect{8, 16, 32, 48}}, 1},
		{"multipack", multipackAtlasJSON, []Texture{p0, p1}, "life.png",
			TextureRegion{Texture: p1, Page: 1, Frame: Rect{4, 4, 32, 16}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := LoadAtlas([]byte(tt.json), tt.pages)
			if err != nil {
				t.Fatalf("LoadAtlas: %v", err)
			}
			if a.Len() != tt.count {
				t.Errorf("Len = %d, want %d", a.Len(), tt.count)
			}
			got, ok := a.Lookup(tt.region)
			if !ok {
				t.Fatalf("Lookup(%q) missing", tt.region)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.region, got, tt.want)
			}
		})
	}
}

func TestAtlasMissingPageTexture(t *testing.T) {
	a, err := LoadAtlas([]byte(multipackAtlasJSON), nil)
	if err != nil {
		t.Fatal(err)
	}
	r, ok := a.Lookup("life.png")
	if !ok || r.Texture != nil || r.Page != 1 {
		t.Errorf("Lookup = %+v, %v, want page 1 with nil texture", r, ok)
	}
}

func TestAtlasLookupWithoutExtension(t *testing.T) {
	a, err := LoadAtlas([]byte(hashAtlasJSON), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := a.Lookup("ship"); !ok {
		t.Error(`Lookup("ship") did not fall back to "ship.png"`)
	}
	if _, ok := a.Lookup("ship.jpg"); ok {
		t.Error(`Lookup("ship.jpg") matched`)
	}
	var none *Atlas
	if _, ok := none.Lookup("ship"); ok || none.Len() != 0 {
		t.Error("nil atlas reported regions")
	}
}

func TestAtlasRegionFallback(t *testing.T) {
	a, err := LoadAtlas([]byte(hashAtlasJSON), nil)
	if err != nil {
		t.Fatal(err)
	}
	r := a.Region("nope")
	if r.Texture == nil || r.Page != -1 || r.Frame != (Rect{0, 0, 1, 1}) {
		t.Errorf("Region(missing) = %+v, want a 1x1 stand-in", r)
	}
	if w, h := r.Texture.Size(); w != 1 || h != 1 {
		t.Errorf("stand-in size = %dx%d, want 1x1", w, h)
	}
}

func TestAtlasPageImages(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{"hash", hashAtlasJSON, []string{"sheets.png"}},
		{"array", arrayAtlasJSON, []string{"shots.png"}},
		{"multipack", multipackAtlasJSON, []string{"page-0.png", "page-1.png"}},
		{"no meta", `{"frames": {}}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AtlasPageImages([]byte(tt.json))
			if err != nil {
				t.Fatalf("AtlasPageImages: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("AtlasPageImages = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadAtlasErrors(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"meta": {"image": "x.png"}}`,
		`{"frames": 12}`,
		`{"textures": [{"image": "a.png", "frames": "bad"}]}`,
	} {
		if _, err := LoadAtlas([]byte(data), nil); !errors.Is(err, ErrInvalidAtlas) {
			t.Errorf("LoadAtlas(%s) error = %v, want ErrInvalidAtlas", data, err)
		}
	}
}
