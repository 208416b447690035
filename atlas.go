package engine2000

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TextureRegion is a named rectangle on one page of an Atlas.
type TextureRegion struct {
	Texture Texture
	Page    int
	Frame   Rect // source rectangle on the page
	Rotated bool // stored 90° clockwise; the engine draws it as stored
}

// Atlas maps region names to rectangles over one or more page textures. It
// reads TexturePacker JSON in the hash, array and multipack layouts.
type Atlas struct {
	pages   []Texture
	regions map[string]TextureRegion
}

// atlasDoc covers all three layouts. Frames is an object (hash) or a list
// (array); Textures is only present in multipack exports.
type atlasDoc struct {
	Frames   json.RawMessage `json:"frames"`
	Textures []struct {
		Image  string          `json:"image"`
		Frames json.RawMessage `json:"frames"`
	} `json:"textures"`
	Meta struct {
		Image string `json:"image"`
	} `json:"meta"`
}

type atlasFrame struct {
	Filename string `json:"filename"`
	Frame    struct {
		X, Y, W, H float64
	} `json:"frame"`
	Rotated bool `json:"rotated"`
}

func decodeAtlas(data []byte) (atlasDoc, error) {
	var doc atlasDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%w: %w", ErrInvalidAtlas, err)
	}
	if len(doc.Textures) == 0 && len(doc.Frames) == 0 {
		return doc, fmt.Errorf("%w: no frames or textures", ErrInvalidAtlas)
	}
	return doc, nil
}

// AtlasPageImages returns the page image names an atlas references, in page
// order. Loaders resolve them relative to the JSON file.
func AtlasPageImages(data []byte) ([]string, error) {
	doc, err := decodeAtlas(data)
	if err != nil {
		return nil, err
	}
	if len(doc.Textures) == 0 {
		if doc.Meta.Image == "" {
			return nil, nil
		}
		return []string{doc.Meta.Image}, nil
	}
	names := make([]string, len(doc.Textures))
	for i, t := range doc.Textures {
		names[i] = t.Image
	}
	return names, nil
}

// LoadAtlas parses TexturePacker JSON and binds its regions to pages, one
// texture per page in page order. Regions on a page with no texture keep a
// nil Texture.
func LoadAtlas(data []byte, pages []Texture) (*Atlas, error) {
	doc, err := decodeAtlas(data)
	if err != nil {
		return nil, err
	}
	a := &Atlas{pages: pages, regions: make(map[string]TextureRegion)}
	if len(doc.Textures) == 0 {
		return a, a.addFrames(doc.Frames, 0)
	}
	for i, t := range doc.Textures {
		if err := a.addFrames(t.Frames, i); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Atlas) addFrames(raw json.RawMessage, page int) error {
	var frames []atlasFrame
	switch trimmed := bytes.TrimSpace(raw); {
	case len(trimmed) == 0:
		return nil
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &frames); err != nil {
			return fmt.Errorf("%w: page %d: %w", ErrInvalidAtlas, page, err)
		}
	default:
		var byName map[string]atlasFrame
		if err := json.Unmarshal(trimmed, &byName); err != nil {
			return fmt.Errorf("%w: page %d: %w", ErrInvalidAtlas, page, err)
		}
		for name, f := range byName {
			f.Filename = name
			frames = append(frames, f)
		}
	}
	var tex Texture
	if page < len(a.pages) {
		tex = a.pages[page]
	}
	for _, f := range frames {
		if f.Filename == "" {
			continue
		}
		a.regions[f.Filename] = TextureRegion{
			Texture: tex,
			Page:    page,
			Frame:   Rect{X: f.Frame.X, Y: f.Frame.Y, Width: f.Frame.W, Height: f.Frame.H},
			Rotated: f.Rotated,
		}
	}
	return nil
}

// Lookup finds a region by name. A name without an extension also matches
// the same name with ".png", which is how TexturePacker keys its frames.
func (a *Atlas) Lookup(name string) (TextureRegion, bool) {
	if a == nil {
		return TextureRegion{}, false
	}
	if r, ok := a.regions[name]; ok {
		return r, true
	}
	if !strings.Contains(name, ".") {
		r, ok := a.regions[name+".png"]
		return r, ok
	}
	return TextureRegion{}, false
}

// Region returns the named region, or a 1×1 magenta stand-in with a warning.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.Lookup(name); ok {
		return r
	}
	logger.Warn("atlas region not found", "region", name)
	return TextureRegion{Texture: missingTexture, Page: -1, Frame: Rect{Width: 1, Height: 1}}
}

// Len returns the number of regions.
func (a *Atlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.regions)
}

// Pages returns the page textures.
func (a *Atlas) Pages() []Texture {
	if a == nil {
		return nil
	}
	return a.pages
}

var missingTexture = NewSolidTexture("missing", 1, 1, RGBA(255, 0, 255, 255))
