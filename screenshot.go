package engine2000

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultScreenshotDir is where platforms write screenshots unless told
// otherwise.
const DefaultScreenshotDir = "screenshots"

// SaveScreenshot writes img as a PNG named after label into dir, creating
// dir if needed, and returns the file path.
func SaveScreenshot(dir, label string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("engine2000: screenshot: mkdir %s: %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := writePNG(path, img); err != nil {
		return "", fmt.Errorf("engine2000: screenshot: %w", err)
	}
	logger.Debug("screenshot saved", "path", path)
	return path, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Rasterize paints a recorded frame into a w×h image. Rects and solid
// textures are drawn with source-over blending; other textures draw as their
// tint and text is skipped. It is the screenshot path for platforms without
// a GPU framebuffer.
func Rasterize(commands []RenderCommand, bg Color, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillNRGBA(img, img.Bounds(), bg.WithAlpha(1))
	for i := range commands {
		cmd := &commands[i]
		switch cmd.Type {
		case CommandFillRect:
			fillNRGBA(img, pixelRect(cmd.Dst), cmd.Color)
		case CommandDrawRect:
			r := pixelRect(cmd.Dst)
			fillNRGBA(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), cmd.Color)
			fillNRGBA(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), cmd.Color)
			fillNRGBA(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), cmd.Color)
			fillNRGBA(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), cmd.Color)
		case CommandTexture:
			fillNRGBA(img, pixelRect(cmd.Dst), TextureColor(cmd.Texture, cmd.Options.Tint))
		}
	}
	return img
}

// TextureColor returns the flat color a texture is approximated with when it
// cannot be sampled: a SolidTexture's color, otherwise white, times tint.
func TextureColor(tex Texture, tint Color) Color {
	if tint == (Color{}) {
		tint = ColorWhite
	}
	base := ColorWhite
	if st, ok := tex.(*SolidTexture); ok {
		base = st.Color
	}
	return Color{base.R * tint.R, base.G * tint.G, base.B * tint.B, base.A * tint.A}
}

func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

func fillNRGBA(img *image.NRGBA, r image.Rectangle, c Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() || c.A <= 0 {
		return
	}
	sr, sg, sb, sa := c.Bytes()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if sa == 255 {
				img.SetNRGBA(x, y, color.NRGBA{sr, sg, sb, 255})
				continue
			}
			dst := img.NRGBAAt(x, y)
			a := float64(sa) / 255
			img.SetNRGBA(x, y, color.NRGBA{
				R: blendByte(sr, dst.R, a),
				G: blendByte(sg, dst.G, a),
				B: blendByte(sb, dst.B, a),
				A: uint8(math.Min(255, float64(sa)+float64(dst.A)*(1-a))),
			})
		}
	}
}

func blendByte(src, dst uint8, a float64) uint8 {
	return uint8(math.Round(float64(src)*a + float64(dst)*(1-a)))
}
