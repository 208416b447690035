package engine2000

// Texture is an image a backend knows how to draw. Texture loading and caching
// live in the backends; the core only needs the pixel size.
type Texture interface {
	Size() (w, h int)
}

// SolidTexture is a texture filled with a single color. Every backend can draw
// it without loading assets, which makes it the texture of choice for tests,
// placeholders and the terminal backend.
type SolidTexture struct {
	Name  string
	W, H  int
	Color Color
}

// NewSolidTexture returns a w×h texture of color c.
func NewSolidTexture(name string, w, h int, c Color) *SolidTexture {
	return &SolidTexture{Name: name, W: w, H: h, Color: c}
}

// Size implements Texture.
func (t *SolidTexture) Size() (w, h int) { return t.W, t.H }

// DrawOptions control how a textured quad is drawn.
type DrawOptions struct {
	Flip  Flip
	Tint  Color // zero value means ColorWhite
	Blend BlendMode
}

// Renderer is the draw contract the core issues calls through. Backends
// implement it; the core never knows which backend is active.
type Renderer interface {
	SetClearColor(c Color)
	Clear()
	Present()
	FillRect(r Rect, c Color)
	DrawRect(r Rect, c Color)
	DrawTexture(tex Texture, src, dst Rect, opts DrawOptions)
	DrawText(x, y float64, text string, c Color)
}

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandFillRect CommandType = iota // solid rectangle
	CommandDrawRect                    // rectangle outline
	CommandTexture                     // textured quad
	CommandText                        // debug text
)

// RenderCommand is a single recorded draw instruction.
type RenderCommand struct {
	Type    CommandType
	Dst     Rect
	Src     Rect
	Texture Texture
	Color   Color
	Options DrawOptions
	Text    string
}

const defaultCommandCap = 256

// RecordingRenderer is a Renderer that records draw calls into a command
// list. Present publishes the list as the last completed frame. It is the
// headless backend, the test double, and the command buffer the windowed
// backends replay from.
type RecordingRenderer struct {
	clearColor Color
	commands   []RenderCommand
	presented  []RenderCommand
	frames     int
	clears     int
}

// NewRecordingRenderer returns an empty recording renderer.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{
		commands:  make([]RenderCommand, 0, defaultCommandCap),
		presented: make([]RenderCommand, 0, defaultCommandCap),
	}
}

// SetClearColor implements Renderer.
func (r *RecordingRenderer) SetClearColor(c Color) { r.clearColor = c }

// ClearColor returns the color set by SetClearColor.
func (r *RecordingRenderer) ClearColor() Color { return r.clearColor }

// Clear implements Renderer. It discards the commands of the frame in
// progress.
func (r *RecordingRenderer) Clear() {
	r.commands = r.commands[:0]
	r.clears++
}

// Present implements Renderer. The recorded commands become LastFrame.
func (r *RecordingRenderer) Present() {
	r.presented, r.commands = r.commands, r.presented[:0]
	r.frames++
}

// FillRect implements Renderer.
func (r *RecordingRenderer) FillRect(rect Rect, c Color) {
	r.commands = append(r.commands, RenderCommand{Type: CommandFillRect, Dst: rect, Color: c})
}

// DrawRect implements Renderer.
func (r *RecordingRenderer) DrawRect(rect Rect, c Color) {
	r.commands = append(r.commands, RenderCommand{Type: CommandDrawRect, Dst: rect, Color: c})
}

// DrawTexture implements Renderer.
func (r *RecordingRenderer) DrawTexture(tex Texture, src, dst Rect, opts DrawOptions) {
	if tex == nil {
		return
	}
	if opts.Tint == (Color{}) {
		opts.Tint = ColorWhite
	}
	r.commands = append(r.commands, RenderCommand{
		Type:    CommandTexture,
		Dst:     dst,
		Src:     src,
		Texture: tex,
		Options: opts,
	})
}

// DrawText implements Renderer.
func (r *RecordingRenderer) DrawText(x, y float64, text string, c Color) {
	r.commands = append(r.commands, RenderCommand{
		Type:  CommandText,
		Dst:   Rect{X: x, Y: y},
		Color: c,
		Text:  text,
	})
}

// Pending returns the commands recorded since the last Clear or Present.
func (r *RecordingRenderer) Pending() []RenderCommand { return r.commands }

// LastFrame returns the commands of the most recently presented frame. The
// slice is reused by the next Present; copy it to keep it.
func (r *RecordingRenderer) LastFrame() []RenderCommand { return r.presented }

// Frames returns the number of presented frames.
func (r *RecordingRenderer) Frames() int { return r.frames }

// Clears returns the number of Clear calls.
func (r *RecordingRenderer) Clears() int { return r.clears }

// countDrawCalls counts commands by type in a frame.
func countDrawCalls(commands []RenderCommand) (rects, textures, texts int) {
	for i := range commands {
		switch commands[i].Type {
		case CommandFillRect, CommandDrawRect:
			rects++
		case CommandTexture:
			textures++
		case CommandText:
			texts++
		}
	}
	return rects, textures, texts
}
