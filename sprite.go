package engine2000

// AnimationMode selects how a Sprite advances frames.
type AnimationMode uint8

const (
	AnimStatic     AnimationMode = iota // frame never advances
	AnimLoop                            // advance every frame delay, wrapping in the frame range
	AnimControlled                      // frame is set by gameplay code
)

const defaultFrameDelay = 0.1

// Sprite draws a texture, or one frame of a grid-based sprite sheet, at the
// entity's position scaled by the transform.
type Sprite struct {
	BaseComponent

	texture        Texture
	texW, texH     int
	origin         Vec2 // top-left of the frame grid on the texture
	frame          Rect // source rectangle of the current frame
	frameW, frameH int

	visible    bool
	animated   bool
	mode       AnimationMode
	paused     bool
	current    int
	total      int
	frameTime  float64
	frameDelay float64

	startFrame, endFrame int
	hasRange             bool
	customFrame          bool

	flip  Flip
	tint  Color
	blend BlendMode
}

// Kind implements Component.
func (*Sprite) Kind() ComponentKind { return KindSprite }

func (s *Sprite) setDefaults() {
	s.visible = true
	s.frameDelay = defaultFrameDelay
	s.frameW, s.frameH = 1, 1
	s.total = 1
	s.tint = ColorWhite
}

// SetTexture shows the whole texture as a single static frame.
func (s *Sprite) SetTexture(tex Texture) {
	s.texture = tex
	s.texW, s.texH = textureSize(tex)
	s.frameW, s.frameH = s.texW, s.texH
	s.frame = Rect{Width: float64(s.texW), Height: float64(s.texH)}
	s.origin = Vec2{}
	s.animated = false
	s.mode = AnimStatic
	s.total = 1
	s.current = 0
	s.customFrame = false
}

// SetAnimatedTexture treats tex as a cols×rows grid of equally sized frames
// and starts looping over all of them.
func (s *Sprite) SetAnimatedTexture(tex Texture, cols, rows int) {
	if cols < 1 || rows < 1 {
		logger.Warn("animated texture needs at least one row and column", "cols", cols, "rows", rows)
		s.SetTexture(tex)
		return
	}
	s.texture = tex
	s.texW, s.texH = textureSize(tex)
	s.frameW = s.texW / cols
	s.frameH = s.texH / rows
	s.total = cols * rows
	s.frame = Rect{Width: float64(s.frameW), Height: float64(s.frameH)}
	s.origin = Vec2{}
	s.animated = true
	s.mode = AnimLoop
	s.startFrame, s.endFrame = 0, s.total-1
	s.hasRange = false
	s.current = 0
	s.frameTime = 0
	s.customFrame = false
}

// SetRegion shows a single atlas region as a static frame.
func (s *Sprite) SetRegion(r TextureRegion) {
	s.SetTexture(r.Texture)
	f := r.Frame
	s.SetCustomFrameRect(int(f.X), int(f.Y), int(f.Width), int(f.Height))
}

// SetAnimatedRegion treats an atlas region as a cols×rows grid of frames and
// starts looping over them, like SetAnimatedTexture on a standalone sheet.
func (s *Sprite) SetAnimatedRegion(r TextureRegion, cols, rows int) {
	if cols < 1 || rows < 1 {
		logger.Warn("animated region needs at least one row and column", "cols", cols, "rows", rows)
		s.SetRegion(r)
		return
	}
	s.SetAnimatedTexture(r.Texture, cols, rows)
	s.origin = Vec2{X: r.Frame.X, Y: r.Frame.Y}
	s.texW, s.texH = int(r.Frame.Width), int(r.Frame.Height)
	s.frameW, s.frameH = s.texW/cols, s.texH/rows
	s.frame = Rect{X: s.origin.X, Y: s.origin.Y, Width: float64(s.frameW), Height: float64(s.frameH)}
}

// SetCustomFrameRect sets the source rectangle directly. The frame size
// reported afterwards is exactly w×h.
func (s *Sprite) SetCustomFrameRect(x, y, w, h int) {
	s.customFrame = true
	s.frameW, s.frameH = w, h
	s.frame = Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}
}

func textureSize(tex Texture) (int, int) {
	if tex == nil {
		return 0, 0
	}
	return tex.Size()
}

// SetAnimationMode switches between static, looping and controlled frames.
func (s *Sprite) SetAnimationMode(m AnimationMode) { s.mode = m }

// AnimationMode returns the current mode.
func (s *Sprite) AnimationMode() AnimationMode { return s.mode }

// SetFrameDelay sets the seconds each frame is shown in loop mode.
func (s *Sprite) SetFrameDelay(d float64) { s.frameDelay = d }

// SetCurrentFrame jumps to frame, wrapped to the frame count. Static sprites
// ignore it.
func (s *Sprite) SetCurrentFrame(frame int) {
	if !s.animated || s.total <= 0 {
		return
	}
	frame %= s.total
	if frame < 0 {
		frame += s.total
	}
	s.current = frame
	s.syncFrameRect()
}

// SetFrameRange restricts looping to [start, end] and jumps to start.
func (s *Sprite) SetFrameRange(start, end int) {
	s.startFrame, s.endFrame = start, end
	s.hasRange = true
	s.current = start
	s.syncFrameRect()
}

// ClearFrameRange loops over every frame again.
func (s *Sprite) ClearFrameRange() {
	s.hasRange = false
	s.startFrame = 0
	s.endFrame = s.total - 1
}

func (s *Sprite) Pause() { s.paused = true }
func (s *Sprite) Resume() { s.paused = false }

// Paused reports whether the animation is paused.
func (s *Sprite) Paused() bool { return s.paused }

func (s *Sprite) SetVisible(v bool) { s.visible = v }
func (s *Sprite) Visible() bool { return s.visible }

func (s *Sprite) SetFlip(f Flip) { s.flip = f }
func (s *Sprite) Flip() Flip { return s.flip }

// SetTint multiplies the texture color by c. Alpha fades the sprite.
func (s *Sprite) SetTint(c Color) { s.tint = c }
func (s *Sprite) Tint() Color { return s.tint }

// SetAlpha changes only the tint's alpha.
func (s *Sprite) SetAlpha(a float64) { s.tint = s.tint.WithAlpha(a) }
func (s *Sprite) Alpha() float64 { return s.tint.A }

func (s *Sprite) SetBlend(b BlendMode) { s.blend = b }

func (s *Sprite) Texture() Texture { return s.texture }
func (s *Sprite) CurrentFrame() int { return s.current }
func (s *Sprite) TotalFrames() int { return s.total }
func (s *Sprite) FrameWidth() int { return s.frameW }
func (s *Sprite) FrameHeight() int { return s.frameH }
func (s *Sprite) StartFrame() int { return s.startFrame }
func (s *Sprite) EndFrame() int { return s.endFrame }
func (s *Sprite) FrameRect() Rect { return s.frame }
func (s *Sprite) HasFrameRange() bool { return s.hasRange }

// Size implements Sizer: the frame size times the transform scale.
func (s *Sprite) Size() (w, h float64) {
	w, h = float64(s.frameW), float64(s.frameH)
	if e := s.Entity(); e != nil && e.transform != nil {
		w *= e.transform.Scale.X
		h *= e.transform.Scale.Y
	}
	return w, h
}

// syncFrameRect places the source rectangle for the current grid frame.
func (s *Sprite) syncFrameRect() {
	if s.customFrame || s.frameW <= 0 || s.frameH <= 0 {
		return
	}
	perRow := s.texW / s.frameW
	if perRow < 1 {
		perRow = 1
	}
	s.frame.X = s.origin.X + float64((s.current%perRow)*s.frameW)
	s.frame.Y = s.origin.Y + float64((s.current/perRow)*s.frameH)
}

// Update advances a looping animation.
func (s *Sprite) Update(dt float64) {
	if !s.animated || s.paused || s.mode != AnimLoop {
		return
	}
	s.frameTime += dt
	if s.frameTime < s.frameDelay {
		return
	}
	s.frameTime = 0
	s.current++
	first, last := 0, s.total-1
	if s.hasRange {
		first, last = s.startFrame, s.endFrame
	}
	if s.current > last {
		s.current = first
	}
	s.syncFrameRect()
}

// Draw issues the textured quad for the current frame.
func (s *Sprite) Draw(r Renderer) {
	if s.texture == nil || !s.visible {
		return
	}
	e := s.Entity()
	t := e.transform
	dst := Rect{
		X:      t.Position.X,
		Y:      t.Position.Y,
		Width:  s.frame.Width * t.Scale.X,
		Height: s.frame.Height * t.Scale.Y,
	}
	r.DrawTexture(s.texture, s.frame, dst, DrawOptions{Flip: s.flip, Tint: s.tint, Blend: s.blend})
}
