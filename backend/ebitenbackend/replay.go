package ebitenbackend

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/engine2000"
)

var whiteColor = color.White

// replay submits a recorded frame to the screen in command order.
func (p *Platform) replay(screen *ebiten.Image, commands []engine2000.RenderCommand) {
	var op ebiten.DrawImageOptions
	for i := range commands {
		cmd := &commands[i]
		switch cmd.Type {
		case engine2000.CommandFillRect:
			p.fillRect(screen, cmd.Dst, cmd.Color, &op)
		case engine2000.CommandDrawRect:
			r := cmd.Dst
			p.fillRect(screen, engine2000.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: 1}, cmd.Color, &op)
			p.fillRect(screen, engine2000.Rect{X: r.X, Y: r.Bottom() - 1, Width: r.Width, Height: 1}, cmd.Color, &op)
			p.fillRect(screen, engine2000.Rect{X: r.X, Y: r.Y, Width: 1, Height: r.Height}, cmd.Color, &op)
			p.fillRect(screen, engine2000.Rect{X: r.Right() - 1, Y: r.Y, Width: 1, Height: r.Height}, cmd.Color, &op)
		case engine2000.CommandTexture:
			p.submitTexture(screen, cmd, &op)
		case engine2000.CommandText:
			ebitenutil.DebugPrintAt(screen, cmd.Text, int(cmd.Dst.X), int(cmd.Dst.Y))
		}
	}
}

// fillRect draws the shared white pixel scaled to r.
func (p *Platform) fillRect(screen *ebiten.Image, r engine2000.Rect, c engine2000.Color, op *ebiten.DrawImageOptions) {
	if r.Width <= 0 || r.Height <= 0 || c.A <= 0 {
		return
	}
	op.GeoM.Reset()
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Reset()
	setColorScale(op, c)
	op.Blend = ebiten.BlendSourceOver
	screen.DrawImage(p.pixel, op)
}

// submitTexture draws a textured quad with flip, tint and blend applied.
func (p *Platform) submitTexture(screen *ebiten.Image, cmd *engine2000.RenderCommand, op *ebiten.DrawImageOptions) {
	img := p.imageFor(cmd.Texture)
	if img == nil {
		return
	}
	src := cmd.Src
	if src.Width <= 0 || src.Height <= 0 {
		b := img.Bounds()
		src = engine2000.Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	sub := img.SubImage(image.Rect(
		int(src.X), int(src.Y), int(src.X+src.Width), int(src.Y+src.Height),
	)).(*ebiten.Image)

	op.GeoM.Reset()
	if cmd.Options.Flip&engine2000.FlipHorizontal != 0 {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(src.Width, 0)
	}
	if cmd.Options.Flip&engine2000.FlipVertical != 0 {
		op.GeoM.Scale(1, -1)
		op.GeoM.Translate(0, src.Height)
	}
	op.GeoM.Scale(cmd.Dst.Width/src.Width, cmd.Dst.Height/src.Height)
	op.GeoM.Translate(cmd.Dst.X, cmd.Dst.Y)

	op.ColorScale.Reset()
	setColorScale(op, cmd.Options.Tint)
	op.Blend = blendOf(cmd.Options.Blend)
	screen.DrawImage(sub, op)
}

// imageFor resolves an engine texture to an Ebitengine image. Solid textures
// are rasterized once and cached.
func (p *Platform) imageFor(tex engine2000.Texture) *ebiten.Image {
	switch t := tex.(type) {
	case *ImageTexture:
		return t.Image
	case *engine2000.SolidTexture:
		if img, ok := p.solids[t]; ok {
			return img
		}
		w, h := max(t.W, 1), max(t.H, 1)
		img := ebiten.NewImage(w, h)
		img.Fill(toColor(t.Color))
		p.solids[t] = img
		return img
	default:
		return nil
	}
}

// setColorScale applies c as a premultiplied color scale.
func setColorScale(op *ebiten.DrawImageOptions, c engine2000.Color) {
	if c == (engine2000.Color{}) {
		return
	}
	a := float32(c.A)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
}

func toColor(c engine2000.Color) color.NRGBA {
	r, g, b, a := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// blendOf returns the ebiten.Blend value corresponding to a BlendMode.
func blendOf(b engine2000.BlendMode) ebiten.Blend {
	switch b {
	case engine2000.BlendAdd:
		return ebiten.BlendLighter
	case engine2000.BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case engine2000.BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case engine2000.BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

var keyMap = [engine2000.KeyCount]ebiten.Key{
	engine2000.KeyUp:     ebiten.KeyArrowUp,
	engine2000.KeyDown:   ebiten.KeyArrowDown,
	engine2000.KeyLeft:   ebiten.KeyArrowLeft,
	engine2000.KeyRight:  ebiten.KeyArrowRight,
	engine2000.KeySpace:  ebiten.KeySpace,
	engine2000.KeyEnter:  ebiten.KeyEnter,
	engine2000.KeyEscape: ebiten.KeyEscape,
	engine2000.KeyA:      ebiten.KeyA,
	engine2000.KeyB:      ebiten.KeyB,
	engine2000.KeyC:      ebiten.KeyC,
	engine2000.KeyD:      ebiten.KeyD,
	engine2000.KeyE:      ebiten.KeyE,
	engine2000.KeyF:      ebiten.KeyF,
	engine2000.KeyG:      ebiten.KeyG,
	engine2000.KeyH:      ebiten.KeyH,
	engine2000.KeyI:      ebiten.KeyI,
	engine2000.KeyJ:      ebiten.KeyJ,
	engine2000.KeyK:      ebiten.KeyK,
	engine2000.KeyL:      ebiten.KeyL,
	engine2000.KeyM:      ebiten.KeyM,
	engine2000.KeyN:      ebiten.KeyN,
	engine2000.KeyO:      ebiten.KeyO,
	engine2000.KeyP:      ebiten.KeyP,
	engine2000.KeyQ:      ebiten.KeyQ,
	engine2000.KeyR:      ebiten.KeyR,
	engine2000.KeyS:      ebiten.KeyS,
	engine2000.KeyT:      ebiten.KeyT,
	engine2000.KeyU:      ebiten.KeyU,
	engine2000.KeyV:      ebiten.KeyV,
	engine2000.KeyW:      ebiten.KeyW,
	engine2000.KeyX:      ebiten.KeyX,
	engine2000.KeyY:      ebiten.KeyY,
	engine2000.KeyZ:      ebiten.KeyZ,
	engine2000.Key0:      ebiten.KeyDigit0,
	engine2000.Key1:      ebiten.KeyDigit1,
	engine2000.Key2:      ebiten.KeyDigit2,
	engine2000.Key3:      ebiten.KeyDigit3,
	engine2000.Key4:      ebiten.KeyDigit4,
	engine2000.Key5:      ebiten.KeyDigit5,
	engine2000.Key6:      ebiten.KeyDigit6,
	engine2000.Key7:      ebiten.KeyDigit7,
	engine2000.Key8:      ebiten.KeyDigit8,
	engine2000.Key9:      ebiten.KeyDigit9,
}

var buttonMap = [engine2000.ButtonCount]ebiten.StandardGamepadButton{
	engine2000.ButtonA:             ebiten.StandardGamepadButtonRightBottom,
	engine2000.ButtonB:             ebiten.StandardGamepadButtonRightRight,
	engine2000.ButtonX:             ebiten.StandardGamepadButtonRightLeft,
	engine2000.ButtonY:             ebiten.StandardGamepadButtonRightTop,
	engine2000.ButtonBack:          ebiten.StandardGamepadButtonCenterLeft,
	engine2000.ButtonStart:         ebiten.StandardGamepadButtonCenterRight,
	engine2000.ButtonLeftShoulder:  ebiten.StandardGamepadButtonFrontTopLeft,
	engine2000.ButtonRightShoulder: ebiten.StandardGamepadButtonFrontTopRight,
	engine2000.ButtonDPadUp:        ebiten.StandardGamepadButtonLeftTop,
	engine2000.ButtonDPadDown:      ebiten.StandardGamepadButtonLeftBottom,
	engine2000.ButtonDPadLeft:      ebiten.StandardGamepadButtonLeftLeft,
	engine2000.ButtonDPadRight:     ebiten.StandardGamepadButtonLeftRight,
}
