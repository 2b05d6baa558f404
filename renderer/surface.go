package renderer

import (
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const crosshairRadius = 4

// Surface is the auxiliary 2D overlay composited by the shader through the tex
// uniform. It is transparent except for an optional crosshair dot.
type Surface struct {
	textureID uint32
	img       *image.RGBA
	crosshair bool
	dirty     bool
}

func NewSurface(width, height int, crosshair bool) *Surface {
	s := &Surface{crosshair: crosshair}
	gl.GenTextures(1, &s.textureID)
	s.Resize(width, height)
	return s
}

// Resize recreates the overlay at the new size. The texture is re-uploaded on
// the next Bind.
func (s *Surface) Resize(width, height int) {
	s.img = newCanvas(width, height, s.crosshair)
	s.dirty = true
}

// Bind uploads pending pixels and binds the texture to unit.
func (s *Surface) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, s.textureID)
	if !s.dirty {
		return
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	size := s.img.Rect.Size()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(s.img.Pix),
	)
	s.dirty = false
}

func (s *Surface) Unbind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (s *Surface) Destroy() {
	gl.DeleteTextures(1, &s.textureID)
}

// newCanvas returns a transparent RGBA image of the given size. A minimized
// window reports a zero sized framebuffer, so the canvas never goes below 1x1.
func newCanvas(width, height int, crosshair bool) *image.RGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if crosshair {
		drawDot(img, width/2, height/2, crosshairRadius, color.RGBA{255, 255, 255, 255})
	}
	return img
}

func drawDot(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			if image.Pt(x, y).In(img.Rect) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
