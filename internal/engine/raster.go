package engine

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/glyphgen/internal/core"
	"github.com/san-kum/glyphgen/internal/palette"
)

// BufferToImage rasterizes a cell buffer at charSize pixels per cell.
// Each cell paints its background rect (black when unset) and then its
// glyph ink. At charSize 1 a non-space glyph is a single foreground
// pixel, which is the pixel-art mode the engine defaults to; larger
// sizes draw the gradient glyph with a monospace bitmap face.
func BufferToImage(buf core.Buffer, charSize int, gradientName string) *image.RGBA {
	rows := buf.Height()
	cols := buf.Width()
	if charSize < 1 {
		charSize = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, cols*charSize, rows*charSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	var drawer *font.Drawer
	if charSize > 1 {
		drawer = &font.Drawer{Dst: img, Face: basicfont.Face7x13}
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell := buf[y][x]
			px := x * charSize
			py := y * charSize

			if cell.Bg != nil {
				bg := color.RGBA{R: cell.Bg.R, G: cell.Bg.G, B: cell.Bg.B, A: 255}
				draw.Draw(img, image.Rect(px, py, px+charSize, py+charSize),
					image.NewUniform(bg), image.Point{}, draw.Src)
			}

			ch := palette.CharAtValue(float64(cell.CharIdx)/9.0, gradientName)
			if ch == ' ' {
				continue
			}

			fg := color.RGBA{R: cell.Fg.R, G: cell.Fg.G, B: cell.Fg.B, A: 255}
			if charSize == 1 {
				img.SetRGBA(px, py, fg)
				continue
			}

			drawer.Src = image.NewUniform(fg)
			drawer.Dot = fixed.P(px, py+basicfont.Face7x13.Ascent)
			drawer.DrawString(string(ch))
		}
	}

	return img
}

// UpscaleNearest resizes with nearest-neighbor sampling. Anything
// smoother blurs the cell edges away.
func UpscaleNearest(src *image.RGBA, width, height int) *image.RGBA {
	sb := src.Bounds()
	sw := sb.Dx()
	sh := sb.Dy()
	if sw == width && sh == height {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		sy := y * sh / height
		for x := 0; x < width; x++ {
			sx := x * sw / width
			dst.SetRGBA(x, y, src.RGBAAt(sx, sy))
		}
	}
	return dst
}

// sharpen3x3 applies the standard unsharp kernel (center 5, cross -1).
func sharpen3x3(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w := b.Dx()
	h := b.Dy()
	dst := image.NewRGBA(b)
	copy(dst.Pix, src.Pix)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := src.RGBAAt(x, y)
			up := src.RGBAAt(x, y-1)
			down := src.RGBAAt(x, y+1)
			left := src.RGBAAt(x-1, y)
			right := src.RGBAAt(x+1, y)

			dst.SetRGBA(x, y, color.RGBA{
				R: clampByte(5*int(c.R) - int(up.R) - int(down.R) - int(left.R) - int(right.R)),
				G: clampByte(5*int(c.G) - int(up.G) - int(down.G) - int(left.G) - int(right.G)),
				B: clampByte(5*int(c.B) - int(up.B) - int(down.B) - int(left.B) - int(right.B)),
				A: 255,
			})
		}
	}
	return dst
}

// adjustContrast scales channel distance from mid-gray in place.
func adjustContrast(img *image.RGBA, factor float64) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: clampByte(int(128 + (float64(c.R)-128)*factor)),
				G: clampByte(int(128 + (float64(c.G)-128)*factor)),
				B: clampByte(int(128 + (float64(c.B)-128)*factor)),
				A: c.A,
			})
		}
	}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
