package art

import (
	"image"
	"strings"
)

// ramp orders glyphs from dense to sparse, so dark pixels map to heavy
// characters on the usual light-text-on-dark terminal.
const ramp = "@#S%?*+;:,."

// cellAspect compensates for terminal cells being taller than wide.
const cellAspect = 0.55

// Render converts an image into height rows of width glyphs. The image
// is partitioned into one block per output cell and each block's
// average luminance picks a glyph from the ramp. The result depends
// only on the pixels and the target dimensions. A nil or empty image
// renders as a blank grid of the same dimensions.
func Render(img image.Image, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	if img == nil {
		return blankGrid(width, height)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return blankGrid(width, height)
	}

	rows := make([]string, 0, height)
	for gy := 0; gy < height; gy++ {
		y0 := b.Min.Y + gy*b.Dy()/height
		y1 := b.Min.Y + (gy+1)*b.Dy()/height
		if y1 <= y0 {
			y1 = y0 + 1
		}
		var row strings.Builder
		row.Grow(width)
		for gx := 0; gx < width; gx++ {
			x0 := b.Min.X + gx*b.Dx()/width
			x1 := b.Min.X + (gx+1)*b.Dx()/width
			if x1 <= x0 {
				x1 = x0 + 1
			}
			row.WriteByte(glyphFor(blockLuminance(img, x0, y0, x1, y1)))
		}
		rows = append(rows, row.String())
	}
	return rows
}

// HeightFor returns the row count that keeps the image's proportions
// at the given character width, never less than one row. Images
// without usable bounds get a square grid's height.
func HeightFor(img image.Image, width int) int {
	if width <= 0 {
		return 0
	}
	square := width * 55 / 100
	if square < 1 {
		square = 1
	}
	if img == nil {
		return square
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return square
	}
	h := int(float64(b.Dy()) / float64(b.Dx()) * float64(width) * cellAspect)
	if h < 1 {
		h = 1
	}
	return h
}

// blockLuminance averages the perceptual luminance of the pixel block
// [x0,x1)×[y0,y1) into the 0-255 range.
func blockLuminance(img image.Image, x0, y0, x1, y1 int) int {
	var sum, count int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sum += luminance(int(r>>8), int(g>>8), int(b>>8))
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / count
}

// luminance weights the channels per ITU-R BT.709 using integer math.
func luminance(r, g, b int) int {
	return (2126*r + 7152*g + 722*b) / 10000
}

func glyphFor(lum int) byte {
	if lum < 0 {
		lum = 0
	}
	if lum > 255 {
		lum = 255
	}
	return ramp[lum*(len(ramp)-1)/255]
}

func blankGrid(width, height int) []string {
	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return rows
}
