package font

import "image"
import "image/color"

import "golang.org/x/image/draw"

// Binarization threshold: luminance strictly above this value is an
// "on" pixel.
const binarizeThreshold = 128

// Concatenates the given glyph bitmaps horizontally, inserting the
// padding strip between each adjacent pair, then flattens the result
// to a binarized grayscale raster. A nil padding strip means glyphs
// are packed back to back. With no glyphs at all the result is an
// empty raster of height 16, which is a valid terminal value.
func compose(glyphs []*image.RGBA, padding *image.RGBA) *image.Gray {
	if len(glyphs) == 0 {
		return image.NewGray(image.Rect(0, 0, 0, RasterHeight))
	}

	width := 0
	for _, glyph := range glyphs {
		width += glyph.Bounds().Dx()
	}
	if padding != nil {
		width += padding.Bounds().Dx()*(len(glyphs) - 1)
	}

	merged := image.NewRGBA(image.Rect(0, 0, width, RasterHeight))
	x := 0
	for i, glyph := range glyphs {
		x = pasteStrip(merged, glyph, x)
		if padding != nil && i < len(glyphs) - 1 {
			x = pasteStrip(merged, padding, x)
		}
	}
	return binarize(merged)
}

// Draws the strip at the given x offset and returns the offset right
// after it.
func pasteStrip(dst *image.RGBA, strip *image.RGBA, x int) int {
	stripWidth := strip.Bounds().Dx()
	rect := image.Rect(x, 0, x + stripWidth, RasterHeight)
	draw.Draw(dst, rect, strip, strip.Bounds().Min, draw.Src)
	return x + stripWidth
}

// Flattens a composed image to one luminance channel and thresholds
// it: every pixel ends up exactly 0 or 255.
func binarize(merged *image.RGBA) *image.Gray {
	bounds := merged.Bounds()
	raster := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(merged.RGBAAt(x, y)).(color.Gray)
			if gray.Y > binarizeThreshold {
				raster.SetGray(x, y, color.Gray{ Y: 255 })
			}
		}
	}
	return raster
}

// Shared tail of RenderString for both renderers: resolve each
// character in order, drop the unresolvable ones, compose the rest.
func renderGlyphs(text string, charImage func(rune) (*image.RGBA, bool), padding *image.RGBA) *image.Gray {
	var glyphs []*image.RGBA
	for _, char := range text {
		glyph, found := charImage(char)
		if found { glyphs = append(glyphs, glyph) }
	}
	return compose(glyphs, padding)
}
