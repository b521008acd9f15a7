package bdf

import "fmt"
import "image"
import "image/color"
import "strconv"
import "strings"

// Glyph lookup functions, one per glyph class. Each class tries the
// header index first and falls back to a linear scan of the line
// buffer when the index can't settle the lookup. Both paths must
// decode identical bitmaps; the index only skips the scan.

// Returns the glyph bitmap for an ASCII character code.
//
// Latin resources reuse code tokens that also appear as unrelated
// markers elsewhere in the file, so a header match alone isn't
// trustworthy: the line right after the header must also carry the
// character's decimal code in its ENCODING field. When the indexed
// header fails that check the lookup falls back to the linear scan,
// which applies the same check to every candidate.
func (self *Resource) Latin(ascii byte) (*image.RGBA, bool) {
	code := fmt.Sprintf("%2x", ascii)
	encoding := encodingMarker + " " + strconv.Itoa(int(ascii))
	lines := self.Lines()

	if header, found := self.headerLine(code); found && header + 1 < len(lines) {
		if strings.HasPrefix(lines[header + 1], encoding) {
			return decodeGlyph(lines, header, NarrowWidth), true
		}
	}

	target := headerMarker + " " + code
	for i, line := range lines {
		if !strings.HasPrefix(line, target) { continue }
		if i + 1 >= len(lines) { continue }
		if !strings.HasPrefix(lines[i + 1], encoding) { continue }
		return decodeGlyph(lines, i, NarrowWidth), true
	}
	return nil, false
}

// Returns the glyph bitmap for a half-width character's single-byte
// legacy code. Half-width resources pad their header tokens with up
// to two leading spaces, so the index is probed with two, one and
// zero spaces, in that order.
func (self *Resource) Halfwidth(code byte) (*image.RGBA, bool) {
	token := fmt.Sprintf("%2x", code)
	lines := self.Lines()

	for _, pad := range [...]string{"  ", " ", ""} {
		header, found := self.headerLine(pad + token)
		if found && header + rowsOffset + GlyphHeight <= len(lines) {
			return decodeGlyph(lines, header, NarrowWidth), true
		}
	}

	target := headerMarker + "   " + token
	for i, line := range lines {
		if !strings.HasPrefix(line, target) { continue }
		return decodeGlyph(lines, i, NarrowWidth), true
	}
	return nil, false
}

// Returns the glyph bitmap for a full-width character's 4-hex-digit
// legacy code.
func (self *Resource) Fullwidth(code uint16) (*image.RGBA, bool) {
	token := fmt.Sprintf("%4x", code)
	lines := self.Lines()

	if header, found := self.headerLine(token); found {
		if header + rowsOffset + GlyphHeight <= len(lines) {
			return decodeGlyph(lines, header, WideWidth), true
		}
	}

	target := headerMarker + " " + token
	for i, line := range lines {
		if !strings.HasPrefix(line, target) { continue }
		return decodeGlyph(lines, i, WideWidth), true
	}
	return nil, false
}

var dotOn  = color.RGBA{255, 255, 255, 255}
var dotOff = color.RGBA{0, 0, 0, 255}

// Decodes the 16 pixel rows that follow the header at the given line
// offset into a white-on-black bitmap of the given width. Rows past
// the end of the buffer and row characters past the end of a line
// are read as off.
func decodeGlyph(lines []string, header int, width int) *image.RGBA {
	glyph := image.NewRGBA(image.Rect(0, 0, width, GlyphHeight))
	for y := 0; y < GlyphHeight; y++ {
		rowLine := header + rowsOffset + y
		var row string
		if rowLine < len(lines) { row = lines[rowLine] }
		for x := 0; x < width; x++ {
			if x < len(row) && row[x] != offMarker {
				glyph.SetRGBA(x, y, dotOn)
			} else {
				glyph.SetRGBA(x, y, dotOff)
			}
		}
	}
	return glyph
}
