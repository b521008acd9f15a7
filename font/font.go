// font renders text into the 16-row binary rasters consumed by the
// panel frame encoder. Two renderers are available: [Shinonome],
// backed by line-oriented bitmap font resources, and [CharaZenkaku],
// backed by a sprite-sheet image.
//
// Rendering is total: characters without a resolvable glyph are
// silently omitted from the output, and an input with no resolvable
// characters produces a valid raster of width zero.
package font

import "image"

// A text renderer for the panel. RenderString always succeeds and
// returns a binarized raster of height 16 whose pixels are either 0
// or 255. CharImage exposes single-glyph lookup, mostly for callers
// that want to inspect or measure individual glyphs.
type Renderer interface {
	RenderString(text string) *image.Gray
	CharImage(char rune) (*image.RGBA, bool)
}

// The outcome of a single-character glyph lookup. Rendering drops
// every non-hit the same way; the distinction exists so callers can
// gather drop statistics without changing what gets rendered.
type LookupStatus uint8

const (
	LookupHit LookupStatus = iota // glyph found
	LookupNoGlyph      // width class resolved, but the resource has no glyph
	LookupUnmapped     // no legacy code exists for the character
	LookupUnclassified // the width class has no glyph source
)

func (self LookupStatus) String() string {
	switch self {
	case LookupHit: return "Hit"
	case LookupNoGlyph: return "NoGlyph"
	case LookupUnmapped: return "Unmapped"
	case LookupUnclassified: return "Unclassified"
	default:
		return "Invalid"
	}
}

// Raster height shared by every renderer.
const RasterHeight = 16
