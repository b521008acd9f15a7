package font

import "image"
import "os"
import "path/filepath"
import "unicode"

import "golang.org/x/image/bmp"
import "golang.org/x/image/draw"
import "golang.org/x/text/encoding"
import "golang.org/x/text/encoding/japanese"
import "golang.org/x/text/width"

import "github.com/KikuchiMakoto/LED-Matrix-software/font/bdf"
import "github.com/KikuchiMakoto/LED-Matrix-software/font/jisx"

// Resource file names inside a Shinonome font directory.
const (
	latinFile   = "latin.bdf"
	hankakuFile = "hankaku.bdf"
	zenkakuFile = "zenkaku.bdf"
	codeMapFile = "iso-2022-jp-2004-std.tsv"
	paddingFile = "padding.bmp"
)

// The Shinonome 16-pixel font. Characters are dispatched to one of
// three glyph resources based on their Unicode East Asian Width:
// narrow characters to the latin resource, half-width characters to
// the hankaku resource (keyed by their Shift JIS byte), and wide or
// full-width characters to the zenkaku resource (keyed by their JIS
// code from the mapping table). Characters in any other width class
// have no glyph source and are dropped.
//
// Each instance owns its resources, indices and glyph cache; nothing
// is shared process-wide, so independently configured instances can
// coexist.
type Shinonome struct {
	dir     string
	table   *jisx.Table
	latin   *bdf.Resource
	hankaku *bdf.Resource
	zenkaku *bdf.Resource
	sjis    *encoding.Encoder
	padding *image.RGBA
	cache   map[rune]*image.RGBA
}

// Creates a Shinonome font from the resources in the given
// directory. The code mapping table is loaded eagerly and its
// absence is an error: without it, the full-width resource can't be
// keyed at all. Every other resource loads lazily and degrades to
// dropped characters when missing.
func NewShinonome(dir string) (*Shinonome, error) {
	table, err := jisx.Load(filepath.Join(dir, codeMapFile))
	if err != nil { return nil, err }
	return &Shinonome{
		dir:     dir,
		table:   table,
		latin:   bdf.NewResource(filepath.Join(dir, latinFile)),
		hankaku: bdf.NewResource(filepath.Join(dir, hankakuFile)),
		zenkaku: bdf.NewResource(filepath.Join(dir, zenkakuFile)),
		sjis:    japanese.ShiftJIS.NewEncoder(),
		cache:   make(map[rune]*image.RGBA),
	}, nil
}

// Returns the glyph bitmap for a single character, or false if the
// character has no resolvable glyph. Successful lookups are
// memoized; misses are recomputed on every call, which is fine
// because repeated misses are rare in practice.
func (self *Shinonome) CharImage(char rune) (*image.RGBA, bool) {
	glyph, status := self.Lookup(char)
	return glyph, status == LookupHit
}

// Like [Shinonome.CharImage], but reporting why a lookup failed.
func (self *Shinonome) Lookup(char rune) (*image.RGBA, LookupStatus) {
	if glyph, found := self.cache[char]; found { return glyph, LookupHit }

	var glyph *image.RGBA
	var status LookupStatus
	switch width.LookupRune(char).Kind() {
	case width.EastAsianNarrow:
		glyph, status = self.latinGlyph(char)
	case width.EastAsianFullwidth, width.EastAsianWide:
		glyph, status = self.zenkakuGlyph(char)
	case width.EastAsianHalfwidth:
		glyph, status = self.hankakuGlyph(char)
	default:
		return nil, LookupUnclassified
	}

	if status != LookupHit { return nil, status }
	self.cache[char] = glyph
	return glyph, LookupHit
}

func (self *Shinonome) latinGlyph(char rune) (*image.RGBA, LookupStatus) {
	if char > unicode.MaxASCII { return nil, LookupUnmapped }
	glyph, found := self.latin.Latin(byte(char))
	if !found { return nil, LookupNoGlyph }
	return glyph, LookupHit
}

func (self *Shinonome) hankakuGlyph(char rune) (*image.RGBA, LookupStatus) {
	encoded, err := self.sjis.String(string(char))
	if err != nil || len(encoded) == 0 { return nil, LookupUnmapped }
	glyph, found := self.hankaku.Halfwidth(encoded[0])
	if !found { return nil, LookupNoGlyph }
	return glyph, LookupHit
}

func (self *Shinonome) zenkakuGlyph(char rune) (*image.RGBA, LookupStatus) {
	code, found := self.table.Code(char)
	if !found { return nil, LookupUnmapped }
	glyph, found := self.zenkaku.Fullwidth(code)
	if !found { return nil, LookupNoGlyph }
	return glyph, LookupHit
}

// Renders text into a binarized raster of height 16. Characters
// without a glyph contribute nothing; the padding strip goes between
// every adjacent pair of rendered glyphs, or nowhere if the padding
// resource is unavailable.
func (self *Shinonome) RenderString(text string) *image.Gray {
	return renderGlyphs(text, self.CharImage, self.paddingImage())
}

// Loads the inter-glyph padding strip, retrying on every call until
// a load succeeds.
func (self *Shinonome) paddingImage() *image.RGBA {
	if self.padding != nil { return self.padding }
	self.padding = loadPaddingBMP(filepath.Join(self.dir, paddingFile))
	return self.padding
}

func loadPaddingBMP(path string) *image.RGBA {
	file, err := os.Open(path)
	if err != nil { return nil }
	defer file.Close()
	decoded, err := bmp.Decode(file)
	if err != nil { return nil }
	return toRGBA(decoded)
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok { return rgba }
	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	return rgba
}
