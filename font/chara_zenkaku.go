package font

import "image"
import "image/png"
import "os"
import "path/filepath"
import "strings"

import "golang.org/x/image/draw"

// Sprite sheet geometry: glyph cells start at (50, 50) and repeat
// every 17 pixels in both directions.
const (
	sheetOffsetX = 50
	sheetOffsetY = 50
	sheetStepX   = 17
	sheetStepY   = 17
	cellWidth    = 16
	cellHeight   = 16
)

// Resource file names inside a CharaZenkaku font directory.
const (
	sheetFile   = "chara_zenkaku.png"
	charMapFile = "chara_zenkaku.txt"
)

// A full-width-only font backed by a PNG sprite sheet. The companion
// text file lays out which character lives in which cell: the
// character at line i, column j of the file maps to the 16x16 cell
// at grid position (i, j) of the sheet.
//
// All resources load lazily and every failure degrades to dropped
// characters, so construction never fails.
type CharaZenkaku struct {
	dir       string
	positions map[rune]image.Point // grid position per character
	sheet     *image.RGBA
	padding   *image.RGBA
	cache     map[rune]*image.RGBA
}

// Creates a CharaZenkaku font from the resources in the given
// directory.
func NewCharaZenkaku(dir string) *CharaZenkaku {
	return &CharaZenkaku{
		dir:   dir,
		cache: make(map[rune]*image.RGBA),
	}
}

// Returns the glyph bitmap for a single character, or false if the
// character isn't on the sheet. Successful lookups are memoized.
func (self *CharaZenkaku) CharImage(char rune) (*image.RGBA, bool) {
	if glyph, found := self.cache[char]; found { return glyph, true }

	position, found := self.charPositions()[char]
	if !found { return nil, false }
	sheet := self.sheetImage()
	if sheet == nil { return nil, false }

	x := sheetOffsetX + position.X*sheetStepX
	y := sheetOffsetY + position.Y*sheetStepY
	glyph := image.NewRGBA(image.Rect(0, 0, cellWidth, cellHeight))
	draw.Draw(glyph, glyph.Bounds(), sheet, image.Pt(x, y), draw.Src)

	self.cache[char] = glyph
	return glyph, true
}

// Renders text into a binarized raster of height 16, same contract
// as [Shinonome.RenderString].
func (self *CharaZenkaku) RenderString(text string) *image.Gray {
	return renderGlyphs(text, self.CharImage, self.paddingImage())
}

// Loads the character layout file, once. Every printable character
// on a line claims its column; a character that appears twice keeps
// its last position.
func (self *CharaZenkaku) charPositions() map[rune]image.Point {
	if self.positions != nil { return self.positions }

	self.positions = make(map[rune]image.Point)
	data, err := os.ReadFile(filepath.Join(self.dir, charMapFile))
	if err != nil { return self.positions }
	for i, line := range strings.Split(string(data), "\n") {
		column := 0
		for _, char := range line {
			if char == '\r' { continue }
			self.positions[char] = image.Pt(column, i)
			column++
		}
	}
	return self.positions
}

// Loads the sprite sheet, retrying on every call until a load
// succeeds.
func (self *CharaZenkaku) sheetImage() *image.RGBA {
	if self.sheet != nil { return self.sheet }
	file, err := os.Open(filepath.Join(self.dir, sheetFile))
	if err != nil { return nil }
	defer file.Close()
	decoded, err := png.Decode(file)
	if err != nil { return nil }
	self.sheet = toRGBA(decoded)
	return self.sheet
}

// Loads the inter-glyph padding strip, retrying on every call until
// a load succeeds.
func (self *CharaZenkaku) paddingImage() *image.RGBA {
	if self.padding != nil { return self.padding }
	self.padding = loadPaddingBMP(filepath.Join(self.dir, paddingFile))
	return self.padding
}
