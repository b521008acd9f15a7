// bdf implements the line-oriented bitmap font resources used by the
// 16-pixel panel fonts. The format is a simplified BDF: a glyph starts
// at a "STARTCHAR <code>" header line, and its 16 pixel rows begin
// exactly 6 lines after the header. Within a pixel row, '.' means the
// dot is off and any other character means it's on.
//
// Resources are loaded lazily and cached. On top of the raw line
// buffer, each resource builds an index from header code tokens to
// line offsets, so repeated glyph lookups don't need to rescan the
// whole file. Indexed lookups are guaranteed to return the same
// bitmaps as a full linear scan.
package bdf

import "os"
import "strings"

// Glyph dimensions. Every glyph spans 16 rows; latin and half-width
// glyphs are 8 dots wide, full-width glyphs are 16.
const (
	GlyphHeight   = 16
	NarrowWidth   = 8
	WideWidth     = 16
)

// Resource format constants.
const (
	headerMarker = "STARTCHAR"
	encodingMarker = "ENCODING"
	offMarker = '.'
	rowsOffset = 6 // pixel rows start this many lines after the header
)

// A lazily loaded bitmap font resource.
//
// The zero value is not usable; create resources with [NewResource].
// Resources are not safe for concurrent use: each font instance owns
// its resources exclusively.
type Resource struct {
	path  string
	lines []string       // nil until the first load attempt
	index map[string]int // header code token -> header line offset
}

// Creates a resource for the font file at the given path. The file
// isn't opened until the first lookup.
func NewResource(path string) *Resource {
	return &Resource{ path: path }
}

// Returns the resource's line buffer, loading the file on first use.
//
// A load that produces zero lines (missing or unreadable file) is
// remembered as empty but retried on the next call, so a resource
// that's installed late still becomes available. A load with at
// least one line is final.
func (self *Resource) Lines() []string {
	if self.lines != nil && len(self.lines) > 0 { return self.lines }

	data, err := os.ReadFile(self.path)
	if err != nil {
		self.lines = []string{}
		return self.lines
	}
	self.lines = splitLines(data)
	if len(self.lines) > 0 { self.buildIndex() }
	return self.lines
}

// Builds the header index over the current line buffer. For every
// header line, the key is everything after "STARTCHAR " with line
// terminators trimmed, leading spaces preserved. Duplicated tokens
// keep the last occurrence, matching the upstream resources.
func (self *Resource) buildIndex() {
	self.index = make(map[string]int)
	for i, line := range self.lines {
		if !strings.HasPrefix(line, headerMarker + " ") { continue }
		key := strings.TrimRight(line[len(headerMarker) + 1:], " ")
		if key == "" { continue }
		self.index[key] = i
	}
}

// Returns the header line offset recorded for the given code token.
// Only meaningful after [Resource.Lines] has been called at least once.
func (self *Resource) headerLine(key string) (int, bool) {
	if self.index == nil { return 0, false }
	line, found := self.index[key]
	return line, found
}

func splitLines(data []byte) []string {
	if len(data) == 0 { return nil }
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	// a trailing newline is not an extra empty line
	if lines[len(lines) - 1] == "" { lines = lines[: len(lines) - 1] }
	return lines
}
