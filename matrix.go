package ledmatrix

import "image"

// Panel geometry. The panel is 128 columns by 16 rows, wired as 8
// blocks of 16 columns; each block/row pair is one 16-bit word with
// bit 15 driving the block's leftmost column.
const (
	Columns    = 128
	Rows       = 16
	Blocks     = 8
	BlockWidth = 16
)

// One bit-packed snapshot of the panel's on/off state. Frame[b][y]
// holds the word for block b, row y.
type Frame [Blocks][Rows]uint16

// Packs a window of the raster into a panel frame. The window starts
// at the given column offset and spans the panel's full 128x16
// geometry; bit 15-c of word [b][y] is set iff the raster pixel at
// row y, column offset+16b+c is on. Coordinates outside the raster
// read as off, so any offset is safe.
//
// The cost is fixed at one pass over the panel's 2048 dots, however
// wide the raster is.
func EncodeFrame(raster *image.Gray, offset int) Frame {
	var frame Frame
	width := raster.Bounds().Dx()
	height := raster.Bounds().Dy()
	for block := 0; block < Blocks; block++ {
		for y := 0; y < Rows; y++ {
			var word uint16
			for bit := 0; bit < BlockWidth; bit++ {
				x := offset + block*BlockWidth + bit
				if x < 0 || x >= width { continue }
				if y >= height { continue }
				if raster.GrayAt(x, y).Y > 127 {
					word |= 1 << uint(15 - bit)
				}
			}
			frame[block][y] = word
		}
	}
	return frame
}
