package device

import "fmt"
import "io"
import "os"
import "strings"

import "golang.org/x/term"

import "github.com/KikuchiMakoto/LED-Matrix-software"

// A simulator that paints the panel into a terminal with block
// characters. On a real TTY the screen is cleared before every
// frame so scrolling looks like motion; on a plain pipe frames are
// just appended, which keeps logs and tests readable.
type Terminal struct {
	out     io.Writer
	tty     bool
	unicode bool
	frames  int
}

// Creates a terminal simulator writing to stdout. Unicode block
// characters are used by default; see [Terminal.SetASCII].
func NewTerminal() *Terminal {
	return &Terminal{
		out:     os.Stdout,
		tty:     term.IsTerminal(int(os.Stdout.Fd())),
		unicode: true,
	}
}

// Switches the dot character to '#' for terminals without good
// Unicode block support.
func (self *Terminal) SetASCII() { self.unicode = false }

// Paints one frame.
func (self *Terminal) Write(frame ledmatrix.Frame) error {
	var builder strings.Builder
	if self.tty {
		builder.WriteString("\x1b[2J\x1b[H") // clear and home
	}
	fmt.Fprintf(&builder, "\n=== LED Matrix Simulator (Frame %d) ===\n", self.frames)
	border := "+" + strings.Repeat("-", ledmatrix.Columns) + "+"
	builder.WriteString(border + "\n")

	dot := "#"
	if self.unicode { dot = "█" }
	for y := 0; y < ledmatrix.Rows; y++ {
		builder.WriteString("|")
		for x := 0; x < ledmatrix.Columns; x++ {
			if dotOn(frame, x, y) {
				builder.WriteString(dot)
			} else {
				builder.WriteString(" ")
			}
		}
		builder.WriteString("|\n")
	}
	builder.WriteString(border + "\n")

	_, err := io.WriteString(self.out, builder.String())
	if err != nil { return &TransportError{ Op: "write", Err: err } }
	self.frames += 1
	return nil
}

// Nothing to release for terminal output.
func (self *Terminal) Close() error { return nil }
