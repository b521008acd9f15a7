// device provides the output devices a [ledmatrix.Frame] can be
// played on: the serial panel itself, plus terminal and image
// simulators. A live window simulator lives in the device/window
// subpackage so programs that don't need it don't link a graphics
// stack.
//
// All devices implement the same contract: Write sends one frame,
// Close releases the transport and finalizes any pending output.
// Transport-level failures are reported as [*TransportError]; no
// device retries on its own.
package device

import "fmt"

import "github.com/KikuchiMakoto/LED-Matrix-software"

// The error kind for transport failures: the underlying sink (serial
// port, terminal, filesystem) couldn't complete a write or close.
type TransportError struct {
	Op  string
	Err error
}

func (self *TransportError) Error() string {
	return fmt.Sprintf("led device %s: %v", self.Op, self.Err)
}

func (self *TransportError) Unwrap() error { return self.Err }

// Reports whether the dot at panel coordinates (x, y) is lit in the
// given frame.
func dotOn(frame ledmatrix.Frame, x, y int) bool {
	word := frame[x/ledmatrix.BlockWidth][y]
	return word>>(15 - uint(x%ledmatrix.BlockWidth))&1 == 1
}
