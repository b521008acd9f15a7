package device

import "encoding/base64"
import "encoding/binary"

import "go.bug.st/serial"

import "github.com/KikuchiMakoto/LED-Matrix-software"

// A panel connected over a serial port. Each frame goes out as the
// 256-byte little-endian dump of its words, base64 encoded and
// terminated with CRLF; that's the framing the panel firmware
// expects.
type Serial struct {
	port serial.Port
	name string
}

// Opens the serial port at the given name (e.g. "COM23" or
// "/dev/ttyUSB0") with the given baud rate.
func OpenSerial(name string, baudrate int) (*Serial, error) {
	port, err := serial.Open(name, &serial.Mode{ BaudRate: baudrate })
	if err != nil { return nil, &TransportError{ Op: "open " + name, Err: err } }
	return &Serial{ port: port, name: name }, nil
}

// Sends one frame to the panel, blocking until the port accepts it.
func (self *Serial) Write(frame ledmatrix.Frame) error {
	_, err := self.port.Write(encodeSerialFrame(frame))
	if err != nil { return &TransportError{ Op: "write", Err: err } }
	return nil
}

// Closes the serial port.
func (self *Serial) Close() error {
	err := self.port.Close()
	if err != nil { return &TransportError{ Op: "close", Err: err } }
	return nil
}

// Builds the wire form of a frame: words in block-major order, two
// bytes each, little endian, then base64 and CRLF.
func encodeSerialFrame(frame ledmatrix.Frame) []byte {
	payload := make([]byte, 0, ledmatrix.Blocks*ledmatrix.Rows*2)
	for block := 0; block < ledmatrix.Blocks; block++ {
		for y := 0; y < ledmatrix.Rows; y++ {
			payload = binary.LittleEndian.AppendUint16(payload, frame[block][y])
		}
	}
	message := make([]byte, base64.StdEncoding.EncodedLen(len(payload)), base64.StdEncoding.EncodedLen(len(payload)) + 2)
	base64.StdEncoding.Encode(message, payload)
	return append(message, '\r', '\n')
}
