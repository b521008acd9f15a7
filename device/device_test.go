package device

import "bytes"
import "encoding/base64"
import "errors"
import "image/gif"
import "image/png"
import "os"
import "path/filepath"
import "strings"
import "testing"

import "github.com/KikuchiMakoto/LED-Matrix-software"

func TestSerialFrameEncoding(t *testing.T) {
	var frame ledmatrix.Frame
	frame[0][0] = 0x8001
	frame[1][2] = 0x1234
	frame[7][15] = 0xFFFF

	wire := encodeSerialFrame(frame)
	if !bytes.HasSuffix(wire, []byte("\r\n")) { t.Fatal("expected CRLF terminator") }

	payload, err := base64.StdEncoding.DecodeString(string(wire[: len(wire) - 2]))
	if err != nil { t.Fatal(err) }
	if len(payload) != 256 { t.Fatalf("expected 256 payload bytes, got %d", len(payload)) }

	// words are little endian, block-major
	if payload[0] != 0x01 || payload[1] != 0x80 {
		t.Fatalf("bad word 0: % x", payload[:2])
	}
	word := (1*ledmatrix.Rows + 2)*2
	if payload[word] != 0x34 || payload[word + 1] != 0x12 {
		t.Fatalf("bad block 1 row 2: % x", payload[word : word + 2])
	}
	last := (7*ledmatrix.Rows + 15)*2
	if payload[last] != 0xFF || payload[last + 1] != 0xFF {
		t.Fatalf("bad last word: % x", payload[last : last + 2])
	}
}

func TestTerminalWrite(t *testing.T) {
	var buffer bytes.Buffer
	terminal := &Terminal{ out: &buffer, unicode: false }

	var frame ledmatrix.Frame
	frame[0][0] = 1 << 15 // dot at (0, 0)
	err := terminal.Write(frame)
	if err != nil { t.Fatal(err) }

	output := buffer.String()
	if !strings.Contains(output, "Frame 0") { t.Fatal("expected frame counter") }
	if strings.Contains(output, "\x1b[2J") { t.Fatal("didn't expect ANSI clear on a plain writer") }

	lines := strings.Split(output, "\n")
	var firstRow string
	for i, line := range lines {
		if strings.HasPrefix(line, "+--") { firstRow = lines[i + 1]; break }
	}
	if !strings.HasPrefix(firstRow, "|#") { t.Fatalf("expected lit first dot, got %q", firstRow) }
	if strings.Count(firstRow, "#") != 1 { t.Fatalf("expected exactly one lit dot, got %q", firstRow) }

	err = terminal.Write(frame)
	if err != nil { t.Fatal(err) }
	if !strings.Contains(buffer.String(), "Frame 1") { t.Fatal("expected frame counter to advance") }

	if err := terminal.Close(); err != nil { t.Fatal(err) }
}

type failingWriter struct{}

func (failingWriter) Write(data []byte) (int, error) { return 0, errors.New("broken pipe") }

func TestTerminalWriteFailure(t *testing.T) {
	terminal := &Terminal{ out: failingWriter{} }
	err := terminal.Write(ledmatrix.Frame{})
	if err == nil { t.Fatal("expected an error") }
	var transportErr *TransportError
	if !errors.As(err, &transportErr) { t.Fatalf("expected a TransportError, got %T", err) }
}

func singleDotFrame() ledmatrix.Frame {
	var frame ledmatrix.Frame
	frame[2][7] = 1 << 10 // dot at column 2*16+5, row 7
	return frame
}

func TestImageDeviceStaticPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	dev, err := NewImage(dir)
	if err != nil { t.Fatal(err) }
	if !dev.FiniteOutput() { t.Fatal("expected a finite sink") }

	if err := dev.Write(singleDotFrame()); err != nil { t.Fatal(err) }
	if err := dev.Close(); err != nil { t.Fatal(err) }

	file, err := os.Open(filepath.Join(dir, "display.png"))
	if err != nil { t.Fatal(err) }
	defer file.Close()
	decoded, err := png.Decode(file)
	if err != nil { t.Fatal(err) }

	bounds := decoded.Bounds()
	if bounds.Dx() != ledmatrix.Columns*ledPixelSize {
		t.Fatalf("bad width %d", bounds.Dx())
	}
	if bounds.Dy() != ledmatrix.Rows*ledPixelSize + 2*ledBorder {
		t.Fatalf("bad height %d", bounds.Dy())
	}

	// the lit LED's center must glow, a far corner must not
	centerX := (2*16 + 5)*ledPixelSize + ledPixelSize/2
	centerY := 7*ledPixelSize + ledPixelSize/2 + ledBorder
	r, _, _, _ := decoded.At(centerX, centerY).RGBA()
	if r == 0 { t.Fatal("expected the lit LED to glow") }
	r, _, _, _ = decoded.At(0, 0).RGBA()
	if r != 0 { t.Fatal("expected a dark corner") }
}

func TestImageDeviceAnimationGIF(t *testing.T) {
	dir := t.TempDir()
	dev, err := NewImage(dir)
	if err != nil { t.Fatal(err) }

	for i := 0; i < 3; i++ {
		if err := dev.Write(singleDotFrame()); err != nil { t.Fatal(err) }
	}
	if err := dev.Close(); err != nil { t.Fatal(err) }

	file, err := os.Open(filepath.Join(dir, "animation.gif"))
	if err != nil { t.Fatal(err) }
	defer file.Close()
	animation, err := gif.DecodeAll(file)
	if err != nil { t.Fatal(err) }
	if len(animation.Image) != 3 { t.Fatalf("expected 3 frames, got %d", len(animation.Image)) }
	if animation.LoopCount != 0 { t.Fatalf("expected infinite loop count, got %d", animation.LoopCount) }
}

func TestImageDeviceEmptyClose(t *testing.T) {
	dir := t.TempDir()
	dev, err := NewImage(dir)
	if err != nil { t.Fatal(err) }
	if err := dev.Close(); err != nil { t.Fatal(err) }

	entries, err := os.ReadDir(dir)
	if err != nil { t.Fatal(err) }
	if len(entries) != 0 { t.Fatalf("expected no artifacts, got %d", len(entries)) }
}

func TestImageDeviceFrameDumps(t *testing.T) {
	dir := t.TempDir()
	dev, err := NewImage(dir)
	if err != nil { t.Fatal(err) }
	dev.SaveFrames = true

	for i := 0; i < 2; i++ {
		if err := dev.Write(singleDotFrame()); err != nil { t.Fatal(err) }
	}
	for _, name := range []string{"frame_0000.png", "frame_0001.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		if err != nil { t.Fatalf("missing %s: %v", name, err) }
	}
}
