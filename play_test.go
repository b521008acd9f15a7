package ledmatrix

import "context"
import "errors"
import "image"
import "image/color"
import "testing"

import "github.com/google/go-cmp/cmp"

// A font stub that always renders the same fixed raster, whatever
// the text. Width 20 keeps scroll passes short.
type fixedFont struct { raster *image.Gray }

func newFixedFont(width int) *fixedFont {
	raster := image.NewGray(image.Rect(0, 0, width, Rows))
	for x := 0; x < width; x += 2 {
		raster.SetGray(x, x%Rows, color.Gray{ Y: 255 })
	}
	return &fixedFont{ raster: raster }
}

func (self *fixedFont) RenderString(text string) *image.Gray { return self.raster }
func (self *fixedFont) CharImage(char rune) (*image.RGBA, bool) { return nil, false }

// A device stub that records frames and counts closes. writeHook
// runs after each recorded write, e.g. to cancel a context or fail
// the next write.
type recordingDevice struct {
	frames    []Frame
	closes    int
	finite    bool
	writeErr  error
	writeHook func(writes int)
}

func (self *recordingDevice) Write(frame Frame) error {
	if self.writeErr != nil { return self.writeErr }
	self.frames = append(self.frames, frame)
	if self.writeHook != nil { self.writeHook(len(self.frames)) }
	return nil
}

func (self *recordingDevice) Close() error {
	self.closes += 1
	return nil
}

func (self *recordingDevice) FiniteOutput() bool { return self.finite }

func TestPlayStatic(t *testing.T) {
	fnt := newFixedFont(20)
	dev := &recordingDevice{}
	err := Play(context.Background(), dev, fnt, "whatever", Options{ Mode: Static })
	if err != nil { t.Fatal(err) }
	if len(dev.frames) != 1 { t.Fatalf("expected 1 frame, got %d", len(dev.frames)) }
	if dev.closes != 1 { t.Fatalf("expected 1 close, got %d", dev.closes) }

	expected := EncodeFrame(fnt.raster, 0)
	if diff := cmp.Diff(expected, dev.frames[0]); diff != "" {
		t.Fatalf("frame mismatch:\n%s", diff)
	}
}

func TestScrollFrameCount(t *testing.T) {
	fnt := newFixedFont(20)
	dev := &recordingDevice{}
	err := Play(context.Background(), dev, fnt, "whatever", Options{ Mode: Scroll })
	if err != nil { t.Fatal(err) }

	width := fnt.raster.Bounds().Dx()
	if len(dev.frames) != width {
		t.Fatalf("expected %d frames, got %d", width, len(dev.frames))
	}
	if dev.closes != 1 { t.Fatalf("expected 1 close, got %d", dev.closes) }
}

func TestScrollShiftsOneColumnPerFrame(t *testing.T) {
	fnt := newFixedFont(20)
	dev := &recordingDevice{}
	err := Play(context.Background(), dev, fnt, "whatever", Options{ Mode: Scroll })
	if err != nil { t.Fatal(err) }

	for i, frame := range dev.frames {
		expected := EncodeFrame(fnt.raster, i)
		if diff := cmp.Diff(expected, frame); diff != "" {
			t.Fatalf("frame %d mismatch:\n%s", i, diff)
		}
	}
}

func TestLoopRepeatsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fnt := newFixedFont(20)
	width := fnt.raster.Bounds().Dx()
	dev := &recordingDevice{}
	dev.writeHook = func(writes int) {
		// cancel partway through the third pass
		if writes == 2*width + 5 { cancel() }
	}

	err := Play(ctx, dev, fnt, "whatever", Options{ Mode: Loop })
	if err != nil { t.Fatal(err) }
	if dev.closes != 1 { t.Fatalf("expected 1 close, got %d", dev.closes) }
	if len(dev.frames) != 2*width + 5 {
		t.Fatalf("expected %d frames, got %d", 2*width + 5, len(dev.frames))
	}

	// the loop restarts from the original raster on every pass
	expected := EncodeFrame(fnt.raster, 0)
	if diff := cmp.Diff(expected, dev.frames[width]); diff != "" {
		t.Fatalf("second pass didn't restart:\n%s", diff)
	}
}

func TestLoopDowngradesForFiniteSinks(t *testing.T) {
	fnt := newFixedFont(20)
	dev := &recordingDevice{ finite: true }
	err := Play(context.Background(), dev, fnt, "whatever", Options{ Mode: Loop })
	if err != nil { t.Fatal(err) }

	width := fnt.raster.Bounds().Dx()
	if len(dev.frames) != width {
		t.Fatalf("expected a single finite pass of %d frames, got %d", width, len(dev.frames))
	}
	if dev.closes != 1 { t.Fatalf("expected 1 close, got %d", dev.closes) }
}

func TestPlayClosesOnWriteError(t *testing.T) {
	fnt := newFixedFont(20)
	dev := &recordingDevice{ writeErr: errors.New("sink unavailable") }
	err := Play(context.Background(), dev, fnt, "whatever", Options{ Mode: Scroll })
	if err == nil { t.Fatal("expected an error") }
	if dev.closes != 1 { t.Fatalf("expected 1 close, got %d", dev.closes) }
}

func TestPlayInvalidMode(t *testing.T) {
	dev := &recordingDevice{}
	err := Play(context.Background(), dev, newFixedFont(4), "x", Options{ Mode: Mode(9) })
	if err == nil { t.Fatal("expected an error") }
	if dev.closes != 1 { t.Fatalf("expected 1 close, got %d", dev.closes) }
}

func TestPlayCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dev := &recordingDevice{}
	err := Play(ctx, dev, newFixedFont(20), "whatever", Options{ Mode: Loop })
	if err != nil { t.Fatal(err) }
	if dev.closes != 1 { t.Fatalf("expected 1 close, got %d", dev.closes) }
}
