package ledmatrix

import "context"
import "fmt"
import "image"
import "strings"
import "time"

import "github.com/KikuchiMakoto/LED-Matrix-software/font"

// The output side of the pipeline. Write sends one frame to the
// panel or simulator and blocks until the frame is accepted; Close
// releases the transport and triggers whatever output
// materialization the device defines. Close must be called exactly
// once per device, which [Play] takes care of.
type Device interface {
	Write(frame Frame) error
	Close() error
}

// Implemented by devices whose close-time materialization produces a
// single finite artifact (e.g. one video file). Loop playback can't
// ever reach such a device's close, so [Play] downgrades loop mode
// to a single scroll pass for devices reporting FiniteOutput true.
type FiniteSink interface {
	FiniteOutput() bool
}

// Playback modes.
type Mode uint8

const (
	Static Mode = iota // one frame at offset 0
	Scroll             // one full scroll pass
	Loop               // scroll passes until the context is cancelled
)

func (self Mode) String() string {
	switch self {
	case Static: return "Static"
	case Scroll: return "Scroll"
	case Loop: return "Loop"
	default:
		return "Invalid"
	}
}

// Playback configuration for [Play].
type Options struct {
	Mode  Mode
	Delay time.Duration // wait between frames in scroll and loop modes
}

// Scrolled text gets this margin of full-width spaces on both sides,
// so the text enters from beyond the right edge of the panel and
// leaves past its left edge.
const scrollMarginGlyphs = 11

var scrollMargin = strings.Repeat("　", scrollMarginGlyphs)

// Renders the text with the given font and plays it on the device in
// the requested mode. The device is closed exactly once before Play
// returns, on every path, including context cancellation; a close
// error surfaces only when playback itself succeeded.
//
// Cancellation is not an error: a cancelled scroll or loop returns
// nil after closing the device.
func Play(ctx context.Context, dev Device, fnt font.Renderer, text string, opts Options) (err error) {
	defer func() {
		closeErr := dev.Close()
		if err == nil { err = closeErr }
	}()

	switch opts.Mode {
	case Static:
		return Show(dev, fnt, text)
	case Scroll, Loop:
		raster := fnt.RenderString(scrollMargin + text + scrollMargin)
		if opts.Mode == Scroll || finiteSink(dev) {
			return scrollPass(ctx, dev, raster, opts.Delay)
		}
		for ctx.Err() == nil {
			err := scrollPass(ctx, dev, raster, opts.Delay)
			if err != nil { return err }
		}
		return nil
	default:
		return fmt.Errorf("invalid playback mode %d", opts.Mode)
	}
}

func finiteSink(dev Device) bool {
	finite, ok := dev.(FiniteSink)
	return ok && finite.FiniteOutput()
}

// Renders the text and writes a single frame at offset 0.
func Show(dev Device, fnt font.Renderer, text string) error {
	return dev.Write(EncodeFrame(fnt.RenderString(text), 0))
}

// One scroll pass: the encoding window slides left to right over the
// raster one column per frame, emitting exactly width frames. Each
// frame write blocks until the device accepts it, and the configured
// delay blocks between frames; nothing is buffered ahead.
func scrollPass(ctx context.Context, dev Device, raster *image.Gray, delay time.Duration) error {
	width := raster.Bounds().Dx()
	for offset := 0; offset < width; offset++ {
		if err := dev.Write(EncodeFrame(raster, offset)); err != nil { return err }
		if !waitFrame(ctx, delay) { return nil }
	}
	return nil
}

// Blocks for the inter-frame delay. Returns false if the context was
// cancelled during the wait.
func waitFrame(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 { return ctx.Err() == nil }
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
