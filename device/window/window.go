// window provides a live panel simulator rendered in a desktop
// window through Ebitengine. It's split from the device package so
// that headless builds don't link a graphics stack.
//
// Ebitengine insists on owning the main goroutine, so usage is
// inverted compared to the other devices: playback runs in a
// background goroutine while [Device.Run] blocks on the render loop.
//
//   dev := window.New()
//   go func() { errs <- ledmatrix.Play(ctx, dev, fnt, text, opts) }()
//   err := dev.Run()
package window

import "image"
import "image/color"
import "sync"

import "github.com/hajimehoshi/ebiten/v2"

import "github.com/KikuchiMakoto/LED-Matrix-software"

// Window rendering constants: dots are drawn at 8x scale with a
// black margin above and below the panel, like the image simulator.
const (
	dotScale  = 8
	topMargin = 16
)

// A live panel window. Implements both the device contract (Write,
// Close) and ebiten.Game (Update, Draw, Layout). The sequencer and
// the render loop run on different goroutines, so the current frame
// is guarded by a mutex; Write publishes a frame and Draw paints
// whatever frame was published last.
type Device struct {
	mu     sync.Mutex
	frame  ledmatrix.Frame
	closed bool
	dot    *ebiten.Image
}

// Creates a window device. The window opens when [Device.Run] is
// called.
func New() *Device { return &Device{} }

// Publishes a frame to the render loop. Never blocks on vsync: the
// render loop always paints the latest published frame, which is
// what a hardware panel does too.
func (self *Device) Write(frame ledmatrix.Frame) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.frame = frame
	return nil
}

// Marks playback as finished. The window stays open showing the last
// frame until the user closes it, mirroring how the terminal
// simulator leaves its final frame on screen.
func (self *Device) Close() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.closed = true
	return nil
}

// Opens the window and blocks running the render loop until the user
// closes the window. Must be called from the main goroutine.
func (self *Device) Run() error {
	ebiten.SetWindowTitle("LED Matrix Simulator")
	ebiten.SetWindowSize(ledmatrix.Columns*dotScale, ledmatrix.Rows*dotScale + 2*topMargin)
	return ebiten.RunGame(self)
}

// ---- ebiten.Game ----

func (self *Device) Update() error { return nil }

func (self *Device) Layout(winWidth, winHeight int) (int, int) {
	return ledmatrix.Columns*dotScale, ledmatrix.Rows*dotScale + 2*topMargin
}

func (self *Device) Draw(canvas *ebiten.Image) {
	self.mu.Lock()
	frame := self.frame
	self.mu.Unlock()

	canvas.Fill(color.RGBA{0, 0, 0, 255})
	dot := self.dotSprite()
	for y := 0; y < ledmatrix.Rows; y++ {
		for x := 0; x < ledmatrix.Columns; x++ {
			word := frame[x/ledmatrix.BlockWidth][y]
			if word>>(15 - uint(x%ledmatrix.BlockWidth))&1 == 0 { continue }
			opts := ebiten.DrawImageOptions{}
			opts.GeoM.Translate(float64(x*dotScale), float64(y*dotScale + topMargin))
			canvas.DrawImage(dot, &opts)
		}
	}
}

// Builds the glowing dot sprite on first use: a red disc, brighter
// towards the center, sized to one panel dot.
func (self *Device) dotSprite() *ebiten.Image {
	if self.dot != nil { return self.dot }

	disc := image.NewRGBA(image.Rect(0, 0, dotScale, dotScale))
	center := float64(dotScale)/2 - 0.5
	maxDist := float64(dotScale) / 2
	for y := 0; y < dotScale; y++ {
		for x := 0; x < dotScale; x++ {
			dx, dy := float64(x) - center, float64(y) - center
			dist := dx*dx + dy*dy
			if dist > maxDist*maxDist { continue }
			shade := uint8(255 - 175*dist/(maxDist*maxDist))
			disc.SetRGBA(x, y, color.RGBA{shade, shade / 6, shade / 6, 255})
		}
	}
	self.dot = ebiten.NewImageFromImage(disc)
	return self.dot
}
