package device

import "fmt"
import "image"
import "image/color"
import "image/draw"
import "image/gif"
import "image/png"
import "os"
import "path/filepath"

import "github.com/sirupsen/logrus"

import "github.com/KikuchiMakoto/LED-Matrix-software"

// Rendering constants for the image simulator: each dot becomes a
// glowing red LED drawn at 10x scale, with a black margin above and
// below the panel.
const (
	ledPixelSize = 10
	ledBorder    = 20
)

// The glow is a stack of concentric filled circles, brightest at the
// center.
var glowSteps = []struct {
	radius int
	shade  color.RGBA
}{
	{5, color.RGBA{80, 0, 0, 255}},
	{4, color.RGBA{150, 0, 0, 255}},
	{3, color.RGBA{220, 0, 0, 255}},
	{2, color.RGBA{255, 0, 0, 255}},
	{1, color.RGBA{255, 40, 40, 255}},
}

// A simulator that renders frames as LED-styled images and persists
// them when closed: a single written frame becomes display.png, two
// or more become animation.gif. Because the whole run materializes
// into one finite artifact at close time, this device reports itself
// as a finite sink and infinite loop playback is downgraded to one
// scroll pass.
type Image struct {
	dir    string
	frames []*image.RGBA
	log    *logrus.Entry

	// When set, every frame is additionally dumped to
	// frame_NNNN.png as it is written.
	SaveFrames bool
}

// Creates an image simulator writing into the given directory,
// creating it if needed.
func NewImage(dir string) (*Image, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil { return nil, &TransportError{ Op: "open " + dir, Err: err } }
	return &Image{
		dir: dir,
		log: logrus.WithField("device", "image"),
	}, nil
}

// Marks this device as producing a single finite artifact at close.
func (self *Image) FiniteOutput() bool { return true }

// Renders one frame and keeps it for close-time materialization.
func (self *Image) Write(frame ledmatrix.Frame) error {
	canvas := renderLEDs(frame)
	if self.SaveFrames {
		name := filepath.Join(self.dir, fmt.Sprintf("frame_%04d.png", len(self.frames)))
		err := writePNG(name, canvas)
		if err != nil { return err }
	}
	self.frames = append(self.frames, canvas)
	return nil
}

// Persists the collected frames: nothing was written, do nothing;
// one frame, a static PNG; more than one, an animated GIF.
func (self *Image) Close() error {
	switch len(self.frames) {
	case 0:
		return nil
	case 1:
		name := filepath.Join(self.dir, "display.png")
		err := writePNG(name, self.frames[0])
		if err != nil { return err }
		self.log.WithField("path", name).Info("static image saved")
		return nil
	default:
		name := filepath.Join(self.dir, "animation.gif")
		err := self.writeGIF(name)
		if err != nil { return err }
		self.log.WithFields(logrus.Fields{ "path": name, "frames": len(self.frames) }).Info("animation saved")
		return nil
	}
}

func renderLEDs(frame ledmatrix.Frame) *image.RGBA {
	width := ledmatrix.Columns * ledPixelSize
	height := ledmatrix.Rows*ledPixelSize + 2*ledBorder
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)

	for y := 0; y < ledmatrix.Rows; y++ {
		for x := 0; x < ledmatrix.Columns; x++ {
			if !dotOn(frame, x, y) { continue }
			centerX := x*ledPixelSize + ledPixelSize/2
			centerY := y*ledPixelSize + ledPixelSize/2 + ledBorder
			for _, step := range glowSteps {
				fillCircle(canvas, centerX, centerY, step.radius, step.shade)
			}
		}
	}
	return canvas
}

func fillCircle(canvas *image.RGBA, centerX, centerY, radius int, shade color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx + dy*dy > radius*radius { continue }
			canvas.SetRGBA(centerX + dx, centerY + dy, shade)
		}
	}
}

func writePNG(name string, canvas *image.RGBA) error {
	file, err := os.Create(name)
	if err != nil { return &TransportError{ Op: "write " + name, Err: err } }
	err = png.Encode(file, canvas)
	if err != nil {
		file.Close()
		return &TransportError{ Op: "write " + name, Err: err }
	}
	err = file.Close()
	if err != nil { return &TransportError{ Op: "write " + name, Err: err } }
	return nil
}

// Target playback rate for the animated artifact.
const gifCentisPerFrame = 3 // ~30fps

// All canvas pixels come from the fixed glow shades, so a tiny exact
// palette is enough for the GIF.
var gifPalette = color.Palette{
	color.RGBA{0, 0, 0, 255},
	color.RGBA{80, 0, 0, 255},
	color.RGBA{150, 0, 0, 255},
	color.RGBA{220, 0, 0, 255},
	color.RGBA{255, 0, 0, 255},
	color.RGBA{255, 40, 40, 255},
}

func (self *Image) writeGIF(name string) error {
	animation := &gif.GIF{ LoopCount: 0 }
	for _, frame := range self.frames {
		paletted := image.NewPaletted(frame.Bounds(), gifPalette)
		draw.Draw(paletted, paletted.Bounds(), frame, frame.Bounds().Min, draw.Src)
		animation.Image = append(animation.Image, paletted)
		animation.Delay = append(animation.Delay, gifCentisPerFrame)
	}

	file, err := os.Create(name)
	if err != nil { return &TransportError{ Op: "write " + name, Err: err } }
	err = gif.EncodeAll(file, animation)
	if err != nil {
		file.Close()
		return &TransportError{ Op: "write " + name, Err: err }
	}
	err = file.Close()
	if err != nil { return &TransportError{ Op: "write " + name, Err: err } }
	return nil
}
