// Command ledmatrix renders text on a 128x16 LED matrix panel or one
// of its simulators.
//
//   ledmatrix -text "こんにちは、世界！" -mode scroll -device terminal
//
// Defaults can also come from a .env file or the environment; see
// the LEDMATRIX_* variables below.
package main

import "context"
import "flag"
import "fmt"
import "os"
import "os/signal"
import "strconv"
import "syscall"
import "time"

import "github.com/joho/godotenv"
import "github.com/sirupsen/logrus"

import "github.com/KikuchiMakoto/LED-Matrix-software"
import "github.com/KikuchiMakoto/LED-Matrix-software/device"
import "github.com/KikuchiMakoto/LED-Matrix-software/device/window"
import "github.com/KikuchiMakoto/LED-Matrix-software/font"

var log = logrus.StandardLogger()

func main() {
	// a .env file is optional; the environment only supplies defaults
	// that explicit flags override
	_ = godotenv.Load()

	deviceName := flag.String("device", envOr("LEDMATRIX_DEVICE", "terminal"), "output device: serial, terminal, image or window")
	port := flag.String("port", envOr("LEDMATRIX_PORT", "COM23"), "serial port for the serial device")
	baudrate := flag.Int("baudrate", envIntOr("LEDMATRIX_BAUDRATE", 921600), "serial baudrate")
	fontName := flag.String("font", envOr("LEDMATRIX_FONT", "shinonome"), "font: shinonome or chara_zenkaku")
	fontDir := flag.String("font-dir", envOr("LEDMATRIX_FONT_DIR", ""), "font resource directory (defaults per font)")
	mode := flag.String("mode", "static", "display mode: static, scroll or loop")
	text := flag.String("text", "Hello, LED!", "text to display")
	scrollSpeed := flag.Float64("scroll-speed", 0.02, "delay between scroll frames, in seconds")
	outputDir := flag.String("output-dir", envOr("LEDMATRIX_OUTPUT_DIR", "output"), "output directory for the image device")
	saveFrames := flag.Bool("save-frames", false, "also dump every frame as a PNG (image device)")
	ascii := flag.Bool("ascii", false, "use '#' instead of block characters (terminal device)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	playMode, err := parseMode(*mode)
	if err != nil { log.Fatal(err) }
	opts := ledmatrix.Options{
		Mode:  playMode,
		Delay: time.Duration(*scrollSpeed * float64(time.Second)),
	}

	log.WithField("font", *fontName).Info("initializing font")
	fnt, err := buildFont(*fontName, *fontDir)
	if err != nil { log.Fatal(err) }

	log.WithField("device", *deviceName).Info("initializing device")
	if *deviceName == "window" {
		runWindowed(ctx, fnt, *text, opts)
		return
	}

	dev, err := buildDevice(*deviceName, *port, *baudrate, *outputDir, *saveFrames, *ascii)
	if err != nil {
		if *deviceName == "serial" {
			log.WithField("port", *port).Error("failed to open the serial port; try -device terminal for testing without hardware")
		}
		log.Fatal(err)
	}

	log.WithField("text", *text).Info("displaying text")
	err = ledmatrix.Play(ctx, dev, fnt, *text, opts)
	if err != nil { log.Fatal(err) }

	// keep a statically displayed frame on screen until interrupted
	if playMode == ledmatrix.Static && *deviceName == "terminal" {
		log.Info("press Ctrl-C to exit")
		<-ctx.Done()
	}
	log.Info("done")
}

// The window device inverts control: Ebitengine owns the main
// goroutine and playback runs in the background.
func runWindowed(ctx context.Context, fnt font.Renderer, text string, opts ledmatrix.Options) {
	dev := window.New()
	playErr := make(chan error, 1)
	go func() {
		playErr <- ledmatrix.Play(ctx, dev, fnt, text, opts)
	}()

	err := dev.Run()
	if err != nil { log.Fatal(err) }
	select {
	case err := <-playErr:
		if err != nil { log.Fatal(err) }
	default:
		// window closed mid-playback; cancellation handles the rest
	}
	log.Info("done")
}

func buildFont(name, dir string) (font.Renderer, error) {
	switch name {
	case "shinonome":
		if dir == "" { dir = "./shinonome16-1.0.4" }
		return font.NewShinonome(dir)
	case "chara_zenkaku":
		if dir == "" { dir = "./chara_zenkaku" }
		return font.NewCharaZenkaku(dir), nil
	default:
		return nil, fmt.Errorf("unknown font %q", name)
	}
}

func buildDevice(name, port string, baudrate int, outputDir string, saveFrames, ascii bool) (ledmatrix.Device, error) {
	switch name {
	case "serial":
		return device.OpenSerial(port, baudrate)
	case "terminal":
		terminal := device.NewTerminal()
		if ascii { terminal.SetASCII() }
		return terminal, nil
	case "image":
		image, err := device.NewImage(outputDir)
		if err != nil { return nil, err }
		image.SaveFrames = saveFrames
		return image, nil
	default:
		return nil, fmt.Errorf("unknown device %q", name)
	}
}

func parseMode(name string) (ledmatrix.Mode, error) {
	switch name {
	case "static":
		return ledmatrix.Static, nil
	case "scroll":
		return ledmatrix.Scroll, nil
	case "loop":
		return ledmatrix.Loop, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", name)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" { return value }
	return fallback
}

func envIntOr(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" { return fallback }
	parsed, err := strconv.Atoi(value)
	if err != nil { return fallback }
	return parsed
}
