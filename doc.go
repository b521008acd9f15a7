// ledmatrix renders Unicode text onto a 128x16 dot-matrix LED panel
// or one of its simulators.
//
// First, create a font from its resource directory:
//   shinonome, err := font.NewShinonome("./shinonome16-1.0.4")
//   if err != nil { ... }
//
// Then, pick a device:
//   terminal := device.NewTerminal()
//
// Finally, play text on it:
//   err = ledmatrix.Play(ctx, terminal, shinonome, "Hello, LED!", ledmatrix.Options{
//       Mode:  ledmatrix.Scroll,
//       Delay: 20*time.Millisecond,
//   })
//
// Play owns the device for its whole run and closes it exactly once
// on every exit path, so devices that materialize their output at
// close time (like the image simulator) always get to finish.
//
// The pipeline in between is small and deterministic: the font
// composes the text into a binary raster of height 16, [EncodeFrame]
// packs a 128-column window of that raster into the panel's
// 16-bit-word format, and the playback functions slide the window to
// implement scrolling.
package ledmatrix
