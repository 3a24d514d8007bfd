// Package viz provides terminal-side views of the generator.
//
//   - [Canvas]: Braille-based pixel canvas for high-density previews
//   - [BufferPreview]: colored glyph rendering of an effect buffer
//   - [DriftChart]: line chart of a modulated parameter over time
//   - Theme selection keyed by mood family
//
// The heavy image path lives in the engine package; this one only
// draws to the terminal.
package viz
