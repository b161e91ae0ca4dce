// Package viz renders the simulation in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: steps the simulation once per tick and draws it
//   - [Canvas]: Braille-based pixel canvas that satisfies render.Renderer
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	Tab   - Select the next body for the distance graph
//	?     - Show help overlay
//	Q     - Quit
package viz
