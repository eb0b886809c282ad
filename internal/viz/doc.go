// Package viz provides terminal-based visualization for avatar walks.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [RunInteractive]: terrain picker plus live walk view
//   - [RunLive]: live walk view over a pre-built walker
//   - [Canvas]: Braille-based pixel canvas for the side-view rendering
//   - [PlotRun]: post-run ASCII charts of foot offsets and blend weights
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the walk
//	T     - Cycle color themes
//	↑/↓   - Adjust walk speed
//	←/→   - Adjust turn rate
//	?     - Show help overlay
package viz
