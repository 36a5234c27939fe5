// Package ui holds the terminal pieces outside the chart itself: terminal
// size detection, the ANSI palette, the preset table and the interactive
// preset picker built on Bubble Tea.
//
// Colors are ANSI codes rather than hex values so output follows the
// user's terminal theme:
//
//	ColorSuccess   (green)  - confirmations
//	ColorError     (red)    - failures
//	ColorWarning   (yellow) - warnings
//	ColorMuted     (gray)   - secondary text
//	ColorSecondary (blue)   - picker selection border
package ui
