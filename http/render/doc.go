// Package render governs how one action execution produces exactly one
// outward result.
//
// A Gate starts idle and accepts either a render or a redirect, never
// both and never twice. Every render intent, whatever its variant, is
// normalized to a plain body and status before the Gate commits it, so
// the terminal assignment is observable exactly once.
package render
