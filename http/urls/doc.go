// Package urls generates outbound URLs that reuse parts of the current
// request's routing state.
//
// The Composer walks the current route's parameter slots in positional
// order. A slot the caller sets explicitly takes the caller's value;
// a slot the caller clears (sets to nil) is omitted. A slot the caller
// leaves alone inherits the current request's value, but only while
// every earlier slot resolved to some value; clearing an earlier slot
// stops all later inheritance, and those slots fall back to the
// route's declared defaults. Pretty-URL grammars are positional, so a
// hole in an early segment strips later segments of their original
// meaning.
package urls
