// Package vikey implements a modal keystroke parser following the
// conventions of the vi family of editors. It translates a stream of
// terminal key events into a canonical sequence of semantic editing events
// delivered through a callback; it never touches a text buffer, performs
// no I/O, and carries no concurrency of its own.
//
// A Parser holds the current mode and an in-progress ViCmd accumulator.
// Feeding it keys one at a time via Parse builds up commands from up to
// five fragments (register, count, operator, motion, text object) and
// emits Events once a command is complete. Every call to Parse ends with a
// trailing Redraw event, whether or not the key produced any other action.
package vikey
