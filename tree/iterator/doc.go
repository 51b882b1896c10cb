// Package iterator provides tree iterators for use
// by tree implementations.
//
// The iterators keep their own position on an explicit stack,
// so they never recurse and never start goroutines. They follow
// the simplemap.Iterator protocol: Next, then Item, and
// optionally Remove.
package iterator
