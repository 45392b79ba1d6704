// Package history archives terminal encode jobs to SQLite. The live queue
// holds only pending jobs and the current job; everything that finishes,
// fails, or is cancelled lands here together with the tail of the encoder's
// diagnostic output so it can be inspected after the fact.
package history
