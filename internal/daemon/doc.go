// Package daemon ties the encode queue, media scanner, inspection services,
// and HTTP API into a single lifecycle with flock-based locking to prevent
// multiple concurrent instances.
package daemon
