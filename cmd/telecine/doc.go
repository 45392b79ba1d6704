// Command telecine is the operator CLI for the telecine daemon: listing
// source files, inspecting them for corrections, managing the encode queue,
// and browsing the archive of finished jobs.
package main
