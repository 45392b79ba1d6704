// Package api defines wire-format types and converters for the HTTP API
// layer, plus the services the daemon's handlers call into. It translates
// internal queue, probe, and correction models into transport-friendly DTOs
// so clients never couple to internal types.
//
// DTOs use camelCase JSON tags. Internal enums (queue.Status, correction
// aspect labels) are exposed as lowercase strings. Timestamps use RFC3339
// with milliseconds.
package api
