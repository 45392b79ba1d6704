// Package queue owns the sequential encode job queue.
//
// The Manager admits jobs, runs them strictly in admission order with at
// most one live encode process system-wide, estimates progress from the
// encoder's diagnostic stream, samples the growing output file, and
// supports cancellation of the running or a pending job. Admission,
// scheduling, completion handling, and cancellation all serialize on one
// mutex; the external encode runs out of line and reports back through the
// runner's completion channel.
//
// Every mutation publishes a fresh queue snapshot on the change bus so
// observers can poll (or stream) without missing a transition. The visible
// snapshot carries the pending list and the current job only; terminal jobs
// stay visible until the next job starts and are archived server-side at
// the moment they terminate.
package queue
