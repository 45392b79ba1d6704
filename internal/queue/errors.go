package queue

import "errors"

// ErrSourceUnreachable reports that the job's source file could not be
// statted at admission time.
var ErrSourceUnreachable = errors.New("queue: source file unreachable")

// ErrQueueClosed reports a submit after Close.
var ErrQueueClosed = errors.New("queue: manager closed")
