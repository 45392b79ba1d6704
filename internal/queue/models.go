package queue

import (
	"strings"
	"time"

	"telecine/internal/encode"
)

// Status represents the lifecycle of an encode job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusFailed,
	StatusCancelled,
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == normalized {
			return status, true
		}
	}
	return "", false
}

// Terminal reports whether the status is absorbing.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Job is one encode request and its run state. The Request and admission
// fields never change after Submit; the run state is owned by the Manager
// and mutated only under its lock.
type Job struct {
	ID        string         `json:"id"`
	Request   encode.Request `json:"request"`
	CreatedAt time.Time      `json:"created_at"`
	// SourceSize is the source file size recorded at admission.
	SourceSize int64 `json:"source_size"`

	Status Status `json:"status"`
	// Progress is 0-100 and non-decreasing while the job runs.
	Progress     int       `json:"progress"`
	ErrorMessage string    `json:"error_message,omitempty"`
	StartedAt    time.Time `json:"started_at,omitzero"`
	FinishedAt   time.Time `json:"finished_at,omitzero"`
	// OutputSize is the live size of the in-progress output file. Together
	// with Progress it lets clients project an estimated final size
	// (size / progress x 100); the manager does not compute the projection.
	OutputSize int64 `json:"output_size"`
}

// Snapshot is the queue's only read surface: the ordered pending list and
// the current job, if any.
type Snapshot struct {
	Pending []Job `json:"pending"`
	Current *Job  `json:"current,omitempty"`
}

// ChangedEvent is published on the change bus after every queue mutation.
type ChangedEvent struct {
	Snapshot Snapshot
}

const typeQueueChanged uint32 = 1

// Type implements the event contract for the dispatcher.
func (ChangedEvent) Type() uint32 { return typeQueueChanged }
