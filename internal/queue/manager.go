package queue

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kelindar/event"

	"telecine/internal/encode"
	"telecine/internal/logging"
)

// Archiver receives jobs at their terminal transition, together with the
// encoder transcript, for server-side retention.
type Archiver interface {
	Archive(job Job, transcript []string) error
}

// AdmissionCheck can reject a request before it enters the queue.
type AdmissionCheck func(req encode.Request) error

// Options configures Manager construction.
type Options struct {
	Runner             encode.Runner
	Logger             *slog.Logger
	Archiver           Archiver
	AdmissionChecks    []AdmissionCheck
	SizeSampleInterval time.Duration
	CancelGrace        time.Duration
}

// Manager owns the pending list and the single processing slot. All queue
// mutation serializes on one mutex: admission, scheduling, completion
// handling, and cancellation are atomic steps relative to each other.
type Manager struct {
	runner       encode.Runner
	logger       *slog.Logger
	archiver     Archiver
	checks       []AdmissionCheck
	sizeInterval time.Duration
	cancelGrace  time.Duration
	dispatcher   *event.Dispatcher

	mu          sync.Mutex
	pending     []*Job
	current     *Job
	proc        encode.Process
	samplerStop chan struct{}
	closed      bool
	wg          sync.WaitGroup
}

// NewManager constructs a queue manager. The runner is the only required
// dependency.
func NewManager(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	sizeInterval := opts.SizeSampleInterval
	if sizeInterval <= 0 {
		sizeInterval = 2 * time.Second
	}
	cancelGrace := opts.CancelGrace
	if cancelGrace <= 0 {
		cancelGrace = 5 * time.Second
	}
	return &Manager{
		runner:       opts.Runner,
		logger:       logging.NewComponentLogger(logger, "queue"),
		archiver:     opts.Archiver,
		checks:       opts.AdmissionChecks,
		sizeInterval: sizeInterval,
		cancelGrace:  cancelGrace,
		dispatcher:   event.NewDispatcher(),
	}
}

// Submit validates and admits a job. Admission is synchronous: the created
// job is returned immediately and execution happens later in FIFO order.
func (m *Manager) Submit(req encode.Request) (Job, error) {
	if err := req.Validate(); err != nil {
		return Job{}, err
	}
	info, err := os.Stat(req.Input)
	if err != nil {
		return Job{}, fmt.Errorf("%w: %s", ErrSourceUnreachable, req.Input)
	}
	for _, check := range m.checks {
		if err := check(req); err != nil {
			return Job{}, err
		}
	}

	job := &Job{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Request:    req,
		CreatedAt:  time.Now(),
		SourceSize: info.Size(),
		Status:     StatusPending,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Job{}, ErrQueueClosed
	}
	m.pending = append(m.pending, job)
	m.logger.Info("job admitted",
		logging.String("job_id", job.ID),
		logging.String("source", req.Input),
		logging.Int64("source_size", job.SourceSize))
	m.tryStartNextLocked()
	m.publishLocked()
	return *job, nil
}

// Cancel cancels the running or a pending job. Cancelling an unknown id is
// a no-op; the return value reports whether a job matched. Cancel returns
// once the request is recorded, not once termination is confirmed.
func (m *Manager) Cancel(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.ID == id && m.current.Status == StatusProcessing {
		job := m.current
		// Mark cancelled before the process dies so the racing exit
		// handler treats the job as already terminal.
		job.Status = StatusCancelled
		job.FinishedAt = time.Now()
		m.stopSamplerLocked()
		if proc := m.proc; proc != nil {
			grace := m.cancelGrace
			go func() {
				if err := proc.Terminate(grace); err != nil {
					m.logger.Warn("terminate encoder", logging.Error(err))
				}
			}()
		}
		m.logger.Info("running job cancelled", logging.String("job_id", id))
		m.tryStartNextLocked()
		m.publishLocked()
		return true
	}

	for i, job := range m.pending {
		if job.ID != id {
			continue
		}
		m.pending = slices.Delete(m.pending, i, i+1)
		job.Status = StatusCancelled
		job.FinishedAt = time.Now()
		m.archiveLocked(*job, nil)
		m.logger.Info("pending job cancelled", logging.String("job_id", id))
		m.publishLocked()
		return true
	}
	return false
}

// Snapshot returns the queue's read surface. It reflects every mutation
// made before the call.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers a handler for queue change events and returns an
// unsubscribe function. Any transport can hang off this.
func (m *Manager) Subscribe(handler func(ChangedEvent)) func() {
	return event.Subscribe(m.dispatcher, handler)
}

// Close stops admission, cancels the running job, and waits for the
// process waiter and sampler goroutines to drain.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	var proc encode.Process
	if m.current != nil && m.current.Status == StatusProcessing {
		m.current.Status = StatusCancelled
		m.current.FinishedAt = time.Now()
		proc = m.proc
	}
	m.stopSamplerLocked()
	grace := m.cancelGrace
	m.mu.Unlock()

	if proc != nil {
		if err := proc.Terminate(grace); err != nil {
			m.logger.Warn("terminate encoder on close", logging.Error(err))
		}
	}
	m.wg.Wait()
}

// tryStartNextLocked starts the head of the pending list unless an encode
// process is live or the list is empty. At most one encode executes at any
// instant, system-wide.
func (m *Manager) tryStartNextLocked() {
	if m.closed || m.proc != nil {
		return
	}
	if m.current != nil && m.current.Status == StatusProcessing {
		return
	}

	for len(m.pending) > 0 {
		job := m.pending[0]
		m.pending = m.pending[1:]
		job.Status = StatusProcessing
		job.StartedAt = time.Now()

		parser := new(encode.ProgressParser)
		proc, err := m.runner.Start(context.Background(), job.Request, func(line string) {
			m.observeProgress(job, parser, line)
		})
		if err != nil {
			job.Status = StatusFailed
			job.ErrorMessage = fmt.Sprintf("start encoder: %v", err)
			job.FinishedAt = time.Now()
			m.current = job
			m.archiveLocked(*job, nil)
			m.logger.Error("encoder failed to start",
				logging.String("job_id", job.ID), logging.Error(err))
			// Forward progress: try the next pending job.
			continue
		}

		m.current = job
		m.proc = proc
		stop := make(chan struct{})
		m.samplerStop = stop
		m.wg.Add(2)
		go m.awaitExit(job, proc)
		go m.sampleOutputSize(job, stop)
		m.logger.Info("job started",
			logging.String("job_id", job.ID),
			logging.String("output", job.Request.Output))
		return
	}
}

// observeProgress runs on the encoder's stderr scanner goroutine. The
// parser itself is confined to that goroutine; only the job update takes
// the queue lock.
func (m *Manager) observeProgress(job *Job, parser *encode.ProgressParser, line string) {
	percent, ok := parser.Observe(line)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.Status != StatusProcessing {
		return
	}
	// Publish only on meaningful transitions, not on every diagnostic
	// line; progress never moves backward.
	if percent <= job.Progress {
		return
	}
	job.Progress = percent
	m.publishLocked()
}

func (m *Manager) awaitExit(job *Job, proc encode.Process) {
	defer m.wg.Done()
	result := <-proc.Done()

	m.mu.Lock()
	m.stopSamplerLocked()
	m.proc = nil
	// A cancelled job is already terminal; never transition it onward.
	if job.Status == StatusProcessing {
		job.FinishedAt = time.Now()
		if result.ExitCode == 0 {
			job.Status = StatusCompleted
			job.Progress = 100
		} else {
			job.Status = StatusFailed
			job.ErrorMessage = fmt.Sprintf("encoder exited with code %d", result.ExitCode)
		}
	}
	status := job.Status
	m.archiveLocked(*job, result.Transcript)
	m.tryStartNextLocked()
	m.publishLocked()
	m.mu.Unlock()

	if status == StatusCancelled {
		// Partial output removal is a secondary effect of cancellation.
		_ = os.Remove(job.Request.Output)
	}
	m.logger.Info("job finished",
		logging.String("job_id", job.ID),
		logging.String("status", string(status)),
		logging.Int("exit_code", result.ExitCode))
}

// sampleOutputSize stats the in-progress output on a fixed interval. Stat
// failures are ignored: the file may not exist yet. The sampler stops when
// the job leaves the processing state so it never acts on a stale path.
func (m *Manager) sampleOutputSize(job *Job, stop <-chan struct{}) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.sizeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			info, err := os.Stat(job.Request.Output)
			if err != nil {
				continue
			}
			m.mu.Lock()
			if job.Status != StatusProcessing {
				m.mu.Unlock()
				return
			}
			if info.Size() != job.OutputSize {
				job.OutputSize = info.Size()
				m.publishLocked()
			}
			m.mu.Unlock()
		}
	}
}

func (m *Manager) stopSamplerLocked() {
	if m.samplerStop != nil {
		close(m.samplerStop)
		m.samplerStop = nil
	}
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{Pending: make([]Job, len(m.pending))}
	for i, job := range m.pending {
		snap.Pending[i] = *job
	}
	if m.current != nil {
		cp := *m.current
		snap.Current = &cp
	}
	return snap
}

func (m *Manager) publishLocked() {
	event.Publish(m.dispatcher, ChangedEvent{Snapshot: m.snapshotLocked()})
}

func (m *Manager) archiveLocked(job Job, transcript []string) {
	if m.archiver == nil {
		return
	}
	if err := m.archiver.Archive(job, transcript); err != nil {
		m.logger.Warn("archive job", logging.String("job_id", job.ID), logging.Error(err))
	}
}
