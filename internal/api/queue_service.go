package api

import (
	"context"

	"telecine/internal/history"
	"telecine/internal/queue"
)

// HistoryReader abstracts archive queries.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
	Get(ctx context.Context, id string) (*history.Entry, error)
}

// QueueService exposes queue and history operations returning API DTOs.
type QueueService struct {
	manager *queue.Manager
	archive HistoryReader
}

// NewQueueService constructs a QueueService around the manager and an
// optional history reader.
func NewQueueService(manager *queue.Manager, archive HistoryReader) *QueueService {
	if manager == nil {
		return nil
	}
	return &QueueService{manager: manager, archive: archive}
}

// State returns the current queue snapshot as DTOs.
func (s *QueueService) State() QueueStateResponse {
	if s == nil || s.manager == nil {
		return QueueStateResponse{Pending: []JobView{}}
	}
	return FromSnapshot(s.manager.Snapshot())
}

// Submit validates and admits a new encode job.
func (s *QueueService) Submit(req SubmitRequest) (JobView, error) {
	encodeReq, err := ToEncodeRequest(req)
	if err != nil {
		return JobView{}, err
	}
	job, err := s.manager.Submit(encodeReq)
	if err != nil {
		return JobView{}, err
	}
	return FromJob(job), nil
}

// Cancel cancels a job by id; false means no such job.
func (s *QueueService) Cancel(id string) bool {
	if s == nil || s.manager == nil {
		return false
	}
	return s.manager.Cancel(id)
}

// History returns archived jobs, newest first.
func (s *QueueService) History(ctx context.Context, limit int) ([]HistoryEntryView, error) {
	if s == nil || s.archive == nil {
		return nil, nil
	}
	entries, err := s.archive.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]HistoryEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, FromHistoryEntry(entry))
	}
	return views, nil
}

// HistoryEntry returns one archived job with its transcript.
func (s *QueueService) HistoryEntry(ctx context.Context, id string) (*HistoryEntryView, error) {
	if s == nil || s.archive == nil {
		return nil, history.ErrNotFound
	}
	entry, err := s.archive.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := FromHistoryEntry(*entry)
	return &view, nil
}
