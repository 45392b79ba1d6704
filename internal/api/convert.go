package api

import (
	"errors"
	"strings"

	"telecine/internal/encode"
	"telecine/internal/history"
	"telecine/internal/media/cropdetect"
	"telecine/internal/queue"
	"telecine/internal/scan"
)

// FromJob converts a queue job to its API representation.
func FromJob(job queue.Job) JobView {
	view := JobView{
		ID:              job.ID,
		Input:           job.Request.Input,
		Output:          job.Request.Output,
		VideoCodec:      job.Request.VideoCodec,
		FilterChain:     job.Request.FilterChain,
		Status:          string(job.Status),
		Progress:        job.Progress,
		ErrorMessage:    job.ErrorMessage,
		SourceSizeBytes: job.SourceSize,
		OutputSizeBytes: job.OutputSize,
	}
	if !job.CreatedAt.IsZero() {
		view.CreatedAt = job.CreatedAt.UTC().Format(dateTimeFormat)
	}
	if !job.StartedAt.IsZero() {
		view.StartedAt = job.StartedAt.UTC().Format(dateTimeFormat)
	}
	if !job.FinishedAt.IsZero() {
		view.FinishedAt = job.FinishedAt.UTC().Format(dateTimeFormat)
	}
	return view
}

// FromSnapshot converts a queue snapshot to its API representation.
func FromSnapshot(snapshot queue.Snapshot) QueueStateResponse {
	resp := QueueStateResponse{
		Pending: make([]JobView, 0, len(snapshot.Pending)),
	}
	for _, job := range snapshot.Pending {
		resp.Pending = append(resp.Pending, FromJob(job))
	}
	if snapshot.Current != nil {
		current := FromJob(*snapshot.Current)
		resp.Current = &current
	}
	return resp
}

// FromHistoryEntry converts an archived job to its API representation.
func FromHistoryEntry(entry history.Entry) HistoryEntryView {
	return HistoryEntryView{
		Job:        FromJob(entry.Job),
		Transcript: entry.Transcript,
		ArchivedAt: entry.ArchivedAt.UTC().Format(dateTimeFormat),
	}
}

// FromScanFiles converts scanner results to the API listing.
func FromScanFiles(files []scan.File) FileListResponse {
	resp := FileListResponse{Files: make([]FileEntry, 0, len(files))}
	for _, file := range files {
		resp.Files = append(resp.Files, FileEntry{
			Path:      file.Path,
			RelPath:   file.RelPath,
			SizeBytes: file.Size,
		})
	}
	return resp
}

// FromCropBox converts a detected crop rectangle.
func FromCropBox(box *cropdetect.Box) *CropBox {
	if box == nil {
		return nil
	}
	return &CropBox{
		Width:   box.Width,
		Height:  box.Height,
		XOffset: box.XOffset,
		YOffset: box.YOffset,
	}
}

// ToEncodeRequest converts a submit payload into the internal request. The
// queue performs full validation; this only normalizes the shape.
func ToEncodeRequest(req SubmitRequest) (encode.Request, error) {
	if strings.TrimSpace(req.Input) == "" {
		return encode.Request{}, errors.New("input is required")
	}
	return encode.Request{
		Input:        strings.TrimSpace(req.Input),
		FilterChain:  strings.TrimSpace(req.FilterChain),
		VideoCodec:   strings.TrimSpace(req.VideoCodec),
		Preset:       strings.TrimSpace(req.Preset),
		CRF:          req.CRF,
		VideoBitrate: strings.TrimSpace(req.VideoBitrate),
		AudioCodec:   strings.TrimSpace(req.AudioCodec),
		AudioBitrate: strings.TrimSpace(req.AudioBitrate),
		AudioStreams: req.AudioStreams,
		Output:       strings.TrimSpace(req.Output),
	}, nil
}
