package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// FileEntry describes one discoverable source file under the media
// directory.
type FileEntry struct {
	Path      string `json:"path"`
	RelPath   string `json:"relPath"`
	SizeBytes int64  `json:"sizeBytes"`
}

// FileListResponse wraps the media directory listing.
type FileListResponse struct {
	Files []FileEntry `json:"files"`
}

// CropBox is a detected active-picture rectangle.
type CropBox struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	XOffset int `json:"xOffset"`
	YOffset int `json:"yOffset"`
}

// AudioTrackInfo summarizes one selectable audio stream.
type AudioTrackInfo struct {
	StreamIndex int    `json:"streamIndex"`
	Label       string `json:"label"`
}

// InspectReport carries everything a client needs to review a source before
// queueing it: probe facts, the derived corrections, and the resulting
// filter chain.
type InspectReport struct {
	Path            string  `json:"path"`
	SizeBytes       int64   `json:"sizeBytes"`
	DurationSeconds float64 `json:"durationSeconds"`

	Width             int    `json:"width"`
	Height            int    `json:"height"`
	VideoCodec        string `json:"videoCodec"`
	SampleAspectRatio string `json:"sampleAspectRatio,omitempty"`
	Interlaced        bool   `json:"interlaced"`

	Crop        *CropBox `json:"crop,omitempty"`
	AspectLabel string   `json:"aspectLabel,omitempty"`
	FilterChain string   `json:"filterChain,omitempty"`
	Corrections []string `json:"corrections,omitempty"`

	AudioTracks []AudioTrackInfo `json:"audioTracks"`
}

// ScreenshotsResponse lists extracted preview frame paths.
type ScreenshotsResponse struct {
	Frames []string `json:"frames"`
}

// SubmitRequest is the POST /api/queue payload.
type SubmitRequest struct {
	Input        string `json:"input"`
	FilterChain  string `json:"filterChain,omitempty"`
	VideoCodec   string `json:"videoCodec"`
	Preset       string `json:"preset,omitempty"`
	CRF          int    `json:"crf,omitempty"`
	VideoBitrate string `json:"videoBitrate,omitempty"`
	AudioCodec   string `json:"audioCodec,omitempty"`
	AudioBitrate string `json:"audioBitrate,omitempty"`
	AudioStreams []int  `json:"audioStreams"`
	Output       string `json:"output"`
}

// JobView is the transport representation of a queue job.
type JobView struct {
	ID              string `json:"id"`
	Input           string `json:"input"`
	Output          string `json:"output"`
	VideoCodec      string `json:"videoCodec"`
	FilterChain     string `json:"filterChain,omitempty"`
	Status          string `json:"status"`
	Progress        int    `json:"progress"`
	ErrorMessage    string `json:"errorMessage,omitempty"`
	SourceSizeBytes int64  `json:"sourceSizeBytes"`
	OutputSizeBytes int64  `json:"outputSizeBytes"`
	CreatedAt       string `json:"createdAt,omitempty"`
	StartedAt       string `json:"startedAt,omitempty"`
	FinishedAt      string `json:"finishedAt,omitempty"`
}

// QueueStateResponse mirrors the queue snapshot: the ordered pending list
// and the current job, if any.
type QueueStateResponse struct {
	Pending []JobView `json:"pending"`
	Current *JobView  `json:"current,omitempty"`
}

// SubmitResponse wraps the admitted job.
type SubmitResponse struct {
	Job JobView `json:"job"`
}

// CancelResponse reports whether a cancel request matched a job.
type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

// HistoryEntryView is one archived terminal job.
type HistoryEntryView struct {
	Job        JobView  `json:"job"`
	Transcript []string `json:"transcript,omitempty"`
	ArchivedAt string   `json:"archivedAt"`
}

// HistoryListResponse wraps archived jobs, newest first.
type HistoryListResponse struct {
	Entries []HistoryEntryView `json:"entries"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running       bool   `json:"running"`
	PID           int    `json:"pid"`
	MediaDir      string `json:"mediaDir"`
	OutputDir     string `json:"outputDir"`
	LockFilePath  string `json:"lockFilePath"`
	HistoryDBPath string `json:"historyDbPath,omitempty"`

	QueueDepth int  `json:"queueDepth"`
	Encoding   bool `json:"encoding"`
}
