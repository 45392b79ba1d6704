package client

import (
	"context"
	"net/url"
	"strings"

	"telecine/internal/api"
)

// Status fetches daemon runtime information.
func (c *Client) Status(ctx context.Context) (api.DaemonStatus, error) {
	var status api.DaemonStatus
	err := c.get(ctx, "/api/status", &status)
	return status, err
}

// Files lists discoverable source files under the media directory.
func (c *Client) Files(ctx context.Context) (api.FileListResponse, error) {
	var resp api.FileListResponse
	err := c.get(ctx, "/api/files", &resp)
	return resp, err
}

// Inspect probes a source and returns its correction report. aspect, when
// non-empty, overrides the guessed display aspect ratio.
func (c *Client) Inspect(ctx context.Context, path, aspect string) (api.InspectReport, error) {
	values := url.Values{}
	values.Set("path", path)
	if strings.TrimSpace(aspect) != "" {
		values.Set("aspect", aspect)
	}
	var report api.InspectReport
	err := c.get(ctx, queryPath("/api/files/inspect", values), &report)
	return report, err
}

// Screenshots requests preview frames for a source.
func (c *Client) Screenshots(ctx context.Context, path, filterChain string) (api.ScreenshotsResponse, error) {
	payload := map[string]string{"path": path}
	if filterChain != "" {
		payload["filterChain"] = filterChain
	}
	var resp api.ScreenshotsResponse
	err := c.post(ctx, "/api/files/screenshots", payload, &resp)
	return resp, err
}

// Queue fetches the current queue snapshot.
func (c *Client) Queue(ctx context.Context) (api.QueueStateResponse, error) {
	var state api.QueueStateResponse
	err := c.get(ctx, "/api/queue", &state)
	return state, err
}

// Submit admits a new encode job.
func (c *Client) Submit(ctx context.Context, req api.SubmitRequest) (api.JobView, error) {
	var resp api.SubmitResponse
	err := c.post(ctx, "/api/queue", req, &resp)
	return resp.Job, err
}

// Cancel cancels a job by id; false means the daemon knew no such job.
func (c *Client) Cancel(ctx context.Context, id string) (bool, error) {
	var resp api.CancelResponse
	err := c.post(ctx, "/api/queue/"+url.PathEscape(id)+"/cancel", nil, &resp)
	return resp.Cancelled, err
}

// History lists archived jobs, newest first.
func (c *Client) History(ctx context.Context, limit int) ([]api.HistoryEntryView, error) {
	var resp api.HistoryListResponse
	err := c.get(ctx, queryPath("/api/history", limitQuery(limit)), &resp)
	return resp.Entries, err
}

// HistoryEntry fetches one archived job with its transcript.
func (c *Client) HistoryEntry(ctx context.Context, id string) (api.HistoryEntryView, error) {
	var entry api.HistoryEntryView
	err := c.get(ctx, "/api/history/"+url.PathEscape(id), &entry)
	return entry, err
}
