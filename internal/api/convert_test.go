package api

import (
	"testing"
	"time"

	"telecine/internal/encode"
	"telecine/internal/queue"
)

func TestFromJobFormatsTimestamps(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	job := queue.Job{
		ID: "job-1",
		Request: encode.Request{
			Input:       "/media/in.mkv",
			Output:      "/media/out.mkv",
			VideoCodec:  encode.CodecX264,
			FilterChain: "yadif",
		},
		CreatedAt:  created,
		Status:     queue.StatusProcessing,
		Progress:   42,
		SourceSize: 100,
		OutputSize: 25,
	}

	view := FromJob(job)
	if view.Status != "processing" || view.Progress != 42 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.CreatedAt != "2026-03-14T09:26:53.000Z" {
		t.Fatalf("created at = %q", view.CreatedAt)
	}
	if view.StartedAt != "" || view.FinishedAt != "" {
		t.Fatalf("zero times must map to empty strings: %+v", view)
	}
}

func TestFromSnapshotPreservesOrderAndCurrent(t *testing.T) {
	snapshot := queue.Snapshot{
		Pending: []queue.Job{{ID: "b"}, {ID: "c"}},
		Current: &queue.Job{ID: "a", Status: queue.StatusProcessing},
	}
	resp := FromSnapshot(snapshot)
	if len(resp.Pending) != 2 || resp.Pending[0].ID != "b" || resp.Pending[1].ID != "c" {
		t.Fatalf("pending order lost: %+v", resp.Pending)
	}
	if resp.Current == nil || resp.Current.ID != "a" {
		t.Fatalf("current lost: %+v", resp.Current)
	}
}

func TestFromSnapshotEmptyQueue(t *testing.T) {
	resp := FromSnapshot(queue.Snapshot{})
	if resp.Current != nil {
		t.Fatal("empty queue must have no current job")
	}
	if resp.Pending == nil || len(resp.Pending) != 0 {
		t.Fatalf("pending must serialize as an empty list: %+v", resp.Pending)
	}
}

func TestToEncodeRequestTrimsFields(t *testing.T) {
	req, err := ToEncodeRequest(SubmitRequest{
		Input:        "  /media/in.mkv ",
		VideoCodec:   " libx264 ",
		AudioStreams: []int{1},
		Output:       " /media/out.mkv",
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if req.Input != "/media/in.mkv" || req.VideoCodec != "libx264" || req.Output != "/media/out.mkv" {
		t.Fatalf("fields not trimmed: %+v", req)
	}

	if _, err := ToEncodeRequest(SubmitRequest{}); err == nil {
		t.Fatal("empty input must be rejected")
	}
}
