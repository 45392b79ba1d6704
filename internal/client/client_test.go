package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"telecine/internal/api"
)

func TestStatusRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(api.DaemonStatus{Running: true, PID: 42})
	}))
	defer srv.Close()

	status, err := New(srv.URL).Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Running || status.PID != 42 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestSubmitSendsPayloadAndDecodesJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/queue" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req api.SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Input != "/media/in.mkv" {
			t.Errorf("input = %q", req.Input)
		}
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(api.SubmitResponse{Job: api.JobView{ID: "job-1", Status: "pending"}})
	}))
	defer srv.Close()

	job, err := New(srv.URL).Submit(context.Background(), api.SubmitRequest{Input: "/media/in.mkv"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if job.ID != "job-1" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestErrorPayloadSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "audio selection is empty"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Submit(context.Background(), api.SubmitRequest{Input: "x"})
	if err == nil || !strings.Contains(err.Error(), "audio selection is empty") {
		t.Fatalf("expected daemon error message, got %v", err)
	}
}

func TestCancelEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewEncoder(w).Encode(api.CancelResponse{Cancelled: true})
	}))
	defer srv.Close()

	ok, err := New(srv.URL).Cancel(context.Background(), "job/1")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !ok {
		t.Fatal("expected cancelled")
	}
	if gotPath != "/api/queue/job%2F1/cancel" {
		t.Fatalf("id not escaped: %s", gotPath)
	}
}

func TestBareBindGetsScheme(t *testing.T) {
	c := New("127.0.0.1:7823")
	if c.baseURL != "http://127.0.0.1:7823" {
		t.Fatalf("base url = %s", c.baseURL)
	}
}
