package main

import "testing"

func TestFormatSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.00 GiB"},
	}
	for _, tc := range cases {
		if got := formatSize(tc.bytes); got != tc.want {
			t.Errorf("formatSize(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(7384); got != "2:03:04" {
		t.Errorf("formatDuration(7384) = %q", got)
	}
	if got := formatDuration(83); got != "1:23" {
		t.Errorf("formatDuration(83) = %q", got)
	}
}

func TestEstimatedFinalSize(t *testing.T) {
	if got := estimatedFinalSize(500, 50); got != 1000 {
		t.Errorf("estimate = %d", got)
	}
	if got := estimatedFinalSize(500, 0); got != 0 {
		t.Errorf("no progress should give no estimate, got %d", got)
	}
	if got := estimatedFinalSize(0, 50); got != 0 {
		t.Errorf("no output should give no estimate, got %d", got)
	}
}

func TestParseStreamSelection(t *testing.T) {
	streams, err := parseStreamSelection(" 1, 2,3 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(streams) != 3 || streams[0] != 1 || streams[2] != 3 {
		t.Fatalf("unexpected selection: %v", streams)
	}

	if streams, err := parseStreamSelection(""); err != nil || streams != nil {
		t.Fatalf("empty selection should be nil, got %v, %v", streams, err)
	}

	if _, err := parseStreamSelection("1,x"); err == nil {
		t.Fatal("non-numeric index must fail")
	}
}
