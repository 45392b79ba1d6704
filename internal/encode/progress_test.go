package encode

import "testing"

func TestParseDurationAndElapsed(t *testing.T) {
	duration, ok := ParseDuration("  Duration: 01:00:00.00, start: 0.000000, bitrate: 5000 kb/s")
	if !ok || duration != 3600 {
		t.Fatalf("unexpected duration: %v ok=%v", duration, ok)
	}

	elapsed, ok := ParseElapsed("frame= 1000 fps= 40 q=28.0 size= 10240KiB time=00:30:00.00 bitrate= 466.0kbits/s speed=1.6x")
	if !ok || elapsed != 1800 {
		t.Fatalf("unexpected elapsed: %v ok=%v", elapsed, ok)
	}

	if _, ok := ParseElapsed("frame= 1000 fps= 40 q=28.0"); ok {
		t.Fatal("line without marker should not parse")
	}
}

func TestParseClockHundredths(t *testing.T) {
	elapsed, ok := ParseElapsed("time=00:00:10.50")
	if !ok || elapsed != 10.5 {
		t.Fatalf("unexpected elapsed: %v ok=%v", elapsed, ok)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(1800, 3600); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
	if got := Percent(4000, 3600); got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
	if got := Percent(10, 0); got != 0 {
		t.Fatalf("unknown total should report 0, got %d", got)
	}
	// round, not truncate
	if got := Percent(1, 3); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
	if got := Percent(2, 3); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}

func TestProgressParserSequence(t *testing.T) {
	var parser ProgressParser

	if _, ok := parser.Observe("time=00:10:00.00"); ok {
		t.Fatal("elapsed before total should not report progress")
	}
	if _, ok := parser.Observe("  Duration: 01:00:00.00, start: 0.000000"); ok {
		t.Fatal("duration line alone should not report progress")
	}
	percent, ok := parser.Observe("frame=1 time=00:30:00.00 speed=1x")
	if !ok || percent != 50 {
		t.Fatalf("expected 50%%, got %d ok=%v", percent, ok)
	}
	percent, ok = parser.Observe("frame=2 time=00:45:00.00 speed=1x")
	if !ok || percent != 75 {
		t.Fatalf("expected 75%%, got %d ok=%v", percent, ok)
	}
}
