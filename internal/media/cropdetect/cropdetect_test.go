package cropdetect

import "testing"

func box(w, h, x, y int) *Box {
	return &Box{Width: w, Height: h, XOffset: x, YOffset: y}
}

func TestParseLine(t *testing.T) {
	line := "[Parsed_cropdetect_0 @ 0x5571] x1:0 x2:719 y1:80 y2:495 w:720 h:416 x:0 y:80 pts:12345 t:4.1 crop=720:416:0:80"
	parsed, ok := ParseLine(line)
	if !ok {
		t.Fatal("expected a crop rectangle")
	}
	want := Box{Width: 720, Height: 416, XOffset: 0, YOffset: 80}
	if parsed != want {
		t.Fatalf("unexpected rectangle: %+v", parsed)
	}

	if _, ok := ParseLine("frame= 101 fps= 0.0 q=-0.0 size=N/A"); ok {
		t.Fatal("non-crop line should not parse")
	}
	if _, ok := ParseLine("crop=0:0:0:0"); ok {
		t.Fatal("degenerate rectangle should not parse")
	}
}

func TestMajorityTwoOfThreeAgree(t *testing.T) {
	agreed := box(1920, 800, 0, 140)
	got := majority([]*Box{agreed, box(1920, 1036, 0, 2), box(1920, 800, 0, 140)})
	if got == nil || *got != *agreed {
		t.Fatalf("expected majority rectangle, got %+v", got)
	}
}

func TestMajorityAllDisagreeTakesFirstSeen(t *testing.T) {
	first := box(720, 416, 0, 80)
	got := majority([]*Box{first, box(720, 432, 0, 72), box(720, 400, 0, 88)})
	if got == nil || *got != *first {
		t.Fatalf("expected first-seen rectangle, got %+v", got)
	}
}

func TestMajorityNoCropVotesCount(t *testing.T) {
	// Two samples observed nothing; "no crop" wins the vote.
	got := majority([]*Box{nil, box(1920, 800, 0, 140), nil})
	if got != nil {
		t.Fatalf("expected no crop, got %+v", got)
	}
}

func TestMajorityAllEmpty(t *testing.T) {
	if got := majority([]*Box{nil, nil, nil}); got != nil {
		t.Fatalf("expected no crop, got %+v", got)
	}
}

func TestFilterValue(t *testing.T) {
	if got := box(1920, 800, 0, 140).FilterValue(); got != "1920:800:0:140" {
		t.Fatalf("unexpected filter value: %q", got)
	}
}
