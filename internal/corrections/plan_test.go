package corrections

import (
	"strings"
	"testing"

	"telecine/internal/media/cropdetect"
	"telecine/internal/media/ffprobe"
)

func TestDeriveSARCorrection(t *testing.T) {
	video := ffprobe.Stream{
		CodecType:         "video",
		Width:             720,
		Height:            576,
		SampleAspectRatio: "10:11",
		FieldOrder:        "progressive",
	}

	plan := Derive(video, nil, AspectNone)

	if plan.SAR == nil {
		t.Fatal("expected SAR correction")
	}
	if plan.SAR.SAR != "10:11" {
		t.Fatalf("unexpected SAR note: %q", plan.SAR.SAR)
	}
	if plan.SAR.TargetWidth != 655 || plan.SAR.TargetHeight != 576 {
		t.Fatalf("unexpected target resolution: %dx%d", plan.SAR.TargetWidth, plan.SAR.TargetHeight)
	}
	if got := plan.FilterChain(); got != "scale=655:576" {
		t.Fatalf("unexpected filter chain: %q", got)
	}
	if plan.DeinterlaceReason != "" {
		t.Fatalf("progressive source should not deinterlace, reason=%q", plan.DeinterlaceReason)
	}
}

func TestDeriveDeinterlace(t *testing.T) {
	for _, order := range []string{"tt", "bb", "tb", "bt"} {
		video := ffprobe.Stream{CodecType: "video", Width: 1920, Height: 1080, FieldOrder: order}
		plan := Derive(video, nil, AspectNone)
		if len(plan.Filters) == 0 || plan.Filters[0].Name != "yadif" {
			t.Fatalf("field order %q: expected leading yadif filter, got %+v", order, plan.Filters)
		}
		if plan.DeinterlaceReason != strings.ToUpper(order) {
			t.Fatalf("field order %q: unexpected reason %q", order, plan.DeinterlaceReason)
		}
	}

	progressive := ffprobe.Stream{CodecType: "video", Width: 1920, Height: 1080, FieldOrder: "progressive"}
	plan := Derive(progressive, nil, AspectNone)
	for _, filter := range plan.Filters {
		if filter.Name == "yadif" {
			t.Fatal("progressive source must not deinterlace")
		}
	}
}

func TestDeriveFilterOrdering(t *testing.T) {
	video := ffprobe.Stream{
		CodecType:         "video",
		Width:             720,
		Height:            576,
		SampleAspectRatio: "64:45",
		FieldOrder:        "tt",
	}
	crop := &cropdetect.Box{Width: 720, Height: 432, XOffset: 0, YOffset: 72}

	plan := Derive(video, crop, AspectNone)

	var names []string
	for _, filter := range plan.Filters {
		names = append(names, filter.Name)
	}
	want := []string{"yadif", "crop", "scale"}
	if len(names) != len(want) {
		t.Fatalf("unexpected filters: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("filter %d: got %q want %q (chain %v)", i, names[i], want[i], names)
		}
	}
	// Scale works on post-crop width: round(720 * 64/45) = 1024.
	if plan.Filters[2].Value != "1024:432" {
		t.Fatalf("unexpected scale: %q", plan.Filters[2].Value)
	}
}

func TestDeriveManualAspect(t *testing.T) {
	video := ffprobe.Stream{CodecType: "video", Width: 1920, Height: 1080}
	crop := &cropdetect.Box{Width: 1920, Height: 1036, XOffset: 0, YOffset: 22}

	plan := Derive(video, crop, Aspect239x1)

	if plan.Aspect != Aspect239x1 {
		t.Fatalf("unexpected aspect label: %q", plan.Aspect)
	}
	last := plan.Filters[len(plan.Filters)-1]
	// round(1920 / 2.39) = 803
	if last.Name != "scale" || last.Value != "1920:803" {
		t.Fatalf("unexpected final scale: %+v", last)
	}
}

func TestDeriveGuessesAspect(t *testing.T) {
	cases := []struct {
		width, height int
		sar           string
		want          AspectLabel
	}{
		{1920, 1080, "", Aspect16x9},
		{1920, 800, "", Aspect239x1},
		{1920, 1040, "", Aspect185x1},
		{720, 576, "16:15", Aspect4x3},
		{1000, 437, "", AspectNone}, // 2.288: nearest option is 2.39, diff 0.102 exceeds tolerance
	}
	for _, tc := range cases {
		video := ffprobe.Stream{CodecType: "video", Width: tc.width, Height: tc.height, SampleAspectRatio: tc.sar}
		plan := Derive(video, nil, AspectNone)
		if plan.Aspect != tc.want {
			t.Fatalf("%dx%d sar=%q: guessed %q, want %q", tc.width, tc.height, tc.sar, plan.Aspect, tc.want)
		}
	}
}

func TestGuessAspectTolerance(t *testing.T) {
	// 1.85 vs 16:9 (1.778): a 1.85:1 frame is within 0.1 of both; closest wins.
	if got := GuessAspect(1850, 1000, 1, 1); got != Aspect185x1 {
		t.Fatalf("expected 1.85:1, got %q", got)
	}
	// Far from every option.
	if got := GuessAspect(1000, 1000, 1, 1); got != AspectNone {
		t.Fatalf("square frame should guess None, got %q", got)
	}
}

func TestParseAspectLabel(t *testing.T) {
	if label, ok := ParseAspectLabel("2.39:1"); !ok || label != Aspect239x1 {
		t.Fatalf("parse failed: %q %v", label, ok)
	}
	if label, ok := ParseAspectLabel(""); !ok || label != AspectNone {
		t.Fatalf("empty should mean None: %q %v", label, ok)
	}
	if _, ok := ParseAspectLabel("21:9"); ok {
		t.Fatal("unknown label should be rejected")
	}
}

func TestPlanSummary(t *testing.T) {
	video := ffprobe.Stream{
		CodecType:         "video",
		Width:             720,
		Height:            576,
		SampleAspectRatio: "10:11",
		FieldOrder:        "tt",
	}
	plan := Derive(video, &cropdetect.Box{Width: 720, Height: 540, YOffset: 18}, AspectNone)
	summary := plan.Summary()
	if len(summary) < 3 {
		t.Fatalf("expected deinterlace, crop, and SAR notes, got %v", summary)
	}
}
