package ffprobe

import (
	"errors"
	"testing"
)

func TestResultStreamHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", CodecName: "mpeg2video", Width: 720, Height: 576},
			{CodecType: "audio", CodecName: "ac3", Channels: 6, ChannelLayout: "5.1(side)", Tags: StreamTags{Language: "eng"}},
			{CodecType: "audio", CodecName: "aac", Channels: 2, Tags: StreamTags{Language: "fra"}},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if len(result.VideoStreams()) != 1 {
		t.Fatalf("expected 1 video stream, got %d", len(result.VideoStreams()))
	}
	if len(result.AudioStreams()) != 2 {
		t.Fatalf("expected 2 audio streams, got %d", len(result.AudioStreams()))
	}
	duration, err := result.DurationSeconds()
	if err != nil {
		t.Fatalf("DurationSeconds: %v", err)
	}
	if duration != 123.45 {
		t.Fatalf("unexpected duration: %v", duration)
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	primary, ok := result.PrimaryVideoStream()
	if !ok || primary.CodecName != "mpeg2video" {
		t.Fatalf("unexpected primary video stream: %+v ok=%v", primary, ok)
	}
}

func TestDurationSecondsFailsOnBadInput(t *testing.T) {
	for _, value := range []string{"", "N/A", "bogus", "-3"} {
		result := Result{Format: Format{Duration: value}}
		if _, err := result.DurationSeconds(); !errors.Is(err, ErrUnparsableDuration) {
			t.Fatalf("duration %q: expected ErrUnparsableDuration, got %v", value, err)
		}
	}
}

func TestStreamSAR(t *testing.T) {
	cases := []struct {
		raw      string
		num, den int
	}{
		{"10:11", 10, 11},
		{"1:1", 1, 1},
		{"", 1, 1},
		{"0:1", 1, 1},
		{"N/A", 1, 1},
		{"64:45", 64, 45},
	}
	for _, tc := range cases {
		stream := Stream{SampleAspectRatio: tc.raw}
		num, den := stream.SAR()
		if num != tc.num || den != tc.den {
			t.Fatalf("SAR(%q) = %d:%d, want %d:%d", tc.raw, num, den, tc.num, tc.den)
		}
	}
	if (Stream{SampleAspectRatio: "10:11"}).HasSquarePixels() {
		t.Fatal("10:11 should not be square")
	}
	if !(Stream{}).HasSquarePixels() {
		t.Fatal("missing SAR should default to square")
	}
}

func TestStreamInterlaced(t *testing.T) {
	cases := map[string]bool{
		"progressive": false,
		"":            false,
		"unknown":     false,
		"tt":          true,
		"bb":          true,
		"tb":          true,
	}
	for order, want := range cases {
		if got := (Stream{FieldOrder: order}).Interlaced(); got != want {
			t.Fatalf("Interlaced(%q) = %v, want %v", order, got, want)
		}
	}
}

func TestAudioLabel(t *testing.T) {
	stream := Stream{
		CodecType:     "audio",
		CodecName:     "dts",
		Channels:      6,
		ChannelLayout: "5.1(side)",
		Tags:          StreamTags{Language: "eng"},
	}
	if got := stream.AudioLabel(); got != "English - dts (5.1(side))" {
		t.Fatalf("unexpected label: %q", got)
	}

	noLayout := Stream{CodecType: "audio", CodecName: "aac", Channels: 2}
	if got := noLayout.AudioLabel(); got != "Unknown - aac (2ch)" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestLanguageDisplayName(t *testing.T) {
	if LanguageDisplayName("fre") != "French" {
		t.Fatalf("alt code lookup failed: %q", LanguageDisplayName("fre"))
	}
	if LanguageDisplayName("") != "Unknown" {
		t.Fatal("empty tag should map to Unknown")
	}
	if LanguageDisplayName("xx") != "Xx" {
		t.Fatalf("unrecognized tag should title-case: %q", LanguageDisplayName("xx"))
	}
}
