package corrections

import (
	"fmt"
	"math"
	"strings"

	"telecine/internal/media/cropdetect"
	"telecine/internal/media/ffprobe"
)

// Filter is one named operation in the derived chain.
type Filter struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

func (f Filter) String() string {
	if f.Value == "" {
		return f.Name
	}
	return f.Name + "=" + f.Value
}

// SARCorrection summarizes a non-square-pixel rescale.
type SARCorrection struct {
	SAR            string `json:"sar"`
	OriginalWidth  int    `json:"original_width"`
	OriginalHeight int    `json:"original_height"`
	TargetWidth    int    `json:"target_width"`
	TargetHeight   int    `json:"target_height"`
}

// Plan is the derived, immutable correction plan for one source file.
type Plan struct {
	Filters []Filter `json:"filters"`
	// DeinterlaceReason is the uppercased original field order when a
	// deinterlace filter applies, empty otherwise.
	DeinterlaceReason string          `json:"deinterlace_reason,omitempty"`
	Crop              *cropdetect.Box `json:"crop,omitempty"`
	SAR               *SARCorrection  `json:"sar,omitempty"`
	// Aspect is the chosen display-aspect-ratio label: the override when
	// one was supplied, otherwise the advisory best guess.
	Aspect AspectLabel `json:"aspect"`
}

// Derive computes the correction plan for a video stream, a detected crop
// rectangle (nil for none), and an optional aspect-ratio override.
func Derive(video ffprobe.Stream, crop *cropdetect.Box, override AspectLabel) Plan {
	plan := Plan{Aspect: AspectNone}
	width := video.Width
	height := video.Height

	if video.Interlaced() {
		plan.Filters = append(plan.Filters, Filter{Name: "yadif"})
		plan.DeinterlaceReason = strings.ToUpper(strings.TrimSpace(video.FieldOrder))
	}

	if crop != nil {
		plan.Crop = crop
		plan.Filters = append(plan.Filters, Filter{Name: "crop", Value: crop.FilterValue()})
		width = crop.Width
		height = crop.Height
	}

	sarNum, sarDen := video.SAR()
	if sarNum != sarDen && width > 0 {
		target := int(math.Round(float64(width) * float64(sarNum) / float64(sarDen)))
		plan.SAR = &SARCorrection{
			SAR:            fmt.Sprintf("%d:%d", sarNum, sarDen),
			OriginalWidth:  width,
			OriginalHeight: height,
			TargetWidth:    target,
			TargetHeight:   height,
		}
		plan.Filters = append(plan.Filters, Filter{Name: "scale", Value: fmt.Sprintf("%d:%d", target, height)})
		width = target
	}

	if override != AspectNone && override.Ratio() > 0 && width > 0 {
		plan.Aspect = override
		targetHeight := int(math.Round(float64(width) / override.Ratio()))
		plan.Filters = append(plan.Filters, Filter{Name: "scale", Value: fmt.Sprintf("%d:%d", width, targetHeight)})
		height = targetHeight
	} else if width > 0 && height > 0 {
		// Square pixels by now; the SAR scale already ran.
		plan.Aspect = GuessAspect(width, height, 1, 1)
	}

	return plan
}

// FilterChain renders the plan as an ffmpeg -vf argument. Empty when the
// source needs no correction.
func (p Plan) FilterChain() string {
	if len(p.Filters) == 0 {
		return ""
	}
	parts := make([]string, len(p.Filters))
	for i, filter := range p.Filters {
		parts[i] = filter.String()
	}
	return strings.Join(parts, ",")
}

// Summary renders the human-readable correction notes shown to the operator.
func (p Plan) Summary() []string {
	var notes []string
	if p.DeinterlaceReason != "" {
		notes = append(notes, fmt.Sprintf("Deinterlace (%s)", p.DeinterlaceReason))
	}
	if p.Crop != nil {
		notes = append(notes, fmt.Sprintf("Crop to %dx%d at offset %d,%d",
			p.Crop.Width, p.Crop.Height, p.Crop.XOffset, p.Crop.YOffset))
	}
	if p.SAR != nil {
		notes = append(notes, fmt.Sprintf("Rescale %dx%d to %dx%d (sample aspect ratio %s)",
			p.SAR.OriginalWidth, p.SAR.OriginalHeight, p.SAR.TargetWidth, p.SAR.TargetHeight, p.SAR.SAR))
	}
	if p.Aspect != AspectNone {
		notes = append(notes, fmt.Sprintf("Display aspect ratio %s", p.Aspect))
	}
	return notes
}
