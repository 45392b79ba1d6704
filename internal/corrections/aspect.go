package corrections

import "math"

// AspectLabel names one of the display aspect ratios the operator can target.
type AspectLabel string

const (
	AspectNone  AspectLabel = "None"
	Aspect4x3   AspectLabel = "4:3"
	Aspect16x9  AspectLabel = "16:9"
	Aspect185x1 AspectLabel = "1.85:1"
	Aspect200x1 AspectLabel = "2.00:1"
	Aspect239x1 AspectLabel = "2.39:1"
)

// aspectGuessTolerance is the maximum distance between a displayed ratio and
// an enumerated option for the option to be offered as a best guess.
const aspectGuessTolerance = 0.1

var aspectLabels = []AspectLabel{AspectNone, Aspect4x3, Aspect16x9, Aspect185x1, Aspect200x1, Aspect239x1}

var aspectRatios = map[AspectLabel]float64{
	Aspect4x3:   4.0 / 3.0,
	Aspect16x9:  16.0 / 9.0,
	Aspect185x1: 1.85,
	Aspect200x1: 2.00,
	Aspect239x1: 2.39,
}

// AspectLabels returns the selectable labels in presentation order.
func AspectLabels() []AspectLabel {
	cp := make([]AspectLabel, len(aspectLabels))
	copy(cp, aspectLabels)
	return cp
}

// ParseAspectLabel validates a user-supplied label. Empty input means None.
func ParseAspectLabel(value string) (AspectLabel, bool) {
	if value == "" {
		return AspectNone, true
	}
	for _, label := range aspectLabels {
		if string(label) == value {
			return label, true
		}
	}
	return AspectNone, false
}

// Ratio returns the numeric width/height ratio of the label, or 0 for None.
func (l AspectLabel) Ratio() float64 {
	return aspectRatios[l]
}

// GuessAspect picks the enumerated option closest to the displayed aspect
// ratio of a frame, accepting it only when the difference is inside the
// tolerance. The guess is advisory: it seeds the selector but never changes
// confirmed output.
func GuessAspect(width, height, sarNum, sarDen int) AspectLabel {
	if width <= 0 || height <= 0 || sarNum <= 0 || sarDen <= 0 {
		return AspectNone
	}
	displayed := float64(width) * float64(sarNum) / float64(sarDen) / float64(height)

	best := AspectNone
	bestDiff := math.Inf(1)
	for _, label := range aspectLabels {
		if label == AspectNone {
			continue
		}
		diff := math.Abs(displayed - label.Ratio())
		if diff < bestDiff {
			best = label
			bestDiff = diff
		}
	}
	if bestDiff >= aspectGuessTolerance {
		return AspectNone
	}
	return best
}
