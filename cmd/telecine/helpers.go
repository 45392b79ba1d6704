package main

import (
	"fmt"
	"time"
)

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.2f GiB", float64(bytes)/(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatProgress(percent int) string {
	return fmt.Sprintf("%d%%", percent)
}

// estimatedFinalSize projects the output size from live progress; zero when
// no projection is possible yet.
func estimatedFinalSize(outputBytes int64, progress int) int64 {
	if outputBytes <= 0 || progress <= 0 {
		return 0
	}
	return outputBytes * 100 / int64(progress)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
