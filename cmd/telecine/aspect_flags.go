package main

import "telecine/internal/corrections"

func aspectFlagValues() []string {
	labels := corrections.AspectLabels()
	values := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == corrections.AspectNone {
			continue
		}
		values = append(values, string(label))
	}
	return values
}
