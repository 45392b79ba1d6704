// Package cropdetect samples a source file with ffmpeg's cropdetect filter
// and reconciles the samples into a single crop rectangle.
//
// A single sample is easily corrupted by letterboxed title cards, black
// frames, or logos, so detection decodes three short windows at 20%, 50%,
// and 80% of the container duration and takes the majority value among the
// per-sample results. The cropdetect filter refines its estimate as it
// observes frames, so the last rectangle a sample reports is authoritative
// for that sample. Samples that fail or observe nothing vote "no crop"
// rather than failing the whole detection.
package cropdetect
