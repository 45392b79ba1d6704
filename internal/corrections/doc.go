// Package corrections derives the filter chain a source file needs before
// encoding.
//
// Derivation is a pure function of probe facts and detected crop geometry:
// no process management happens here. The resulting Plan lists filters in
// the fixed order deinterlace, crop, scale. It also carries the
// explanations the UI shows the operator: why deinterlacing applies, what
// the sample aspect ratio did to the target resolution, and which display
// aspect ratio was chosen.
package corrections
