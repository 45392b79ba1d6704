// Package procgroup starts child processes in their own process group and
// terminates the whole group on request.
//
// ffmpeg and similar encode back-ends may spawn helper processes; signalling
// only the direct child leaves orphans running. Spawning the child as a
// process group leader lets a single signal to the negative PGID reach the
// entire tree.
package procgroup
