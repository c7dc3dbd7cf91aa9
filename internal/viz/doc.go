// Package viz provides the terminal view of a running height sweep.
//
// [Model] is a Bubble Tea program that evaluates one height per command,
// so the screen refreshes between heights and the sweep can be paused or
// abandoned:
//
//	Space - Pause/Resume
//	T     - Cycle color themes
//	Q     - Quit (keeps the heights finished so far)
//
// After the program exits, [Model.Result] returns the completed points.
package viz
