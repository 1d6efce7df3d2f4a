// Package ui contains the Bubble Tea program that hosts the demo viewer.
// Model is the root mediator: it owns the single top-level view (no file,
// opening, session or a transient task view), the modals drawn over it, the
// focus router and the background task coordinator.
//
// Frame flow (one Update call is one frame):
//   - Poll the task coordinator. Completion callbacks install a decoded
//     session, raise the load-failure alert or queue a diagnostic report.
//   - Drop the transient task view once its scan is no longer running.
//   - Route the key press: an open modal takes every key, then global keys
//     (open, quit, tool switching), then panel commands, and finally
//     navigation resolved against the focused list.
//   - Draw the active view into the cached frame string. Panels append the
//     events they raise to the frame's batch.
//   - Dispatch the batch top-down through the mediator and the session
//     controller, which forwards to the active panel. Events nobody consumed
//     are written to the diagnostic log.
//
// A non-empty batch schedules an immediate follow-up frame so consumed events
// become visible without waiting for input, and a poll tick keeps frames
// coming while any task runs.
package ui
