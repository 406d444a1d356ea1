// Package wait provides the blocking wait strategies used to track a
// remote batch job to completion.
//
// A [Strategy] exposes three phases, each blocking until its condition
// holds or failing on timeout:
//
//   - WaitExists: the handle resolves to any known status (guards
//     against eventual-consistency lag right after submission)
//   - WaitRunning: the job has reached RUNNING or gone terminal
//   - WaitComplete: the job has reached SUCCEEDED or FAILED
//
// Two implementations exist. [Poller] polls describe calls with a
// bounded retry [Budget] and exponential backoff. [External] delegates
// each phase to a caller-supplied [ConditionWaiter], letting advanced
// callers substitute push-based completion notification without
// changing the controller.
//
// "Complete" is weaker than "succeeded": a job completes by failing,
// too. The controller re-confirms the terminal status against the
// service after the strategy returns; strategies only establish that a
// terminal state was reached.
package wait
