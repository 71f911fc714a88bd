// Package schedule provides the debounced deferred task the spider engine
// uses for status recomputation.
//
// A [Task] moves through three states:
//
//	Unscheduled --Request--> Pending --delay--> Fired --Request--> Pending ...
//
// Requests made while the task is Pending are coalesced into the pending run.
// When the task fires before its readiness condition holds, it subscribes once
// to a readiness notification and runs when that arrives; further fires while
// it is already waiting do nothing.
//
// The task does not own a run loop. It is driven by a [Scheduler]:
//
//   - [Manual] queues callbacks until the owner pumps them with Advance or
//     Flush. Tests and single-threaded hosts use it.
//   - [Timer] runs callbacks on time.AfterFunc goroutines while holding a
//     caller-supplied lock, so they serialize with every other entry point
//     guarded by the same lock.
package schedule
