// Package spider fans out overlapping map markers so each one can be clicked,
// and collapses them again afterwards.
//
// An [Engine] watches a set of tracked markers on a host [Surface]. When a
// marker is clicked and other visible markers sit within NearbyDistance pixels
// of it, the engine "spiderfies" them: every marker in the neighbourhood moves
// to its own foot point on a circle or spiral around the group's centroid, and
// a leg is drawn from its original position to the foot. A background click,
// a zoom or map-type change, or a click on a spiderfied marker collapses the
// cluster again and restores every position and stacking order exactly.
//
// # Host integration
//
// The engine never draws or projects anything itself. A binding for a map
// widget implements [Surface], [Projection], [Marker], and [Leg]; the
// pkg/scene package is a headless implementation used by tests and the CLI.
// Marker implementations are used as map keys and must be comparable, which
// pointer types always are.
//
// # Lifecycle
//
// The engine is a four-state machine:
//
//	Normal -> Spiderfying -> Spiderfied -> Unspiderfying -> Normal
//
// Only one cluster is spiderfied at a time. Moving markers during a transition
// makes the host raise the same position-changed notifications a user drag
// would; the engine ignores marker notifications while Spiderfying or
// Unspiderfying so its own side effects never re-enter it.
//
// # Notifications
//
// [Engine.Events] exposes a typed bus with click, spiderfy, unspiderfy, and
// format channels. Format statuses are recomputed by a debounced task after
// markers are added, removed, hidden, or moved; several requests in one tick
// collapse into a single pass, which waits for the surface to become ready
// when it fires too early.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Every entry point, including the
// deferred format task, must run on the host's single event-handling context.
// Hosts that deliver events from several goroutines should serialize them,
// for example with schedule.Timer and a shared mutex.
//
// # Errors
//
// The only run-time failure is [ErrProjectionNotReady], returned by pixel
// queries made before the surface has a projection. Tracking a marker twice,
// untracking an unknown marker, or collapsing when nothing is spiderfied are
// no-ops.
package spider
