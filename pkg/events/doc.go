// Package events implements the notification bus of the spider engine.
//
// A [Bus] has four named channels, each with its own callback shape:
//
//   - click: a tracked marker was clicked and nothing fanned out
//   - spiderfy: a cluster fanned out; receives the spiderfied markers and the
//     markers left outside the cluster
//   - unspiderfy: a cluster collapsed; receives the restored markers and the
//     markers that were never part of it
//   - format: a marker's [Status] changed or was recomputed
//
// Subscribing returns a [Subscription] handle; Go funcs are not comparable,
// so the handle carries the identity used for removal. Publishing is
// synchronous and walks subscribers in registration order over a snapshot,
// so a handler may subscribe or unsubscribe while it runs without affecting
// the publish in progress.
//
// The bus is not safe for concurrent use. It lives inside the engine's single
// event-handling context.
package events
