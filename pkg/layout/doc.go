// Package layout generates the foot points a spiderfied cluster fans out to.
//
// Two arrangements exist:
//
//   - [Circle] places count points evenly on a ring whose circumference grows
//     with count, so neighbouring feet stay roughly FootSeparation apart.
//   - [Spiral] walks an Archimedean-like spiral whose leg length grows with
//     every step. It scales to larger clusters without the ring growing huge.
//
// [Params.ModeFor] picks circle below the switchover count and spiral at or
// above it. [Feet] returns the points in the order they should be matched to
// markers: spiral points are reversed so the outermost feet are matched first,
// which reduces crossing legs.
//
// All coordinates are pixels on the projected plane.
package layout
