// Package proximity detects which markers have a close neighbour on the
// projected plane.
//
// All distances are in pixels and all comparisons use squared Euclidean
// distance, so no square roots are taken on the hot path. A marker is "near"
// another when their squared distance is strictly below threshold².
//
// [Compute] performs one detection pass over a marker set. It is a direct
// O(n²) scan with one pruning rule: once an outer marker has been compared
// against every other marker and found no neighbour, later outer markers skip
// it. The pass assumes positions do not change while it runs. It is meant for
// the few hundred markers a map view shows at once, not for bulk spatial
// indexing.
//
// The package also carries the small geometry shared by the spider engine:
// [DistanceSq], [Near], and [Centroid].
package proximity
