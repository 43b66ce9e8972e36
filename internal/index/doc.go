// Package index provides read-only queries over a topic map: instances by
// type, constructs by theme, characteristics by literal value and the
// supertype-subtype hierarchy.
//
// Indexes hold no state of their own. Every query takes a shared view of
// the map's stores, so results reflect the map as soon as a mutating call
// returns. Handles absorbed by a merge or a duplicate collapse are resolved
// to their survivor before the query runs.
package index
