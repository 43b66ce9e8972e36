// Package topicmap is the public, mutating face of a topic map.
//
// Every operation either succeeds with the graph updated and all model
// invariants restored, or reports an error with the graph unchanged.
// Identifier collisions never fail: adding an identifier another topic
// already holds merges the two topics, and the topic that held the
// identifier first survives. Handles of absorbed topics keep working;
// every operation resolves them to the surviving topic first, and Current
// does the same for callers.
//
// Creating a name, occurrence, variant, role or association equal to an
// existing one returns the existing construct, and a setter that makes two
// constructs equal collapses them, so the map never holds duplicates.
//
// A TopicMap serializes its callers with one read/write lock.
package topicmap
