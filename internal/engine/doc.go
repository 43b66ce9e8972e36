// Package engine coordinates the seven stores of a topic map. It owns the
// only code paths allowed to call the cross-store Replace operations: topic
// merging and duplicate collapsing. It also implements the removal
// cascades, which dissolve every edge of a construct before the owning store
// forgets it.
//
// Merging runs on an explicit LIFO worklist instead of recursion. Each task
// either merges two topics or checks one topic or association for
// duplicates. A collapse that has to merge two reifiers pushes the merge on
// top of a re-check of the construct it came from, so cascades complete
// depth-first before the enclosing check continues, and the loop ends when a
// check finds nothing to collapse.
//
// An Engine is not safe for concurrent use.
package engine
