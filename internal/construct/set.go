package construct

import "slices"

// IDSet is an unordered set of handles.
type IDSet map[ID]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...ID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id ID) { s[id] = struct{}{} }

func (s IDSet) Remove(id ID) { delete(s, id) }

func (s IDSet) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int { return len(s) }

// Sorted returns the members in ascending handle order. Handles grow
// monotonically, so this is also creation order.
func (s IDSet) Sorted() []ID {
	out := make([]ID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// SortIDs sorts ids in place and returns them.
func SortIDs(ids []ID) []ID {
	slices.Sort(ids)
	return ids
}
