package scopestore

import (
	"cmp"
	"slices"
)

func sortRescoped(rs []Rescoped) []Rescoped {
	slices.SortFunc(rs, func(a, b Rescoped) int { return cmp.Compare(a.Construct.ID, b.Construct.ID) })
	return rs
}
