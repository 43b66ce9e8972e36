package index

import (
	"regexp"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/engine"
)

// Literal finds names, occurrences and variants by value and datatype.
// Value lookups are exact; ByPattern scans every distinct value.
type Literal struct {
	src Source
}

// ByValue returns the constructs of kind whose value is value. KindInvalid
// matches names, occurrences and variants alike.
func (x *Literal) ByValue(kind construct.Kind, value string) []construct.ID {
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = ofKind(s.Characteristics.ByValue(value), kind)
	})
	return out
}

// ByValueAndDatatype returns the occurrences or variants with both value and
// datatype.
func (x *Literal) ByValueAndDatatype(kind construct.Kind, value string, datatype construct.Locator) []construct.ID {
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		for _, id := range ofKind(s.Characteristics.ByValue(value), kind) {
			if s.Characteristics.Datatype(id) == datatype {
				out = append(out, id)
			}
		}
	})
	return out
}

// ByPattern returns the constructs of kind whose value matches re.
func (x *Literal) ByPattern(kind construct.Kind, re *regexp.Regexp) []construct.ID {
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = ofKind(s.Characteristics.ByPattern(re), kind)
	})
	return out
}

// ByDatatype returns the occurrences or variants with datatype.
func (x *Literal) ByDatatype(kind construct.Kind, datatype construct.Locator) []construct.ID {
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = ofKind(s.Characteristics.ByDatatype(datatype), kind)
	})
	return out
}

// Names returns the names with value.
func (x *Literal) Names(value string) []construct.ID {
	return x.ByValue(construct.KindName, value)
}

// Occurrences returns the occurrences with value.
func (x *Literal) Occurrences(value string) []construct.ID {
	return x.ByValue(construct.KindOccurrence, value)
}

// Variants returns the variants with value.
func (x *Literal) Variants(value string) []construct.ID {
	return x.ByValue(construct.KindVariant, value)
}
