package index

import (
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/engine"
)

// TypeInstance answers which constructs are typed by which topics: topic
// types through the type-instance relation, and the types of names,
// occurrences, associations and roles.
type TypeInstance struct {
	src Source
}

// TopicTypes returns every topic that is the type of some topic.
func (x *TypeInstance) TopicTypes() []construct.ID {
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = s.TopicTypes.TopicTypes()
	})
	return out
}

// Topics returns the direct instances of typ.
func (x *TypeInstance) Topics(typ construct.ID) []construct.ID {
	typ = x.src.Current(typ)
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = s.TopicTypes.DirectInstances(typ)
	})
	return out
}

// TopicsTransitive returns the instances of typ and of all its subtypes.
func (x *TypeInstance) TopicsTransitive(typ construct.ID) []construct.ID {
	typ = x.src.Current(typ)
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = s.TopicTypes.Instances(typ)
	})
	return out
}

// TopicsOfTypes returns the topics that are direct instances of any of
// types, or of all of them when matchAll is set. No types selects the
// topics that have no type.
func (x *TypeInstance) TopicsOfTypes(matchAll bool, types ...construct.ID) []construct.ID {
	types = current(x.src, types)
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		if len(types) == 0 {
			for _, t := range s.Identity.IDs(construct.KindTopic) {
				if len(s.TopicTypes.DirectTypes(t)) == 0 {
					out = append(out, t)
				}
			}
			return
		}
		sets := make([]construct.IDSet, len(types))
		for i, typ := range types {
			sets[i] = construct.NewIDSet(s.TopicTypes.DirectInstances(typ)...)
		}
		out = combine(sets, matchAll)
	})
	return out
}

// Types returns the topics used as the type of constructs of kind.
// KindTopic yields the topic types.
func (x *TypeInstance) Types(kind construct.Kind) []construct.ID {
	if kind == construct.KindTopic {
		return x.TopicTypes()
	}
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = s.Typed.Types(kind)
	})
	return out
}

// Typed returns the constructs of kind typed by typ. KindTopic yields the
// direct instances of typ.
func (x *TypeInstance) Typed(kind construct.Kind, typ construct.ID) []construct.ID {
	if kind == construct.KindTopic {
		return x.Topics(typ)
	}
	typ = x.src.Current(typ)
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = s.Typed.TypedBy(typ, kind)
	})
	return out
}

// Names returns the names typed by typ.
func (x *TypeInstance) Names(typ construct.ID) []construct.ID {
	return x.Typed(construct.KindName, typ)
}

// Occurrences returns the occurrences typed by typ.
func (x *TypeInstance) Occurrences(typ construct.ID) []construct.ID {
	return x.Typed(construct.KindOccurrence, typ)
}

// Associations returns the associations typed by typ.
func (x *TypeInstance) Associations(typ construct.ID) []construct.ID {
	return x.Typed(construct.KindAssociation, typ)
}

// Roles returns the roles typed by typ.
func (x *TypeInstance) Roles(typ construct.ID) []construct.ID {
	return x.Typed(construct.KindRole, typ)
}
