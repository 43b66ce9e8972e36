package index

import (
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/engine"
)

// SupertypeSubtype walks the supertype-subtype hierarchy. Transitive
// queries terminate on cyclic hierarchies.
type SupertypeSubtype struct {
	src Source
}

func (x *SupertypeSubtype) query(topic construct.ID, fn func(*engine.Stores, construct.ID) []construct.ID) []construct.ID {
	topic = x.src.Current(topic)
	var out []construct.ID
	x.src.View(func(s *engine.Stores) {
		out = fn(s, topic)
	})
	return out
}

// Supertypes returns the direct supertypes of topic.
func (x *SupertypeSubtype) Supertypes(topic construct.ID) []construct.ID {
	return x.query(topic, func(s *engine.Stores, t construct.ID) []construct.ID {
		return s.TopicTypes.DirectSupertypes(t)
	})
}

// Subtypes returns the direct subtypes of topic.
func (x *SupertypeSubtype) Subtypes(topic construct.ID) []construct.ID {
	return x.query(topic, func(s *engine.Stores, t construct.ID) []construct.ID {
		return s.TopicTypes.DirectSubtypes(t)
	})
}

// SupertypesTransitive returns every supertype reachable from topic.
func (x *SupertypeSubtype) SupertypesTransitive(topic construct.ID) []construct.ID {
	return x.query(topic, func(s *engine.Stores, t construct.ID) []construct.ID {
		return s.TopicTypes.Supertypes(t)
	})
}

// SubtypesTransitive returns every subtype reaching topic.
func (x *SupertypeSubtype) SubtypesTransitive(topic construct.ID) []construct.ID {
	return x.query(topic, func(s *engine.Stores, t construct.ID) []construct.ID {
		return s.TopicTypes.Subtypes(t)
	})
}

// TypesTransitive returns the direct types of instance and all their
// supertypes.
func (x *SupertypeSubtype) TypesTransitive(instance construct.ID) []construct.ID {
	return x.query(instance, func(s *engine.Stores, t construct.ID) []construct.ID {
		return s.TopicTypes.Types(t)
	})
}
