package engine

import (
	"github.com/specialistvlad/topicmapgo/internal/associationstore"
	"github.com/specialistvlad/topicmapgo/internal/characteristicstore"
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/identitystore"
	"github.com/specialistvlad/topicmapgo/internal/reificationstore"
	"github.com/specialistvlad/topicmapgo/internal/scopestore"
	"github.com/specialistvlad/topicmapgo/internal/topictypestore"
	"github.com/specialistvlad/topicmapgo/internal/typedstore"
)

// Stores bundles the stores of one topic map together with the handle of
// the map itself.
type Stores struct {
	Map construct.ID

	Identity        *identitystore.Store
	Scopes          *scopestore.Store
	Typed           *typedstore.Store
	Associations    *associationstore.Store
	Characteristics *characteristicstore.Store
	Reification     *reificationstore.Store
	TopicTypes      *topictypestore.Store
}

// NewStores creates empty stores and registers a fresh topic map handle.
func NewStores() *Stores {
	s := &Stores{
		Map:             construct.NewID(),
		Identity:        identitystore.New(),
		Scopes:          scopestore.New(),
		Typed:           typedstore.New(),
		Associations:    associationstore.New(),
		Characteristics: characteristicstore.New(),
		Reification:     reificationstore.New(),
		TopicTypes:      topictypestore.New(),
	}
	// A fresh handle of a valid kind cannot be rejected.
	_ = s.Identity.RegisterID(construct.TopicMapRef(s.Map))
	return s
}

// MapRef returns the reference of the topic map.
func (s *Stores) MapRef() construct.Ref { return construct.TopicMapRef(s.Map) }

// TypeOf returns the type of a typed construct, or NoID.
func (s *Stores) TypeOf(id construct.ID) construct.ID {
	typ, err := s.Typed.Type(id)
	if err != nil {
		return construct.NoID
	}
	return typ
}

// ScopeOf returns the effective scope of a scoped construct.
func (s *Stores) ScopeOf(id construct.ID) *scopestore.Scope {
	sc, ok := s.Scopes.Scope(id)
	if !ok {
		return scopestore.Empty()
	}
	return sc
}

// OwnerTopic returns the topic owning a name, occurrence or variant.
func (s *Stores) OwnerTopic(ref construct.Ref) (construct.ID, bool) {
	switch ref.Kind {
	case construct.KindName, construct.KindOccurrence:
		return s.Characteristics.Parent(ref.ID)
	case construct.KindVariant:
		name, ok := s.Characteristics.Parent(ref.ID)
		if !ok {
			return construct.NoID, false
		}
		return s.Characteristics.Parent(name)
	case construct.KindTopicMap, construct.KindTopic, construct.KindAssociation, construct.KindRole, construct.KindInvalid:
	}
	return construct.NoID, false
}
