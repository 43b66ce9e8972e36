package construct

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// ID is the internal handle of a construct. Handles are unique within the
// process and never reused, and are distinct from the TMDM identifiers
// (item identifiers, subject identifiers, subject locators).
type ID uint64

// NoID is the zero handle. It never identifies a construct.
const NoID ID = 0

var lastID atomic.Uint64

// NewID allocates the next process-unique handle.
func NewID() ID {
	return ID(lastID.Add(1))
}

// String renders the handle as a decimal number.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Ref pairs a handle with the kind of construct it names.
type Ref struct {
	Kind Kind
	ID   ID
}

// IsZero reports whether r refers to nothing.
func (r Ref) IsZero() bool {
	return r.ID == NoID
}

func (r Ref) String() string {
	if r.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}

// TopicRef returns a reference to the topic with handle id.
func TopicRef(id ID) Ref { return Ref{Kind: KindTopic, ID: id} }

// NameRef returns a reference to the name with handle id.
func NameRef(id ID) Ref { return Ref{Kind: KindName, ID: id} }

// OccurrenceRef returns a reference to the occurrence with handle id.
func OccurrenceRef(id ID) Ref { return Ref{Kind: KindOccurrence, ID: id} }

// VariantRef returns a reference to the variant with handle id.
func VariantRef(id ID) Ref { return Ref{Kind: KindVariant, ID: id} }

// AssociationRef returns a reference to the association with handle id.
func AssociationRef(id ID) Ref { return Ref{Kind: KindAssociation, ID: id} }

// RoleRef returns a reference to the role with handle id.
func RoleRef(id ID) Ref { return Ref{Kind: KindRole, ID: id} }

// TopicMapRef returns a reference to the topic map with handle id.
func TopicMapRef(id ID) Ref { return Ref{Kind: KindTopicMap, ID: id} }
