package construct

// Kind is the closed set of construct kinds. Stores switch over it instead of
// testing dynamic types, so every switch below lists all kinds explicitly.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTopicMap
	KindTopic
	KindName
	KindOccurrence
	KindVariant
	KindAssociation
	KindRole
)

// Kinds lists every valid kind in declaration order.
var Kinds = []Kind{
	KindTopicMap,
	KindTopic,
	KindName,
	KindOccurrence,
	KindVariant,
	KindAssociation,
	KindRole,
}

func (k Kind) String() string {
	switch k {
	case KindTopicMap:
		return "topicmap"
	case KindTopic:
		return "topic"
	case KindName:
		return "name"
	case KindOccurrence:
		return "occurrence"
	case KindVariant:
		return "variant"
	case KindAssociation:
		return "association"
	case KindRole:
		return "role"
	case KindInvalid:
		return "invalid"
	}
	return "unknown"
}

// IsTyped reports whether constructs of this kind carry exactly one type.
func (k Kind) IsTyped() bool {
	switch k {
	case KindName, KindOccurrence, KindAssociation, KindRole:
		return true
	case KindTopicMap, KindTopic, KindVariant, KindInvalid:
		return false
	}
	return false
}

// IsScoped reports whether constructs of this kind carry a scope.
func (k Kind) IsScoped() bool {
	switch k {
	case KindName, KindOccurrence, KindVariant, KindAssociation:
		return true
	case KindTopicMap, KindTopic, KindRole, KindInvalid:
		return false
	}
	return false
}

// IsReifiable reports whether constructs of this kind may be reified.
func (k Kind) IsReifiable() bool {
	switch k {
	case KindTopicMap, KindName, KindOccurrence, KindVariant, KindAssociation, KindRole:
		return true
	case KindTopic, KindInvalid:
		return false
	}
	return false
}

// IsValued reports whether constructs of this kind carry a literal value.
func (k Kind) IsValued() bool {
	switch k {
	case KindName, KindOccurrence, KindVariant:
		return true
	case KindTopicMap, KindTopic, KindAssociation, KindRole, KindInvalid:
		return false
	}
	return false
}

// HasDatatype reports whether the value of constructs of this kind is typed
// by a datatype locator.
func (k Kind) HasDatatype() bool {
	return k == KindOccurrence || k == KindVariant
}
