package fixture

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes the top-level content of one fixture file.
type fileRoot struct {
	Base         *string        `hcl:"base,optional"`
	Topics       []*Topic       `hcl:"topic,block"`
	Associations []*Association `hcl:"association,block"`
}

// Topic is a `topic "<label>" { ... }` block.
type Topic struct {
	Label              string        `hcl:"label,label"`
	SubjectIdentifiers []string      `hcl:"subject_identifiers,optional"`
	SubjectLocators    []string      `hcl:"subject_locators,optional"`
	ItemIdentifiers    []string      `hcl:"item_identifiers,optional"`
	Types              []string      `hcl:"types,optional"`
	Supertypes         []string      `hcl:"supertypes,optional"`
	Names              []*Name       `hcl:"name,block"`
	Occurrences        []*Occurrence `hcl:"occurrence,block"`
}

// Name is a `name { ... }` block inside a topic.
type Name struct {
	Type     *string    `hcl:"type,optional"`
	Value    string     `hcl:"value"`
	Scope    []string   `hcl:"scope,optional"`
	Reifier  *string    `hcl:"reifier,optional"`
	Variants []*Variant `hcl:"variant,block"`
}

// Variant is a `variant { ... }` block inside a name. Its scope lists the
// themes it adds to the name's scope.
type Variant struct {
	Value    hcl.Expression `hcl:"value"`
	Datatype *string        `hcl:"datatype,optional"`
	Scope    []string       `hcl:"scope"`
	Reifier  *string        `hcl:"reifier,optional"`
}

// Occurrence is an `occurrence { ... }` block inside a topic.
type Occurrence struct {
	Type     string         `hcl:"type"`
	Value    hcl.Expression `hcl:"value"`
	Datatype *string        `hcl:"datatype,optional"`
	Scope    []string       `hcl:"scope,optional"`
	Reifier  *string        `hcl:"reifier,optional"`
}

// Association is an `association "<type>" { ... }` block.
type Association struct {
	Type    string   `hcl:"type,label"`
	Scope   []string `hcl:"scope,optional"`
	Reifier *string  `hcl:"reifier,optional"`
	Roles   []*Role  `hcl:"role,block"`
}

// Role is a `role "<type>" { player = ... }` block inside an association.
type Role struct {
	Type   string `hcl:"type,label"`
	Player string `hcl:"player"`
}
