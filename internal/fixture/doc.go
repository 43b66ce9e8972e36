// Package fixture loads topic maps written in HCL.
//
// A fixture file holds topic and association blocks:
//
//	base = "http://example.org/map"
//
//	topic "berlin" {
//	  subject_identifiers = ["http://example.org/berlin"]
//	  types               = ["city"]
//	  name { value = "Berlin" }
//	  occurrence {
//	    type  = "population"
//	    value = 3600000
//	  }
//	}
//
//	association "located-in" {
//	  role "part"  { player = "berlin" }
//	  role "whole" { player = "germany" }
//	}
//
// Every topic reference is one of si:<iri>, sl:<iri>, ii:<iri> or a bare
// label, which stands for the item identifier <base>#<label>. References
// are resolved through the map's identifier lookups and create topics on
// demand, so two blocks naming the same subject end up merged.
//
// Literal values keep their HCL type unless a datatype is given: strings
// become xsd:string, whole numbers xsd:integer, other numbers xsd:decimal
// and booleans xsd:boolean.
package fixture
