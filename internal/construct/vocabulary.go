package construct

// XSD datatype locators.
const (
	XSD = "http://www.w3.org/2001/XMLSchema#"

	DatatypeString   Locator = XSD + "string"
	DatatypeAnyURI   Locator = XSD + "anyURI"
	DatatypeInteger  Locator = XSD + "integer"
	DatatypeDecimal  Locator = XSD + "decimal"
	DatatypeBoolean  Locator = XSD + "boolean"
	DatatypeDate     Locator = XSD + "date"
	DatatypeDateTime Locator = XSD + "dateTime"
)

// DefaultNameType is the subject identifier of the type given to names
// created without an explicit type.
const DefaultNameType Locator = "http://psi.topicmaps.org/iso13250/model/topic-name"
