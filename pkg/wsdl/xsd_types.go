package wsdl

import "sort"

// Schema is one XSD schema, either embedded in a WSDL types section or
// loaded from a standalone document.
type Schema struct {
	TargetNamespace string         `json:"target_namespace,omitempty"`
	Imports         []Import       `json:"-"`
	Includes        []Include      `json:"-"`
	Elements        []*Element     `json:"elements,omitempty"`
	ComplexTypes    []*ComplexType `json:"complex_types,omitempty"`
	SimpleTypes     []*SimpleType  `json:"simple_types,omitempty"`
}

// Import represents xsd:import or wsdl:import
type Import struct {
	Namespace      string `json:"namespace,omitempty"`
	SchemaLocation string `json:"schema_location,omitempty"`
}

// Include represents xsd:include (same namespace)
type Include struct {
	SchemaLocation string `json:"schema_location,omitempty"`
}

// SimpleType represents a simple type definition. Name is zero for anonymous types.
type SimpleType struct {
	Name    QName         `json:"name"`
	Content SimpleContent `json:"content"`
}

// SimpleContent is one of Restriction, List or ListWrapped.
type SimpleContent interface {
	isSimpleContent()
}

// Restriction restricts a base type. Only enumeration is honored; a pattern is
// kept for reference and never enforced.
type Restriction struct {
	Base        QName    `json:"base"`
	Enumeration []string `json:"enumeration,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
}

// List is a whitespace separated list of ItemType values.
type List struct {
	ItemType QName `json:"item_type"`
}

// ListWrapped is a list whose item type is declared inline.
type ListWrapped struct {
	SimpleType *SimpleType `json:"simple_type"`
}

func (Restriction) isSimpleContent() {}
func (List) isSimpleContent()        {}
func (ListWrapped) isSimpleContent() {}

// ComplexType represents a complex type definition. Name is zero for anonymous types.
type ComplexType struct {
	Name    QName        `json:"name"`
	Content ComplexModel `json:"content"`
}

// ComplexModel is one of Sequence, ComplexContent or Empty.
type ComplexModel interface {
	isComplexModel()
}

// Sequence represents xsd:sequence (ordered elements)
type Sequence struct {
	Elements []*Element `json:"elements"`
}

// Derivation is the kind of a complexContent derivation.
type Derivation string

const (
	DerivationRestriction Derivation = "restriction"
	DerivationExtension   Derivation = "extension"
)

// ComplexContent derives from Base. A nil Sequence means the derivation adds
// no elements of its own.
type ComplexContent struct {
	Base       QName      `json:"base"`
	Derivation Derivation `json:"derivation"`
	Sequence   *Sequence  `json:"sequence,omitempty"`
}

// Empty is a complex type without content.
type Empty struct{}

func (Sequence) isComplexModel()       {}
func (ComplexContent) isComplexModel() {}
func (Empty) isComplexModel()          {}

// Element represents an element declaration, global or local.
type Element struct {
	Name     QName          `json:"name"`
	Content  ElementContent `json:"content"`
	Occurs   *Occurs        `json:"occurs,omitempty"`
	Nillable bool           `json:"nillable,omitempty"`
}

// ElementContent is one of ElementBase, ElementComplex or ElementRef.
type ElementContent interface {
	isElementContent()
}

// ElementBase types an element by reference to a named type.
type ElementBase struct {
	Type QName `json:"type"`
}

// ElementComplex types an element with an inline complex type.
type ElementComplex struct {
	ComplexType *ComplexType `json:"complex_type"`
}

// ElementRef declares a local element by reference to a global one.
type ElementRef struct {
	Ref QName `json:"ref"`
}

func (ElementBase) isElementContent()    {}
func (ElementComplex) isElementContent() {}
func (ElementRef) isElementContent()     {}

// Occurs is the (minOccurs, maxOccurs) pair of an element, written [Min, Max)
// in the cardinality table. A nil *Occurs means both attributes were absent.
type Occurs struct {
	Min       int  `json:"min"`
	Max       int  `json:"max,omitempty"`
	Unbounded bool `json:"unbounded,omitempty"`
}

// IsOptional reports [0,1).
func (o *Occurs) IsOptional() bool {
	return o != nil && !o.Unbounded && o.Min == 0 && o.Max == 1
}

// IsSingle reports an absent range or [1,1).
func (o *Occurs) IsSingle() bool {
	return o == nil || (!o.Unbounded && o.Min == 1 && o.Max == 1)
}

// Common XSD namespace constants
const (
	XSDNamespace    = "http://www.w3.org/2001/XMLSchema"
	SOAP11Namespace = "http://schemas.xmlsoap.org/wsdl/soap/"
	SOAP12Namespace = "http://schemas.xmlsoap.org/wsdl/soap12/"
	WSDLNamespace   = "http://schemas.xmlsoap.org/wsdl/"
	XMLNamespace    = "http://www.w3.org/XML/1998/namespace"

	// SOAP envelope namespaces
	SOAP11EnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	SOAP12EnvelopeNS = "http://www.w3.org/2003/05/soap-envelope"
	SOAPEncodingNS   = "http://schemas.xmlsoap.org/soap/encoding/"

	// Transport
	SOAPHTTPTransport = "http://schemas.xmlsoap.org/soap/http"
)

// XSD built-in type names
const (
	XSDString             = "string"
	XSDBoolean            = "boolean"
	XSDDecimal            = "decimal"
	XSDFloat              = "float"
	XSDDouble             = "double"
	XSDDuration           = "duration"
	XSDDateTime           = "dateTime"
	XSDTime               = "time"
	XSDDate               = "date"
	XSDGYearMonth         = "gYearMonth"
	XSDGYear              = "gYear"
	XSDGMonthDay          = "gMonthDay"
	XSDGDay               = "gDay"
	XSDGMonth             = "gMonth"
	XSDHexBinary          = "hexBinary"
	XSDBase64Binary       = "base64Binary"
	XSDAnyURI             = "anyURI"
	XSDQName              = "QName"
	XSDNOTATION           = "NOTATION"
	XSDNormalizedString   = "normalizedString"
	XSDToken              = "token"
	XSDLanguage           = "language"
	XSDNMTOKEN            = "NMTOKEN"
	XSDNMTOKENS           = "NMTOKENS"
	XSDName               = "Name"
	XSDNCName             = "NCName"
	XSDID                 = "ID"
	XSDIDREF              = "IDREF"
	XSDIDREFS             = "IDREFS"
	XSDENTITY             = "ENTITY"
	XSDENTITIES           = "ENTITIES"
	XSDInteger            = "integer"
	XSDNonPositiveInteger = "nonPositiveInteger"
	XSDNegativeInteger    = "negativeInteger"
	XSDLong               = "long"
	XSDInt                = "int"
	XSDShort              = "short"
	XSDByte               = "byte"
	XSDNonNegativeInteger = "nonNegativeInteger"
	XSDUnsignedLong       = "unsignedLong"
	XSDUnsignedInt        = "unsignedInt"
	XSDUnsignedShort      = "unsignedShort"
	XSDUnsignedByte       = "unsignedByte"
	XSDPositiveInteger    = "positiveInteger"
	XSDAnyType            = "anyType"
	XSDAnySimpleType      = "anySimpleType"
)

// BuiltinTypes is the set of predefined type names that references may use
// without a declaration. It is passed explicitly to the verifier and the type
// mapper so an alternate set can be supplied.
type BuiltinTypes struct {
	names map[QName]struct{}
}

// NewBuiltinTypes creates a builtin set of the given local names in namespace.
func NewBuiltinTypes(namespace string, locals ...string) BuiltinTypes {
	b := BuiltinTypes{names: make(map[QName]struct{}, len(locals))}
	for _, local := range locals {
		b.names[QName{Namespace: namespace, Local: local}] = struct{}{}
	}
	return b
}

// XSD2001Builtins returns the builtin types of XML Schema 1.0 (2001 namespace).
func XSD2001Builtins() BuiltinTypes {
	return NewBuiltinTypes(XSDNamespace,
		XSDString, XSDBoolean, XSDDecimal, XSDFloat, XSDDouble, XSDDuration,
		XSDDateTime, XSDTime, XSDDate, XSDGYearMonth, XSDGYear, XSDGMonthDay,
		XSDGDay, XSDGMonth, XSDHexBinary, XSDBase64Binary, XSDAnyURI, XSDQName,
		XSDNOTATION, XSDNormalizedString, XSDToken, XSDLanguage, XSDNMTOKEN,
		XSDNMTOKENS, XSDName, XSDNCName, XSDID, XSDIDREF, XSDIDREFS, XSDENTITY,
		XSDENTITIES, XSDInteger, XSDNonPositiveInteger, XSDNegativeInteger,
		XSDLong, XSDInt, XSDShort, XSDByte, XSDNonNegativeInteger,
		XSDUnsignedLong, XSDUnsignedInt, XSDUnsignedShort, XSDUnsignedByte,
		XSDPositiveInteger, XSDAnyType, XSDAnySimpleType,
	)
}

// Contains reports whether name is a builtin type.
func (b BuiltinTypes) Contains(name QName) bool {
	_, ok := b.names[name]
	return ok
}

// Names returns the builtin names in sorted order.
func (b BuiltinTypes) Names() []QName {
	out := make([]QName, 0, len(b.names))
	for name := range b.names {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Len returns the number of builtin names.
func (b BuiltinTypes) Len() int {
	return len(b.names)
}
