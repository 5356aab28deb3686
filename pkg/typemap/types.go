package typemap

import (
	"fmt"

	"github.com/pyneda/wsdlgen/pkg/wsdl"
)

// Builtin is a primitive of the target type system.
type Builtin string

const (
	BuiltinString   Builtin = "string"
	BuiltinBool     Builtin = "bool"
	BuiltinInt      Builtin = "int"
	BuiltinInt8     Builtin = "int8"
	BuiltinInt16    Builtin = "int16"
	BuiltinInt32    Builtin = "int32"
	BuiltinInt64    Builtin = "int64"
	BuiltinUint8    Builtin = "uint8"
	BuiltinUint16   Builtin = "uint16"
	BuiltinUint32   Builtin = "uint32"
	BuiltinUint64   Builtin = "uint64"
	BuiltinFloat32  Builtin = "float32"
	BuiltinFloat64  Builtin = "float64"
	BuiltinDecimal  Builtin = "decimal"
	BuiltinDate     Builtin = "date"
	BuiltinDateTime Builtin = "dateTime"
	BuiltinTime     Builtin = "time"
	BuiltinDuration Builtin = "duration"
	BuiltinBytes    Builtin = "bytes"
	BuiltinURL      Builtin = "url"
	BuiltinQName    Builtin = "qname"
	BuiltinAny      Builtin = "any"
)

// Builtins maps predefined schema type names to target primitives.
type Builtins map[wsdl.QName]Builtin

// XSDBuiltins returns the mapping for every XML Schema 1.0 builtin type.
func XSDBuiltins() Builtins {
	table := map[string]Builtin{
		wsdl.XSDString:             BuiltinString,
		wsdl.XSDNormalizedString:   BuiltinString,
		wsdl.XSDToken:              BuiltinString,
		wsdl.XSDLanguage:           BuiltinString,
		wsdl.XSDNMTOKEN:            BuiltinString,
		wsdl.XSDNMTOKENS:           BuiltinString,
		wsdl.XSDName:               BuiltinString,
		wsdl.XSDNCName:             BuiltinString,
		wsdl.XSDID:                 BuiltinString,
		wsdl.XSDIDREF:              BuiltinString,
		wsdl.XSDIDREFS:             BuiltinString,
		wsdl.XSDENTITY:             BuiltinString,
		wsdl.XSDENTITIES:           BuiltinString,
		wsdl.XSDNOTATION:           BuiltinString,
		wsdl.XSDGYearMonth:         BuiltinString,
		wsdl.XSDGYear:              BuiltinString,
		wsdl.XSDGMonthDay:          BuiltinString,
		wsdl.XSDGDay:               BuiltinString,
		wsdl.XSDGMonth:             BuiltinString,
		wsdl.XSDBoolean:            BuiltinBool,
		wsdl.XSDDecimal:            BuiltinDecimal,
		wsdl.XSDFloat:              BuiltinFloat32,
		wsdl.XSDDouble:             BuiltinFloat64,
		wsdl.XSDInteger:            BuiltinInt,
		wsdl.XSDNonPositiveInteger: BuiltinInt,
		wsdl.XSDNegativeInteger:    BuiltinInt,
		wsdl.XSDNonNegativeInteger: BuiltinInt,
		wsdl.XSDPositiveInteger:    BuiltinInt,
		wsdl.XSDLong:               BuiltinInt64,
		wsdl.XSDInt:                BuiltinInt32,
		wsdl.XSDShort:              BuiltinInt16,
		wsdl.XSDByte:               BuiltinInt8,
		wsdl.XSDUnsignedLong:       BuiltinUint64,
		wsdl.XSDUnsignedInt:        BuiltinUint32,
		wsdl.XSDUnsignedShort:      BuiltinUint16,
		wsdl.XSDUnsignedByte:       BuiltinUint8,
		wsdl.XSDDuration:           BuiltinDuration,
		wsdl.XSDDateTime:           BuiltinDateTime,
		wsdl.XSDTime:               BuiltinTime,
		wsdl.XSDDate:               BuiltinDate,
		wsdl.XSDHexBinary:          BuiltinBytes,
		wsdl.XSDBase64Binary:       BuiltinBytes,
		wsdl.XSDAnyURI:             BuiltinURL,
		wsdl.XSDQName:              BuiltinQName,
		wsdl.XSDAnyType:            BuiltinAny,
		wsdl.XSDAnySimpleType:      BuiltinAny,
	}

	out := make(Builtins, len(table))
	for local, builtin := range table {
		out[wsdl.QName{Namespace: wsdl.XSDNamespace, Local: local}] = builtin
	}
	return out
}

// RefKind discriminates TypeRef.
type RefKind string

const (
	RefBuiltin  RefKind = "builtin"
	RefNamed    RefKind = "named"
	RefOptional RefKind = "optional"
	RefNillable RefKind = "nillable"
	RefArray    RefKind = "array"
)

// TypeRef is a use of a type: a primitive, a generated type by identifier, or
// a wrapper around another reference.
type TypeRef struct {
	Kind    RefKind  `json:"kind" yaml:"kind"`
	Builtin Builtin  `json:"builtin,omitempty" yaml:"builtin,omitempty"`
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Elem    *TypeRef `json:"elem,omitempty" yaml:"elem,omitempty"`
}

func BuiltinRef(b Builtin) TypeRef {
	return TypeRef{Kind: RefBuiltin, Builtin: b}
}

func Named(name string) TypeRef {
	return TypeRef{Kind: RefNamed, Name: name}
}

func Optional(t TypeRef) TypeRef {
	return TypeRef{Kind: RefOptional, Elem: &t}
}

func Nillable(t TypeRef) TypeRef {
	return TypeRef{Kind: RefNillable, Elem: &t}
}

func Array(t TypeRef) TypeRef {
	return TypeRef{Kind: RefArray, Elem: &t}
}

// String renders the reference as optional(nillable(T)) and so on.
func (t TypeRef) String() string {
	switch t.Kind {
	case RefBuiltin:
		return string(t.Builtin)
	case RefNamed:
		return t.Name
	case RefOptional, RefNillable, RefArray:
		if t.Elem == nil {
			return fmt.Sprintf("%s(?)", t.Kind)
		}
		return fmt.Sprintf("%s(%s)", t.Kind, t.Elem.String())
	default:
		return "unknown"
	}
}

// Compose applies the cardinality and nillability of a declaration to t:
//
//	nillable  occurs              result
//	false     [0,1)               optional(T)
//	true      [0,1)               optional(nillable(T))
//	false     absent or [1,1)     T
//	true      absent or [1,1)     nillable(T)
//	false     anything else       array(T)
//	true      anything else       array(nillable(T))
func Compose(t TypeRef, occurs *wsdl.Occurs, nillable bool) TypeRef {
	if nillable {
		t = Nillable(t)
	}
	switch {
	case occurs.IsOptional():
		return Optional(t)
	case occurs.IsSingle():
		return t
	default:
		return Array(t)
	}
}
