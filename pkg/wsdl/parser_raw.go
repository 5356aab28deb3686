package wsdl

import "encoding/xml"

// Raw XML parsing structures for WSDL 1.1 and XSD.
// These map directly to XML and are converted to the model by the Parser.
// Children that have no dedicated field land in Other so that unsupported
// constructs are reported instead of silently dropped.

// rawNode captures the name of an otherwise unhandled child element.
type rawNode struct {
	XMLName xml.Name
}

// rawDefinitions is the root WSDL element
type rawDefinitions struct {
	XMLName         xml.Name
	TargetNamespace string          `xml:"targetNamespace,attr"`
	Name            string          `xml:"name,attr"`
	Attrs           []xml.Attr      `xml:",any,attr"`
	Imports         []rawWSDLImport `xml:"import"`
	Types           *rawTypes       `xml:"types"`
	Messages        []rawMessage    `xml:"message"`
	PortTypes       []rawPortType   `xml:"portType"`
	Bindings        []rawBinding    `xml:"binding"`
	Services        []rawService    `xml:"service"`
	Documentation   *rawNode        `xml:"documentation"`
	Other           []rawNode       `xml:",any"`
}

// rawWSDLImport represents wsdl:import
type rawWSDLImport struct {
	Namespace string `xml:"namespace,attr"`
	Location  string `xml:"location,attr"`
}

// rawTypes contains type definitions (XSD schemas)
type rawTypes struct {
	Schemas []rawSchema `xml:"schema"`
}

// rawDocumentation represents wsdl:documentation
type rawDocumentation struct {
	Content string `xml:",chardata"`
}

// rawMessage represents wsdl:message
type rawMessage struct {
	Name  string           `xml:"name,attr"`
	Attrs []xml.Attr       `xml:",any,attr"`
	Parts []rawMessagePart `xml:"part"`
}

// rawMessagePart represents wsdl:part
type rawMessagePart struct {
	Name    string     `xml:"name,attr"`
	Element string     `xml:"element,attr"`
	Type    string     `xml:"type,attr"`
	Attrs   []xml.Attr `xml:",any,attr"`
}

// rawPortType represents wsdl:portType
type rawPortType struct {
	Name          string            `xml:"name,attr"`
	Attrs         []xml.Attr        `xml:",any,attr"`
	Operations    []rawOperation    `xml:"operation"`
	Documentation *rawDocumentation `xml:"documentation"`
}

// rawOperation represents wsdl:operation in portType
type rawOperation struct {
	Name          string            `xml:"name,attr"`
	Attrs         []xml.Attr        `xml:",any,attr"`
	Input         *rawIORef         `xml:"input"`
	Output        *rawIORef         `xml:"output"`
	Documentation *rawDocumentation `xml:"documentation"`
}

// rawIORef represents input/output reference
type rawIORef struct {
	Name    string     `xml:"name,attr"`
	Message string     `xml:"message,attr"`
	Attrs   []xml.Attr `xml:",any,attr"`
}

// rawBinding represents wsdl:binding
type rawBinding struct {
	Name          string                `xml:"name,attr"`
	Type          string                `xml:"type,attr"`
	Attrs         []xml.Attr            `xml:",any,attr"`
	SOAPBinding   *rawSOAPBinding       `xml:"http://schemas.xmlsoap.org/wsdl/soap/ binding"`
	SOAP12Binding *rawSOAPBinding       `xml:"http://schemas.xmlsoap.org/wsdl/soap12/ binding"`
	Operations    []rawBindingOperation `xml:"operation"`
}

// rawSOAPBinding represents soap:binding
type rawSOAPBinding struct {
	Style     string `xml:"style,attr"`
	Transport string `xml:"transport,attr"`
}

// rawBindingOperation represents wsdl:operation in binding
type rawBindingOperation struct {
	Name            string            `xml:"name,attr"`
	SOAPOperation   *rawSOAPOperation `xml:"http://schemas.xmlsoap.org/wsdl/soap/ operation"`
	SOAP12Operation *rawSOAPOperation `xml:"http://schemas.xmlsoap.org/wsdl/soap12/ operation"`
	Input           *rawBindingIO     `xml:"input"`
	Output          *rawBindingIO     `xml:"output"`
}

// rawSOAPOperation represents soap:operation
type rawSOAPOperation struct {
	SOAPAction string `xml:"soapAction,attr"`
	Style      string `xml:"style,attr"`
}

// rawBindingIO represents input/output in binding operation
type rawBindingIO struct {
	SOAPBody   *rawSOAPBody `xml:"http://schemas.xmlsoap.org/wsdl/soap/ body"`
	SOAP12Body *rawSOAPBody `xml:"http://schemas.xmlsoap.org/wsdl/soap12/ body"`
}

// rawSOAPBody represents soap:body
type rawSOAPBody struct {
	Use string `xml:"use,attr"`
}

// rawService represents wsdl:service
type rawService struct {
	Name          string            `xml:"name,attr"`
	Attrs         []xml.Attr        `xml:",any,attr"`
	Ports         []rawPort         `xml:"port"`
	Documentation *rawDocumentation `xml:"documentation"`
}

// rawPort represents wsdl:port
type rawPort struct {
	Name          string          `xml:"name,attr"`
	Binding       string          `xml:"binding,attr"`
	Attrs         []xml.Attr      `xml:",any,attr"`
	SOAPAddress   *rawSOAPAddress `xml:"http://schemas.xmlsoap.org/wsdl/soap/ address"`
	SOAP12Address *rawSOAPAddress `xml:"http://schemas.xmlsoap.org/wsdl/soap12/ address"`
}

// rawSOAPAddress represents soap:address
type rawSOAPAddress struct {
	Location string `xml:"location,attr"`
}

// XSD Raw Structures

// rawSchema represents xsd:schema
type rawSchema struct {
	XMLName            xml.Name
	TargetNamespace    string           `xml:"targetNamespace,attr"`
	ElementFormDefault string           `xml:"elementFormDefault,attr"`
	Attrs              []xml.Attr       `xml:",any,attr"`
	Imports            []rawXSDImport   `xml:"import"`
	Includes           []rawXSDInclude  `xml:"include"`
	Elements           []rawElement     `xml:"element"`
	ComplexTypes       []rawComplexType `xml:"complexType"`
	SimpleTypes        []rawSimpleType  `xml:"simpleType"`
	Other              []rawNode        `xml:",any"`
}

// rawXSDImport represents xsd:import
type rawXSDImport struct {
	Namespace      string `xml:"namespace,attr"`
	SchemaLocation string `xml:"schemaLocation,attr"`
}

// rawXSDInclude represents xsd:include
type rawXSDInclude struct {
	SchemaLocation string `xml:"schemaLocation,attr"`
}

// rawElement represents xsd:element
type rawElement struct {
	Name        string          `xml:"name,attr"`
	Type        string          `xml:"type,attr"`
	Ref         string          `xml:"ref,attr"`
	Form        string          `xml:"form,attr"`
	MinOccurs   string          `xml:"minOccurs,attr"`
	MaxOccurs   string          `xml:"maxOccurs,attr"`
	Nillable    string          `xml:"nillable,attr"`
	Attrs       []xml.Attr      `xml:",any,attr"`
	ComplexType *rawComplexType `xml:"complexType"`
	SimpleType  *rawSimpleType  `xml:"simpleType"`
	Other       []rawNode       `xml:",any"`
}

// rawComplexType represents xsd:complexType
type rawComplexType struct {
	Name           string             `xml:"name,attr"`
	Attrs          []xml.Attr         `xml:",any,attr"`
	Sequence       *rawSequence       `xml:"sequence"`
	ComplexContent *rawComplexContent `xml:"complexContent"`
	Other          []rawNode          `xml:",any"`
}

// rawSequence represents xsd:sequence
type rawSequence struct {
	Attrs    []xml.Attr   `xml:",any,attr"`
	Elements []rawElement `xml:"element"`
	Other    []rawNode    `xml:",any"`
}

// rawComplexContent represents xsd:complexContent
type rawComplexContent struct {
	Attrs       []xml.Attr     `xml:",any,attr"`
	Extension   *rawDerivation `xml:"extension"`
	Restriction *rawDerivation `xml:"restriction"`
	Other       []rawNode      `xml:",any"`
}

// rawDerivation represents xsd:extension or xsd:restriction inside complexContent
type rawDerivation struct {
	Base     string       `xml:"base,attr"`
	Attrs    []xml.Attr   `xml:",any,attr"`
	Sequence *rawSequence `xml:"sequence"`
	Other    []rawNode    `xml:",any"`
}

// rawSimpleType represents xsd:simpleType
type rawSimpleType struct {
	Name        string          `xml:"name,attr"`
	Attrs       []xml.Attr      `xml:",any,attr"`
	Restriction *rawRestriction `xml:"restriction"`
	List        *rawList        `xml:"list"`
	Other       []rawNode       `xml:",any"`
}

// rawRestriction represents xsd:restriction of a simple type
type rawRestriction struct {
	Base        string     `xml:"base,attr"`
	Attrs       []xml.Attr `xml:",any,attr"`
	Enumeration []rawFacet `xml:"enumeration"`
	Pattern     []rawFacet `xml:"pattern"`
	SimpleType  *rawNode   `xml:"simpleType"`
	Other       []rawNode  `xml:",any"`
}

// rawFacet represents a facet such as xsd:enumeration
type rawFacet struct {
	Value string `xml:"value,attr"`
}

// rawList represents xsd:list
type rawList struct {
	ItemType   string         `xml:"itemType,attr"`
	Attrs      []xml.Attr     `xml:",any,attr"`
	SimpleType *rawSimpleType `xml:"simpleType"`
}
