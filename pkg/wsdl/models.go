package wsdl

// Definitions is a single parsed WSDL 1.1 document, or a standalone XSD
// document wrapped as definitions with only Schemas set.
type Definitions struct {
	TargetNamespace string      `json:"target_namespace"`
	Name            string      `json:"name,omitempty"`
	Imports         []Import    `json:"-"` // For internal resolution only
	Schemas         []*Schema   `json:"schemas,omitempty"`
	Messages        []*Message  `json:"messages"`
	PortTypes       []*PortType `json:"port_types"`
	Bindings        []*Binding  `json:"bindings"`
	Services        []*Service  `json:"services"`
}

// Service represents a WSDL service (collection of ports/endpoints)
type Service struct {
	Name          QName  `json:"name"`
	Documentation string `json:"documentation,omitempty"`
	Ports         []Port `json:"ports"`
}

// SOAPVersion identifies the SOAP binding namespace of an address or binding.
type SOAPVersion string

const (
	SOAP11 SOAPVersion = "1.1"
	SOAP12 SOAPVersion = "1.2"
)

// Address is the endpoint of a port, SOAP 1.1 or SOAP 1.2.
type Address struct {
	Version  SOAPVersion `json:"version"`
	Location string      `json:"location"`
}

// Port represents a single endpoint (binding + address)
type Port struct {
	Name    string  `json:"name"`
	Binding QName   `json:"binding"`
	Address Address `json:"address"`
}

// Style is the SOAP binding style of an operation.
type Style string

const (
	StyleDocument Style = "document"
	StyleRPC      Style = "rpc"
)

// Use is the encoding of an operation input or output.
type Use string

const (
	UseLiteral Use = "literal"
	UseEncoded Use = "encoded"
)

// Binding represents the concrete protocol binding for a port type
type Binding struct {
	Name       QName              `json:"name"`
	Type       QName              `json:"type"` // reference to portType
	Version    SOAPVersion        `json:"soap_version"`
	Operations []BindingOperation `json:"operations"`
}

// BindingOperation defines operation-level binding details
type BindingOperation struct {
	Name      string `json:"name"`
	Action    string `json:"soap_action,omitempty"`
	Style     Style  `json:"style"`
	InputUse  Use    `json:"input_use"`
	OutputUse Use    `json:"output_use"`
}

// PortType defines abstract operation signatures (interface)
type PortType struct {
	Name          QName       `json:"name"`
	Documentation string      `json:"documentation,omitempty"`
	Operations    []Operation `json:"operations"`
}

// Operation defines a single request/response operation
type Operation struct {
	Name          string `json:"name"`
	Documentation string `json:"documentation,omitempty"`
	Input         QName  `json:"input"`
	Output        QName  `json:"output"`
}

// Message defines an abstract data definition
type Message struct {
	Name  QName         `json:"name"`
	Parts []MessagePart `json:"parts"`
}

// MessagePart references either an element (document style) or a type (rpc style).
type MessagePart struct {
	Name    string `json:"name"`
	Element *QName `json:"element,omitempty"`
	Type    *QName `json:"type,omitempty"`
}
