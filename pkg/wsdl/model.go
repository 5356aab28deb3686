package wsdl

import "fmt"

// Model is the merged, read-only view over every parsed document of a run.
// Slices keep first-discovery order; maps index them by qualified name.
type Model struct {
	Schemas   []*Schema
	Messages  []*Message
	PortTypes []*PortType
	Bindings  []*Binding
	Services  []*Service

	elements     map[QName]*Element
	complexTypes map[QName]*ComplexType
	simpleTypes  map[QName]*SimpleType
	messages     map[QName]*Message
	portTypes    map[QName]*PortType
	bindings     map[QName]*Binding
	services     map[QName]*Service
}

// NewModel merges docs, in order, into a single model. Two constructs of the
// same kind sharing a qualified name are rejected; complex and simple types
// share the type symbol space.
func NewModel(docs ...*Definitions) (*Model, error) {
	m := &Model{
		elements:     make(map[QName]*Element),
		complexTypes: make(map[QName]*ComplexType),
		simpleTypes:  make(map[QName]*SimpleType),
		messages:     make(map[QName]*Message),
		portTypes:    make(map[QName]*PortType),
		bindings:     make(map[QName]*Binding),
		services:     make(map[QName]*Service),
	}

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, schema := range doc.Schemas {
			if err := m.addSchema(schema); err != nil {
				return nil, err
			}
		}
		for _, msg := range doc.Messages {
			if _, ok := m.messages[msg.Name]; ok {
				return nil, duplicate("message", msg.Name)
			}
			m.messages[msg.Name] = msg
			m.Messages = append(m.Messages, msg)
		}
		for _, pt := range doc.PortTypes {
			if _, ok := m.portTypes[pt.Name]; ok {
				return nil, duplicate("portType", pt.Name)
			}
			m.portTypes[pt.Name] = pt
			m.PortTypes = append(m.PortTypes, pt)
		}
		for _, binding := range doc.Bindings {
			if _, ok := m.bindings[binding.Name]; ok {
				return nil, duplicate("binding", binding.Name)
			}
			m.bindings[binding.Name] = binding
			m.Bindings = append(m.Bindings, binding)
		}
		for _, svc := range doc.Services {
			if _, ok := m.services[svc.Name]; ok {
				return nil, duplicate("service", svc.Name)
			}
			m.services[svc.Name] = svc
			m.Services = append(m.Services, svc)
		}
	}

	return m, nil
}

func (m *Model) addSchema(schema *Schema) error {
	for _, elem := range schema.Elements {
		if _, ok := m.elements[elem.Name]; ok {
			return duplicate("element", elem.Name)
		}
		m.elements[elem.Name] = elem
	}
	for _, ct := range schema.ComplexTypes {
		if m.hasType(ct.Name) {
			return duplicate("complexType", ct.Name)
		}
		m.complexTypes[ct.Name] = ct
	}
	for _, st := range schema.SimpleTypes {
		if m.hasType(st.Name) {
			return duplicate("simpleType", st.Name)
		}
		m.simpleTypes[st.Name] = st
	}
	m.Schemas = append(m.Schemas, schema)
	return nil
}

func (m *Model) hasType(name QName) bool {
	_, isComplex := m.complexTypes[name]
	_, isSimple := m.simpleTypes[name]
	return isComplex || isSimple
}

func duplicate(kind string, name QName) error {
	return &ParseError{
		Kind:    ErrDuplicateDefinition,
		Element: kind,
		Detail:  fmt.Sprintf("%s is declared more than once", name),
	}
}

// Elements returns every global element in declaration order.
func (m *Model) Elements() []*Element {
	var out []*Element
	for _, schema := range m.Schemas {
		out = append(out, schema.Elements...)
	}
	return out
}

// ComplexTypes returns every named complex type in declaration order.
func (m *Model) ComplexTypes() []*ComplexType {
	var out []*ComplexType
	for _, schema := range m.Schemas {
		out = append(out, schema.ComplexTypes...)
	}
	return out
}

// SimpleTypes returns every named simple type in declaration order.
func (m *Model) SimpleTypes() []*SimpleType {
	var out []*SimpleType
	for _, schema := range m.Schemas {
		out = append(out, schema.SimpleTypes...)
	}
	return out
}

func (m *Model) Element(name QName) (*Element, bool) {
	elem, ok := m.elements[name]
	return elem, ok
}

func (m *Model) ComplexType(name QName) (*ComplexType, bool) {
	ct, ok := m.complexTypes[name]
	return ct, ok
}

func (m *Model) SimpleType(name QName) (*SimpleType, bool) {
	st, ok := m.simpleTypes[name]
	return st, ok
}

// HasType reports whether name is a declared complex or simple type.
func (m *Model) HasType(name QName) bool {
	return m.hasType(name)
}

func (m *Model) Message(name QName) (*Message, bool) {
	msg, ok := m.messages[name]
	return msg, ok
}

func (m *Model) PortType(name QName) (*PortType, bool) {
	pt, ok := m.portTypes[name]
	return pt, ok
}

func (m *Model) Binding(name QName) (*Binding, bool) {
	binding, ok := m.bindings[name]
	return binding, ok
}

func (m *Model) Service(name QName) (*Service, bool) {
	svc, ok := m.services[name]
	return svc, ok
}

// ServiceByLocalName finds a service by local name alone, as typed on a
// command line.
func (m *Model) ServiceByLocalName(local string) (*Service, bool) {
	for _, svc := range m.Services {
		if svc.Name.Local == local {
			return svc, true
		}
	}
	return nil, false
}

// Namespaces returns the set of target namespaces provided by parsed schemas.
func (m *Model) Namespaces() map[string]struct{} {
	out := make(map[string]struct{}, len(m.Schemas))
	for _, schema := range m.Schemas {
		out[schema.TargetNamespace] = struct{}{}
	}
	return out
}
