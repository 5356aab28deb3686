package typemap

import (
	"github.com/pyneda/wsdlgen/pkg/wsdl"
)

// SymbolKind separates element names from type names; a schema may declare
// an element and a type with the same qualified name.
type SymbolKind string

const (
	SymbolType    SymbolKind = "type"
	SymbolElement SymbolKind = "element"
)

// Symbol is a named schema construct.
type Symbol struct {
	Kind SymbolKind
	Name wsdl.QName
}

// TypeMapping assigns every named type and global element a unique target
// identifier. It is built once and never changed.
type TypeMapping struct {
	ids   map[Symbol]string
	order []Symbol
}

// NewTypeMapping runs the identifier pre-pass over a verified model. Types
// are named first, then elements, both in declaration order. An identifier
// equal to a builtin name or to one of reserved gets a Type suffix; an element
// whose identifier is already taken gets an Element suffix; any remaining
// clash is resolved with a numeric suffix.
func NewTypeMapping(model *wsdl.Model, builtins Builtins, reserved ...string) *TypeMapping {
	m := &TypeMapping{ids: make(map[Symbol]string)}

	forbidden := make(map[string]bool)
	for _, b := range builtins {
		forbidden[pascalCase(string(b))] = true
	}
	for _, r := range reserved {
		forbidden[r] = true
	}
	used := NewScope()
	for id := range forbidden {
		used.used[id] = true
	}

	base := func(name wsdl.QName) string {
		id := pascalCase(name.Local)
		if forbidden[id] {
			id += "Type"
		}
		return id
	}

	for _, schema := range model.Schemas {
		for _, ct := range schema.ComplexTypes {
			m.add(Symbol{Kind: SymbolType, Name: ct.Name}, used.Claim(base(ct.Name)))
		}
		for _, st := range schema.SimpleTypes {
			m.add(Symbol{Kind: SymbolType, Name: st.Name}, used.Claim(base(st.Name)))
		}
	}
	for _, elem := range model.Elements() {
		id := base(elem.Name)
		if used.Taken(id) {
			id += "Element"
		}
		m.add(Symbol{Kind: SymbolElement, Name: elem.Name}, used.Claim(id))
	}

	return m
}

func (m *TypeMapping) add(sym Symbol, id string) {
	m.ids[sym] = id
	m.order = append(m.order, sym)
}

// Identifier returns the identifier assigned to a symbol.
func (m *TypeMapping) Identifier(kind SymbolKind, name wsdl.QName) (string, bool) {
	id, ok := m.ids[Symbol{Kind: kind, Name: name}]
	return id, ok
}

// Symbols returns every mapped symbol in assignment order.
func (m *TypeMapping) Symbols() []Symbol {
	return m.order
}

func (m *TypeMapping) Len() int {
	return len(m.ids)
}
