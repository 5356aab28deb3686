package typemap

import (
	"fmt"

	"github.com/pyneda/wsdlgen/pkg/wsdl"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// listItemName is the synthetic element name under which the inline item
// type of a list is declared.
const listItemName = "Element"

// UnmappedReferenceError means a reference survived verification without a
// mapping. It indicates a bug or an unverified model and is always fatal.
type UnmappedReferenceError struct {
	Kind SymbolKind
	Name wsdl.QName
}

func (e *UnmappedReferenceError) Error() string {
	return fmt.Sprintf("unmapped %s reference %s", e.Kind, e.Name)
}

// Mapper converts schema types and elements of a verified model into
// descriptors.
type Mapper struct {
	model    *wsdl.Model
	mapping  *TypeMapping
	builtins Builtins
	logger   zerolog.Logger
}

// NewMapper creates a mapper. mapping must have been built from model.
func NewMapper(model *wsdl.Model, mapping *TypeMapping, builtins Builtins) *Mapper {
	return &Mapper{
		model:    model,
		mapping:  mapping,
		builtins: builtins,
		logger:   log.With().Str("component", "typemap").Logger(),
	}
}

func (m *Mapper) Mapping() *TypeMapping {
	return m.mapping
}

// MapAll maps every named type and then every global element, in the order
// of the identifier pre-pass.
func (m *Mapper) MapAll() ([]Descriptor, error) {
	out := make([]Descriptor, 0, m.mapping.Len())
	for _, sym := range m.mapping.Symbols() {
		var (
			desc Descriptor
			err  error
		)
		switch sym.Kind {
		case SymbolType:
			if ct, ok := m.model.ComplexType(sym.Name); ok {
				desc, err = m.MapComplexType(ct)
			} else if st, ok := m.model.SimpleType(sym.Name); ok {
				desc, err = m.MapSimpleType(st)
			} else {
				err = &UnmappedReferenceError{Kind: sym.Kind, Name: sym.Name}
			}
		case SymbolElement:
			elem, ok := m.model.Element(sym.Name)
			if !ok {
				return nil, &UnmappedReferenceError{Kind: sym.Kind, Name: sym.Name}
			}
			desc, err = m.MapElement(elem)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, desc)
	}
	m.logger.Debug().Int("descriptors", len(out)).Msg("Mapped schema types")
	return out, nil
}

// TypeRef returns the reference to a named or builtin type.
func (m *Mapper) TypeRef(name wsdl.QName) (TypeRef, error) {
	if b, ok := m.builtins[name]; ok {
		return BuiltinRef(b), nil
	}
	id, ok := m.mapping.Identifier(SymbolType, name)
	if !ok {
		return TypeRef{}, &UnmappedReferenceError{Kind: SymbolType, Name: name}
	}
	return Named(id), nil
}

// ElementRef returns the reference to the type generated for a global element.
func (m *Mapper) ElementRef(name wsdl.QName) (TypeRef, error) {
	id, ok := m.mapping.Identifier(SymbolElement, name)
	if !ok {
		return TypeRef{}, &UnmappedReferenceError{Kind: SymbolElement, Name: name}
	}
	return Named(id), nil
}

// MapComplexType maps a named complex type.
func (m *Mapper) MapComplexType(ct *wsdl.ComplexType) (*StructDescriptor, error) {
	id, ok := m.mapping.Identifier(SymbolType, ct.Name)
	if !ok {
		return nil, &UnmappedReferenceError{Kind: SymbolType, Name: ct.Name}
	}
	return m.mapComplex(id, ct.Name, ct)
}

// MapSimpleType maps a named simple type.
func (m *Mapper) MapSimpleType(st *wsdl.SimpleType) (Descriptor, error) {
	id, ok := m.mapping.Identifier(SymbolType, st.Name)
	if !ok {
		return nil, &UnmappedReferenceError{Kind: SymbolType, Name: st.Name}
	}
	return m.mapSimple(id, st.Name, st)
}

// MapElement maps a global element: an alias for a typed element, a struct
// for an element with an inline complex type. Cardinality is applied where
// the element is used, not here.
func (m *Mapper) MapElement(elem *wsdl.Element) (Descriptor, error) {
	id, ok := m.mapping.Identifier(SymbolElement, elem.Name)
	if !ok {
		return nil, &UnmappedReferenceError{Kind: SymbolElement, Name: elem.Name}
	}

	switch content := elem.Content.(type) {
	case wsdl.ElementBase:
		target, err := m.TypeRef(content.Type)
		if err != nil {
			return nil, err
		}
		return &AliasDescriptor{Kind: KindAlias, Name: id, XMLName: elem.Name, Target: target}, nil
	case wsdl.ElementComplex:
		return m.mapComplex(id, elem.Name, content.ComplexType)
	case wsdl.ElementRef:
		target, err := m.ElementRef(content.Ref)
		if err != nil {
			return nil, err
		}
		return &AliasDescriptor{Kind: KindAlias, Name: id, XMLName: elem.Name, Target: target}, nil
	default:
		return nil, fmt.Errorf("element %s has no content", elem.Name)
	}
}

func (m *Mapper) mapComplex(id string, xmlName wsdl.QName, ct *wsdl.ComplexType) (*StructDescriptor, error) {
	desc := &StructDescriptor{
		Kind:       KindStruct,
		Name:       id,
		XMLName:    xmlName,
		Properties: []Property{},
	}

	var seq *wsdl.Sequence
	switch content := ct.Content.(type) {
	case wsdl.Sequence:
		seq = &content
	case wsdl.ComplexContent:
		base, err := m.TypeRef(content.Base)
		if err != nil {
			return nil, err
		}
		desc.Base = &base
		seq = content.Sequence
	case wsdl.Empty:
	}

	if seq == nil {
		return desc, nil
	}

	members := NewScope()
	nested := NewScope(id)
	for _, elem := range seq.Elements {
		prop, nestedDesc, err := m.mapProperty(elem, members, nested)
		if err != nil {
			return nil, err
		}
		desc.Properties = append(desc.Properties, prop)
		if nestedDesc != nil {
			desc.Nested = append(desc.Nested, nestedDesc)
		}
	}
	return desc, nil
}

// mapProperty maps a local element of a sequence. An inline complex type
// becomes a nested descriptor named after the element.
func (m *Mapper) mapProperty(elem *wsdl.Element, members, nested *Scope) (Property, Descriptor, error) {
	prop := Property{
		Name:    members.Claim(camelCase(elem.Name.Local, "value")),
		XMLName: elem.Name,
	}

	var (
		t          TypeRef
		nestedDesc Descriptor
		err        error
	)
	switch content := elem.Content.(type) {
	case wsdl.ElementBase:
		t, err = m.TypeRef(content.Type)
	case wsdl.ElementRef:
		t, err = m.ElementRef(content.Ref)
	case wsdl.ElementComplex:
		name := nested.Claim(pascalCase(elem.Name.Local))
		nestedDesc, err = m.mapComplex(name, elem.Name, content.ComplexType)
		t = Named(name)
	default:
		err = fmt.Errorf("element %s has no content", elem.Name)
	}
	if err != nil {
		return Property{}, nil, err
	}

	prop.Type = Compose(t, elem.Occurs, elem.Nillable)
	return prop, nestedDesc, nil
}

func (m *Mapper) mapSimple(id string, xmlName wsdl.QName, st *wsdl.SimpleType) (Descriptor, error) {
	switch content := st.Content.(type) {
	case wsdl.List:
		item, err := m.TypeRef(content.ItemType)
		if err != nil {
			return nil, err
		}
		return &ListDescriptor{Kind: KindList, Name: id, XMLName: xmlName, Element: item}, nil

	case wsdl.ListWrapped:
		itemName := wsdl.QName{Namespace: xmlName.Namespace, Local: listItemName}
		item, err := m.mapSimple(listItemName, itemName, content.SimpleType)
		if err != nil {
			return nil, err
		}
		return &ListDescriptor{
			Kind:    KindList,
			Name:    id,
			XMLName: xmlName,
			Element: Named(listItemName),
			Nested:  []Descriptor{item},
		}, nil

	case wsdl.Restriction:
		base, err := m.TypeRef(content.Base)
		if err != nil {
			return nil, err
		}
		if len(content.Enumeration) == 0 {
			if content.Pattern != "" {
				m.logger.Debug().Str("type", xmlName.String()).Str("pattern", content.Pattern).Msg("Pattern facet is not enforced")
			}
			return &AliasDescriptor{Kind: KindAlias, Name: id, XMLName: xmlName, Target: base}, nil
		}

		caseNames := NewScope()
		enum := &EnumDescriptor{
			Kind:    KindEnum,
			Name:    id,
			XMLName: xmlName,
			Raw:     base,
			Cases:   make([]EnumCase, 0, len(content.Enumeration)),
		}
		for _, literal := range content.Enumeration {
			enum.Cases = append(enum.Cases, EnumCase{
				Name:     caseNames.Claim(camelCase(literal, "value")),
				RawValue: literal,
			})
		}
		return enum, nil

	default:
		return nil, fmt.Errorf("simple type %s has no content", xmlName)
	}
}
