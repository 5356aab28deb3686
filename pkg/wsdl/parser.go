package wsdl

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// DocumentKind is the vocabulary of a document's root element.
type DocumentKind string

const (
	DocumentWSDL DocumentKind = "wsdl"
	DocumentXSD  DocumentKind = "xsd"
)

// Parser converts a single WSDL or XSD document into Definitions. It does
// not follow imports; that is the loader's job.
type Parser struct {
	// Warnings collects recoverable problems (dropped bindings, operations
	// and ports) of the last parsed document.
	Warnings []error
}

// NewParser creates a new WSDL parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseDocument parses data as either a WSDL definitions document or a
// standalone XSD schema, detected from the root element. chameleon, when not
// empty, is the namespace adopted by a schema that declares none (xs:include).
func (p *Parser) ParseDocument(data []byte, location, chameleon string) (*Definitions, DocumentKind, error) {
	p.Warnings = nil

	root, err := rootElement(data)
	if err != nil {
		return nil, "", &ParseError{Kind: ErrMalformedXML, Location: location, Err: err}
	}

	switch {
	case root.Space == WSDLNamespace && root.Local == "definitions":
		doc, err := p.ParseWSDL(data, location)
		return doc, DocumentWSDL, err
	case root.Space == XSDNamespace && root.Local == "schema":
		doc, err := p.ParseXSD(data, location, chameleon)
		return doc, DocumentXSD, err
	default:
		return nil, "", &ParseError{
			Kind:     ErrIncorrectRootElement,
			Element:  MakeTypeKey(root.Space, root.Local),
			Detail:   "expected wsdl:definitions or xsd:schema",
			Location: location,
		}
	}
}

// ParseWSDL parses a WSDL 1.1 definitions document.
func (p *Parser) ParseWSDL(data []byte, location string) (*Definitions, error) {
	var raw rawDefinitions
	if err := decode(data, &raw); err != nil {
		return nil, &ParseError{Kind: ErrMalformedXML, Location: location, Err: err}
	}
	if raw.XMLName.Space != WSDLNamespace || raw.XMLName.Local != "definitions" {
		return nil, &ParseError{
			Kind:     ErrIncorrectRootElement,
			Element:  MakeTypeKey(raw.XMLName.Space, raw.XMLName.Local),
			Location: location,
		}
	}

	doc, err := p.convertRawWSDL(&raw)
	if err != nil {
		return nil, withLocation(err, location)
	}
	return doc, nil
}

// ParseXSD parses a standalone XSD schema document.
func (p *Parser) ParseXSD(data []byte, location, chameleon string) (*Definitions, error) {
	var raw rawSchema
	if err := decode(data, &raw); err != nil {
		return nil, &ParseError{Kind: ErrMalformedXML, Location: location, Err: err}
	}
	if raw.XMLName.Space != XSDNamespace || raw.XMLName.Local != "schema" {
		return nil, &ParseError{
			Kind:     ErrIncorrectRootElement,
			Element:  MakeTypeKey(raw.XMLName.Space, raw.XMLName.Local),
			Location: location,
		}
	}

	schema, err := p.convertRawSchema(&raw, NewNamespaceMap(), chameleon)
	if err != nil {
		return nil, withLocation(err, location)
	}
	return &Definitions{
		TargetNamespace: schema.TargetNamespace,
		Schemas:         []*Schema{schema},
	}, nil
}

func decode(data []byte, v any) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder.Decode(v)
}

// rootElement returns the name of the first start element.
func rootElement(data []byte) (xml.Name, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.Name{}, fmt.Errorf("document has no root element")
			}
			return xml.Name{}, err
		}
		if start, ok := token.(xml.StartElement); ok {
			return start.Name, nil
		}
	}
}

func withLocation(err error, location string) error {
	var perr *ParseError
	if errors.As(err, &perr) && perr.Location == "" {
		perr.Location = location
	}
	return err
}

// schemaContext carries what name resolution needs inside one schema.
type schemaContext struct {
	ns               *NamespaceMap
	targetNamespace  string
	qualifiedLocals  bool
	chameleonInclude bool
}

// ref resolves a QName-valued attribute.
func (c *schemaContext) ref(element, attribute, value string) (QName, error) {
	q, ok := c.ns.Resolve(value)
	if !ok {
		return QName{}, &ParseError{
			Kind:      ErrInvalidAttribute,
			Element:   element,
			Attribute: attribute,
			Detail:    fmt.Sprintf("undeclared namespace prefix in %q", value),
		}
	}
	if q.Namespace == "" && c.chameleonInclude {
		q.Namespace = c.targetNamespace
	}
	return q, nil
}

// within returns the context of a nested element, overlaid with the
// namespace declarations that element carries.
func (c *schemaContext) within(attrs []xml.Attr) *schemaContext {
	if !declaresNamespace(attrs) {
		return c
	}
	child := *c
	child.ns = c.ns.With(attrs)
	return &child
}

func declaresNamespace(attrs []xml.Attr) bool {
	for _, attr := range attrs {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			return true
		}
	}
	return false
}

// convertRawWSDL converts raw XML structures to the model
func (p *Parser) convertRawWSDL(raw *rawDefinitions) (*Definitions, error) {
	ns := NewNamespaceMap().With(raw.Attrs)
	tns := raw.TargetNamespace

	for _, other := range raw.Other {
		if other.XMLName.Space == WSDLNamespace {
			return nil, &ParseError{
				Kind:    ErrUnsupportedConstruct,
				Element: "wsdl:" + other.XMLName.Local,
			}
		}
		log.Debug().Str("element", MakeTypeKey(other.XMLName.Space, other.XMLName.Local)).Msg("Ignoring extension element")
	}

	doc := &Definitions{
		TargetNamespace: tns,
		Name:            raw.Name,
		Imports:         make([]Import, 0, len(raw.Imports)),
		Messages:        make([]*Message, 0, len(raw.Messages)),
		PortTypes:       make([]*PortType, 0, len(raw.PortTypes)),
		Bindings:        make([]*Binding, 0, len(raw.Bindings)),
		Services:        make([]*Service, 0, len(raw.Services)),
	}

	for _, imp := range raw.Imports {
		doc.Imports = append(doc.Imports, Import{
			Namespace:      imp.Namespace,
			SchemaLocation: imp.Location,
		})
	}

	if raw.Types != nil {
		for i := range raw.Types.Schemas {
			schema, err := p.convertRawSchema(&raw.Types.Schemas[i], ns, "")
			if err != nil {
				return nil, err
			}
			doc.Schemas = append(doc.Schemas, schema)
		}
	}

	ctx := &schemaContext{ns: ns, targetNamespace: tns}

	for i := range raw.Messages {
		msg, err := p.convertRawMessage(&raw.Messages[i], ctx)
		if err != nil {
			return nil, err
		}
		doc.Messages = append(doc.Messages, msg)
	}

	for i := range raw.PortTypes {
		pt, err := p.convertRawPortType(&raw.PortTypes[i], ctx)
		if err != nil {
			return nil, err
		}
		doc.PortTypes = append(doc.PortTypes, pt)
	}

	for i := range raw.Bindings {
		binding, err := p.convertRawBinding(&raw.Bindings[i], ctx)
		if err != nil {
			var berr *BindingParseError
			if errors.As(err, &berr) {
				p.warn(berr)
				continue
			}
			return nil, err
		}
		doc.Bindings = append(doc.Bindings, binding)
	}

	for i := range raw.Services {
		svc, err := p.convertRawService(&raw.Services[i], ctx)
		if err != nil {
			return nil, err
		}
		doc.Services = append(doc.Services, svc)
	}

	return doc, nil
}

func (p *Parser) warn(err error) {
	p.Warnings = append(p.Warnings, err)
	log.Warn().Err(err).Msg("Dropping unsupported WSDL construct")
}

// convertRawSchema converts raw XSD schema to the model
func (p *Parser) convertRawSchema(raw *rawSchema, parent *NamespaceMap, chameleon string) (*Schema, error) {
	ctx := &schemaContext{
		ns:              parent.With(raw.Attrs),
		targetNamespace: raw.TargetNamespace,
		qualifiedLocals: raw.ElementFormDefault == "qualified",
	}
	if ctx.targetNamespace == "" && chameleon != "" {
		ctx.targetNamespace = chameleon
		ctx.chameleonInclude = true
	}

	for _, other := range raw.Other {
		switch other.XMLName.Local {
		case "annotation", "attribute", "attributeGroup", "notation":
			log.Debug().Str("construct", other.XMLName.Local).Str("namespace", ctx.targetNamespace).Msg("Ignoring schema construct")
		default:
			return nil, &ParseError{Kind: ErrUnsupportedConstruct, Element: "xsd:" + other.XMLName.Local}
		}
	}

	schema := &Schema{
		TargetNamespace: ctx.targetNamespace,
		Imports:         make([]Import, 0, len(raw.Imports)),
		Includes:        make([]Include, 0, len(raw.Includes)),
		Elements:        make([]*Element, 0, len(raw.Elements)),
		ComplexTypes:    make([]*ComplexType, 0, len(raw.ComplexTypes)),
		SimpleTypes:     make([]*SimpleType, 0, len(raw.SimpleTypes)),
	}

	for _, imp := range raw.Imports {
		schema.Imports = append(schema.Imports, Import{
			Namespace:      imp.Namespace,
			SchemaLocation: imp.SchemaLocation,
		})
	}

	for _, inc := range raw.Includes {
		schema.Includes = append(schema.Includes, Include{SchemaLocation: inc.SchemaLocation})
	}

	for i := range raw.Elements {
		elem, err := p.convertRawElement(&raw.Elements[i], ctx, true)
		if err != nil {
			return nil, err
		}
		schema.Elements = append(schema.Elements, elem)
	}

	for i := range raw.ComplexTypes {
		rct := &raw.ComplexTypes[i]
		if rct.Name == "" {
			return nil, &ParseError{Kind: ErrMissingAttribute, Element: "complexType", Attribute: "name"}
		}
		ct, err := p.convertRawComplexType(rct, QName{Namespace: ctx.targetNamespace, Local: rct.Name}, ctx)
		if err != nil {
			return nil, err
		}
		schema.ComplexTypes = append(schema.ComplexTypes, ct)
	}

	for i := range raw.SimpleTypes {
		rst := &raw.SimpleTypes[i]
		if rst.Name == "" {
			return nil, &ParseError{Kind: ErrMissingAttribute, Element: "simpleType", Attribute: "name"}
		}
		st, err := p.convertRawSimpleType(rst, QName{Namespace: ctx.targetNamespace, Local: rst.Name}, ctx)
		if err != nil {
			return nil, err
		}
		schema.SimpleTypes = append(schema.SimpleTypes, st)
	}

	return schema, nil
}

// convertRawElement converts raw XSD element to the model. Global elements
// always live in the target namespace; local ones only when qualified.
func (p *Parser) convertRawElement(raw *rawElement, ctx *schemaContext, global bool) (*Element, error) {
	ctx = ctx.within(raw.Attrs)
	for _, other := range raw.Other {
		switch other.XMLName.Local {
		case "annotation", "key", "keyref", "unique":
		default:
			return nil, &ParseError{Kind: ErrUnsupportedContent, Element: "element", Detail: other.XMLName.Local}
		}
	}

	occurs, err := parseOccurs(raw.MinOccurs, raw.MaxOccurs)
	if err != nil {
		return nil, err
	}
	nillable, err := parseBool(raw.Nillable)
	if err != nil {
		return nil, &ParseError{Kind: ErrInvalidAttribute, Element: "element", Attribute: "nillable", Detail: err.Error()}
	}

	if raw.Ref != "" {
		if global {
			return nil, &ParseError{Kind: ErrInvalidAttribute, Element: "element", Attribute: "ref", Detail: "global elements cannot use ref"}
		}
		ref, err := ctx.ref("element", "ref", raw.Ref)
		if err != nil {
			return nil, err
		}
		return &Element{Name: ref, Content: ElementRef{Ref: ref}, Occurs: occurs, Nillable: nillable}, nil
	}

	if raw.Name == "" {
		return nil, &ParseError{Kind: ErrMissingAttribute, Element: "element", Attribute: "name"}
	}

	name := QName{Local: raw.Name}
	if global || raw.Form == "qualified" || (raw.Form == "" && ctx.qualifiedLocals) {
		name.Namespace = ctx.targetNamespace
	}

	elem := &Element{Name: name, Occurs: occurs, Nillable: nillable}
	if global {
		// occurrence constraints are meaningless on global declarations
		elem.Occurs = nil
	}

	switch {
	case raw.SimpleType != nil:
		return nil, &ParseError{Kind: ErrUnsupportedContent, Element: "element " + raw.Name, Detail: "inline simpleType"}
	case raw.Type != "" && raw.ComplexType != nil:
		return nil, &ParseError{Kind: ErrInvalidAttribute, Element: "element " + raw.Name, Attribute: "type", Detail: "both type attribute and inline complexType"}
	case raw.Type != "":
		base, err := ctx.ref("element", "type", raw.Type)
		if err != nil {
			return nil, err
		}
		elem.Content = ElementBase{Type: base}
	case raw.ComplexType != nil:
		ct, err := p.convertRawComplexType(raw.ComplexType, QName{}, ctx)
		if err != nil {
			return nil, err
		}
		elem.Content = ElementComplex{ComplexType: ct}
	default:
		elem.Content = ElementBase{Type: QName{Namespace: XSDNamespace, Local: XSDAnyType}}
	}

	return elem, nil
}

// convertRawComplexType converts raw XSD complex type to the model
func (p *Parser) convertRawComplexType(raw *rawComplexType, name QName, ctx *schemaContext) (*ComplexType, error) {
	ctx = ctx.within(raw.Attrs)
	for _, other := range raw.Other {
		switch other.XMLName.Local {
		case "annotation", "attribute", "attributeGroup", "anyAttribute":
		default:
			return nil, &ParseError{Kind: ErrUnsupportedContent, Element: complexTypeLabel(name), Detail: other.XMLName.Local}
		}
	}

	ct := &ComplexType{Name: name}
	switch {
	case raw.Sequence != nil && raw.ComplexContent != nil:
		return nil, &ParseError{Kind: ErrUnsupportedContent, Element: complexTypeLabel(name), Detail: "sequence together with complexContent"}
	case raw.Sequence != nil:
		seq, err := p.convertRawSequence(raw.Sequence, ctx)
		if err != nil {
			return nil, err
		}
		ct.Content = *seq
	case raw.ComplexContent != nil:
		cc, err := p.convertRawComplexContent(raw.ComplexContent, name, ctx)
		if err != nil {
			return nil, err
		}
		ct.Content = cc
	default:
		ct.Content = Empty{}
	}
	return ct, nil
}

func complexTypeLabel(name QName) string {
	if name.IsZero() {
		return "complexType"
	}
	return "complexType " + name.String()
}

// convertRawSequence converts raw XSD sequence to the model
func (p *Parser) convertRawSequence(raw *rawSequence, ctx *schemaContext) (*Sequence, error) {
	ctx = ctx.within(raw.Attrs)
	for _, other := range raw.Other {
		if other.XMLName.Local != "annotation" {
			return nil, &ParseError{Kind: ErrUnsupportedContent, Element: "sequence", Detail: other.XMLName.Local}
		}
	}

	seq := &Sequence{Elements: make([]*Element, 0, len(raw.Elements))}
	for i := range raw.Elements {
		elem, err := p.convertRawElement(&raw.Elements[i], ctx, false)
		if err != nil {
			return nil, err
		}
		seq.Elements = append(seq.Elements, elem)
	}
	return seq, nil
}

// convertRawComplexContent converts raw complex content to the model
func (p *Parser) convertRawComplexContent(raw *rawComplexContent, name QName, ctx *schemaContext) (ComplexContent, error) {
	ctx = ctx.within(raw.Attrs)
	for _, other := range raw.Other {
		if other.XMLName.Local != "annotation" {
			return ComplexContent{}, &ParseError{Kind: ErrUnsupportedContent, Element: "complexContent", Detail: other.XMLName.Local}
		}
	}

	var (
		derivation Derivation
		rd         *rawDerivation
	)
	switch {
	case raw.Extension != nil && raw.Restriction != nil:
		return ComplexContent{}, &ParseError{Kind: ErrUnsupportedContent, Element: complexTypeLabel(name), Detail: "both extension and restriction"}
	case raw.Extension != nil:
		derivation, rd = DerivationExtension, raw.Extension
	case raw.Restriction != nil:
		derivation, rd = DerivationRestriction, raw.Restriction
	default:
		return ComplexContent{}, &ParseError{Kind: ErrUnsupportedContent, Element: complexTypeLabel(name), Detail: "empty complexContent"}
	}

	ctx = ctx.within(rd.Attrs)
	for _, other := range rd.Other {
		switch other.XMLName.Local {
		case "annotation", "attribute", "attributeGroup", "anyAttribute":
		default:
			return ComplexContent{}, &ParseError{Kind: ErrUnsupportedContent, Element: string(derivation), Detail: other.XMLName.Local}
		}
	}

	if rd.Base == "" {
		return ComplexContent{}, &ParseError{Kind: ErrMissingAttribute, Element: string(derivation), Attribute: "base"}
	}
	base, err := ctx.ref(string(derivation), "base", rd.Base)
	if err != nil {
		return ComplexContent{}, err
	}

	cc := ComplexContent{Base: base, Derivation: derivation}
	if rd.Sequence != nil {
		seq, err := p.convertRawSequence(rd.Sequence, ctx)
		if err != nil {
			return ComplexContent{}, err
		}
		cc.Sequence = seq
	}
	return cc, nil
}

// convertRawSimpleType converts raw simple type to the model
func (p *Parser) convertRawSimpleType(raw *rawSimpleType, name QName, ctx *schemaContext) (*SimpleType, error) {
	ctx = ctx.within(raw.Attrs)
	label := "simpleType"
	if !name.IsZero() {
		label = "simpleType " + name.String()
	}
	for _, other := range raw.Other {
		if other.XMLName.Local != "annotation" {
			return nil, &ParseError{Kind: ErrUnsupportedContent, Element: label, Detail: other.XMLName.Local}
		}
	}

	st := &SimpleType{Name: name}
	switch {
	case raw.Restriction != nil:
		r := raw.Restriction
		if r.SimpleType != nil {
			return nil, &ParseError{Kind: ErrUnsupportedContent, Element: label, Detail: "restriction of an inline simpleType"}
		}
		if r.Base == "" {
			return nil, &ParseError{Kind: ErrMissingAttribute, Element: "restriction", Attribute: "base"}
		}
		base, err := ctx.within(r.Attrs).ref("restriction", "base", r.Base)
		if err != nil {
			return nil, err
		}
		restriction := Restriction{Base: base}
		for _, enum := range r.Enumeration {
			restriction.Enumeration = append(restriction.Enumeration, enum.Value)
		}
		patterns := make([]string, 0, len(r.Pattern))
		for _, pattern := range r.Pattern {
			patterns = append(patterns, pattern.Value)
		}
		restriction.Pattern = strings.Join(patterns, "|")
		st.Content = restriction
	case raw.List != nil:
		ctx := ctx.within(raw.List.Attrs)
		switch {
		case raw.List.ItemType != "":
			item, err := ctx.ref("list", "itemType", raw.List.ItemType)
			if err != nil {
				return nil, err
			}
			st.Content = List{ItemType: item}
		case raw.List.SimpleType != nil:
			nested, err := p.convertRawSimpleType(raw.List.SimpleType, QName{}, ctx)
			if err != nil {
				return nil, err
			}
			st.Content = ListWrapped{SimpleType: nested}
		default:
			return nil, &ParseError{Kind: ErrMissingAttribute, Element: "list", Attribute: "itemType"}
		}
	default:
		return nil, &ParseError{Kind: ErrUnsupportedContent, Element: label, Detail: "expected restriction or list"}
	}
	return st, nil
}

// convertRawMessage converts raw message to the model
func (p *Parser) convertRawMessage(raw *rawMessage, ctx *schemaContext) (*Message, error) {
	if raw.Name == "" {
		return nil, &ParseError{Kind: ErrMissingAttribute, Element: "message", Attribute: "name"}
	}
	ctx = ctx.within(raw.Attrs)
	msg := &Message{
		Name:  QName{Namespace: ctx.targetNamespace, Local: raw.Name},
		Parts: make([]MessagePart, 0, len(raw.Parts)),
	}

	for _, part := range raw.Parts {
		if part.Name == "" {
			return nil, &ParseError{Kind: ErrMissingAttribute, Element: "part", Attribute: "name"}
		}
		if (part.Element == "") == (part.Type == "") {
			return nil, &ParseError{
				Kind:    ErrInvalidAttribute,
				Element: "part " + part.Name,
				Detail:  fmt.Sprintf("message %s: part must reference exactly one of element or type", msg.Name),
			}
		}
		mp := MessagePart{Name: part.Name}
		ctx := ctx.within(part.Attrs)
		if part.Element != "" {
			q, err := ctx.ref("part", "element", part.Element)
			if err != nil {
				return nil, err
			}
			mp.Element = &q
		} else {
			q, err := ctx.ref("part", "type", part.Type)
			if err != nil {
				return nil, err
			}
			mp.Type = &q
		}
		msg.Parts = append(msg.Parts, mp)
	}

	return msg, nil
}

// convertRawPortType converts raw port type to the model. Operations that are
// not request/response are dropped.
func (p *Parser) convertRawPortType(raw *rawPortType, ctx *schemaContext) (*PortType, error) {
	if raw.Name == "" {
		return nil, &ParseError{Kind: ErrMissingAttribute, Element: "portType", Attribute: "name"}
	}
	ctx = ctx.within(raw.Attrs)
	pt := &PortType{
		Name:          QName{Namespace: ctx.targetNamespace, Local: raw.Name},
		Documentation: extractDocumentation(raw.Documentation),
		Operations:    make([]Operation, 0, len(raw.Operations)),
	}

	for _, op := range raw.Operations {
		if op.Name == "" {
			return nil, &ParseError{Kind: ErrMissingAttribute, Element: "operation", Attribute: "name"}
		}
		if op.Input == nil || op.Output == nil {
			p.warn(fmt.Errorf("portType %s operation %q: only request/response operations are supported", pt.Name, op.Name))
			continue
		}
		ctx := ctx.within(op.Attrs)
		input, err := p.messageRef(op.Input, ctx)
		if err != nil {
			return nil, err
		}
		output, err := p.messageRef(op.Output, ctx)
		if err != nil {
			return nil, err
		}
		pt.Operations = append(pt.Operations, Operation{
			Name:          op.Name,
			Documentation: extractDocumentation(op.Documentation),
			Input:         input,
			Output:        output,
		})
	}

	return pt, nil
}

func (p *Parser) messageRef(ref *rawIORef, ctx *schemaContext) (QName, error) {
	if ref.Message == "" {
		return QName{}, &ParseError{Kind: ErrMissingAttribute, Element: "input/output", Attribute: "message"}
	}
	return ctx.within(ref.Attrs).ref("input/output", "message", ref.Message)
}

// convertRawBinding converts raw binding to the model. A *BindingParseError
// return drops the binding; operation-level problems drop only the operation.
func (p *Parser) convertRawBinding(raw *rawBinding, ctx *schemaContext) (*Binding, error) {
	if raw.Name == "" {
		return nil, &ParseError{Kind: ErrMissingAttribute, Element: "binding", Attribute: "name"}
	}
	if raw.Type == "" {
		return nil, &ParseError{Kind: ErrMissingAttribute, Element: "binding " + raw.Name, Attribute: "type"}
	}
	ctx = ctx.within(raw.Attrs)
	typ, err := ctx.ref("binding", "type", raw.Type)
	if err != nil {
		return nil, err
	}

	binding := &Binding{
		Name:       QName{Namespace: ctx.targetNamespace, Local: raw.Name},
		Type:       typ,
		Operations: make([]BindingOperation, 0, len(raw.Operations)),
	}

	// Extract SOAP binding info
	var soapBinding *rawSOAPBinding
	switch {
	case raw.SOAPBinding != nil:
		soapBinding, binding.Version = raw.SOAPBinding, SOAP11
	case raw.SOAP12Binding != nil:
		soapBinding, binding.Version = raw.SOAP12Binding, SOAP12
	default:
		return nil, &BindingParseError{Kind: ErrNoTransport, Binding: binding.Name}
	}
	if soapBinding.Transport != SOAPHTTPTransport {
		return nil, &BindingParseError{Kind: ErrUnsupportedTransport, Binding: binding.Name, Detail: soapBinding.Transport}
	}
	defaultStyle := Style(soapBinding.Style)
	if defaultStyle == "" {
		defaultStyle = StyleDocument
	}

	for i := range raw.Operations {
		op, err := p.convertRawBindingOperation(&raw.Operations[i], binding.Name, defaultStyle)
		if err != nil {
			var berr *BindingParseError
			if errors.As(err, &berr) {
				p.warn(berr)
				continue
			}
			return nil, err
		}
		binding.Operations = append(binding.Operations, op)
	}

	return binding, nil
}

// convertRawBindingOperation converts raw binding operation to the model
func (p *Parser) convertRawBindingOperation(raw *rawBindingOperation, binding QName, defaultStyle Style) (BindingOperation, error) {
	if raw.Name == "" {
		return BindingOperation{}, &ParseError{Kind: ErrMissingAttribute, Element: "operation", Attribute: "name"}
	}
	op := BindingOperation{Name: raw.Name, Style: defaultStyle}

	// Extract SOAP operation info
	soapOp := raw.SOAPOperation
	if soapOp == nil {
		soapOp = raw.SOAP12Operation
	}
	if soapOp != nil {
		op.Action = soapOp.SOAPAction
		if soapOp.Style != "" {
			op.Style = Style(soapOp.Style)
		}
	}
	if op.Style != StyleDocument && op.Style != StyleRPC {
		return op, &BindingParseError{Kind: ErrUnsupportedStyle, Binding: binding, Operation: raw.Name, Detail: string(op.Style)}
	}

	if raw.Input == nil {
		return op, &BindingParseError{Kind: ErrMissingInput, Binding: binding, Operation: raw.Name}
	}
	if raw.Output == nil {
		return op, &BindingParseError{Kind: ErrMissingOutput, Binding: binding, Operation: raw.Name}
	}

	var err error
	if op.InputUse, err = bodyUse(raw.Input, binding, raw.Name); err != nil {
		return op, err
	}
	if op.OutputUse, err = bodyUse(raw.Output, binding, raw.Name); err != nil {
		return op, err
	}
	return op, nil
}

func bodyUse(bio *rawBindingIO, binding QName, operation string) (Use, error) {
	body := bio.SOAPBody
	if body == nil {
		body = bio.SOAP12Body
	}
	if body == nil || body.Use == "" || body.Use == string(UseLiteral) {
		return UseLiteral, nil
	}
	return "", &BindingParseError{Kind: ErrUnsupportedEncoding, Binding: binding, Operation: operation, Detail: body.Use}
}

// convertRawService converts raw service to the model. Ports without a SOAP
// address are dropped.
func (p *Parser) convertRawService(raw *rawService, ctx *schemaContext) (*Service, error) {
	if raw.Name == "" {
		return nil, &ParseError{Kind: ErrMissingAttribute, Element: "service", Attribute: "name"}
	}
	ctx = ctx.within(raw.Attrs)
	svc := &Service{
		Name:          QName{Namespace: ctx.targetNamespace, Local: raw.Name},
		Documentation: extractDocumentation(raw.Documentation),
		Ports:         make([]Port, 0, len(raw.Ports)),
	}

	for _, port := range raw.Ports {
		if port.Name == "" {
			return nil, &ParseError{Kind: ErrMissingAttribute, Element: "port", Attribute: "name"}
		}
		if port.Binding == "" {
			return nil, &ParseError{Kind: ErrMissingAttribute, Element: "port " + port.Name, Attribute: "binding"}
		}
		binding, err := ctx.within(port.Attrs).ref("port", "binding", port.Binding)
		if err != nil {
			return nil, err
		}

		pp := Port{Name: port.Name, Binding: binding}
		switch {
		case port.SOAPAddress != nil:
			pp.Address = Address{Version: SOAP11, Location: port.SOAPAddress.Location}
		case port.SOAP12Address != nil:
			pp.Address = Address{Version: SOAP12, Location: port.SOAP12Address.Location}
		default:
			p.warn(fmt.Errorf("service %s port %q: no SOAP address", svc.Name, port.Name))
			continue
		}
		svc.Ports = append(svc.Ports, pp)
	}

	return svc, nil
}

// parseOccurs reads minOccurs/maxOccurs. A missing attribute defaults to 1;
// both missing yields nil.
func parseOccurs(minOccurs, maxOccurs string) (*Occurs, error) {
	if minOccurs == "" && maxOccurs == "" {
		return nil, nil
	}
	occurs := &Occurs{Min: 1, Max: 1}
	if minOccurs != "" {
		n, err := strconv.Atoi(strings.TrimSpace(minOccurs))
		if err != nil || n < 0 {
			return nil, &ParseError{Kind: ErrInvalidAttribute, Element: "element", Attribute: "minOccurs", Detail: minOccurs}
		}
		occurs.Min = n
	}
	if maxOccurs != "" {
		if strings.TrimSpace(maxOccurs) == "unbounded" {
			occurs.Max = 0
			occurs.Unbounded = true
		} else {
			n, err := strconv.Atoi(strings.TrimSpace(maxOccurs))
			if err != nil || n < 0 {
				return nil, &ParseError{Kind: ErrInvalidAttribute, Element: "element", Attribute: "maxOccurs", Detail: maxOccurs}
			}
			occurs.Max = n
		}
	}
	return occurs, nil
}

func parseBool(value string) (bool, error) {
	switch strings.TrimSpace(value) {
	case "", "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", value)
	}
}

// extractDocumentation extracts text from documentation element
func extractDocumentation(doc *rawDocumentation) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Content)
}
