package typemap

import "github.com/pyneda/wsdlgen/pkg/wsdl"

// DescriptorKind discriminates Descriptor values once serialized.
type DescriptorKind string

const (
	KindStruct DescriptorKind = "struct"
	KindAlias  DescriptorKind = "alias"
	KindList   DescriptorKind = "list"
	KindEnum   DescriptorKind = "enum"
)

// Descriptor is one generated type: *StructDescriptor, *AliasDescriptor,
// *ListDescriptor or *EnumDescriptor.
type Descriptor interface {
	DescriptorName() string
	DescriptorKind() DescriptorKind
}

// StructDescriptor is a record type with ordered properties. Base is set for
// types derived through complexContent. Nested holds the types of inline
// (anonymous) children, scoped to this type.
type StructDescriptor struct {
	Kind       DescriptorKind `json:"kind" yaml:"kind"`
	Name       string         `json:"name" yaml:"name"`
	XMLName    wsdl.QName     `json:"xml_name" yaml:"xml_name"`
	Base       *TypeRef       `json:"base,omitempty" yaml:"base,omitempty"`
	Properties []Property     `json:"properties" yaml:"properties"`
	Nested     []Descriptor   `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// Property is one element of a sequence.
type Property struct {
	Name    string     `json:"name" yaml:"name"`
	XMLName wsdl.QName `json:"xml_name" yaml:"xml_name"`
	Type    TypeRef    `json:"type" yaml:"type"`
}

// AliasDescriptor is a transparent alias of Target.
type AliasDescriptor struct {
	Kind    DescriptorKind `json:"kind" yaml:"kind"`
	Name    string         `json:"name" yaml:"name"`
	XMLName wsdl.QName     `json:"xml_name" yaml:"xml_name"`
	Target  TypeRef        `json:"target" yaml:"target"`
}

// ListDescriptor wraps a whitespace separated sequence of Element values.
type ListDescriptor struct {
	Kind    DescriptorKind `json:"kind" yaml:"kind"`
	Name    string         `json:"name" yaml:"name"`
	XMLName wsdl.QName     `json:"xml_name" yaml:"xml_name"`
	Element TypeRef        `json:"element" yaml:"element"`
	Nested  []Descriptor   `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// EnumDescriptor is a closed set of literals of type Raw.
type EnumDescriptor struct {
	Kind    DescriptorKind `json:"kind" yaml:"kind"`
	Name    string         `json:"name" yaml:"name"`
	XMLName wsdl.QName     `json:"xml_name" yaml:"xml_name"`
	Raw     TypeRef        `json:"raw" yaml:"raw"`
	Cases   []EnumCase     `json:"cases" yaml:"cases"`
}

// EnumCase pairs an identifier with the literal it serializes to. RawValue is
// the schema literal, unchanged.
type EnumCase struct {
	Name     string `json:"name" yaml:"name"`
	RawValue string `json:"raw_value" yaml:"raw_value"`
}

func (d *StructDescriptor) DescriptorName() string         { return d.Name }
func (d *StructDescriptor) DescriptorKind() DescriptorKind { return KindStruct }
func (d *AliasDescriptor) DescriptorName() string          { return d.Name }
func (d *AliasDescriptor) DescriptorKind() DescriptorKind  { return KindAlias }
func (d *ListDescriptor) DescriptorName() string           { return d.Name }
func (d *ListDescriptor) DescriptorKind() DescriptorKind   { return KindList }
func (d *EnumDescriptor) DescriptorName() string           { return d.Name }
func (d *EnumDescriptor) DescriptorKind() DescriptorKind   { return KindEnum }
