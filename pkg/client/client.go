package client

import (
	"github.com/pyneda/wsdlgen/pkg/typemap"
	"github.com/pyneda/wsdlgen/pkg/wsdl"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Suffix is appended to the service identifier to name its client.
const Suffix = "Client"

// ServiceMethod is one callable operation of a client.
type ServiceMethod struct {
	Name          string          `json:"name" yaml:"name"`
	Operation     string          `json:"operation" yaml:"operation"`
	InputType     typemap.TypeRef `json:"input_type" yaml:"input_type"`
	OutputType    typemap.TypeRef `json:"output_type" yaml:"output_type"`
	InputElement  wsdl.QName      `json:"input_element" yaml:"input_element"`
	OutputElement wsdl.QName      `json:"output_element" yaml:"output_element"`
	Action        string          `json:"action,omitempty" yaml:"action,omitempty"`
	Style         wsdl.Style      `json:"style" yaml:"style"`
	Documentation string          `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// Endpoint is the SOAP 1.1 port a client talks to.
type Endpoint struct {
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location" yaml:"location"`
}

// ClientType describes the client generated for one service.
type ClientType struct {
	Name          string          `json:"name" yaml:"name"`
	Service       wsdl.QName      `json:"service" yaml:"service"`
	Documentation string          `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Port          Endpoint        `json:"port" yaml:"port"`
	Methods       []ServiceMethod `json:"methods" yaml:"methods"`
}

// Name returns the client identifier of a service.
func Name(service wsdl.QName) string {
	return typemap.TypeName(service.Local) + Suffix
}

// Generator builds client descriptors from a verified model.
type Generator struct {
	model  *wsdl.Model
	mapper *typemap.Mapper
	logger zerolog.Logger
}

func NewGenerator(model *wsdl.Model, mapper *typemap.Mapper) *Generator {
	return &Generator{
		model:  model,
		mapper: mapper,
		logger: log.With().Str("component", "client").Logger(),
	}
}

// Generate builds the client of service. Any failure aborts the whole client.
func (g *Generator) Generate(service *wsdl.Service) (*ClientType, error) {
	fail := func(kind GenerationErrorKind, name wsdl.QName, err error) error {
		return &GenerationError{Kind: kind, Service: service.Name, Name: name, Err: err}
	}

	port, ok := soap11Port(service)
	if !ok {
		return nil, fail(ErrNoSOAP11Port, wsdl.QName{}, nil)
	}
	binding, ok := g.model.Binding(port.Binding)
	if !ok {
		return nil, fail(ErrBindingNotFound, port.Binding, nil)
	}
	portType, ok := g.model.PortType(binding.Type)
	if !ok {
		return nil, fail(ErrPortTypeNotFound, binding.Type, nil)
	}

	// operations are paired by local name only
	bindingOps := make(map[string]wsdl.BindingOperation, len(binding.Operations))
	for _, op := range binding.Operations {
		bindingOps[op.Name] = op
	}

	client := &ClientType{
		Name:          Name(service.Name),
		Service:       service.Name,
		Documentation: service.Documentation,
		Port:          Endpoint{Name: port.Name, Location: port.Address.Location},
		Methods:       []ServiceMethod{},
	}
	names := typemap.NewScope()
	for _, op := range portType.Operations {
		bop, ok := bindingOps[op.Name]
		if !ok {
			g.logger.Warn().
				Str("binding", binding.Name.String()).
				Str("operation", op.Name).
				Msg("Port type operation has no binding operation, skipping")
			continue
		}

		method := ServiceMethod{
			Name:          names.Claim(typemap.MethodName(op.Name)),
			Operation:     op.Name,
			Action:        bop.Action,
			Style:         bop.Style,
			Documentation: op.Documentation,
		}
		var err error
		if method.InputType, method.InputElement, err = g.resolveMessage(service, op.Input); err != nil {
			return nil, err
		}
		if method.OutputType, method.OutputElement, err = g.resolveMessage(service, op.Output); err != nil {
			return nil, err
		}
		client.Methods = append(client.Methods, method)
	}

	g.logger.Debug().
		Str("service", service.Name.String()).
		Str("port", port.Name).
		Int("methods", len(client.Methods)).
		Msg("Generated client")
	return client, nil
}

// resolveMessage returns the type of the single part of a message and, for an
// element part, the element name the payload is serialized as.
func (g *Generator) resolveMessage(service *wsdl.Service, name wsdl.QName) (typemap.TypeRef, wsdl.QName, error) {
	fail := func(kind GenerationErrorKind, name wsdl.QName, err error) error {
		return &GenerationError{Kind: kind, Service: service.Name, Name: name, Err: err}
	}

	msg, ok := g.model.Message(name)
	if !ok {
		return typemap.TypeRef{}, wsdl.QName{}, fail(ErrMessageNotFound, name, nil)
	}
	if len(msg.Parts) != 1 {
		return typemap.TypeRef{}, wsdl.QName{}, fail(ErrMessageNotWSICompliant, msg.Name, nil)
	}

	part := msg.Parts[0]
	switch {
	case part.Element != nil && part.Type == nil:
		elem, ok := g.model.Element(*part.Element)
		if !ok {
			return typemap.TypeRef{}, wsdl.QName{}, fail(ErrElementNotFound, *part.Element, nil)
		}
		ref, err := g.mapper.ElementRef(elem.Name)
		if err != nil {
			return typemap.TypeRef{}, wsdl.QName{}, fail(ErrElementNotFound, elem.Name, err)
		}
		return typemap.Compose(ref, nil, elem.Nillable), elem.Name, nil
	case part.Type != nil && part.Element == nil:
		ref, err := g.mapper.TypeRef(*part.Type)
		if err != nil {
			return typemap.TypeRef{}, wsdl.QName{}, fail(ErrMessageNotWSICompliant, msg.Name, err)
		}
		return ref, wsdl.QName{Local: part.Name}, nil
	default:
		return typemap.TypeRef{}, wsdl.QName{}, fail(ErrMessageNotWSICompliant, msg.Name, nil)
	}
}

func soap11Port(service *wsdl.Service) (wsdl.Port, bool) {
	for _, port := range service.Ports {
		if port.Address.Version == wsdl.SOAP11 {
			return port, true
		}
	}
	return wsdl.Port{}, false
}
