package client

import (
	"fmt"

	"github.com/pyneda/wsdlgen/pkg/wsdl"
)

// GenerationErrorKind identifies why a client could not be generated.
type GenerationErrorKind string

const (
	ErrMessageNotWSICompliant GenerationErrorKind = "message not WS-I compliant"
	ErrNoSOAP11Port           GenerationErrorKind = "no SOAP 1.1 port"
	ErrBindingNotFound        GenerationErrorKind = "binding not found"
	ErrPortTypeNotFound       GenerationErrorKind = "port type not found"
	ErrMessageNotFound        GenerationErrorKind = "message not found"
	ErrElementNotFound        GenerationErrorKind = "element not found"
)

// GenerationError aborts the client of one service. Types mapped before the
// failure stay valid.
type GenerationError struct {
	Kind    GenerationErrorKind
	Service wsdl.QName
	Name    wsdl.QName // offending message, binding, port type or element
	Err     error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("generating client for service %s: %s", e.Service, e.Kind)
	if !e.Name.IsZero() {
		msg += " " + e.Name.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
