package wsdl

import (
	"fmt"
	"strings"
)

// ParseErrorKind identifies the structural problem found in a document.
type ParseErrorKind string

const (
	ErrIncorrectRootElement ParseErrorKind = "incorrect root element"
	ErrUnsupportedConstruct ParseErrorKind = "unsupported top-level construct"
	ErrMissingAttribute     ParseErrorKind = "missing required attribute"
	ErrInvalidAttribute     ParseErrorKind = "invalid attribute value"
	ErrUnsupportedContent   ParseErrorKind = "unsupported content"
	ErrDuplicateDefinition  ParseErrorKind = "duplicate definition"
	ErrMalformedXML         ParseErrorKind = "malformed XML"
)

// ParseError reports a malformed or unsupported document. It always aborts
// the run.
type ParseError struct {
	Kind      ParseErrorKind
	Element   string // element in which the problem was found
	Attribute string
	Detail    string
	Location  string
	Err       error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error: ")
	b.WriteString(string(e.Kind))
	if e.Attribute != "" {
		fmt.Fprintf(&b, " %q", e.Attribute)
	}
	if e.Element != "" {
		fmt.Fprintf(&b, " in <%s>", e.Element)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Location != "" {
		fmt.Fprintf(&b, " (%s)", e.Location)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BindingErrorKind identifies why a binding or one of its operations was rejected.
type BindingErrorKind string

const (
	// binding-level
	ErrUnsupportedTransport BindingErrorKind = "unsupported transport"
	ErrNoTransport          BindingErrorKind = "no transport"

	// operation-level
	ErrUnsupportedStyle    BindingErrorKind = "unsupported operation style"
	ErrMissingInput        BindingErrorKind = "missing input"
	ErrMissingOutput       BindingErrorKind = "missing output"
	ErrUnsupportedEncoding BindingErrorKind = "unsupported encoding"
)

// BindingParseError reports a binding the model cannot use. Binding-level
// errors drop the whole binding, operation-level errors drop one operation.
type BindingParseError struct {
	Kind      BindingErrorKind
	Binding   QName
	Operation string
	Detail    string
}

func (e *BindingParseError) Error() string {
	msg := fmt.Sprintf("binding %s: %s", e.Binding, e.Kind)
	if e.Operation != "" {
		msg = fmt.Sprintf("binding %s operation %q: %s", e.Binding, e.Operation, e.Kind)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Fatal reports whether the error invalidates the whole binding.
func (e *BindingParseError) Fatal() bool {
	return e.Kind == ErrUnsupportedTransport || e.Kind == ErrNoTransport
}
