package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pyneda/wsdlgen/pkg/client"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

const (
	EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	ContentType       = "text/xml; charset=utf-8"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 32 << 20

// Operation addresses one call of a generated client.
type Operation struct {
	Endpoint string
	Action   string
	// Request names the element the input value is serialized as. When zero
	// the value's own XMLName is used.
	Request xml.Name
	// Response names the element decoded into the output value.
	Response xml.Name
}

// NewOperation derives the call parameters of a generated method.
func NewOperation(c *client.ClientType, m client.ServiceMethod) Operation {
	return Operation{
		Endpoint: c.Port.Location,
		Action:   m.Action,
		Request:  xml.Name{Space: m.InputElement.Namespace, Local: m.InputElement.Local},
		Response: xml.Name{Space: m.OutputElement.Namespace, Local: m.OutputElement.Local},
	}
}

// Caller performs SOAP calls.
type Caller interface {
	Call(ctx context.Context, op Operation, in, out any) error
}

// FaultDetail is one child of a fault's detail element.
type FaultDetail struct {
	XMLName xml.Name
	Content string `xml:",innerxml"`
}

// Fault is a SOAP 1.1 fault returned by the server.
type Fault struct {
	Code   string
	String string
	Actor  string
	Detail []FaultDetail
}

type rawFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Actor  string `xml:"faultactor"`
	Detail *struct {
		Items []FaultDetail `xml:",any"`
	} `xml:"detail"`
}

func (f *Fault) Error() string {
	if f.Actor != "" {
		return fmt.Sprintf("soap fault %s: %s (actor %s)", f.Code, f.String, f.Actor)
	}
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

// HTTPCaller posts SOAP 1.1 envelopes over HTTP.
type HTTPCaller struct {
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPCaller creates a caller. A nil client uses one with timeout.
func NewHTTPCaller(c *http.Client, timeout time.Duration) *HTTPCaller {
	if c == nil {
		c = &http.Client{Timeout: timeout}
	}
	return &HTTPCaller{
		client: c,
		logger: log.With().Str("component", "soap").Logger(),
	}
}

// Call serializes in inside a SOAP envelope, posts it and decodes the
// response element into out. An HTTP 500 carrying a fault returns *Fault.
//
// The SOAPAction header carries op.Action as a quoted string and is sent even
// when the action is empty (as ""), since SOAP 1.1 servers require the header.
func (c *HTTPCaller) Call(ctx context.Context, op Operation, in, out any) error {
	body, err := Envelope(op.Request, in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, op.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("SOAPAction", `"`+op.Action+`"`)

	c.logger.Debug().Str("endpoint", op.Endpoint).Str("action", op.Action).Msg("Sending SOAP request")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to %s: %w", op.Endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if out == nil {
			return nil
		}
		return decodeResponse(data, op.Response, out)
	case http.StatusInternalServerError:
		fault, err := decodeFault(data)
		if err != nil {
			return fmt.Errorf("status %d without fault: %w", resp.StatusCode, err)
		}
		c.logger.Debug().Str("code", fault.Code).Str("endpoint", op.Endpoint).Msg("Received SOAP fault")
		return fault
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(data))
	}
}

// Envelope wraps in, serialized as the element name (or its own XMLName when
// name is zero), in a SOAP 1.1 envelope.
func Envelope(name xml.Name, in any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<soap:Envelope xmlns:soap="` + EnvelopeNamespace + `"><soap:Body>`)

	if in != nil {
		enc := xml.NewEncoder(&buf)
		var err error
		if name.Local != "" {
			err = enc.EncodeElement(in, xml.StartElement{Name: name})
		} else {
			err = enc.Encode(in)
		}
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		if err := enc.Flush(); err != nil {
			return nil, err
		}
	}

	buf.WriteString(`</soap:Body></soap:Envelope>`)
	return buf.Bytes(), nil
}

// decodeResponse finds the first body element named name, matching local name
// and namespace, and decodes it into out.
func decodeResponse(data []byte, name xml.Name, out any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	inBody := false
	for {
		token, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("response element {%s}%s not found", name.Space, name.Local)
			}
			return fmt.Errorf("decoding response: %w", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case !inBody && start.Name.Space == EnvelopeNamespace && start.Name.Local == "Envelope":
		case !inBody && start.Name.Space == EnvelopeNamespace && start.Name.Local == "Body":
			inBody = true
		case inBody && start.Name.Local == name.Local && start.Name.Space == name.Space:
			return dec.DecodeElement(out, &start)
		default:
			if err := dec.Skip(); err != nil {
				return err
			}
		}
	}
}

func decodeFault(data []byte) (*Fault, error) {
	var env struct {
		XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
		Body    struct {
			Fault *rawFault `xml:"http://schemas.xmlsoap.org/soap/envelope/ Fault"`
		} `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&env); err != nil {
		return nil, err
	}
	if env.Body.Fault == nil {
		return nil, errors.New("no Fault element in body")
	}
	raw := env.Body.Fault
	f := &Fault{
		Code:   strings.TrimSpace(raw.Code),
		String: strings.TrimSpace(raw.String),
		Actor:  strings.TrimSpace(raw.Actor),
	}
	if raw.Detail != nil {
		f.Detail = raw.Detail.Items
	}
	return f, nil
}

func snippet(data []byte) string {
	const limit = 512
	if len(data) > limit {
		data = data[:limit]
	}
	return strings.TrimSpace(string(data))
}
