package soap

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pyneda/wsdlgen/pkg/client"
	"github.com/pyneda/wsdlgen/pkg/wsdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = "http://www.dataaccess.com/webservicesserver/"

type numberToWords struct {
	UbiNum uint64 `xml:"ubiNum"`
}

type numberToWordsResponse struct {
	Result string `xml:"NumberToWordsResult"`
}

const okResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:m="http://www.dataaccess.com/webservicesserver/">
  <soap:Header><m:Trace>abc</m:Trace></soap:Header>
  <soap:Body>
    <m:Other><m:NumberToWordsResult>wrong</m:NumberToWordsResult></m:Other>
    <m:NumberToWordsResponse>
      <m:NumberToWordsResult>forty two </m:NumberToWordsResult>
    </m:NumberToWordsResponse>
  </soap:Body>
</soap:Envelope>`

const faultResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <soap:Fault>
      <faultcode>soap:Server</faultcode>
      <faultstring> Number too large </faultstring>
      <faultactor>urn:converter</faultactor>
      <detail><limit xmlns="urn:errors">18446744073709551615</limit></detail>
    </soap:Fault>
  </soap:Body>
</soap:Envelope>`

var wordsOp = Operation{
	Action:   "urn:NumberToWords",
	Request:  xml.Name{Space: ns, Local: "NumberToWords"},
	Response: xml.Name{Space: ns, Local: "NumberToWordsResponse"},
}

func TestCall_OK(t *testing.T) {
	var (
		gotBody   string
		gotHeader http.Header
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotHeader = r.Header.Clone()
		_, _ = w.Write([]byte(okResponse))
	}))
	defer server.Close()

	op := wordsOp
	op.Endpoint = server.URL
	var out numberToWordsResponse
	err := NewHTTPCaller(server.Client(), 0).Call(context.Background(), op, numberToWords{UbiNum: 42}, &out)
	require.NoError(t, err)

	assert.Equal(t, "forty two ", out.Result)
	assert.Equal(t, ContentType, gotHeader.Get("Content-Type"))
	assert.Equal(t, `"urn:NumberToWords"`, gotHeader.Get("SOAPAction"))
	assert.Contains(t, gotBody, `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>`)
	assert.Contains(t, gotBody, `<NumberToWords xmlns="`+ns+`"><ubiNum>42</ubiNum></NumberToWords>`)
}

func TestCall_EmptyAction(t *testing.T) {
	var action string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action = r.Header.Get("SOAPAction")
		_, _ = w.Write([]byte(okResponse))
	}))
	defer server.Close()

	op := wordsOp
	op.Endpoint = server.URL
	op.Action = ""
	require.NoError(t, NewHTTPCaller(nil, 0).Call(context.Background(), op, numberToWords{}, nil))
	assert.Equal(t, `""`, action)
}

func TestCall_ActionIsNotEscaped(t *testing.T) {
	var action string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action = r.Header.Get("SOAPAction")
		_, _ = w.Write([]byte(okResponse))
	}))
	defer server.Close()

	op := wordsOp
	op.Endpoint = server.URL
	op.Action = "urn:Zahl/Grüße"
	require.NoError(t, NewHTTPCaller(nil, 0).Call(context.Background(), op, numberToWords{}, nil))
	assert.Equal(t, `"urn:Zahl/Grüße"`, action)
}

func TestCall_Fault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(faultResponse))
	}))
	defer server.Close()

	op := wordsOp
	op.Endpoint = server.URL
	var out numberToWordsResponse
	err := NewHTTPCaller(nil, 0).Call(context.Background(), op, numberToWords{}, &out)

	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "soap:Server", fault.Code)
	assert.Equal(t, "Number too large", fault.String)
	assert.Equal(t, "urn:converter", fault.Actor)
	require.Len(t, fault.Detail, 1)
	assert.Equal(t, xml.Name{Space: "urn:errors", Local: "limit"}, fault.Detail[0].XMLName)
	assert.Equal(t, "18446744073709551615", fault.Detail[0].Content)
	assert.Empty(t, out.Result)
}

func TestCall_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		op      Operation
		wantErr string
	}{
		{
			name:    "unexpected status",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			op:      wordsOp,
			wantErr: "unexpected status 502: upstream down",
		},
		{
			name:    "500 without fault",
			status:  http.StatusInternalServerError,
			body:    `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body/></soap:Envelope>`,
			op:      wordsOp,
			wantErr: "status 500 without fault",
		},
		{
			name:   "wrong namespace",
			status: http.StatusOK,
			body:   okResponse,
			op: Operation{
				Request:  wordsOp.Request,
				Response: xml.Name{Space: "urn:other", Local: "NumberToWordsResponse"},
			},
			wantErr: "response element {urn:other}NumberToWordsResponse not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			op := tt.op
			op.Endpoint = server.URL
			var out numberToWordsResponse
			err := NewHTTPCaller(nil, 0).Call(context.Background(), op, numberToWords{}, &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewOperation(t *testing.T) {
	c := &client.ClientType{
		Name: "NumberConversionClient",
		Port: client.Endpoint{Name: "NumberConversionSoap", Location: "https://example.com/NumberConversion.wso"},
	}
	m := client.ServiceMethod{
		Name:          "numberToWords",
		Action:        "urn:NumberToWords",
		InputElement:  wsdl.QName{Namespace: ns, Local: "NumberToWords"},
		OutputElement: wsdl.QName{Namespace: ns, Local: "NumberToWordsResponse"},
	}

	op := NewOperation(c, m)
	assert.Equal(t, Operation{
		Endpoint: "https://example.com/NumberConversion.wso",
		Action:   "urn:NumberToWords",
		Request:  wordsOp.Request,
		Response: wordsOp.Response,
	}, op)
}

func TestFaultError(t *testing.T) {
	assert.Equal(t, "soap fault soap:Client: bad input", (&Fault{Code: "soap:Client", String: "bad input"}).Error())
	assert.Equal(t, "soap fault soap:Server: boom (actor urn:a)", (&Fault{Code: "soap:Server", String: "boom", Actor: "urn:a"}).Error())
}
