package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pyneda/wsdlgen/pkg/client"
	"github.com/pyneda/wsdlgen/pkg/graph"
	"github.com/pyneda/wsdlgen/pkg/loader"
	"github.com/pyneda/wsdlgen/pkg/typemap"
	"github.com/pyneda/wsdlgen/pkg/wsdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const numberConversion = `<?xml version="1.0" encoding="UTF-8"?>
<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"
  xmlns:xs="http://www.w3.org/2001/XMLSchema"
  xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
  xmlns:tns="http://www.dataaccess.com/webservicesserver/"
  name="NumberConversion"
  targetNamespace="http://www.dataaccess.com/webservicesserver/">
  <types>
    <xs:schema elementFormDefault="qualified" targetNamespace="http://www.dataaccess.com/webservicesserver/">
      <xs:element name="NumberToWords" type="xs:string"/>
      <xs:element name="NumberToWordsResponse" type="xs:string"/>
    </xs:schema>
  </types>
  <message name="NumberToWordsSoapRequest">
    <part name="parameters" element="tns:NumberToWords"/>
  </message>
  <message name="NumberToWordsSoapResponse">
    <part name="parameters" element="tns:NumberToWordsResponse"/>
  </message>
  <portType name="NumberConversionSoapType">
    <operation name="NumberToWords">
      <input message="tns:NumberToWordsSoapRequest"/>
      <output message="tns:NumberToWordsSoapResponse"/>
    </operation>
  </portType>
  <binding name="NumberConversionSoapBinding" type="tns:NumberConversionSoapType">
    <soap:binding style="document" transport="http://schemas.xmlsoap.org/soap/http"/>
    <operation name="NumberToWords">
      <soap:operation soapAction=""/>
      <input><soap:body use="literal"/></input>
      <output><soap:body use="literal"/></output>
    </operation>
  </binding>
  <service name="NumberConversion">
    <port name="NumberConversionSoap" binding="tns:NumberConversionSoapBinding">
      <soap:address location="https://www.dataaccess.com/webservicesserver/NumberConversion.wso"/>
    </port>
  </service>
</definitions>`

func config(docs map[string]string) Config {
	fetcher := loader.MapFetcher{}
	for location, doc := range docs {
		fetcher[location] = []byte(doc)
	}
	cfg := DefaultConfig()
	cfg.Fetcher = fetcher
	return cfg
}

func TestRun_NumberConversion(t *testing.T) {
	out, err := Run(context.Background(), "number.wsdl", config(map[string]string{"number.wsdl": numberConversion}))
	require.NoError(t, err)

	require.Len(t, out.Clients, 1)
	c := out.Clients[0]
	assert.Equal(t, "NumberConversionClient", c.Name)
	require.Len(t, c.Methods, 1)

	byName := make(map[string]typemap.Descriptor)
	for _, d := range out.Types {
		byName[d.DescriptorName()] = d
	}
	for _, ref := range []typemap.TypeRef{c.Methods[0].InputType, c.Methods[0].OutputType} {
		alias, ok := byName[ref.Name].(*typemap.AliasDescriptor)
		require.True(t, ok, ref.String())
		assert.Equal(t, typemap.BuiltinRef(typemap.BuiltinString), alias.Target)
	}
	assert.Equal(t, []string{"number.wsdl"}, out.Locations)
	assert.Empty(t, out.Warnings)
}

func TestRun_Idempotent(t *testing.T) {
	cfg := config(map[string]string{"number.wsdl": numberConversion})

	first, err := Run(context.Background(), "number.wsdl", cfg)
	require.NoError(t, err)
	second, err := Run(context.Background(), "number.wsdl", cfg)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
	assert.Equal(t, a, b)
}

func TestRun_VerificationFailsBeforeMapping(t *testing.T) {
	doc := strings.Replace(numberConversion, `type="tns:NumberConversionSoapType"`, `type="tns:DoesNotExist"`, 1)
	out, err := Run(context.Background(), "number.wsdl", config(map[string]string{"number.wsdl": doc}))
	assert.Nil(t, out)

	var missing *graph.MissingNodesError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []graph.Node{{
		Kind: graph.KindPortType,
		Name: wsdl.QName{Namespace: "http://www.dataaccess.com/webservicesserver/", Local: "DoesNotExist"},
	}}, missing.Nodes)
}

func TestRun_NoService(t *testing.T) {
	start := strings.Index(numberConversion, "<service")
	end := strings.Index(numberConversion, "</service>") + len("</service>")
	doc := numberConversion[:start] + numberConversion[end:]

	out, err := Run(context.Background(), "number.wsdl", config(map[string]string{"number.wsdl": doc}))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrNoService)

	cfg := config(map[string]string{"number.wsdl": numberConversion})
	cfg.Service = "Elsewhere"
	_, err = Run(context.Background(), "number.wsdl", cfg)
	assert.ErrorIs(t, err, ErrNoService)
}

func TestRun_NamedService(t *testing.T) {
	cfg := config(map[string]string{"number.wsdl": numberConversion})
	cfg.Service = "NumberConversion"

	out, err := Run(context.Background(), "number.wsdl", cfg)
	require.NoError(t, err)
	require.Len(t, out.Clients, 1)
}

func TestRun_GenerationErrorKeepsTypes(t *testing.T) {
	doc := strings.Replace(numberConversion,
		`<part name="parameters" element="tns:NumberToWords"/>`,
		`<part name="a" element="tns:NumberToWords"/><part name="b" element="tns:NumberToWords"/>`, 1)

	out, err := Run(context.Background(), "number.wsdl", config(map[string]string{"number.wsdl": doc}))

	var genErr *client.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, client.ErrMessageNotWSICompliant, genErr.Kind)

	require.NotNil(t, out)
	assert.Empty(t, out.Clients)
	assert.Len(t, out.Types, 2)
	assert.Equal(t, []string{genErr.Error()}, out.Errors)
}

func TestRun_FailedServiceKeepsOtherClients(t *testing.T) {
	doc := strings.Replace(numberConversion, `</definitions>`, `  <service name="Other">
    <port name="OtherSoap12" binding="tns:NumberConversionSoapBinding">
      <soap12:address xmlns:soap12="http://schemas.xmlsoap.org/wsdl/soap12/" location="https://example.com/other"/>
    </port>
  </service>
</definitions>`, 1)

	out, err := Run(context.Background(), "number.wsdl", config(map[string]string{"number.wsdl": doc}))

	var genErr *client.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, client.ErrNoSOAP11Port, genErr.Kind)
	assert.Equal(t, "Other", genErr.Service.Local)

	require.NotNil(t, out)
	require.Len(t, out.Clients, 1)
	assert.Equal(t, "NumberConversionClient", out.Clients[0].Name)
	assert.Len(t, out.Types, 2)
	assert.Len(t, out.Errors, 1)
}

func TestRun_ClientNameIsReserved(t *testing.T) {
	doc := strings.Replace(numberConversion,
		`<xs:element name="NumberToWords" type="xs:string"/>`,
		`<xs:element name="NumberToWords" type="xs:string"/><xs:complexType name="NumberConversionClient"/>`, 1)

	out, err := Run(context.Background(), "number.wsdl", config(map[string]string{"number.wsdl": doc}))
	require.NoError(t, err)

	names := make([]string, 0, len(out.Types))
	for _, d := range out.Types {
		names = append(names, d.DescriptorName())
	}
	assert.Contains(t, names, "NumberConversionClientType")
	assert.NotContains(t, names, "NumberConversionClient")
}

func TestVerify(t *testing.T) {
	summary, err := Verify(context.Background(), "number.wsdl", config(map[string]string{"number.wsdl": numberConversion}))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Services)
	assert.Equal(t, 8, summary.Nodes)
	assert.Equal(t, 10, summary.Edges)
}

func TestRun_InvalidOptions(t *testing.T) {
	cfg := config(map[string]string{"number.wsdl": numberConversion})
	cfg.Loader.Workers = 0

	_, err := Run(context.Background(), "number.wsdl", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid loader options")
}

func TestOutputRows(t *testing.T) {
	out, err := Run(context.Background(), "number.wsdl", config(map[string]string{"number.wsdl": numberConversion}))
	require.NoError(t, err)

	assert.Equal(t, []Row{
		{Kind: "alias", Name: "NumberToWords", Detail: "= string"},
		{Kind: "alias", Name: "NumberToWordsResponse", Detail: "= string"},
		{Kind: "client", Name: "NumberConversionClient", Detail: "https://www.dataaccess.com/webservicesserver/NumberConversion.wso"},
		{Kind: "method", Name: "NumberConversionClient.numberToWords", Detail: "(NumberToWords) NumberToWordsResponse"},
	}, out.Rows())
	assert.Equal(t, []string{"2", "1", "1", "0"}, out.TableRow())
}
