package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pyneda/wsdlgen/pkg/wsdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FilesystemImports(t *testing.T) {
	l := New(nil, DefaultOptions())

	result, err := l.Load(context.Background(), filepath.Join("testdata", "calculator.wsdl"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("testdata", "calculator.wsdl"),
		filepath.Join("testdata", "messages.wsdl"),
		filepath.Join("testdata", "xsd", "types.xsd"),
		filepath.Join("testdata", "xsd", "operands.xsd"),
	}, result.Locations)

	model := result.Model
	_, ok := model.Message(wsdl.QName{Namespace: "urn:calculator:messages", Local: "AddRequest"})
	assert.True(t, ok)
	_, ok = model.Element(wsdl.QName{Namespace: "urn:calculator:types", Local: "Add"})
	assert.True(t, ok)
	// chameleon include adopts the including schema's namespace
	_, ok = model.ComplexType(wsdl.QName{Namespace: "urn:calculator:types", Local: "Operands"})
	assert.True(t, ok)
	_, ok = model.PortType(wsdl.QName{Namespace: "urn:calculator", Local: "CalculatorPortType"})
	assert.True(t, ok)
}

const rootWSDL = `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"
  xmlns:xsd="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:root">
  <types>
    <xsd:schema targetNamespace="urn:root">
      <xsd:import namespace="urn:a" schemaLocation="a.xsd"/>
      <xsd:import namespace="urn:b" schemaLocation="b.xsd"/>
      <xsd:import namespace="http://schemas.xmlsoap.org/soap/encoding/"/>
    </xsd:schema>
  </types>
</definitions>`

const schemaA = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:a">
  <xs:import namespace="urn:b" schemaLocation="b.xsd"/>
  <xs:import namespace="urn:root" schemaLocation="root.wsdl"/>
  <xs:element name="A" type="xs:string"/>
</xs:schema>`

const schemaB = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:b">
  <xs:element name="B" type="xs:string"/>
</xs:schema>`

func TestLoad_VisitedOnce(t *testing.T) {
	fetcher := &countingFetcher{docs: MapFetcher{
		"http://example.com/root.wsdl": []byte(rootWSDL),
		"http://example.com/a.xsd":     []byte(schemaA),
		"http://example.com/b.xsd":     []byte(schemaB),
	}, counts: map[string]int{}}

	opts := DefaultOptions()
	opts.Workers = 1
	result, err := New(fetcher, opts).Load(context.Background(), "http://example.com/root.wsdl")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"http://example.com/root.wsdl",
		"http://example.com/a.xsd",
		"http://example.com/b.xsd",
	}, result.Locations)
	for location, n := range fetcher.counts {
		assert.Equal(t, 1, n, location)
	}
}

type countingFetcher struct {
	docs   MapFetcher
	counts map[string]int
}

func (f *countingFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	f.counts[location]++
	return f.docs.Fetch(ctx, location)
}

func TestLoad_RootRevisitedUnderOtherSpelling(t *testing.T) {
	const selfImporting = `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/" targetNamespace="urn:svc">
  <import namespace="urn:svc" location="svc.wsdl"/>
  <message name="Ping"/>
</definitions>`

	tests := []struct {
		name string
		root string
		docs MapFetcher
		want string
	}{
		{
			name: "relative path",
			root: "./svc.wsdl",
			docs: MapFetcher{"svc.wsdl": []byte(selfImporting)},
			want: "svc.wsdl",
		},
		{
			name: "url with dot segment",
			root: "http://example.com/a/./svc.wsdl",
			docs: MapFetcher{"http://example.com/a/svc.wsdl": []byte(selfImporting)},
			want: "http://example.com/a/svc.wsdl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &countingFetcher{docs: tt.docs, counts: map[string]int{}}
			opts := DefaultOptions()
			opts.Workers = 1

			result, err := New(fetcher, opts).Load(context.Background(), tt.root)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, result.Locations)
			assert.Equal(t, map[string]int{tt.want: 1}, fetcher.counts)
		})
	}
}

func TestLoad_Deterministic(t *testing.T) {
	fetcher := MapFetcher{
		"http://example.com/root.wsdl": []byte(rootWSDL),
		"http://example.com/a.xsd":     []byte(schemaA),
		"http://example.com/b.xsd":     []byte(schemaB),
	}
	opts := DefaultOptions()
	opts.Workers = 8

	first, err := New(fetcher, opts).Load(context.Background(), "http://example.com/root.wsdl")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := New(fetcher, opts).Load(context.Background(), "http://example.com/root.wsdl")
		require.NoError(t, err)
		assert.Equal(t, first.Locations, again.Locations)
		assert.Equal(t, first.Model.Elements(), again.Model.Elements())
	}
}

func TestLoad_MissingImportedNamespaces(t *testing.T) {
	const root = `<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"
  xmlns:xsd="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:root">
  <types>
    <xsd:schema targetNamespace="urn:root">
      <xsd:import namespace="urn:nowhere"/>
      <xsd:import namespace="urn:wrong" schemaLocation="wrong.xsd"/>
    </xsd:schema>
  </types>
</definitions>`
	const wrong = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:other"/>`

	fetcher := MapFetcher{
		"http://example.com/root.wsdl": []byte(root),
		"http://example.com/wrong.xsd": []byte(wrong),
	}
	_, err := New(fetcher, DefaultOptions()).Load(context.Background(), "http://example.com/root.wsdl")

	var ierr *ImportError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, ErrMissingImportedNamespaces, ierr.Kind)
	assert.Equal(t, []string{"urn:nowhere", "urn:wrong"}, ierr.Namespaces)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		docs MapFetcher
		opts func(*Options)
		kind ImportErrorKind
	}{
		{
			name: "wsdl import without location",
			docs: MapFetcher{"root.wsdl": []byte(`<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"><import namespace="urn:x"/></definitions>`)},
			kind: ErrMissingLocation,
		},
		{
			name: "wsdl import without namespace",
			docs: MapFetcher{"root.wsdl": []byte(`<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"><import location="x.wsdl"/></definitions>`)},
			kind: ErrMissingNamespace,
		},
		{
			name: "include without location",
			docs: MapFetcher{"root.wsdl": []byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"><xs:include/></xs:schema>`)},
			kind: ErrMissingLocation,
		},
		{
			name: "unreachable import",
			docs: MapFetcher{"root.wsdl": []byte(`<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"><import namespace="urn:x" location="gone.wsdl"/></definitions>`)},
			kind: ErrFetchFailed,
		},
		{
			name: "depth exceeded",
			docs: MapFetcher{
				"root.wsdl": []byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:0"><xs:import namespace="urn:1" schemaLocation="one.xsd"/></xs:schema>`),
				"one.xsd":   []byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:1"><xs:import namespace="urn:2" schemaLocation="two.xsd"/></xs:schema>`),
				"two.xsd":   []byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:2"/>`),
			},
			opts: func(o *Options) { o.MaxDepth = 1 },
			kind: ErrDepthExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			_, err := New(tt.docs, opts).Load(context.Background(), "root.wsdl")
			require.Error(t, err)
			assert.True(t, IsImportError(err, tt.kind), "got %v", err)
		})
	}
}

func TestLoad_ParseErrorAborts(t *testing.T) {
	fetcher := MapFetcher{
		"root.wsdl": []byte(`<definitions xmlns="http://schemas.xmlsoap.org/wsdl/" xmlns:xs="http://www.w3.org/2001/XMLSchema"><import namespace="urn:x" location="bad.xsd"/></definitions>`),
		"bad.xsd":   []byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"><xs:complexType name="T"><xs:all/></xs:complexType></xs:schema>`),
	}
	result, err := New(fetcher, DefaultOptions()).Load(context.Background(), "root.wsdl")
	assert.Nil(t, result)

	var perr *wsdl.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, wsdl.ErrUnsupportedContent, perr.Kind)
	assert.Equal(t, "bad.xsd", perr.Location)
}

func TestDefaultFetcher_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		switch r.URL.Path {
		case "/service.wsdl":
			w.Header().Set("Content-Type", "text/xml")
			_, _ = w.Write([]byte(schemaB))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"X-Api-Key": "secret"}
	fetcher := NewDefaultFetcher(opts).WithClient(server.Client())

	data, err := fetcher.Fetch(context.Background(), server.URL+"/service.wsdl")
	require.NoError(t, err)
	assert.Equal(t, schemaB, string(data))

	_, err = fetcher.Fetch(context.Background(), server.URL+"/missing.wsdl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	opts := DefaultOptions()
	opts.Workers = 0
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.MaxDepth = 1000
	assert.Error(t, opts.Validate())
}
