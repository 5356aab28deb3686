package loader

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pyneda/wsdlgen/pkg/wsdl"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"
)

// Options configures document loading.
type Options struct {
	MaxDepth           int               `json:"max_depth" validate:"min=1,max=100"`
	Workers            int               `json:"workers" validate:"min=1,max=64"`
	Timeout            time.Duration     `json:"timeout" validate:"min=0"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify"`
	Headers            map[string]string `json:"headers" validate:"omitempty,dive,keys,required,endkeys"`
	// Namespaces that may be imported without being provided by any parsed
	// schema.
	KnownNamespaces []string `json:"known_namespaces" validate:"dive,required"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxDepth: 10,
		Workers:  4,
		Timeout:  30 * time.Second,
		KnownNamespaces: []string{
			wsdl.XSDNamespace,
			wsdl.XMLNamespace,
			wsdl.WSDLNamespace,
			wsdl.SOAPEncodingNS,
		},
	}
}

var validate = validator.New()

// Validate checks the option ranges.
func (o Options) Validate() error {
	return validate.Struct(o)
}

// Result is the outcome of a successful load.
type Result struct {
	Model *wsdl.Model
	// Locations lists every fetched document in first-discovery order.
	Locations []string
	// Warnings holds the recoverable drops reported while parsing.
	Warnings []error
}

// Loader resolves a root document and everything it imports or includes into
// one merged model.
type Loader struct {
	fetcher Fetcher
	opts    Options
	logger  zerolog.Logger
}

// New creates a loader. A nil fetcher uses NewDefaultFetcher(opts).
func New(fetcher Fetcher, opts Options) *Loader {
	if fetcher == nil {
		fetcher = NewDefaultFetcher(opts)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Loader{
		fetcher: fetcher,
		opts:    opts,
		logger:  log.With().Str("component", "loader").Logger(),
	}
}

type pending struct {
	location  string
	chameleon string
	depth     int
}

type fetched struct {
	location string
	doc      *wsdl.Definitions
	kind     wsdl.DocumentKind
	warnings []error
	err      error
}

// Load fetches root and, breadth first, every document it references. Each
// level is fetched in parallel and merged in discovery order so the resulting
// model does not depend on fetch timing. Any failure aborts the whole load.
func (l *Loader) Load(ctx context.Context, root string) (*Result, error) {
	root = wsdl.NormalizeLocation(root)
	visited := map[string]bool{root: true}
	queue := []pending{{location: root}}
	required := newNamespaceSet()

	var (
		docs   []*wsdl.Definitions
		result = &Result{}
	)

	mapper := iter.Mapper[pending, fetched]{MaxGoroutines: l.opts.Workers}

	for len(queue) > 0 {
		level := queue
		queue = nil

		results := mapper.Map(level, func(p *pending) fetched {
			return l.fetchAndParse(ctx, *p)
		})

		for i, res := range results {
			if res.err != nil {
				return nil, res.err
			}
			l.logger.Debug().Str("location", res.location).Str("kind", string(res.kind)).Msg("Parsed document")

			docs = append(docs, res.doc)
			result.Locations = append(result.Locations, res.location)
			result.Warnings = append(result.Warnings, res.warnings...)

			refs, err := references(res.doc, res.kind, res.location)
			if err != nil {
				return nil, err
			}
			for _, ref := range refs {
				if ref.namespace != "" {
					required.add(ref.namespace)
				}
				if ref.location == "" {
					continue
				}
				location := wsdl.NormalizeLocation(wsdl.ResolveLocation(res.location, ref.location))
				if visited[location] {
					continue
				}
				if level[i].depth+1 > l.opts.MaxDepth {
					return nil, &ImportError{Kind: ErrDepthExceeded, Location: location}
				}
				visited[location] = true
				queue = append(queue, pending{
					location:  location,
					chameleon: ref.chameleon,
					depth:     level[i].depth + 1,
				})
			}
		}
	}

	model, err := wsdl.NewModel(docs...)
	if err != nil {
		return nil, err
	}

	provided := model.Namespaces()
	for _, doc := range docs {
		provided[doc.TargetNamespace] = struct{}{}
	}
	for _, ns := range l.opts.KnownNamespaces {
		provided[ns] = struct{}{}
	}
	if missing := required.without(provided); len(missing) > 0 {
		return nil, &ImportError{Kind: ErrMissingImportedNamespaces, Location: root, Namespaces: missing}
	}

	l.logger.Info().Int("documents", len(docs)).Int("warnings", len(result.Warnings)).Msg("Loaded service description")
	result.Model = model
	return result, nil
}

func (l *Loader) fetchAndParse(ctx context.Context, p pending) fetched {
	res := fetched{location: p.location}

	if err := ctx.Err(); err != nil {
		res.err = &ImportError{Kind: ErrFetchFailed, Location: p.location, Err: err}
		return res
	}

	data, err := l.fetcher.Fetch(ctx, p.location)
	if err != nil {
		res.err = &ImportError{Kind: ErrFetchFailed, Location: p.location, Err: err}
		return res
	}

	parser := wsdl.NewParser()
	res.doc, res.kind, res.err = parser.ParseDocument(data, p.location, p.chameleon)
	res.warnings = parser.Warnings
	return res
}

type reference struct {
	namespace string
	location  string
	chameleon string
}

// references lists the imports and includes declared by doc. WSDL imports
// need both attributes, XSD imports need a namespace, includes a location.
func references(doc *wsdl.Definitions, kind wsdl.DocumentKind, location string) ([]reference, error) {
	var refs []reference

	for _, imp := range doc.Imports {
		if imp.Namespace == "" {
			return nil, &ImportError{Kind: ErrMissingNamespace, Location: location}
		}
		if imp.SchemaLocation == "" {
			return nil, &ImportError{Kind: ErrMissingLocation, Location: location}
		}
		refs = append(refs, reference{namespace: imp.Namespace, location: imp.SchemaLocation})
	}

	for _, schema := range doc.Schemas {
		for _, imp := range schema.Imports {
			if imp.Namespace == "" {
				return nil, &ImportError{Kind: ErrMissingNamespace, Location: location}
			}
			refs = append(refs, reference{namespace: imp.Namespace, location: imp.SchemaLocation})
		}
		for _, inc := range schema.Includes {
			if inc.SchemaLocation == "" {
				return nil, &ImportError{Kind: ErrMissingLocation, Location: location}
			}
			refs = append(refs, reference{location: inc.SchemaLocation, chameleon: schema.TargetNamespace})
		}
	}

	if kind == wsdl.DocumentXSD && len(refs) > 0 {
		log.Debug().Str("location", location).Int("references", len(refs)).Msg("Schema document references further documents")
	}
	return refs, nil
}

// namespaceSet keeps insertion order for stable error reports.
type namespaceSet struct {
	seen  map[string]bool
	order []string
}

func newNamespaceSet() *namespaceSet {
	return &namespaceSet{seen: make(map[string]bool)}
}

func (s *namespaceSet) add(ns string) {
	if !s.seen[ns] {
		s.seen[ns] = true
		s.order = append(s.order, ns)
	}
}

// without returns the sorted members not present in other.
func (s *namespaceSet) without(other map[string]struct{}) []string {
	var out []string
	for _, ns := range s.order {
		if _, ok := other[ns]; !ok {
			out = append(out, ns)
		}
	}
	sort.Strings(out)
	return out
}

// IsImportError reports whether err is an *ImportError of the given kind.
func IsImportError(err error, kind ImportErrorKind) bool {
	var ierr *ImportError
	return errors.As(err, &ierr) && ierr.Kind == kind
}
