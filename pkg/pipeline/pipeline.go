package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/pyneda/wsdlgen/pkg/client"
	"github.com/pyneda/wsdlgen/pkg/graph"
	"github.com/pyneda/wsdlgen/pkg/loader"
	"github.com/pyneda/wsdlgen/pkg/typemap"
	"github.com/pyneda/wsdlgen/pkg/wsdl"
	"github.com/rs/zerolog/log"
)

// ErrNoService is returned when the loaded documents declare no service, or
// not the one asked for.
var ErrNoService = errors.New("no service found")

// Config selects what a run produces.
type Config struct {
	Loader loader.Options
	// Fetcher overrides document retrieval; nil fetches from disk and HTTP.
	Fetcher loader.Fetcher
	// Service limits client generation to the service with this local name.
	Service string
	// VerifierBuiltins are the schema names treated as predefined by the
	// verifier; MapperBuiltins maps them to target primitives.
	VerifierBuiltins wsdl.BuiltinTypes
	MapperBuiltins   typemap.Builtins
}

// DefaultConfig uses the XML Schema 1.0 builtins.
func DefaultConfig() Config {
	return Config{
		Loader:           loader.DefaultOptions(),
		VerifierBuiltins: wsdl.XSD2001Builtins(),
		MapperBuiltins:   typemap.XSDBuiltins(),
	}
}

// Output is the result of a run. Clients holds only the services whose
// generation succeeded; Errors lists the ones that failed.
type Output struct {
	Types     []typemap.Descriptor `json:"types" yaml:"types"`
	Clients   []*client.ClientType `json:"clients" yaml:"clients"`
	Locations []string             `json:"locations" yaml:"locations"`
	Warnings  []string             `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors    []string             `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Verification summarizes a successful verification.
type Verification struct {
	Locations []string `json:"locations" yaml:"locations"`
	Nodes     int      `json:"nodes" yaml:"nodes"`
	Edges     int      `json:"edges" yaml:"edges"`
	Services  int      `json:"services" yaml:"services"`
	Warnings  []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Verify loads root and checks every reference of the merged model.
func Verify(ctx context.Context, root string, cfg Config) (*Verification, error) {
	res, g, err := loadAndVerify(ctx, root, cfg)
	if err != nil {
		return nil, err
	}
	return &Verification{
		Locations: res.Locations,
		Nodes:     len(g.Nodes()),
		Edges:     len(g.Edges()),
		Services:  len(res.Model.Services),
		Warnings:  warningStrings(res.Warnings),
	}, nil
}

// Run loads root, verifies it and produces the type and client descriptors.
// Load, verification and mapping errors return no output. A service whose
// client cannot be generated is left out: the output still carries every type
// and the other clients, and the returned error joins each *client.GenerationError.
func Run(ctx context.Context, root string, cfg Config) (*Output, error) {
	res, _, err := loadAndVerify(ctx, root, cfg)
	if err != nil {
		return nil, err
	}
	model := res.Model

	services, err := selectServices(model, cfg.Service)
	if err != nil {
		return nil, err
	}

	reserved := make([]string, 0, len(services))
	for _, svc := range services {
		reserved = append(reserved, client.Name(svc.Name))
	}
	mapping := typemap.NewTypeMapping(model, cfg.MapperBuiltins, reserved...)
	mapper := typemap.NewMapper(model, mapping, cfg.MapperBuiltins)

	types, err := mapper.MapAll()
	if err != nil {
		return nil, fmt.Errorf("mapping types: %w", err)
	}

	gen := client.NewGenerator(model, mapper)
	clients := make([]*client.ClientType, 0, len(services))
	var failed []error
	for _, svc := range services {
		c, err := gen.Generate(svc)
		if err != nil {
			log.Error().Err(err).Str("service", svc.Name.String()).Msg("Client generation failed")
			failed = append(failed, err)
			continue
		}
		clients = append(clients, c)
	}

	log.Info().
		Str("root", root).
		Int("types", len(types)).
		Int("clients", len(clients)).
		Int("failed", len(failed)).
		Msg("Generated descriptors")

	out := &Output{
		Types:     types,
		Clients:   clients,
		Locations: res.Locations,
		Warnings:  warningStrings(res.Warnings),
		Errors:    warningStrings(failed),
	}
	return out, errors.Join(failed...)
}

func loadAndVerify(ctx context.Context, root string, cfg Config) (*loader.Result, *graph.Graph, error) {
	if err := cfg.Loader.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid loader options: %w", err)
	}

	res, err := loader.New(cfg.Fetcher, cfg.Loader).Load(ctx, root)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range res.Warnings {
		log.Warn().Err(w).Msg("Dropped unsupported definition")
	}

	g := graph.Build(res.Model)
	if err := g.Verify(cfg.VerifierBuiltins); err != nil {
		return nil, nil, err
	}
	log.Debug().Int("nodes", len(g.Nodes())).Int("edges", len(g.Edges())).Msg("Verified reference graph")
	return res, g, nil
}

func selectServices(model *wsdl.Model, name string) ([]*wsdl.Service, error) {
	if name != "" {
		svc, ok := model.ServiceByLocalName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoService, name)
		}
		return []*wsdl.Service{svc}, nil
	}
	if len(model.Services) == 0 {
		return nil, ErrNoService
	}
	return model.Services, nil
}

func warningStrings(warnings []error) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Error())
	}
	return out
}
