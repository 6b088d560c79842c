package cmd

import (
	"fmt"
	"sort"
	"strings"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/internal/stocks"
	"github.com/msto63/recordkit/pkg/core/config"
)

// registry holds the record types known to one invocation: the built-in
// stock types followed by the types declared in the config file.
type registry struct {
	byName map[string]*record.Schema
}

func newRegistry(cfg *config.Config) (*registry, error) {
	r := &registry{byName: make(map[string]*record.Schema)}

	declared, err := cfg.BuildSchemas()
	if err != nil {
		return nil, err
	}

	builtins := []*record.Schema{stocks.StockSchema, stocks.TickerSchema}
	for _, s := range append(builtins, declared...) {
		if _, exists := r.byName[s.Name()]; exists {
			return nil, mdwerror.New(fmt.Sprintf("schema %s is already declared", s.Name())).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("registry.register").
				WithDetail("schema", s.Name())
		}
		r.byName[s.Name()] = s
	}
	return r, nil
}

// Lookup returns the schema with the given name
func (r *registry) Lookup(name string) (*record.Schema, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, mdwerror.New(fmt.Sprintf("Schema %s unknown (declared: %s)", name, strings.Join(r.Names(), ", "))).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("registry.Lookup").
			WithDetail("schema", name)
	}
	return s, nil
}

// Names returns the declared schema names, sorted
func (r *registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
