// ============================================================================
// recordkit - declarative records for tabular data
// ============================================================================
//
// Package:     config
// Description: Record types declared in the configuration file
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/foundation/core/validation"
)

// SchemaConfig declares a record type in configuration
type SchemaConfig struct {
	Name   string        `toml:"name" yaml:"name"`
	Fields []FieldConfig `toml:"fields" yaml:"fields"`
}

// FieldConfig declares one field of a record type
type FieldConfig struct {
	Name string `toml:"name" yaml:"name"`
	// Kind is one of str, int, float
	Kind string `toml:"kind" yaml:"kind"`
	// Constraints are non_negative, non_empty or min:<n>
	Constraints []string `toml:"constraints" yaml:"constraints"`
}

// BuildSchemas defines every declared record type in declaration order
func (c *Config) BuildSchemas() ([]*record.Schema, error) {
	schemas := make([]*record.Schema, 0, len(c.Schemas))
	seen := make(map[string]bool, len(c.Schemas))

	for _, sc := range c.Schemas {
		if seen[sc.Name] {
			return nil, mdwerror.New(fmt.Sprintf("schema %q declared twice", sc.Name)).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.BuildSchemas").
				WithDetail("schema", sc.Name)
		}
		seen[sc.Name] = true

		schema, err := sc.Build()
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

// Build defines the record type
func (sc SchemaConfig) Build() (*record.Schema, error) {
	specs := make([]*validation.Spec, 0, len(sc.Fields))
	for _, fc := range sc.Fields {
		spec, err := fc.spec()
		if err != nil {
			return nil, mdwerror.Wrap(err, fmt.Sprintf("schema %s", sc.Name)).
				WithCode(mdwerror.CodeInvalidConfig).
				WithDetail("schema", sc.Name)
		}
		specs = append(specs, spec)
	}

	schema, err := record.Define(sc.Name, specs...)
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("schema %s", sc.Name)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.BuildSchemas").
			WithDetail("schema", sc.Name)
	}
	return schema, nil
}

func (fc FieldConfig) spec() (*validation.Spec, error) {
	kind, err := validation.ParseKind(fc.Kind)
	if err != nil {
		return nil, err
	}

	constraints := make([]validation.Constraint, 0, len(fc.Constraints))
	for _, name := range fc.Constraints {
		c, err := parseConstraint(name)
		if err != nil {
			return nil, mdwerror.Wrap(err, fmt.Sprintf("field %s", fc.Name)).
				WithDetail("field", fc.Name)
		}
		constraints = append(constraints, c)
	}
	return validation.NewSpec(fc.Name, kind, constraints...), nil
}

func parseConstraint(name string) (validation.Constraint, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == validation.ConstraintNonNegative:
		return validation.NonNegative(), nil
	case name == validation.ConstraintNonEmpty:
		return validation.NonEmptyCheck(), nil
	case strings.HasPrefix(name, validation.ConstraintMin+":"):
		bound, err := strconv.ParseFloat(strings.TrimPrefix(name, validation.ConstraintMin+":"), 64)
		if err != nil {
			return validation.Constraint{}, mdwerror.Wrap(err, fmt.Sprintf("invalid bound in constraint %q", name)).
				WithCode(mdwerror.CodeInvalidConfig).
				WithDetail("constraint", name)
		}
		return validation.RangeCheck(bound), nil
	default:
		return validation.Constraint{}, mdwerror.New(fmt.Sprintf("unknown constraint %q (valid: non_negative, non_empty, min:<n>)", name)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("constraint", name)
	}
}
