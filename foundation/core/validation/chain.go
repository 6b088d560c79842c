// File: chain.go
// Title: Validator Chain Implementation
// Description: Runs an ordered list of validators against one value. Field
//              specs build their checks on top of a chain configured to stop
//              on the first error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial validator chain implementation
// - 2026-10-18 v0.2.0: Dropped parallel/conditional validators, context cancellation

package validation

import (
	"context"
	"fmt"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
)

// ValidatorChain represents a chain of validators executed sequentially
type ValidatorChain struct {
	validators       []Validator
	name             string
	stopOnFirstError bool
}

// NewValidatorChain creates a new validator chain with an optional name
func NewValidatorChain(name ...string) *ValidatorChain {
	chainName := ""
	if len(name) > 0 {
		chainName = name[0]
	}
	return &ValidatorChain{name: chainName}
}

// Add adds validators to the end of the chain
func (c *ValidatorChain) Add(validators ...Validator) *ValidatorChain {
	c.validators = append(c.validators, validators...)
	return c
}

// AddFunc adds a validator function to the chain
func (c *ValidatorChain) AddFunc(fn ValidatorFunc) *ValidatorChain {
	c.validators = append(c.validators, fn)
	return c
}

// StopOnFirstError configures the chain to stop on the first validation error.
// By default, chains collect all validation errors.
func (c *ValidatorChain) StopOnFirstError(stop bool) *ValidatorChain {
	c.stopOnFirstError = stop
	return c
}

// Validate executes all validators in the chain and returns combined results
func (c *ValidatorChain) Validate(value interface{}) ValidationResult {
	return c.ValidateWithContext(context.Background(), value)
}

// ValidateWithContext executes the validators in order. A cancelled context
// stops the chain and is reported as a failed result.
func (c *ValidatorChain) ValidateWithContext(ctx context.Context, value interface{}) ValidationResult {
	results := make([]ValidationResult, 0, len(c.validators))

	for i, validator := range c.validators {
		if err := ctx.Err(); err != nil {
			results = append(results, NewValidationError(mdwerror.CodeInternal, err.Error(), value))
			break
		}

		result := validator.ValidateWithContext(ctx, value)
		if !result.Valid {
			result.WithContext("validatorIndex", i)
		}
		results = append(results, result)

		if c.stopOnFirstError && !result.Valid {
			break
		}
	}

	combined := Combine(results...)
	if c.name != "" {
		combined.WithContext("validatorChain", c.name)
	}
	combined.WithContext("executedValidators", len(results))
	return combined
}

// Length returns the number of validators in the chain
func (c *ValidatorChain) Length() int {
	return len(c.validators)
}

// Name returns the chain name
func (c *ValidatorChain) Name() string {
	return c.name
}

// String returns a string representation of the validator chain
func (c *ValidatorChain) String() string {
	name := c.name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("ValidatorChain{name: %s, validators: %d, stopOnFirstError: %v}",
		name, len(c.validators), c.stopOnFirstError)
}
