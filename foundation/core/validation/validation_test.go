// File: validation_test.go
// Title: Validation Framework Tests
// Description: Tests for kinds, constraints, specs and validator chains.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial tests
// - 2026-10-18 v0.2.0: Spec and constraint tests

package validation

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
)

func TestKindMatches(t *testing.T) {
	tests := []struct {
		kind  Kind
		value interface{}
		want  bool
	}{
		{KindString, "GOOG", true},
		{KindString, 1, false},
		{KindInteger, 100, true},
		{KindInteger, 100.0, false},
		{KindInteger, "100", false},
		{KindInteger, int64(100), false},
		{KindFloat, 490.1, true},
		{KindFloat, 490, false},
		{KindFloat, nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Matches(tt.value), "%s matches %#v", tt.kind, tt.value)
	}
}

func TestKindParse(t *testing.T) {
	v, err := KindInteger.Parse(" 100 ")
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	v, err = KindFloat.Parse("490.1")
	require.NoError(t, err)
	assert.Equal(t, 490.1, v)

	v, err = KindString.Parse(" GOOG ")
	require.NoError(t, err)
	assert.Equal(t, " GOOG ", v)

	_, err = KindInteger.Parse("abc")
	assert.Error(t, err)
	_, err = KindInteger.Parse("1.5")
	assert.Error(t, err)
	_, err = KindFloat.Parse("")
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]Kind{
		"int": KindInteger, "Integer": KindInteger,
		"float": KindFloat, "str": KindString, "string": KindString,
	} {
		got, err := ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseKind("decimal")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "str", KindOf("x"))
	assert.Equal(t, "int", KindOf(1))
	assert.Equal(t, "float", KindOf(1.5))
	assert.Equal(t, "nil", KindOf(nil))
	assert.Equal(t, "bool", KindOf(true))
}

func TestConstraints(t *testing.T) {
	assert.True(t, NonNegative().Holds(0))
	assert.True(t, NonNegative().Holds(0.5))
	assert.False(t, NonNegative().Holds(-1))
	assert.False(t, NonNegative().Holds(math.NaN()))
	assert.False(t, NonNegative().Holds("1"))
	assert.Equal(t, "Expected >= 0", NonNegative().Reason())
	assert.Equal(t, ConstraintNonNegative, NonNegative().Name())

	assert.True(t, RangeCheck(10).Holds(10))
	assert.False(t, RangeCheck(10).Holds(9.99))
	assert.Equal(t, "min:10", RangeCheck(10).Name())

	assert.True(t, NonEmptyCheck().Holds("a"))
	assert.False(t, NonEmptyCheck().Holds(""))
	assert.Equal(t, "Must be non-empty", NonEmptyCheck().Reason())

	upper := NewConstraint("upper", "Must be upper case", func(v interface{}) bool {
		s, _ := v.(string)
		return s == strings.ToUpper(s)
	})
	assert.True(t, upper.Holds("GOOG"))
	assert.False(t, upper.Holds("goog"))
	assert.Equal(t, mdwerror.CodeConstraintViolation, upper.Code())
}

func TestSpecCheckAcceptsValidValues(t *testing.T) {
	tests := []struct {
		spec  *Spec
		value interface{}
	}{
		{String("name"), "GOOG"},
		{String("name"), ""},
		{NonEmptyString("name"), "GOOG"},
		{Integer("shares"), -5},
		{PositiveInteger("shares"), 0},
		{PositiveInteger("shares"), 100},
		{Float("price"), -1.5},
		{PositiveFloat("price"), 490.1},
	}
	for _, tt := range tests {
		got, err := tt.spec.Check(tt.value)
		require.NoError(t, err, tt.spec.String())
		assert.Equal(t, tt.value, got)
	}
}

func TestSpecCheckTypeMismatchFirst(t *testing.T) {
	// a string would also fail the range check; the kind check must win
	_, err := PositiveInteger("shares").Check("50")
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeTypeMismatch, mdwerror.GetCode(err))

	field, _ := mdwerror.GetDetail(err, "field")
	expected, _ := mdwerror.GetDetail(err, "expected")
	actual, _ := mdwerror.GetDetail(err, "actual")
	assert.Equal(t, "shares", field)
	assert.Equal(t, "int", expected)
	assert.Equal(t, "str", actual)
	assert.Equal(t, "shares: Expected int, got str", err.Error())
}

func TestSpecCheckConstraintViolation(t *testing.T) {
	_, err := PositiveFloat("price").Check(-100.4)
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeConstraintViolation, mdwerror.GetCode(err))
	assert.Equal(t, "price: Expected >= 0", err.Error())

	constraint, _ := mdwerror.GetDetail(err, "constraint")
	value, _ := mdwerror.GetDetail(err, "value")
	assert.Equal(t, ConstraintNonNegative, constraint)
	assert.Equal(t, -100.4, value)

	_, err = NonEmptyString("name").Check("")
	assert.Equal(t, "name: Must be non-empty", err.Error())
}

func TestSpecStopsAtFirstConstraint(t *testing.T) {
	calls := 0
	counting := NewConstraint("counting", "never", func(interface{}) bool {
		calls++
		return true
	})
	spec := NewSpec("qty", KindInteger, NonNegative(), counting)

	result := spec.Validate(-1)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 0, calls)

	result = spec.Validate(1)
	assert.True(t, result.Valid)
	assert.Equal(t, 1, calls)
}

func TestSpecIsImmutable(t *testing.T) {
	constraints := []Constraint{NonNegative()}
	spec := NewSpec("qty", KindInteger, constraints...)
	constraints[0] = NonEmptyCheck()

	got := spec.Constraints()
	require.Len(t, got, 1)
	assert.Equal(t, ConstraintNonNegative, got[0].Name())

	got[0] = NonEmptyCheck()
	assert.Equal(t, ConstraintNonNegative, spec.Constraints()[0].Name())
	assert.Equal(t, "qty:int[non_negative]", spec.String())
}

func TestSpecParse(t *testing.T) {
	v, err := PositiveInteger("shares").Parse("100")
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	_, err = PositiveInteger("shares").Parse("abc")
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeParseFailure, mdwerror.GetCode(err))
	token, _ := mdwerror.GetDetail(err, "token")
	assert.Equal(t, "abc", token)

	// parse succeeds, constraint fails
	_, err = PositiveInteger("shares").ParseAndCheck("-5")
	assert.Equal(t, mdwerror.CodeConstraintViolation, mdwerror.GetCode(err))
}

func TestValidatorChainCollectsAll(t *testing.T) {
	chain := NewValidatorChain("all").
		Add(NonNegative(), RangeCheck(10)).
		AddFunc(func(v interface{}) ValidationResult { return NewValidationResult() })

	result := chain.Validate(-1)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Context["executedValidators"])
	assert.Equal(t, "all", chain.Name())
	assert.Equal(t, 3, chain.Length())

	err := result.ToError()
	total, _ := mdwerror.GetDetail(err, "totalErrors")
	assert.Equal(t, 2, total)
}

func TestValidatorChainStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewValidatorChain().Add(NonNegative()).ValidateWithContext(ctx, 1)
	assert.False(t, result.Valid)
	assert.True(t, result.HasError(mdwerror.CodeInternal))
}

func TestValidationResultString(t *testing.T) {
	assert.Equal(t, "ValidationResult{valid: true}", NewValidationResult().String())

	result := PositiveInteger("shares").Validate(-1)
	assert.Equal(t, "ValidationResult{valid: false, errors: 1, first: Expected >= 0, field: shares}", result.String())
	assert.Contains(t, result.Errors[0].String(), "field:shares")
	assert.Nil(t, NewValidationResult().ToError())
}
