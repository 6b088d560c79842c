// File: stock.go
// Title: Stock Record Type
// Description: The Stock schema and a thin typed wrapper adding the cost
//              and sell capabilities on top of the generic record.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package stocks

import (
	"fmt"

	"github.com/msto63/recordkit/foundation/core/decode"
	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/foundation/core/validation"
)

// StockSchema declares a portfolio holding
var StockSchema = record.MustDefine("Stock",
	validation.String("name"),
	validation.PositiveInteger("shares"),
	validation.PositiveFloat("price"),
)

// Field positions in StockSchema
const (
	nameField = iota
	sharesField
	priceField
)

// sellSpec validates the argument of Sell
var sellSpec = validation.PositiveInteger("nshares")

// Stock is a record of StockSchema
type Stock struct {
	*record.Record
}

// NewStock constructs a validated stock
func NewStock(name string, shares int, price float64) (*Stock, error) {
	rec, err := StockSchema.Construct(name, shares, price)
	if err != nil {
		return nil, err
	}
	return &Stock{Record: rec}, nil
}

// StockFromRecord wraps a record that was built from StockSchema
func StockFromRecord(rec *record.Record) (*Stock, error) {
	if rec == nil || rec.Schema() != StockSchema {
		return nil, mdwerror.New("record is not a Stock").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("stocks.StockFromRecord")
	}
	return &Stock{Record: rec}, nil
}

// StockFromRow decodes a name, shares, price row
func StockFromRow(tokens []string) (*Stock, error) {
	rec, err := decode.DecodeRow(StockSchema, tokens)
	if err != nil {
		return nil, err
	}
	return &Stock{Record: rec}, nil
}

// The accessors below read by position. Every Stock wraps a record of
// StockSchema, whose kinds are enforced on construction and on Set.

// Name returns the ticker symbol
func (s *Stock) Name() string {
	return s.Values()[nameField].(string)
}

// Shares returns the number of shares held
func (s *Stock) Shares() int {
	return s.Values()[sharesField].(int)
}

// Price returns the price per share
func (s *Stock) Price() float64 {
	return s.Values()[priceField].(float64)
}

// Cost returns shares * price
func (s *Stock) Cost() float64 {
	return float64(s.Shares()) * s.Price()
}

// Sell removes n shares. A negative n or selling more than is held is a
// CONSTRAINT_VIOLATION and leaves the stock unchanged.
func (s *Stock) Sell(n int) error {
	if _, err := sellSpec.Check(n); err != nil {
		return mdwerror.Wrap(err, fmt.Sprintf("%s: cannot sell %d shares", s.Name(), n)).
			WithOperation("stocks.Sell")
	}
	return s.Set("shares", s.Shares()-n)
}

// PortfolioCost sums shares * price over records that carry both fields
func PortfolioCost(records []*record.Record) (float64, error) {
	total := 0.0
	for _, rec := range records {
		shares, err := rec.Int("shares")
		if err != nil {
			return 0, err
		}
		price, err := rec.Float("price")
		if err != nil {
			return 0, err
		}
		total += float64(shares) * price
	}
	return total, nil
}
