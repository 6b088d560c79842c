package reader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/recordkit/foundation/core/decode"
	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	mdwlog "github.com/msto63/recordkit/foundation/core/log"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/foundation/core/validation"
)

var stock = record.MustDefine("Stock",
	validation.String("name"),
	validation.PositiveInteger("shares"),
	validation.PositiveFloat("price"),
)

const portfolio = `name,shares,price
"AA",100,32.20
"IBM",50,91.10
"CAT",150,83.44
"MSFT",200,51.23
"GE",95,40.37
"MSFT",50,65.10
"IBM",100,70.44
`

const missing = `name,shares,price
"AA",100,32.20
"IBM",,91.10
"CAT",150,83.44
"MSFT",-200,51.23
`

func names(t *testing.T, records []*record.Record) []string {
	t.Helper()
	out := make([]string, len(records))
	for i, r := range records {
		name, err := r.Str("name")
		require.NoError(t, err)
		out[i] = name
	}
	return out
}

func TestReadCSVWithHeader(t *testing.T) {
	records, stats, err := ReadCSV(context.Background(), strings.NewReader(portfolio), stock, Options{HasHeader: true})
	require.NoError(t, err)
	assert.Len(t, records, 7)
	assert.Equal(t, decode.Stats{Rows: 7, Decoded: 7}, stats)
	assert.Equal(t, "Stock(name='AA', shares=100, price=32.2)", records[0].String())
}

func TestReadCSVReordersColumnsByHeader(t *testing.T) {
	input := "price,name,shares,exchange\n32.20,AA,100,NYSE\n"
	records, _, err := ReadCSV(context.Background(), strings.NewReader(input), stock, Options{HasHeader: true})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []interface{}{"AA", 100, 32.2}, records[0].Values())
}

func TestReadCSVExplicitHeaders(t *testing.T) {
	input := "100,AA,32.20\n"
	records, _, err := ReadCSV(context.Background(), strings.NewReader(input), stock, Options{
		Headers: []string{"shares", "name", "price"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []interface{}{"AA", 100, 32.2}, records[0].Values())
}

func TestReadCSVMissingColumn(t *testing.T) {
	_, _, err := ReadCSV(context.Background(), strings.NewReader("name,shares\nAA,100\n"), stock, Options{HasHeader: true})
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeMissingField, mdwerror.GetCode(err))
}

func TestReadCSVPolicies(t *testing.T) {
	ctx := context.Background()

	records, stats, err := ReadCSV(ctx, strings.NewReader(missing), stock, Options{HasHeader: true, Policy: decode.PolicyStop})
	require.Error(t, err)
	assert.Equal(t, []string{"AA"}, names(t, records))
	assert.Equal(t, 2, stats.Rows)

	var rerr *decode.RowDecodeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 3, rerr.Row)
	assert.Equal(t, mdwerror.CodeParseFailure, rerr.Code)

	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelWarn, Format: mdwlog.FormatLogfmt, Output: &buf})
	records, stats, err = ReadCSV(ctx, strings.NewReader(missing), stock, Options{
		HasHeader: true,
		Policy:    decode.PolicySkip,
		Logger:    logger,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"AA", "CAT"}, names(t, records))
	assert.Equal(t, decode.Stats{Rows: 4, Decoded: 2, Skipped: 2}, stats)
	assert.Equal(t, 2, strings.Count(buf.String(), "row skipped"))
}

func TestReadCSVWithoutHeader(t *testing.T) {
	records, _, err := ReadCSV(context.Background(), strings.NewReader("AA;100;32.2\n"), stock, Options{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"AA"}, names(t, records))
}

func TestReadCSVEmptyInput(t *testing.T) {
	records, stats, err := ReadCSV(context.Background(), strings.NewReader(""), stock, Options{HasHeader: true})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, decode.Stats{}, stats)
}

func TestReadCSVCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records, _, err := ReadCSV(ctx, strings.NewReader(portfolio), stock, Options{HasHeader: true})
	require.Error(t, err)
	assert.Empty(t, records)
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.csv")
	require.NoError(t, os.WriteFile(path, []byte(portfolio), 0o644))

	records, _, err := ReadCSVFile(context.Background(), path, stock, Options{HasHeader: true})
	require.NoError(t, err)
	assert.Len(t, records, 7)

	_, _, err = ReadCSVFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), stock, Options{})
	assert.Equal(t, mdwerror.CodeIOError, mdwerror.GetCode(err))
}

func TestCSVRowsContinuesAfterMalformedLine(t *testing.T) {
	src := CSVRows(strings.NewReader("a,b\nI\"BM,1\nc,d\n"), 0)

	row, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, row)

	_, err = src.Next()
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeParseFailure, mdwerror.GetCode(err))
	line, _ := mdwerror.GetDetail(err, "line")
	assert.Equal(t, 2, line)

	row, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, row)

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

const strayQuote = `name,shares,price
AA,100,32.2
I"BM,50,91.1
CAT,150,83.44
GE,95,40.37
`

func TestReadCSVSkipsMalformedLine(t *testing.T) {
	var skipped []*decode.RowDecodeError
	records, stats, err := ReadCSV(context.Background(), strings.NewReader(strayQuote), stock, Options{
		HasHeader: true,
		Policy:    decode.PolicySkip,
		OnSkip:    func(rerr *decode.RowDecodeError) { skipped = append(skipped, rerr) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"AA", "CAT", "GE"}, names(t, records))
	assert.Equal(t, decode.Stats{Rows: 4, Decoded: 3, Skipped: 1}, stats)

	require.Len(t, skipped, 1)
	assert.Equal(t, 3, skipped[0].Row)
	assert.Equal(t, mdwerror.CodeParseFailure, skipped[0].Code)

	_, _, err = ReadCSV(context.Background(), strings.NewReader(strayQuote), stock, Options{HasHeader: true})
	var rerr *decode.RowDecodeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 3, rerr.Row)
	assert.Equal(t, mdwerror.CodeParseFailure, rerr.Code)
}

func TestReadCSVStopsOnReadError(t *testing.T) {
	_, _, err := ReadCSV(context.Background(), iotest.ErrReader(errors.New("disk gone")), stock, Options{})
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeIOError, mdwerror.GetCode(err))
}

func TestReadJSONLines(t *testing.T) {
	input := `{"name":"AA","shares":100,"price":32.2}

{"name":"IBM","shares":50,"price":91}
{"name":"CAT","shares":-150,"price":83.44}
{"name":"GE","price":40.37}
not json
`
	records, stats, err := ReadJSONLines(context.Background(), strings.NewReader(input), stock, Options{Policy: decode.PolicySkip})
	require.NoError(t, err)
	assert.Equal(t, []string{"AA", "IBM"}, names(t, records))
	assert.Equal(t, decode.Stats{Rows: 5, Decoded: 2, Skipped: 3}, stats)

	price, err := records[1].Float("price")
	require.NoError(t, err)
	assert.Equal(t, 91.0, price)

	_, _, err = ReadJSONLines(context.Background(), strings.NewReader(input), stock, Options{})
	require.Error(t, err)
	var rerr *decode.RowDecodeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 4, rerr.Row)
}

func TestReadJSONLinesReportsFieldErrors(t *testing.T) {
	input := `{"name":"AA","shares":100,"price":32.2}
{"name":"IBM","shares":100.0,"price":91.1}
{"name":"CAT","shares":-150,"price":83.44}
{"name":"GE","shares":"abc","price":40.37}
{"name":"HP","shares":10,"price":1.5,"extra":true}
{"name":"MMM","shares":10}
`
	var skipped []*decode.RowDecodeError
	records, stats, err := ReadJSONLines(context.Background(), strings.NewReader(input), stock, Options{
		Policy: decode.PolicySkip,
		OnSkip: func(rerr *decode.RowDecodeError) { skipped = append(skipped, rerr) },
	})
	require.NoError(t, err)
	assert.Equal(t, decode.Stats{Rows: 6, Decoded: 2, Skipped: 4}, stats)
	assert.Equal(t, []string{"AA", "IBM"}, names(t, records))

	shares, err := records[1].Int("shares")
	require.NoError(t, err)
	assert.Equal(t, 100, shares)

	tests := []struct {
		row   int
		code  mdwerror.Code
		field string
	}{
		{3, mdwerror.CodeConstraintViolation, "shares"},
		{4, mdwerror.CodeTypeMismatch, "shares"},
		{5, mdwerror.CodeUnknownField, "extra"},
		{6, mdwerror.CodeMissingField, "price"},
	}
	require.Len(t, skipped, len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.row, skipped[i].Row)
		assert.Equal(t, tt.code, skipped[i].Code, "row %d", tt.row)
		assert.Equal(t, tt.field, skipped[i].Field, "row %d", tt.row)
	}
}

func TestReadDicts(t *testing.T) {
	kinds := []validation.Kind{validation.KindString, validation.KindInteger, validation.KindFloat}
	headers, rows, err := ReadDicts(context.Background(), strings.NewReader(portfolio), kinds, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "shares", "price"}, headers)
	require.Len(t, rows, 7)
	assert.Equal(t, map[string]interface{}{"name": "AA", "shares": 100, "price": 32.2}, rows[0])

	_, _, err = ReadDicts(context.Background(), strings.NewReader(missing), kinds, 0)
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeParseFailure, mdwerror.GetCode(err))
	row, _ := mdwerror.GetDetail(err, "row")
	assert.Equal(t, 3, row)

	_, _, err = ReadDicts(context.Background(), strings.NewReader(portfolio), kinds[:2], 0)
	assert.Equal(t, mdwerror.CodeArityMismatch, mdwerror.GetCode(err))
}
