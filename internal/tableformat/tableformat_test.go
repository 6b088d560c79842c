package tableformat

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/foundation/core/validation"
)

var stock = record.MustDefine("Stock",
	validation.String("name"),
	validation.PositiveInteger("shares"),
	validation.PositiveFloat("price"),
)

func portfolio(t *testing.T) []*record.Record {
	t.Helper()
	var out []*record.Record
	for _, v := range [][]interface{}{
		{"AA", 100, 32.2},
		{"IBM", 50, 91.1},
		{"CAT", 150, 83.44},
	} {
		r, err := stock.Construct(v...)
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func render(t *testing.T, format string, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	f, err := New(format, &buf, opts)
	require.NoError(t, err)
	require.NoError(t, PrintTable(slices.Values(portfolio(t)), []string{"name", "shares", "price"}, f))
	return buf.String()
}

func TestTextFormat(t *testing.T) {
	want := "" +
		"      name     shares      price\n" +
		"---------- ---------- ---------- \n" +
		"        AA        100       32.2\n" +
		"       IBM         50       91.1\n" +
		"       CAT        150      83.44\n"
	assert.Equal(t, want, render(t, "text", Options{}))
}

func TestCSVFormat(t *testing.T) {
	want := "name,shares,price\nAA,100,32.2\nIBM,50,91.1\nCAT,150,83.44\n"
	assert.Equal(t, want, render(t, "csv", Options{}))
}

func TestHTMLFormat(t *testing.T) {
	out := render(t, "html", Options{})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "<tr> <th>name</th> <th>shares</th> <th>price</th> </tr>", lines[0])
	assert.Equal(t, "<tr> <td>AA</td> <td>100</td> <td>32.2</td> </tr>", lines[1])
}

func TestColumnFormatsAndUpperHeaders(t *testing.T) {
	out := render(t, "csv", Options{
		UpperHeaders:  true,
		ColumnFormats: []string{`"%s"`, "%d", "%0.2f"},
	})
	want := "NAME,SHARES,PRICE\n\"AA\",100,32.20\n\"IBM\",50,91.10\n\"CAT\",150,83.44\n"
	assert.Equal(t, want, out)
}

func TestPrettyFormat(t *testing.T) {
	out := render(t, "pretty", Options{UpperHeaders: true})
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "83.44")
	assert.Contains(t, out, "╭")
}

func TestUnknownFormat(t *testing.T) {
	_, err := New("xls", &bytes.Buffer{}, Options{})
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeUnknownFormat, mdwerror.GetCode(err))
	assert.Equal(t, []string{"csv", "html", "pretty", "text"}, Formats())
}

func TestPrintTableUnknownField(t *testing.T) {
	f, err := New("text", &bytes.Buffer{}, Options{})
	require.NoError(t, err)
	err = PrintTable(slices.Values(portfolio(t)), []string{"name", "volume"}, f)
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeUnknownField, mdwerror.GetCode(err))
}

type closeRecorder struct {
	Formatter
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return c.Formatter.Close()
}

func TestPrintTableClosesOnError(t *testing.T) {
	var buf bytes.Buffer
	base, err := New("pretty", &buf, Options{})
	require.NoError(t, err)
	f := &closeRecorder{Formatter: base}

	err = PrintTable(slices.Values(portfolio(t)), []string{"name", "volume"}, f)
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeUnknownField, mdwerror.GetCode(err))
	assert.Equal(t, 1, f.closed)

	base, err = New("pretty", &buf, Options{})
	require.NoError(t, err)
	f = &closeRecorder{Formatter: base}
	require.NoError(t, PrintTable(slices.Values(portfolio(t)), []string{"name"}, f))
	assert.Equal(t, 1, f.closed)
}

func TestPrintDicts(t *testing.T) {
	rows := []map[string]interface{}{
		{"name": "AA", "shares": 100, "price": 32.2},
		{"name": "IBM", "shares": 50, "price": 91.1},
	}

	var buf bytes.Buffer
	f, err := New("csv", &buf, Options{})
	require.NoError(t, err)
	require.NoError(t, PrintDicts(rows, []string{"name", "shares"}, f))
	assert.Equal(t, "name,shares\nAA,100\nIBM,50\n", buf.String())

	f, err = New("csv", &bytes.Buffer{}, Options{})
	require.NoError(t, err)
	err = PrintDicts(rows, []string{"name", "volume"}, f)
	assert.Equal(t, mdwerror.CodeUnknownField, mdwerror.GetCode(err))
}
