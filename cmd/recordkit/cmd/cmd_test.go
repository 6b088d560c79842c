package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
)

const portfolioCSV = `name,shares,price
AA,100,10.5
IBM,50,2.25
`

const mixedCSV = `name,shares,price
AA,100,10.5
IBM,-50,91.1
CAT,150,83.44
MSFT,x,65.1
`

const baseConfig = `[general]
log_level = "error"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCLI executes a fresh command tree against a config file in dir
func runCLI(t *testing.T, dir string, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(dir, "recordkit.toml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		writeFile(t, dir, "recordkit.toml", baseConfig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	root, a := newRoot()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := a.execute(ctx, root)
	return out.String(), err
}

func TestTable_Text(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "portfolio.csv", portfolioCSV)

	out, err := runCLI(t, dir, "", "table", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "      name     shares      price", lines[0])
	assert.Equal(t, "---------- ---------- ---------- ", lines[1])
	assert.Equal(t, "        AA        100       10.5", lines[2])
	assert.Equal(t, "       IBM         50       2.25", lines[3])
}

func TestTable_CSVFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "portfolio.csv", portfolioCSV)

	out, err := runCLI(t, dir, "", "table", path, "--format", "csv", "--fields", "name,price")
	require.NoError(t, err)
	assert.Equal(t, "name,price\nAA,10.5\nIBM,2.25\n", out)
}

func TestTable_Types(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prices.csv", "name,price\nAA,10.5\nIBM,2.25\n")

	out, err := runCLI(t, dir, "", "table", path, "--types", "str,float", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "name,price\nAA,10.5\nIBM,2.25\n", out)

	_, err = runCLI(t, dir, "", "table", path, "--types", "str,int", "--format", "csv")
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeParseFailure, mdwerror.GetCode(err))

	_, err = runCLI(t, dir, "", "table", path, "--types", "str,money")
	require.Error(t, err)
	assert.Equal(t, mdwerror.CodeInvalidInput, mdwerror.GetCode(err))
}

func TestTable_Stdin(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, portfolioCSV, "table", "-", "--format", "csv", "--upper")
	require.NoError(t, err)
	assert.Equal(t, "NAME,SHARES,PRICE\nAA,100,10.5\nIBM,50,2.25\n", out)
}

func TestTable_JSONLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "portfolio.jsonl",
		`{"name": "AA", "shares": 100, "price": 10.5}`+"\n"+
			`{"name": "IBM", "shares": 50, "price": 2.25}`+"\n")

	out, err := runCLI(t, dir, "", "table", path, "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "name,shares,price\nAA,100,10.5\nIBM,50,2.25\n", out)
}

func TestTable_Errors(t *testing.T) {
	dir := t.TempDir()
	portfolio := writeFile(t, dir, "portfolio.csv", portfolioCSV)
	mixed := writeFile(t, dir, "mixed.csv", mixedCSV)

	tests := []struct {
		name string
		args []string
		code mdwerror.Code
	}{
		{"unknown format", []string{"table", portfolio, "--format", "xml"}, mdwerror.CodeUnknownFormat},
		{"unknown schema", []string{"table", portfolio, "--schema", "Bond"}, mdwerror.CodeNotFound},
		{"unknown field", []string{"table", portfolio, "--fields", "name,yield"}, mdwerror.CodeUnknownField},
		{"bad row stops", []string{"table", mixed}, mdwerror.CodeConstraintViolation},
		{"bad policy", []string{"table", portfolio, "--policy", "maybe"}, mdwerror.CodeInvalidConfig},
		{"missing file", []string{"table", filepath.Join(dir, "nope.csv")}, mdwerror.CodeIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, dir, "", tt.args...)
			require.Error(t, err)
			assert.True(t, mdwerror.HasCode(err, tt.code), "error %v, want %s", err, tt.code)
		})
	}
}

func TestTable_SkipPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mixed.csv", mixedCSV)

	out, err := runCLI(t, dir, "", "table", path, "--policy", "skip", "--format", "csv", "--fields", "name")
	require.NoError(t, err)
	assert.Equal(t, "name\nAA\nCAT\n", out)
}

func TestCost(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "portfolio.csv", portfolioCSV+"MSFT,x,65.1\n")

	out, err := runCLI(t, dir, "", "cost", path)
	require.NoError(t, err)
	assert.Equal(t, "Total cost 1162.5\n", out)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "portfolio.csv", portfolioCSV)
	mixed := writeFile(t, dir, "mixed.csv", mixedCSV)

	t.Run("clean", func(t *testing.T) {
		out, err := runCLI(t, dir, "", "validate", clean)
		require.NoError(t, err)
		assert.Equal(t, "Stock: 2 rows checked, 2 valid, 0 rejected\n", out)
	})

	t.Run("skip reports every row", func(t *testing.T) {
		out, err := runCLI(t, dir, "", "validate", mixed, "--policy", "skip")
		require.Error(t, err)
		assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))

		assert.Contains(t, out, "CONSTRAINT_VIOLATION")
		assert.Contains(t, out, `row 3: field shares (token 1 "-50")`)
		assert.Contains(t, out, "PARSE_FAILURE")
		assert.Contains(t, out, "row 5: field shares")
		assert.Contains(t, out, "Stock: 4 rows checked, 2 valid, 2 rejected")
	})

	t.Run("stop ends at first row", func(t *testing.T) {
		out, err := runCLI(t, dir, "", "validate", mixed, "--policy", "stop")
		require.Error(t, err)
		assert.True(t, mdwerror.HasCode(err, mdwerror.CodeConstraintViolation))

		assert.Contains(t, out, "row 3:")
		assert.NotContains(t, out, "row 5:")
		assert.Contains(t, out, "2 rows checked, 1 valid, 1 rejected")
	})
}

func TestSchema(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "recordkit.toml", baseConfig+`
[[schemas]]
name = "Item"

  [[schemas.fields]]
  name = "sku"
  kind = "str"
  constraints = ["non_empty"]
`)

	out, err := runCLI(t, dir, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Item(sku:str[non_empty])")
	assert.Contains(t, out, "Stock(name:str, shares:int[non_negative], price:float[non_negative])")
	assert.Contains(t, out, "Ticker(")

	out, err = runCLI(t, dir, "", "schema", "Stock")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Stock"`)
	assert.Contains(t, out, `"minimum": 0`)

	_, err = runCLI(t, dir, "", "schema", "Bond")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))
}

func TestConfig_DuplicateSchema(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "recordkit.toml", baseConfig+`
[[schemas]]
name = "Stock"

  [[schemas.fields]]
  name = "name"
  kind = "str"
`)

	_, err := runCLI(t, dir, "", "schema")
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidConfig))
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mixed.csv", mixedCSV)
	db := filepath.Join(dir, "data", "records.db")

	out, err := runCLI(t, dir, "", "import", path, "--db", db, "--policy", "skip")
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 Stock records into "+db+" (2 rows skipped, 2 total)\n", out)

	out, err = runCLI(t, dir, "", "import", path, "--db", db, "--policy", "skip", "--vacuum")
	require.NoError(t, err)
	assert.Contains(t, out, "4 total")
}

func TestImportDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mixed.csv", mixedCSV)
	db := filepath.Join(dir, "data", "records.db")

	out, err := runCLI(t, dir, "", "import", path, "--db", db, "--policy", "skip", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "Would import 2 Stock records (2 rows skipped)\n", out)
	assert.NoFileExists(t, db)

	_, err = runCLI(t, dir, "", "import", path, "--db", db, "--dry-run", "--vacuum")
	assert.Error(t, err)
}

func TestTicker(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stocklog.csv",
		`"MMM",62.49,"6/11/2007","09:34.31",0.31,62.25,62.49,62.25,6820`+"\n"+
			`"IBM",102.07,"6/11/2007","09:35.00",-0.35,102.87,102.87,102.07,47000`+"\n"+
			`"CAT",78.52,"6/11/2007","09:35.12",-0.43,78.32,78.52,78.32,12600`+"\n")

	out, err := runCLI(t, dir, "", "ticker", path, "--from-start", "--limit", "1", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "name,price,change\nIBM,102.07,-0.35\n", out)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "recordkit v"))
	assert.Contains(t, out, "Go Version:")
}

func TestLogFileClosedOnFailure(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "recordkit.log")
	cfgPath := writeFile(t, dir, "recordkit.toml", "[general]\nlog_level = \"error\"\nlog_file = \""+filepath.ToSlash(logPath)+"\"\n")

	root, a := newRoot()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "table", filepath.Join(dir, "nope.csv")})

	err := a.execute(context.Background(), root)
	require.Error(t, err)
	assert.Nil(t, a.logFile)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "IO_ERROR")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, mdwerror.New("boom").WithCode(mdwerror.CodeIOError))
	assert.Equal(t, "Error [IO_ERROR]: boom\n", buf.String())
}
