package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/recordkit/foundation/core/decode"
	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/foundation/core/validation"
	"github.com/msto63/recordkit/internal/reader"
)

// inputOptions are the flags shared by the commands that decode a file
type inputOptions struct {
	schema string
	policy string
}

func (o *inputOptions) bind(cmd *cobra.Command, defaultSchema string) {
	cmd.Flags().StringVarP(&o.schema, "schema", "s", defaultSchema, "record type to decode into")
	cmd.Flags().StringVar(&o.policy, "policy", "", "bad row policy: stop|skip (default: from config)")
}

// resolvePolicy returns the flag policy, falling back to the config
func (a *app) resolvePolicy(flag string) (decode.Policy, error) {
	if flag != "" {
		return decode.ParsePolicy(flag)
	}
	return a.cfg.DecodePolicy()
}

// readInput decodes path into records of schema. Files ending in .jsonl,
// .ndjson or .json are read as JSON lines, everything else as CSV; "-"
// reads CSV from stdin.
func (a *app) readInput(ctx context.Context, cmd *cobra.Command, path string, schema *record.Schema, policy decode.Policy, onSkip func(*decode.RowDecodeError)) ([]*record.Record, decode.Stats, error) {
	opts := reader.Options{
		HasHeader: a.cfg.HeaderRow(),
		Comma:     a.cfg.CommaRune(),
		Policy:    policy,
		Logger:    a.logger,
		OnSkip:    onSkip,
	}

	op := "read " + filepath.Base(path)
	timer := a.logger.StartTimer(op).WithField("schema", schema.Name())
	records, stats, err := a.read(ctx, cmd.InOrStdin(), path, schema, opts)
	if err != nil {
		timer.StopWithError(err)
	} else {
		timer.WithField("decoded", stats.Decoded).WithField("skipped", stats.Skipped).Stop()
	}
	return records, stats, err
}

func (a *app) read(ctx context.Context, stdin io.Reader, path string, schema *record.Schema, opts reader.Options) ([]*record.Record, decode.Stats, error) {
	if path == "-" {
		return reader.ReadCSV(ctx, stdin, schema, opts)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson", ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, decode.Stats{}, mdwerror.Wrap(err, fmt.Sprintf("cannot open %s", path)).
				WithCode(mdwerror.CodeIOError).
				WithOperation("cmd.readInput").
				WithDetail("path", path)
		}
		defer f.Close()
		return reader.ReadJSONLines(ctx, f, schema, opts)
	default:
		return reader.ReadCSVFile(ctx, path, schema, opts)
	}
}

// readDicts reads a CSV file with a header row into row maps, converting
// each column with the matching kind name. No schema is involved.
func (a *app) readDicts(ctx context.Context, cmd *cobra.Command, path string, types []string) ([]string, []map[string]interface{}, error) {
	kinds := make([]validation.Kind, len(types))
	for i, name := range types {
		kind, err := validation.ParseKind(name)
		if err != nil {
			return nil, nil, err
		}
		kinds[i] = kind
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, mdwerror.Wrap(err, fmt.Sprintf("cannot open %s", path)).
				WithCode(mdwerror.CodeIOError).
				WithOperation("cmd.readDicts").
				WithDetail("path", path)
		}
		defer f.Close()
		r = f
	}

	op := "read " + filepath.Base(path)
	timer := a.logger.StartTimer(op).WithField("types", strings.Join(types, ","))
	headers, rows, err := reader.ReadDicts(ctx, r, kinds, a.cfg.CommaRune())
	if err != nil {
		timer.StopWithError(err)
		return nil, nil, err
	}
	timer.WithField("rows", len(rows)).Stop()
	return headers, rows, nil
}
