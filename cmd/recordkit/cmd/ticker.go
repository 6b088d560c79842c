package cmd

import (
	"context"
	"iter"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/recordkit/foundation/core/log"
	"github.com/msto63/recordkit/foundation/core/record"
	"github.com/msto63/recordkit/internal/follow"
	"github.com/msto63/recordkit/internal/reader"
	"github.com/msto63/recordkit/internal/stocks"
	"github.com/msto63/recordkit/internal/tableformat"
)

func newTickerCmd(a *app) *cobra.Command {
	var (
		format    string
		fields    []string
		fromStart bool
		poll      time.Duration
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "ticker <logfile>",
		Short: "Follow a stock log and print falling prices",
		Long: `Follows a real-time stock log, decodes each appended line as a
Ticker record and prints the records whose change is negative.
Stops on Ctrl+C.

Examples:
  recordkit ticker Data/stocklog.csv
  recordkit ticker Data/stocklog.csv --format pretty --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			if format == "" {
				format = a.cfg.Table.Format
			}
			f, err := tableformat.New(format, cmd.OutOrStdout(), tableformat.Options{
				UpperHeaders: a.cfg.Table.UpperHeaders,
			})
			if err != nil {
				return err
			}

			if poll == 0 {
				poll = a.cfg.Follow.PollInterval.Duration
			}
			lines, errs := follow.Follow(ctx, args[0], follow.Options{
				PollInterval: poll,
				FromStart:    fromStart,
				Logger:       a.logger,
			})

			records := stocks.NegativeChange(tickerRecords(lines, a.cfg.CommaRune(), a.logger))
			if limit > 0 {
				records = take(records, limit)
			}
			if err := tableformat.PrintTable(records, fields, f); err != nil {
				return err
			}

			cancel()
			for err := range errs {
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text|csv|html|pretty (default: from config)")
	cmd.Flags().StringSliceVar(&fields, "fields", []string{"name", "price", "change"}, "fields to print")
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "emit the existing lines before following")
	cmd.Flags().DurationVar(&poll, "poll", 0, "poll interval (default: from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after printing n records (0 = unlimited)")
	return cmd
}

// tickerRecords decodes followed lines as Ticker records. Lines that do
// not decode are logged and dropped.
func tickerRecords(lines <-chan string, comma rune, logger *mdwlog.Logger) iter.Seq[*record.Record] {
	return func(yield func(*record.Record) bool) {
		for line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			tokens, err := reader.CSVRows(strings.NewReader(line), comma).Next()
			if err != nil {
				logger.WarnWithErr("unreadable ticker line", err, mdwlog.Field("line", line))
				continue
			}
			rec, err := stocks.TickerFromRow(tokens)
			if err != nil {
				logger.WarnWithErr("ticker line skipped", err, mdwlog.Field("line", line))
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

func take(records iter.Seq[*record.Record], n int) iter.Seq[*record.Record] {
	return func(yield func(*record.Record) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for rec := range records {
			if !yield(rec) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}
