package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	mdwlog "github.com/msto63/recordkit/foundation/core/log"
	"github.com/msto63/recordkit/pkg/core/config"
	"github.com/msto63/recordkit/pkg/core/logging"
)

// app carries the state shared by all subcommands of one invocation
type app struct {
	cfgFile string
	verbose bool

	cfg     *config.Config
	logger  *mdwlog.Logger
	schemas *registry
	runID   string
	logFile *os.File
}

// newRoot builds the command tree and the state its commands share
func newRoot() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "recordkit",
		Short: "recordkit - declarative records for tabular data",
		Long: `recordkit declares typed, validated record types and decodes
CSV or JSON-lines rows into them.

Built-in record types:
  Stock   - name, shares, price
  Ticker  - one line of a real-time stock log

Further record types can be declared in the [[schemas]] section
of the config file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./recordkit.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newTableCmd(a),
		newCostCmd(a),
		newValidateCmd(a),
		newTickerCmd(a),
		newImportCmd(a),
		newSchemaCmd(a),
		newVersionCmd(),
	)
	return root, a
}

// Execute runs the CLI and prints a failure to stderr
func Execute() error {
	root, a := newRoot()
	if err := a.execute(context.Background(), root); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

// execute runs root and closes the log file whether or not the command
// succeeded. A failure is logged before the file is closed.
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	defer a.close()

	err := root.ExecuteContext(ctx)
	if err != nil && a.logger != nil {
		a.logger.LogError(err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	lc := logging.LoggerConfig{
		Name:   a.cfg.General.Name,
		Level:  a.cfg.General.LogLevel,
		Format: a.cfg.General.LogFormat,
		Output: cmd.ErrOrStderr(),
	}
	if a.verbose {
		lc.Level = "debug"
	}
	if a.cfg.General.LogFile != "" {
		f, err := logging.OpenLogFile(a.cfg.General.LogFile)
		if err != nil {
			return err
		}
		a.logFile = f
		lc.AdditionalOutputs = []io.Writer{f}
	}

	a.runID = uuid.NewString()
	a.logger = logging.NewLogger(lc).WithCorrelationID(a.runID)

	a.schemas, err = newRegistry(a.cfg)
	if err != nil {
		return err
	}

	a.logger.Debug("configuration loaded", mdwlog.Fields{
		"command": cmd.Name(),
		"schemas": a.schemas.Names(),
		"policy":  a.cfg.Decode.Policy,
	})
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

func printError(w io.Writer, err error) {
	if code := mdwerror.GetCode(err); code != mdwerror.CodeUnknown {
		fmt.Fprintf(w, "Error [%s]: %v\n", code, err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
