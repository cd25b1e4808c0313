// Command checkout solves double-out darts checkouts from the command line
// and serves the checkout HTTP API.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/MJE43/darts-checkout-go/internal/api"
	"github.com/MJE43/darts-checkout-go/internal/config"
	"github.com/MJE43/darts-checkout-go/internal/darts"
	"github.com/MJE43/darts-checkout-go/internal/logging"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the state shared by every subcommand.
type app struct {
	out        io.Writer
	configPath string
	envFile    string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
	solver *darts.Solver
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, solver: darts.NewSolver()}

	root := &cobra.Command{
		Use:          "checkout",
		Short:        "Double-out darts checkout solver",
		Version:      api.EngineVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file (or "+config.EnvConfigPath+")")
	flags.StringVar(&a.envFile, "env-file", ".env", "optional dotenv file with CHECKOUT_* variables")
	flags.StringVar(&a.logLevel, "log-level", "", "override the log level (debug, info, warn, error)")

	root.AddCommand(
		a.newFinishCmd(),
		a.newRoundCmd(),
		a.newChartCmd(),
		a.newScanCmd(),
		a.newServeCmd(),
	)
	return root
}

// setup loads configuration, builds the logger and sizes GOMAXPROCS.
func (a *app) setup() error {
	cfg, err := config.Load(config.Options{Path: a.configPath, EnvFile: a.envFile})
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if _, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf)); err != nil {
		logger.Warn("maxprocs_failed", zap.Error(err))
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}
