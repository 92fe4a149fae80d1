package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/catherinevee/inventorymgr/internal/app"
	"github.com/catherinevee/inventorymgr/internal/infrastructure/config"
	"github.com/catherinevee/inventorymgr/internal/logger"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configPath string
	envFile    string
	logLevel   string
	mock       bool
	output     string

	cfg *config.Config
}

const (
	outputTable = "table"
	outputJSON  = "json"
)

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "inventorymgr",
		Short: "OCI resource inventory",
		Long: `Aggregate OCI resources across compartments and categories, backed by a
shared cache. Without usable credentials the inventory is served from mock data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before the configuration")
	flags.StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")
	flags.BoolVar(&opts.mock, "mock", false, "Serve mock data without contacting OCI")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "Output format (table, json)")

	root.AddCommand(
		newServeCommand(opts),
		newCompartmentsCommand(opts),
		newResourcesCommand(opts),
		newAllCommand(opts),
		newMetricsCommand(opts),
		newInvalidateCommand(opts),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (o *globalOptions) load() error {
	if o.output != outputTable && o.output != outputJSON {
		return fmt.Errorf("unsupported output format %q", o.output)
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", o.envFile, err)
		}
	}

	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	if o.mock {
		cfg.OCI.UseMock = true
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	logger.Initialize(logger.LogConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     "stderr",
		TimeFormat: time.RFC3339,
	})

	o.cfg = cfg
	return nil
}

// newApp wires the services for one command invocation
func (o *globalOptions) newApp(ctx context.Context) (*app.App, error) {
	return app.New(ctx, o.cfg, logger.Get())
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "inventorymgr %s\n", app.Version)
		},
	}
}
