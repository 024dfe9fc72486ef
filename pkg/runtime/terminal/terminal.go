package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/defect-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/defect-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/defect-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry     config.Registry
	profilesPath string
	logLevel     string
	output       io.Writer
	errOutput    io.Writer
	rootCmd      *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	// Registry overrides the profiles file named by --profiles.
	Registry config.Registry
	Output   io.Writer
	// ErrOutput receives logs. Defaults to stderr.
	ErrOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cli := &CLI{
		registry:  opts.Registry,
		output:    opts.Output,
		errOutput: opts.ErrOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs replaces the process arguments, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "defect-atlas",
		Short:             "Paint-line inspection analysis",
		SilenceUsage:      true,
		PersistentPreRunE: cli.attachLogger,
	}
	cmd.SetOut(cli.output)
	cmd.SetErr(cli.errOutput)
	cmd.PersistentFlags().StringVar(&cli.profilesPath, "profiles", config.DefaultProfilesPath(), "Path of the source profiles file")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "warn", "Log level")

	handlers := map[string]commands.ReportHandler{
		"table": export.NewReporter(cli.output),
		"text":  NewReporter(cli.output),
	}

	cmd.AddCommand(commands.NewReportCmd(cli.loadRegistry, handlers, cli.output))
	cmd.AddCommand(commands.NewImportCmd(cli.output))
	cmd.AddCommand(commands.NewGenerateCmd(cli.output))
	cmd.AddCommand(commands.NewSyncCmd(cli.loadRegistry, cli.output))

	return cmd
}

func (cli *CLI) attachLogger(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(cli.logLevel)
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.errOutput}).
		Level(level).
		With().
		Timestamp().
		Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

func (cli *CLI) loadRegistry() (config.Registry, error) {
	if cli.registry != nil {
		return cli.registry, nil
	}
	return config.NewRegistry(cli.profilesPath)
}
