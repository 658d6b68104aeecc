// Package commands implements the CLI commands for peek.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/peek/internal/app"
	"go.trai.ch/peek/internal/build"
	"go.trai.ch/peek/internal/core/domain"
)

// CLI represents the command line interface for peek.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Setup(opts app.SetupOptions) error
	Load(ctx context.Context)
	HoverFile(ctx context.Context, document string, line, character int) (domain.Hover, error)
	Resolve(ctx context.Context, assetID, document string) (string, bool, error)
	AssetIDs(document string) ([]string, error)
	Reload(ctx context.Context, document string) (domain.Stats, error)
	Stats(ctx context.Context, document string) (domain.Stats, error)
	Serve(ctx context.Context, opts app.ServeOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "peek",
		Short:         "Preview images and asset identifiers referenced in source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringArrayP("workspace", "w", nil, "Workspace root (repeatable; the first one is primary, default: current directory)")
	flags.StringP("config", "c", "", "Path to the config file (default: <primary workspace>/"+domain.ConfigFileName+")")
	flags.Bool("json-logs", false, "Write logs as JSON")
	flags.BoolP("quiet", "q", false, "Only log warnings and errors")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.setup

	rootCmd.AddCommand(c.newHoverCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newReloadCmd())
	rootCmd.AddCommand(c.newStatsCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	workspaces, _ := cmd.Flags().GetStringArray("workspace")
	configPath, _ := cmd.Flags().GetString("config")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	quiet, _ := cmd.Flags().GetBool("quiet")

	return c.app.Setup(app.SetupOptions{
		Workspaces: workspaces,
		ConfigPath: configPath,
		JSONLogs:   jsonLogs,
		Quiet:      quiet,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetInput sets the input stream read by serve.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
