// Package commands implements the CLI commands for uccmake.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/uccmake/internal/app"
	"go.trai.ch/uccmake/internal/build"
)

// CLI represents the command line interface for uccmake.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Flatten(ctx context.Context, opts app.FlattenOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "uccmake",
		Short: "Build an UnrealScript module with ucc.exe",
		Long: "Runs the pre-build hook, backs up the previous artifact, compiles the module\n" +
			"in the working directory and runs the post-build hook on success.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runRoot,
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

	rootCmd.Flags().StringP("workspace", "w", "", "Module directory to build (defaults to the working directory)")
	rootCmd.Flags().String("flattensource", "", "Flatten this folder into ./classes instead of building")
	rootCmd.Flags().String("hook-failure", "", "What a failing hook does to the build: ignore or fail")
	rootCmd.PersistentFlags().String("log-format", "auto", "Log format: auto, pretty, text or json")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runRoot(cmd *cobra.Command, _ []string) error {
	workspace, _ := cmd.Flags().GetString("workspace")
	source, _ := cmd.Flags().GetString("flattensource")
	hookFailure, _ := cmd.Flags().GetString("hook-failure")
	logFormat, _ := cmd.Flags().GetString("log-format")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	if source != "" {
		return c.app.Flatten(cmd.Context(), app.FlattenOptions{
			WorkingDir:  workspace,
			Source:      source,
			LogFormat:   logFormat,
			MetricsFile: metricsFile,
		})
	}

	return c.app.Build(cmd.Context(), app.BuildOptions{
		WorkspaceDir: workspace,
		HookFailure:  hookFailure,
		LogFormat:    logFormat,
		MetricsFile:  metricsFile,
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
