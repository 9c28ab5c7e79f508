// internal/cli/root.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/law-makers/motorreg/internal/app"
	"github.com/law-makers/motorreg/internal/config"
	"github.com/law-makers/motorreg/internal/reqctx"
	"github.com/law-makers/motorreg/internal/ui"
)

// shutdownTimeout bounds how long closing browser sessions may take.
const shutdownTimeout = 5 * time.Second

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "motorreg",
	Short: "Extract vehicle data from Danish Motor Registry pages",
	Long: `Motorreg reads pages of the Danish motor vehicle registry (Motorregister)
and turns the selected tab into a flat record of fields.

Pages can come from saved HTML files, from stdin, or straight from a Chrome
tab you already have open.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and returns the process exit code.
// Each invocation gets its own run ID for log correlation.
func Execute(ctx context.Context) int {
	ctx = reqctx.WithRunContext(ctx)
	// Cobra keeps a subcommand's context between executions; start fresh.
	for _, c := range rootCmd.Commands() {
		c.SetContext(ctx)
	}
	err := rootCmd.ExecuteContext(ctx)

	// PersistentPostRunE is skipped when a command fails.
	if a := takeActiveApp(); a != nil {
		closeApp(a)
	}

	if err != nil {
		var re *reqctx.RunError
		if !errors.As(err, &re) {
			err = reqctx.NewRunError(ctx, err)
		}
		fmt.Fprintln(rootCmd.ErrOrStderr(), ui.Error("Error: "+err.Error()))
		return 1
	}
	return 0
}

func init() {
	// The application is built per command so -h/--help never touches config.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		SetApp(cmd, a)

		logger := reqctx.Logger(cmd.Context())
		logger.Debug().
			Str("command", cmd.Name()).
			Dur("timeout", cfg.Timeout).
			Msg("Configuration loaded")
		return nil
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a := takeActiveApp(); a != nil {
			closeApp(a)
		}
		return nil
	}

	config.RegisterFlags(rootCmd)

	rootCmd.Flags().BoolP("help", "h", false, "Help for motorreg")
	rootCmd.Flags().Bool("version", false, "Version for motorreg")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		ui.PrintHelp(cmd.OutOrStdout(), cmd)
	})
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		return ui.PrintUsage(cmd.ErrOrStderr(), cmd)
	})
}

func closeApp(a *app.Application) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		a.Logger.Warn().Err(err).Msg("Error during shutdown")
	}
}
