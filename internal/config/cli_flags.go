package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Write logs as JSON lines")
	cmd.PersistentFlags().String("timeout", DefaultTimeout.String(), "Set hard timeout for browser operations")
	cmd.PersistentFlags().String("user-agent", "", "User agent for headless rendering")
	cmd.PersistentFlags().String("chrome-path", "", "Path to the Chrome/Chromium binary")
	cmd.PersistentFlags().String("remote", "", "DevTools endpoint of a running Chrome (e.g., http://127.0.0.1:9222)")
}
