package cli

import (
	"fmt"

	"github.com/law-makers/motorreg/internal/reqctx"
	"github.com/law-makers/motorreg/internal/ui"
	"github.com/law-makers/motorreg/internal/utils/output"
	"github.com/law-makers/motorreg/pkg/models"
	"github.com/spf13/cobra"
)

// outputOptions are the result flags shared by extract and capture.
type outputOptions struct {
	format string
	path   string
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "Output format: json, csv, markdown or table (default: from --output extension, else json)")
	cmd.Flags().StringVarP(&o.path, "output", "o", "", "File path to save output instead of printing it")
}

// resolve picks the output format. An explicit --format wins over the file extension.
func (o *outputOptions) resolve() (models.Format, error) {
	if o.format == "" && o.path != "" {
		return models.FormatFromPath(o.path), nil
	}
	return models.ParseFormat(o.format)
}

// emit writes v to --output or stdout.
func (o *outputOptions) emit(cmd *cobra.Command, v any) error {
	format, err := o.resolve()
	if err != nil {
		return err
	}

	if o.path == "" {
		return output.Write(cmd.OutOrStdout(), format, v)
	}

	if err := output.Save(o.path, format, v); err != nil {
		return err
	}

	logger := reqctx.Logger(cmd.Context())
	logger.Info().Str("file", o.path).Str("format", string(format)).Msg("Output saved")
	if !isQuiet(cmd) {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Success("✓ Saved to "+o.path))
	}
	return nil
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, _ := cmd.Flags().GetBool("quiet")
	return quiet
}
