package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/law-makers/motorreg/internal/extract"
	"github.com/law-makers/motorreg/internal/reqctx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const stdinSource = "-"

var (
	extractOut   outputOptions
	extractMerge bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file|-]...",
	Short: "Extract vehicle data from saved registry pages",
	Long: `Reads one or more saved Motorregister pages and extracts the selected tab.

With a single input the result is printed as is. With several inputs the
results are keyed by file name, or combined into one record with --merge.

A page without a selected tab yields {"error": true, "message": "Failed to
find selected tab"} instead of a record.`,
	Example: `  # Extract a saved page
  motorreg extract koeretoej.html

  # Read the page from stdin
  cat koeretoej.html | motorreg extract -

  # Combine several tabs of the same vehicle into one CSV file
  motorreg extract vehicle.html technical.html --merge -o vehicle.csv`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractOut.register(extractCmd)
	extractCmd.Flags().BoolVar(&extractMerge, "merge", false, "Merge all records into one (later inputs win on duplicate keys)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	ctx := cmd.Context()
	logger := reqctx.Logger(ctx)

	if _, err := extractOut.resolve(); err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{stdinSource}
	}
	if err := checkInputs(inputs); err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if len(inputs) > 1 && !isQuiet(cmd) {
		bar = progressbar.NewOptions(len(inputs),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Extracting"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	results := make([]sourceResult, 0, len(inputs))
	for _, input := range inputs {
		rec, err := extractInput(cmd, a.Extractor, input)
		result, err := extract.ResultFor(rec, err)
		if err != nil {
			return reqctx.NewRunError(ctx, fmt.Errorf("%s: %w", sourceName(input), err))
		}
		if extract.IsErrorResult(result) {
			logger.Warn().Str("source", sourceName(input)).Msg(extract.MsgTabNotFound)
		}
		results = append(results, sourceResult{source: sourceName(input), result: result})

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	logger.Info().Int("inputs", len(inputs)).Bool("merge", extractMerge).Msg("Extraction finished")
	return extractOut.emit(cmd, combineResults(results, extractMerge))
}

// checkInputs rejects inputs that would land under the same result key,
// including stdin given twice.
func checkInputs(inputs []string) error {
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		name := sourceName(in)
		if !seen[name] {
			seen[name] = true
			continue
		}
		if in == stdinSource {
			return fmt.Errorf("stdin (-) can only be read once")
		}
		return fmt.Errorf("input %s given more than once", in)
	}
	return nil
}

func extractInput(cmd *cobra.Command, x *extract.Extractor, input string) (extract.Record, error) {
	var r io.Reader
	if input == stdinSource {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	return x.ExtractHTML(r)
}

func sourceName(input string) string {
	if input == stdinSource {
		return "stdin"
	}
	return input
}

type sourceResult struct {
	source string
	result any
}

// combineResults shapes the command output. A single input is returned as is.
// With merge, records are merged in input order and error results are dropped,
// unless nothing but errors remains. Otherwise results are keyed by source.
func combineResults(results []sourceResult, merge bool) any {
	if len(results) == 1 {
		return results[0].result
	}

	if merge {
		var records []extract.Record
		for _, r := range results {
			if rec, ok := r.result.(extract.Record); ok {
				records = append(records, rec)
			}
		}
		if len(records) == 0 && len(results) > 0 {
			return results[0].result
		}
		return extract.Merge(records...)
	}

	keyed := make(map[string]any, len(results))
	for _, r := range results {
		keyed[r.source] = r.result
	}
	return keyed
}
