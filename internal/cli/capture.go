package cli

import (
	"context"
	"fmt"

	"github.com/law-makers/motorreg/internal/capture"
	"github.com/law-makers/motorreg/internal/extract"
	"github.com/law-makers/motorreg/internal/reqctx"
	"github.com/law-makers/motorreg/pkg/models"
	"github.com/spf13/cobra"
)

var (
	captureOut        outputOptions
	captureRender     string
	captureTabs       []int
	captureScreenshot bool
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture and extract a registry page from Chrome",
	Long: `Captures the DOM of a Motorregister page from Chrome and extracts it.

By default motorreg attaches to a Chrome started with --remote-debugging-port
and reads the first open tab. With --render it instead opens a saved page in a
local headless Chrome. Nothing is fetched from the registry; you navigate and
search in the browser yourself.

Each --tab clicks that registry tab (0 = Køretøj, 1 = Tekniske oplysninger, ...)
before capturing. Records of all tabs are merged; later tabs win on duplicate keys.`,
	Example: `  # Extract the tab currently shown in your browser
  google-chrome --remote-debugging-port=9222 &
  motorreg capture

  # Vehicle and technical tabs with screenshots, as JSON file
  motorreg capture --tab 0 --tab 1 --screenshot -o vehicle.json

  # Render a saved page headlessly
  motorreg capture --render koeretoej.html --tab 1`,
	Args: cobra.NoArgs,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureOut.register(captureCmd)
	captureCmd.Flags().StringVar(&captureRender, "render", "", "Render a saved page in headless Chrome instead of attaching")
	captureCmd.Flags().IntSliceVar(&captureTabs, "tab", nil, "Registry tab index to select before capturing (repeatable)")
	captureCmd.Flags().BoolVar(&captureScreenshot, "screenshot", false, "Add a base64 full-page screenshot per tab (<tab>_image)")
}

func runCapture(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	if captureRender != "" && cmd.Flags().Changed("remote") {
		return fmt.Errorf("--render and --remote cannot be used together")
	}
	if _, err := captureOut.resolve(); err != nil {
		return err
	}

	opts := models.CaptureOptions{
		RemoteURL:  a.Config.RemoteURL,
		RenderFile: captureRender,
		Tabs:       captureTabs,
		Screenshot: captureScreenshot,
		Timeout:    a.Config.Timeout,
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()
	logger := reqctx.Logger(ctx)

	session, err := a.OpenSession(ctx, opts)
	if err != nil {
		return reqctx.NewRunError(ctx, err)
	}

	rec, err := capture.Run(ctx, session, a.Extractor, opts)
	result, err := extract.ResultFor(rec, err)
	if err != nil {
		return reqctx.NewRunError(ctx, err)
	}

	logger.Info().
		Ints("tabs", opts.Tabs).
		Bool("screenshot", opts.Screenshot).
		Bool("error_result", extract.IsErrorResult(result)).
		Msg("Capture finished")
	return captureOut.emit(cmd, result)
}
