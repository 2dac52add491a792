package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lovewall/internal/insight"
	"github.com/ppiankov/lovewall/internal/model"
	"github.com/ppiankov/lovewall/internal/wall"
)

var (
	insightTimeout time.Duration
	insightJSON    bool
)

// insightCmd represents the insight command
var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Generate the AI sentiment summary for the wall",
	Long: `Insight sends every post on the wall to the configured provider once and
prints a two-sentence summary with three highlights.

If no provider is configured, or the call fails or returns an unusable
answer, a static insight is printed instead. The command never fails
because of the provider.

Example:
  GEMINI_API_KEY=... lovewall insight
  lovewall insight --llm-provider ollama --llm-model llama3.1 --json`,
	Args: cobra.NoArgs,
	RunE: runInsight,
}

func init() {
	rootCmd.AddCommand(insightCmd)

	insightCmd.Flags().DurationVar(&insightTimeout, "timeout", time.Minute, "maximum time to wait for the insight")
	insightCmd.Flags().BoolVar(&insightJSON, "json", false, "print the insight as JSON")
}

func runInsight(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	w, err := wall.New(cmd.Context(), cfg, logger, nil)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), insightTimeout)
	defer cancel()

	value, outcome := w.WaitInsight(ctx)

	if verbose {
		fmt.Fprintf(os.Stderr, "Insight source: %s\n\n", outcome)
	}
	if insightJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}
	renderInsight(cmd.OutOrStdout(), value, outcome)
	return nil
}

func renderInsight(out io.Writer, value model.Insight, outcome insight.Outcome) {
	fmt.Fprintln(out, "✨ What customers love")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s\n\n", value.Summary)
	for _, h := range value.Highlights {
		fmt.Fprintf(out, "  • %s\n", h)
	}
	if outcome != insight.OutcomeLive {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "(static summary)")
	}
}
