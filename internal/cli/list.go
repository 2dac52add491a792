package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lovewall/internal/catalog"
	"github.com/ppiankov/lovewall/internal/wall"
)

var (
	listCategory string
	listQuery    string
	listJSON     bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List proof items, filtered by category and search text",
	Long: `List prints the wall in catalog order.

Search is case-insensitive and matches the post body, the author name and tags.

Example:
  lovewall list
  lovewall list --category review
  lovewall list --category all --query size
  lovewall list -c video -q unboxing --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listCategory, "category", "c", "all", "category (all, twitter, instagram, testimonial, video, review)")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "search text")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print results as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
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

	result, err := w.Filter(listCategory, listQuery)
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	renderResult(cmd.OutOrStdout(), result)
	return nil
}

// renderResult prints one card per item, or the empty-state message
func renderResult(out io.Writer, result wall.Result) {
	if result.Empty {
		fmt.Fprintln(out, result.Message)
		return
	}

	for i, item := range result.Items {
		if i > 0 {
			fmt.Fprintln(out)
		}

		badge := catalog.BadgeFor(item.Category)
		header := fmt.Sprintf("[%s] %s", badge.Label, item.Author.Name)
		if item.Author.Verified {
			header += " ✓"
		}
		fmt.Fprintf(out, "%s  %s\n", header, catalog.Byline(item))

		if item.HasRating() {
			fmt.Fprintf(out, "  %s\n", catalog.Stars(item.Rating))
		}
		fmt.Fprintf(out, "  %s\n", item.Body)

		meta := item.Timestamp
		if len(item.Tags) > 0 {
			meta += "  #" + strings.Join(item.Tags, " #")
		}
		fmt.Fprintf(out, "  %s\n", strings.TrimSpace(meta))
	}

	fmt.Fprintf(out, "\n%d item(s)\n", result.Count)
}
