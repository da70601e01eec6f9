package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/blox/internal/catalog"
	"github.com/jmylchreest/blox/internal/colour"
)

type matchOptions struct {
	catalogPath string
	count       int
	include     []string
	exclude     []string
	format      string
	preview     string
}

func newMatchCmd(global *globalOptions) *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match <colour>",
		Short: "Find the blocks closest to a colour",
		Long: `Find the catalog entries closest to a colour.

Distance is CIEDE2000. Blocks are always ranked; decorations can be narrowed
with tag filters: --include requires a tag and --exclude forbids it.

Colours may be given as #rrggbb, rrggbb, #rgb or r,g,b.

Examples:
  blox match '#7d7d7d'
  blox match 160,40,35 --count 3
  blox match '#35399d' --exclude translucent --include vertical`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.catalogPath, "catalog", "c", "catalog.json", "catalog JSON to search")
	cmd.Flags().IntVarP(&opts.count, "count", "n", catalog.DefaultMatchCount, "matches per collection")
	cmd.Flags().StringSliceVar(&opts.include, "include", nil, "tags decorations must carry")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "tags decorations must not carry")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format (table, json)")
	cmd.Flags().StringVar(&opts.preview, "preview", "auto", "colour swatches (auto, always, never)")

	return cmd
}

type matchJSON struct {
	Target      string      `json:"target"`
	Blocks      []matchItem `json:"blocks"`
	Decorations []matchItem `json:"decorations"`
}

type matchItem struct {
	catalog.Entry
	Distance float64 `json:"distance"`
}

func runMatch(cmd *cobra.Command, global *globalOptions, opts *matchOptions, arg string) error {
	logger := global.logger(cmd)

	target, err := colour.ParseRGB(arg)
	if err != nil {
		return err
	}
	if opts.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", opts.count)
	}

	cat, err := catalog.LoadJSON(opts.catalogPath)
	if err != nil {
		return err
	}
	logger.Debug("catalog loaded", "path", opts.catalogPath, "version", cat.Metadata.Version, "entries", cat.Len())

	matches := cat.Closest(target, opts.count, catalog.Filter{Include: opts.include, Exclude: opts.exclude})
	out := cmd.OutOrStdout()

	switch opts.format {
	case "json":
		return writeMatchJSON(out, target, matches)
	case "table":
		preview, err := wantPreview(opts.preview, out)
		if err != nil {
			return err
		}
		writeMatchTable(out, target, matches, preview)
		return nil
	default:
		return fmt.Errorf("unknown format: %s (valid formats: table, json)", opts.format)
	}
}

// wantPreview decides whether to print ANSI swatches.
func wantPreview(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown preview mode: %s (valid modes: auto, always, never)", mode)
	}
}

func writeMatchJSON(w io.Writer, target colour.RGB, m catalog.Matches) error {
	items := func(ms []catalog.Match) []matchItem {
		out := make([]matchItem, len(ms))
		for i, x := range ms {
			out[i] = matchItem{Entry: x.Entry, Distance: x.Distance}
		}
		return out
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(matchJSON{
		Target:      target.Hex(),
		Blocks:      items(m.Blocks),
		Decorations: items(m.Decorations),
	})
}

func writeMatchTable(w io.Writer, target colour.RGB, m catalog.Matches, preview bool) {
	heading := target.Hex()
	if preview {
		heading = colour.FormatColourWithPreview(target, 4)
	}
	fmt.Fprintf(w, "Target %s\n", heading)

	section := func(title string, ms []catalog.Match) {
		fmt.Fprintf(w, "\n%s\n", title)
		if len(ms) == 0 {
			fmt.Fprintln(w, "  (no matches)")
			return
		}

		headers := []string{"Colour", "ID", "Distance", "Tags"}
		if preview {
			headers = append([]string{""}, headers...)
		}
		table := NewTable(headers...)
		distCol := len(headers) - 2
		table.AlignRight(distCol)

		for _, x := range ms {
			cells := []string{x.Entry.Hex, x.Entry.ID, fmt.Sprintf("%.2f", x.Distance), strings.Join(x.Entry.Tags, ",")}
			if preview {
				cells = append([]string{colour.ColourPreview(x.Entry.RGBValue(), 4)}, cells...)
			}
			table.AddRow(cells...)
		}
		fmt.Fprint(w, table.Render())
	}

	section("Blocks", m.Blocks)
	section("Decorations", m.Decorations)
}
