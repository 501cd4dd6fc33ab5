package codetree

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/codetree/codetree/internal/config"
	"github.com/codetree/codetree/internal/history"
	"github.com/codetree/codetree/internal/report"
)

var (
	histLimit int
	histJSON  bool
	histClear bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous analysis runs, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().IntVarP(&histLimit, "limit", "n", 20, "show at most N runs (0 = all)")
	cmd.Flags().BoolVar(&histJSON, "json", false, "emit records as JSON")
	cmd.Flags().BoolVar(&histClear, "clear", false, "delete the history log")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	log := history.NewLogIn(dir)
	if histClear {
		if err := log.Clear(); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	}

	records, err := log.LoadHistory()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
			return nil
		}
		return err
	}
	if histLimit > 0 && len(records) > histLimit {
		records = records[:histLimit]
	}

	out := cmd.OutOrStdout()
	if histJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	table := tablewriter.NewWriter(out)
	table.Header("When", "Root", "Types", "Files", "Lines", "Size", "Format", "Report")
	for _, r := range records {
		_ = table.Append([]string{
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.Root,
			strings.Join(r.ProjectTypes, ", "),
			strconv.Itoa(r.TotalFiles),
			strconv.Itoa(r.TotalLines),
			report.FormatSize(r.TotalSize),
			r.Format,
			r.OutputPath,
		})
	}
	return table.Render()
}
