package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/wherec/internal/filterlang"
	"github.com/roach88/wherec/internal/predicate"
)

// FilterOptions holds flags for the filter command.
type FilterOptions struct {
	*RootOptions
	Records string
}

type filterResult struct {
	Matched int              `json:"matched"`
	Total   int              `json:"total"`
	Records []map[string]any `json:"records"`
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FilterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "filter <expression>",
		Short: "Filter JSON records in memory",
		Long: `Compile a filter expression to an in-memory predicate and print the
records of a JSON array that match it. Properties may be dotted paths
into nested objects.`,
		Example: `  wherec filter 'city = "Oslo" or address.zip = "0150"' --records orders.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Records, "records", "", "JSON file holding an array of objects (required)")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

func runFilter(cmd *cobra.Command, opts *FilterOptions, expr string) error {
	f := opts.formatter(cmd)

	w, err := filterlang.Parse(expr)
	if err != nil {
		return commandError(f, ErrCodeParse, err)
	}
	match, err := predicate.CompileAnd(w)
	if err != nil {
		return commandError(f, errorCode(err), err)
	}
	records, err := loadRecords(opts.Records)
	if err != nil {
		return commandError(f, errorCode(err), err)
	}

	matched := predicate.Filter(records, match)
	if matched == nil {
		matched = []map[string]any{}
	}
	slog.Debug("records filtered", "matched", len(matched), "total", len(records))

	if f.Format == "json" {
		return f.Success(filterResult{Matched: len(matched), Total: len(records), Records: matched})
	}

	if len(matched) > 0 {
		header, rows := recordTable(matched)
		f.Table(header, rows)
	}
	return f.Success(fmt.Sprintf("%d of %d records matched", len(matched), len(records)))
}

// recordTable lays records out under the sorted union of their keys.
func recordTable(records []map[string]any) ([]string, [][]string) {
	keys := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			keys[k] = true
		}
	}
	var header []string
	for k := range keys {
		header = append(header, k)
	}
	slices.Sort(header)

	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(header))
		for j, k := range header {
			v, ok := r[k]
			if !ok {
				continue
			}
			row[j] = cell(v)
		}
		rows[i] = row
	}
	return header, rows
}

func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
