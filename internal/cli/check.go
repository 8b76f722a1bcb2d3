package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/wherec/internal/filterlang"
	"github.com/roach88/wherec/internal/harness"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Entity  string
	Records string
}

// checkResult reports which records (by position in the records file)
// each path selected.
type checkResult struct {
	Agree     bool  `json:"agree"`
	Total     int   `json:"total"`
	SQL       []int `json:"sql"`
	Predicate []int `json:"predicate"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <expression>",
		Short: "Check that SQL and predicate select the same records",
		Long: `Load records into an in-memory SQLite table shaped by the entity
definition, run the compiled MySQL-style SELECT against it and the
in-memory predicate over the same records, and compare the results.

Exits 1 when the two disagree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Entity, "entity", "", "entity definition file (yaml, json or cue)")
	cmd.Flags().StringVar(&opts.Records, "records", "", "JSON file holding an array of objects (required)")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions, expr string) error {
	f := opts.formatter(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	w, err := filterlang.Parse(expr)
	if err != nil {
		return commandError(f, ErrCodeParse, err)
	}
	entityPath := opts.Entity
	if entityPath == "" {
		entityPath = opts.settings().Entity
	}
	def, err := loadEntity(entityPath)
	if err != nil {
		return commandError(f, errorCode(err), err)
	}
	records, err := loadRecords(opts.Records)
	if err != nil {
		return commandError(f, errorCode(err), err)
	}

	byPredicate, err := harness.PredicateMatches(w, records)
	if err != nil {
		return commandError(f, errorCode(err), err)
	}

	fx, err := harness.Load(ctx, def, records)
	if err != nil {
		return commandError(f, ErrCodeStore, err)
	}
	defer fx.Close()

	bySQL, err := fx.SQLMatches(ctx, w)
	if err != nil {
		return commandError(f, errorCode(err), err)
	}

	result := checkResult{
		Agree:     slices.Equal(bySQL, byPredicate),
		Total:     len(records),
		SQL:       bySQL,
		Predicate: byPredicate,
	}
	slog.Debug("check complete", "agree", result.Agree, "sql", len(bySQL), "predicate", len(byPredicate))

	if f.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else if result.Agree {
		_ = f.Success(fmt.Sprintf("ok: SQL and predicate both matched %d of %d records %v", len(bySQL), len(records), result.SQL))
	} else {
		_ = f.Success(fmt.Sprintf("MISMATCH: SQL matched %v, predicate matched %v (of %d records)", result.SQL, result.Predicate, len(records)))
	}

	if !result.Agree {
		return NewExitError(ExitFailure, ErrCodeMismatch+": SQL and predicate selected different records")
	}
	return nil
}
