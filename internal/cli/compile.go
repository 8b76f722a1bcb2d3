package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wherec/internal/filterlang"
	"github.com/roach88/wherec/internal/querysql"
	"github.com/roach88/wherec/internal/where"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Dialect   string
	Entity    string
	Table     string
	WhereOnly bool
	Delete    bool
	Limit     int
	OrderBy   []string
}

// compileResult is the JSON payload of the compile command.
type compileResult struct {
	Dialect string `json:"dialect"`
	SQL     string `json:"sql"`
	Values  []any  `json:"values"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <expression>",
		Short: "Compile a filter expression to SQL",
		Long: `Compile a filter expression against an entity definition.

By default a full SELECT is printed. --where-only prints just the
predicate chain and --delete prints a DELETE statement.`,
		Example: `  wherec compile 'city = "Oslo" and total > 10' --entity orders.yaml
  wherec compile 'createdAt between "2024-01-01" and "2024-02-01"' --entity orders.yaml --dialect postgres`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "SQL dialect (mysql|postgres); defaults to config")
	cmd.Flags().StringVar(&opts.Entity, "entity", "", "entity definition file (yaml, json or cue)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "table name (overrides the entity table)")
	cmd.Flags().BoolVar(&opts.WhereOnly, "where-only", false, "print only the predicate chain")
	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "print a DELETE statement")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "LIMIT for the SELECT (0 for none); defaults to config")
	cmd.Flags().StringSliceVar(&opts.OrderBy, "order-by", nil, "properties to order the SELECT by")
	cmd.MarkFlagsMutuallyExclusive("where-only", "delete")

	return cmd
}

func runCompile(cmd *cobra.Command, opts *CompileOptions, expr string) error {
	f := opts.formatter(cmd)
	cfg := opts.settings()

	dialectName := opts.Dialect
	if dialectName == "" {
		dialectName = cfg.Dialect
	}
	d, err := querysql.ParseDialect(dialectName)
	if err != nil {
		return commandError(f, ErrCodeGeneric, err)
	}

	w, err := filterlang.Parse(expr)
	if err != nil {
		return commandError(f, ErrCodeParse, err)
	}

	entityPath := opts.Entity
	if entityPath == "" {
		entityPath = cfg.Entity
	}
	def, err := loadEntity(entityPath)
	if err != nil {
		return commandError(f, errorCode(err), err)
	}
	table := def.Table
	if opts.Table != "" {
		table = opts.Table
	}

	limit := opts.Limit
	if !cmd.Flags().Changed("limit") {
		limit = cfg.Limit
	}

	slog.Debug("compiling filter", "dialect", d, "table", table, "where", w.String())

	var st querysql.Statement
	switch {
	case opts.WhereOnly:
		q, cerr := querysql.Compile(d, w, table, def.Fields, def.Temporal)
		if cerr != nil {
			err = cerr
			break
		}
		st = querysql.Statement{SQL: d.Finalize(q.BuildQueryString()), Values: q.BuildQueryValues()}
	case opts.Delete:
		st, err = querysql.Delete{
			Dialect:  d,
			Table:    table,
			Fields:   def.Fields,
			Temporal: def.Temporal,
			Where:    w,
		}.Build()
	default:
		st, err = querysql.Select{
			Dialect:  d,
			Table:    table,
			Fields:   def.Fields,
			Temporal: def.Temporal,
			Where:    w,
			OrderBy:  opts.OrderBy,
			Limit:    limit,
		}.Build()
	}
	if err != nil {
		return commandError(f, errorCode(err), err)
	}

	if st.Values == nil {
		st.Values = []any{}
	}
	if f.Format == "json" {
		return f.Success(compileResult{Dialect: string(d), SQL: st.SQL, Values: st.Values})
	}
	return f.Success(formatStatement(st))
}

// formatStatement renders st as its SQL followed by one value per line.
func formatStatement(st querysql.Statement) string {
	var b strings.Builder
	b.WriteString(st.SQL)
	b.WriteString("\n-- values")
	for i, v := range st.Values {
		fmt.Fprintf(&b, "\n%d: %s", i+1, where.FormatValue(v))
	}
	return b.String()
}
